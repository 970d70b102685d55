// Package gen produces random interaction terms from validated probability
// tables over the language's symbols. Generation is fully determined by the
// seed, the tables and the depth budget, which makes generated corpora
// reproducible across runs.
package gen
