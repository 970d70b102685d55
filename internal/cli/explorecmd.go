package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/multitrace/sieve/internal/term"
	"github.com/multitrace/sieve/internal/trace"
)

type exploreOptions struct {
	MaxDepth int
	MaxNodes int
}

// NewExploreCommand creates the explore command, which walks a
// specification's semantics without a trace and prints the reachable
// terms.
func NewExploreCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &exploreOptions{}
	cmd := &cobra.Command{
		Use:           "explore <spec.cue>",
		Short:         "Walk a specification's reachable terms",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplore(rootOpts, opts, args[0], cmd)
		},
	}
	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", 5, "walk depth bound")
	cmd.Flags().IntVar(&opts.MaxNodes, "max-nodes", 500, "cap on visited terms")
	return cmd
}

type exploredTerm struct {
	Depth int    `json:"depth"`
	Via   string `json:"via,omitempty"`
	Term  string `json:"term"`
}

func runExplore(rootOpts *RootOptions, opts *exploreOptions, specPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}
	spec, err := loadSpec(specPath)
	if err != nil {
		formatter.Error(err.Error(), nil)
		return WrapExitError(ExitCommandError, "explore setup failed", err)
	}

	visited, err := walkTerms(spec.Interaction, spec.Signature, opts.MaxDepth, opts.MaxNodes)
	if err != nil {
		formatter.Error(err.Error(), nil)
		return WrapExitError(ExitCommandError, "explore failed", err)
	}

	if formatter.JSON() {
		return formatter.Success(visited)
	}
	for _, v := range visited {
		for i := 0; i < v.Depth; i++ {
			fmt.Fprint(formatter.Writer, "  ")
		}
		if v.Via != "" {
			fmt.Fprintf(formatter.Writer, "%s -> %s\n", v.Via, v.Term)
		} else {
			fmt.Fprintln(formatter.Writer, v.Term)
		}
	}
	return nil
}

// walkTerms enumerates terms breadth-first, one entry per executed
// frontier element, deduplicating on the rendered term per depth.
func walkTerms(root *term.Interaction, sig *trace.Signature, maxDepth, maxNodes int) ([]exploredTerm, error) {
	type item struct {
		t     *term.Interaction
		depth int
		via   string
	}
	out := []exploredTerm{{Depth: 0, Term: root.Format(sig)}}
	queue := []item{{t: root}}
	seen := map[string]bool{}

	for len(queue) > 0 && len(out) < maxNodes {
		cur := queue[0]
		queue = queue[1:]
		if cur.depth >= maxDepth {
			continue
		}
		for _, elt := range cur.t.Frontier() {
			succ, err := cur.t.Execute(elt)
			if err != nil {
				return nil, fmt.Errorf("executing frontier element: %w", err)
			}
			rendered := succ.Format(sig)
			key := fmt.Sprintf("%d|%s", cur.depth+1, rendered)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, exploredTerm{
				Depth: cur.depth + 1,
				Via:   sig.FormatMultiaction(elt.Actions),
				Term:  rendered,
			})
			if len(out) >= maxNodes {
				break
			}
			queue = append(queue, item{t: succ, depth: cur.depth + 1, via: rendered})
		}
	}
	return out, nil
}
