package trace

// Trace is the ordered sequence of multiactions observed on one canal.
type Trace []Multiaction

// MultiTrace is the ground-truth log: one trace per canal, index-aligned
// with the co-localization index.
type MultiTrace []Trace

// TotalLength returns the number of multiactions across all canals.
func (mt MultiTrace) TotalLength() int {
	total := 0
	for _, t := range mt {
		total += len(t)
	}
	return total
}

// At returns the multiaction at position idx on the given canal, or nil if
// idx is past the end of that canal.
func (mt MultiTrace) At(canalID, idx int) Multiaction {
	t := mt[canalID]
	if idx >= len(t) {
		return nil
	}
	return t[idx]
}
