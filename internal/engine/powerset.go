package engine

// nonEmptySubsets enumerates every non-empty subset of ids in a fixed
// order: bitmask 1..2^n-1 ascending, elements kept in input order. The
// power-set re-interpretation of matched canals depends on this order
// being deterministic.
//
// Exponential in len(ids) by nature; callers bound the number of
// simultaneously matchable canals per frontier element, not this function.
func nonEmptySubsets(ids []int) [][]int {
	n := len(ids)
	out := make([][]int, 0, (1<<n)-1)
	for mask := 1; mask < (1 << n); mask++ {
		subset := make([]int, 0, n)
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				subset = append(subset, ids[i])
			}
		}
		out = append(out, subset)
	}
	return out
}
