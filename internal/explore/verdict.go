package explore

// Verdict is the outcome of an analysis run. The order is meaningful:
// later constants are strictly better outcomes, and the explorer reports
// the best verdict any explored node achieved.
type Verdict int

const (
	// VerdictFail means the search was exhausted without consuming the
	// multi-trace.
	VerdictFail Verdict = iota

	// VerdictInconclusive means every failing branch was cut by a filter,
	// so a deeper search might still pass.
	VerdictInconclusive

	// VerdictWeakPass means the multi-trace was fully consumed but only
	// with simulated slack.
	VerdictWeakPass

	// VerdictPass means the multi-trace was fully consumed from the log
	// alone.
	VerdictPass
)

func (v Verdict) String() string {
	switch v {
	case VerdictPass:
		return "Pass"
	case VerdictWeakPass:
		return "WeakPass"
	case VerdictInconclusive:
		return "Inconclusive"
	default:
		return "Fail"
	}
}

// MarshalText renders the verdict name, for JSON reports.
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func maxVerdict(a, b Verdict) Verdict {
	if a > b {
		return a
	}
	return b
}
