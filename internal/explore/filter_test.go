package explore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilters(t *testing.T) {
	tests := []struct {
		name     string
		filter   Filter
		crit     FilterCriterion
		wantKind EliminationKind
		wantCut  bool
	}{
		{
			name:     "depth within bound",
			filter:   MaxProcessDepth(3),
			crit:     FilterCriterion{Depth: 3},
			wantKind: ElimMaxProcessDepth,
			wantCut:  false,
		},
		{
			name:     "depth exceeded",
			filter:   MaxProcessDepth(3),
			crit:     FilterCriterion{Depth: 4},
			wantKind: ElimMaxProcessDepth,
			wantCut:  true,
		},
		{
			name:     "loop within bound",
			filter:   MaxLoopInstantiation(2),
			crit:     FilterCriterion{LoopDepth: 2},
			wantKind: ElimMaxLoopInstantiation,
			wantCut:  false,
		},
		{
			name:     "loop exceeded",
			filter:   MaxLoopInstantiation(2),
			crit:     FilterCriterion{LoopDepth: 3},
			wantKind: ElimMaxLoopInstantiation,
			wantCut:  true,
		},
		{
			name:     "node count within bound",
			filter:   MaxNodeNumber(10),
			crit:     FilterCriterion{NodeCount: 10},
			wantKind: ElimMaxNodeNumber,
			wantCut:  false,
		},
		{
			name:     "node count exceeded",
			filter:   MaxNodeNumber(10),
			crit:     FilterCriterion{NodeCount: 11},
			wantKind: ElimMaxNodeNumber,
			wantCut:  true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			kind, cut := tc.filter.Eliminates(tc.crit)
			assert.Equal(t, tc.wantKind, kind)
			assert.Equal(t, tc.wantCut, cut)
			assert.NotEmpty(t, tc.filter.String())
		})
	}
}
