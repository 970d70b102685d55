package gen

import (
	"fmt"
	"math"
	"math/rand"
	"slices"
)

// Probabilities is a validated discrete distribution over symbols, stored
// as cumulative bounds so sampling is a single uniform draw. Construction
// iterates the weight map in sorted symbol order; the layout, and therefore
// the sampling behavior under a fixed seed, does not depend on map
// iteration order.
type Probabilities struct {
	symbols []Symbol
	bounds  []float64
}

const probaTolerance = 1e-9

// FromMap builds a distribution from per-symbol weights. Every weight must
// lie in [0,1] and the weights must sum to 1. Zero-weight symbols are
// dropped.
func FromMap(weights map[Symbol]float64) (Probabilities, error) {
	symbols := make([]Symbol, 0, len(weights))
	for s := range weights {
		symbols = append(symbols, s)
	}
	slices.Sort(symbols)

	var p Probabilities
	total := 0.0
	for _, s := range symbols {
		w := weights[s]
		if w < 0 || w > 1 {
			return Probabilities{}, fmt.Errorf("symbol %s: probability %v outside [0,1]", s, w)
		}
		if w == 0 {
			continue
		}
		total += w
		p.symbols = append(p.symbols, s)
		p.bounds = append(p.bounds, total)
	}
	if math.Abs(total-1) > probaTolerance {
		return Probabilities{}, fmt.Errorf("probabilities sum to %v, want 1", total)
	}
	return p, nil
}

// Sample draws one symbol.
func (p Probabilities) Sample(rng *rand.Rand) Symbol {
	x := rng.Float64()
	for i, bound := range p.bounds {
		if x < bound {
			return p.symbols[i]
		}
	}
	return p.symbols[len(p.symbols)-1]
}

// Symbols returns the retained symbols in table order.
func (p Probabilities) Symbols() []Symbol {
	out := make([]Symbol, len(p.symbols))
	copy(out, p.symbols)
	return out
}

func mustFromMap(weights map[Symbol]float64) Probabilities {
	p, err := FromMap(weights)
	if err != nil {
		panic(err)
	}
	return p
}

// Conservative favors leaves and plain sequencing; generated terms stay
// small and loop-free.
func Conservative() Probabilities {
	return mustFromMap(map[Symbol]float64{
		SymBasic:  0.55,
		SymStrict: 0.15,
		SymSeq:    0.15,
		SymAlt:    0.10,
		SymEmpty:  0.05,
	})
}

// Regular is the default table: all regular operators, weak loops included,
// no coregions.
func Regular() Probabilities {
	return mustFromMap(map[Symbol]float64{
		SymBasic:  0.40,
		SymStrict: 0.10,
		SymSeq:    0.15,
		SymPar:    0.10,
		SymAlt:    0.125,
		SymLoopS:  0.05,
		SymLoopW:  0.05,
		SymLoopP:  0.025,
		SymEmpty:  0.0,
	})
}

// NonRegular weights the operators that break regularity, parallel loops
// above all.
func NonRegular() Probabilities {
	return mustFromMap(map[Symbol]float64{
		SymBasic: 0.35,
		SymSeq:   0.10,
		SymPar:   0.20,
		SymAlt:   0.10,
		SymLoopP: 0.15,
		SymLoopW: 0.10,
	})
}

// ProtocolsWithCoreg resembles handwritten protocol specifications that use
// coregions for out-of-order reception windows.
func ProtocolsWithCoreg() Probabilities {
	return mustFromMap(map[Symbol]float64{
		SymBasic:  0.40,
		SymStrict: 0.10,
		SymSeq:    0.15,
		SymCoreg:  0.10,
		SymAlt:    0.10,
		SymLoopW:  0.15,
	})
}

// HighLevelRegular weights composite operators over leaves, producing deep
// regular terms.
func HighLevelRegular() Probabilities {
	return mustFromMap(map[Symbol]float64{
		SymBasic:  0.25,
		SymStrict: 0.15,
		SymSeq:    0.20,
		SymAlt:    0.20,
		SymLoopS:  0.10,
		SymLoopW:  0.10,
	})
}

// DefaultLeaves is the default leaf table: mostly point-to-point
// transmissions, some environment emissions, rare broadcasts.
func DefaultLeaves() Probabilities {
	return mustFromMap(map[Symbol]float64{
		SymTransmission: 0.75,
		SymAction:       0.15,
		SymBroadcast:    0.10,
	})
}

// PresetNames lists the operator table presets accepted by Preset.
func PresetNames() []string {
	return []string{"conservative", "regular", "nonregular", "coreg", "highlevel"}
}

// Preset returns the named operator table.
func Preset(name string) (Probabilities, error) {
	switch name {
	case "conservative":
		return Conservative(), nil
	case "regular":
		return Regular(), nil
	case "nonregular":
		return NonRegular(), nil
	case "coreg":
		return ProtocolsWithCoreg(), nil
	case "highlevel":
		return HighLevelRegular(), nil
	default:
		return Probabilities{}, fmt.Errorf("unknown probability preset %q", name)
	}
}
