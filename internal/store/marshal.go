package store

import (
	"encoding/json"
	"fmt"

	"github.com/multitrace/sieve/internal/engine"
)

// Step rows must compare byte-for-byte across runs, so the JSON layout is
// fixed: actions, consume sets and simulate sets are emitted in sorted
// order and never through map iteration.

type stepRecord struct {
	Actions   []actionRecord `json:"actions"`
	LoopDepth int            `json:"loop_depth,omitempty"`
	Consume   []int          `json:"consume"`
	Simulate  []simRecord    `json:"simulate,omitempty"`
}

type actionRecord struct {
	Component int    `json:"component"`
	Direction string `json:"direction"`
}

type simRecord struct {
	Canal int    `json:"canal"`
	Kind  string `json:"kind"`
}

func marshalStep(step engine.Step) (string, error) {
	rec := stepRecord{
		LoopDepth: step.Frontier.MaxLoopDepth,
		Consume:   step.SortedConsume(),
	}
	if rec.Consume == nil {
		rec.Consume = []int{}
	}
	for _, a := range step.Frontier.Actions.Sorted() {
		rec.Actions = append(rec.Actions, actionRecord{
			Component: int(a.Component),
			Direction: a.Direction.String(),
		})
	}
	for _, canalID := range step.SortedSimulate() {
		rec.Simulate = append(rec.Simulate, simRecord{
			Canal: canalID,
			Kind:  step.Simulate[canalID].String(),
		})
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("marshal step: %w", err)
	}
	return string(data), nil
}
