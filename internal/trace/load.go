package trace

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// multiTraceFile is the YAML shape of an observed log.
//
// Example:
//
//	canals:
//	  - components: [client]
//	    trace:
//	      - ["client!"]
//	  - components: [server, db]
//	    trace:
//	      - ["server?"]
//	      - ["db!", "server?"]
type multiTraceFile struct {
	Canals []canalDecl `yaml:"canals"`
}

type canalDecl struct {
	Components []string   `yaml:"components"`
	Trace      [][]string `yaml:"trace"`
}

// ParseMultiTrace decodes a YAML multi-trace against a signature. Component
// names must already be interned by the specification: the trace refers to
// the spec's universe, it does not extend it.
//
// Returns the multi-trace and the co-localization index implied by the
// canal groups, index-aligned.
func ParseMultiTrace(data []byte, sig *Signature) (MultiTrace, CoLocalization, error) {
	var file multiTraceFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, CoLocalization{}, fmt.Errorf("decode multi-trace: %w", err)
	}
	if len(file.Canals) == 0 {
		return nil, CoLocalization{}, fmt.Errorf("multi-trace declares no canals")
	}

	groups := make([][]ComponentID, 0, len(file.Canals))
	mt := make(MultiTrace, 0, len(file.Canals))
	for canalIdx, canal := range file.Canals {
		group := make([]ComponentID, 0, len(canal.Components))
		for _, name := range canal.Components {
			id, ok := sig.ComponentID(name)
			if !ok {
				return nil, CoLocalization{}, fmt.Errorf("canal %d: component %q not declared by the specification", canalIdx, name)
			}
			group = append(group, id)
		}
		groups = append(groups, group)

		t := make(Trace, 0, len(canal.Trace))
		for stepIdx, step := range canal.Trace {
			m := make(Multiaction, len(step))
			for _, actStr := range step {
				a, err := ParseAction(actStr, sig)
				if err != nil {
					return nil, CoLocalization{}, fmt.Errorf("canal %d, multiaction %d: %w", canalIdx, stepIdx, err)
				}
				m.Add(a)
			}
			if len(m) == 0 {
				return nil, CoLocalization{}, fmt.Errorf("canal %d, multiaction %d: empty multiaction", canalIdx, stepIdx)
			}
			t = append(t, m)
		}
		mt = append(mt, t)
	}

	coloc, err := Grouped(groups)
	if err != nil {
		return nil, CoLocalization{}, err
	}
	// Actions must be observed on the canal that owns their component.
	for canalID, t := range mt {
		for stepIdx, m := range t {
			for a := range m {
				owner, _ := coloc.CanalOf(a.Component)
				if owner != canalID {
					return nil, CoLocalization{}, fmt.Errorf("canal %d, multiaction %d: action %s belongs to canal %d",
						canalID, stepIdx, sig.FormatAction(a), owner)
				}
			}
		}
	}
	return mt, coloc, nil
}

// LoadMultiTrace reads and parses a YAML multi-trace file.
func LoadMultiTrace(path string, sig *Signature) (MultiTrace, CoLocalization, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, CoLocalization{}, fmt.Errorf("read multi-trace file: %w", err)
	}
	return ParseMultiTrace(data, sig)
}

// ParseAction parses the textual action form: a component name followed by
// "!" (emission) or "?" (reception), e.g. "client!" or "db?".
func ParseAction(s string, sig *Signature) (Action, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Action{}, fmt.Errorf("malformed action %q: want <component>! or <component>?", s)
	}
	var dir Direction
	switch s[len(s)-1] {
	case '!':
		dir = Emission
	case '?':
		dir = Reception
	default:
		return Action{}, fmt.Errorf("malformed action %q: missing direction suffix ! or ?", s)
	}
	name := s[:len(s)-1]
	id, ok := sig.ComponentID(name)
	if !ok {
		return Action{}, fmt.Errorf("unknown component %q", name)
	}
	return Action{Component: id, Direction: dir}, nil
}
