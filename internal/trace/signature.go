package trace

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Signature interns component and message names. The specification owns the
// component universe; traces refer to it by name and get resolved against
// the same signature.
//
// Names are NFC-normalized before interning so that visually identical
// identifiers from different input files cannot alias to distinct
// components.
type Signature struct {
	components []string
	messages   []string
	byName     map[string]ComponentID
	msgByName  map[string]int
}

// NewSignature creates an empty signature.
func NewSignature() *Signature {
	return &Signature{
		byName:    make(map[string]ComponentID),
		msgByName: make(map[string]int),
	}
}

// AddComponent interns a component name and returns its ID. Re-adding an
// existing name returns the existing ID.
func (s *Signature) AddComponent(name string) (ComponentID, error) {
	name = norm.NFC.String(strings.TrimSpace(name))
	if name == "" {
		return 0, fmt.Errorf("component name must be non-empty")
	}
	if id, ok := s.byName[name]; ok {
		return id, nil
	}
	id := ComponentID(len(s.components))
	s.components = append(s.components, name)
	s.byName[name] = id
	return id, nil
}

// AddMessage interns a message label. Message labels are display-only: the
// trace model identifies actions by (component, direction) alone.
func (s *Signature) AddMessage(name string) (int, error) {
	name = norm.NFC.String(strings.TrimSpace(name))
	if name == "" {
		return 0, fmt.Errorf("message name must be non-empty")
	}
	if id, ok := s.msgByName[name]; ok {
		return id, nil
	}
	id := len(s.messages)
	s.messages = append(s.messages, name)
	s.msgByName[name] = id
	return id, nil
}

// ComponentID resolves a name to an ID.
func (s *Signature) ComponentID(name string) (ComponentID, bool) {
	id, ok := s.byName[norm.NFC.String(strings.TrimSpace(name))]
	return id, ok
}

// ComponentName returns the name for an ID, or a placeholder for IDs the
// signature does not know.
func (s *Signature) ComponentName(id ComponentID) string {
	if int(id) < 0 || int(id) >= len(s.components) {
		return fmt.Sprintf("c%d", id)
	}
	return s.components[int(id)]
}

// NumComponents returns the number of interned components.
func (s *Signature) NumComponents() int {
	return len(s.components)
}

// ComponentNames returns the interned names in ID order.
func (s *Signature) ComponentNames() []string {
	out := make([]string, len(s.components))
	copy(out, s.components)
	return out
}

// FormatAction renders an action with its component name, e.g. "a!".
func (s *Signature) FormatAction(a Action) string {
	return s.ComponentName(a.Component) + a.Direction.String()
}

// FormatMultiaction renders a multiaction deterministically, e.g. "{a!,b?}".
func (s *Signature) FormatMultiaction(m Multiaction) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, a := range m.Sorted() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s.FormatAction(a))
	}
	b.WriteByte('}')
	return b.String()
}
