package gen

// Symbol identifies one production of the interaction language in a
// probability table. Operator symbols pick the shape of a composite node;
// leaf symbols pick the shape of a communication.
type Symbol int

const (
	SymEmpty Symbol = iota
	SymBasic
	SymStrict
	SymSeq
	SymCoreg
	SymPar
	SymLoopS
	SymLoopW
	SymLoopP
	SymAlt

	// Leaf table symbols.
	SymAction
	SymTransmission
	SymBroadcast
)

func (s Symbol) String() string {
	switch s {
	case SymEmpty:
		return "empty"
	case SymBasic:
		return "basic"
	case SymStrict:
		return "strict"
	case SymSeq:
		return "seq"
	case SymCoreg:
		return "coreg"
	case SymPar:
		return "par"
	case SymLoopS:
		return "loopS"
	case SymLoopW:
		return "loopW"
	case SymLoopP:
		return "loopP"
	case SymAlt:
		return "alt"
	case SymAction:
		return "action"
	case SymTransmission:
		return "transmission"
	case SymBroadcast:
		return "broadcast"
	default:
		return "unknown"
	}
}
