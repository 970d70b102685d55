package compiler

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/multitrace/sieve/internal/term"
	"github.com/multitrace/sieve/internal/trace"
)

// Spec is a compiled specification document.
type Spec struct {
	Name        string
	Signature   *trace.Signature
	Interaction *term.Interaction
}

// CompileError is a compilation error carrying the offending field and its
// CUE source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// LoadSpecFile reads and compiles a CUE specification file.
func LoadSpecFile(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec file: %w", err)
	}
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	return CompileSpec(v)
}

// CompileSpec parses a CUE value into a Spec. The value is the document
// root:
//
//	name: "ping_pong"
//	components: ["client", "server"]
//	interaction: {
//		op:    "seq"
//		left:  {op: "transmission", from: "client", to: ["server"], msg: "ping"}
//		right: {op: "transmission", from: "server", to: ["client"], msg: "pong"}
//	}
func CompileSpec(v cue.Value) (*Spec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	spec := &Spec{Signature: trace.NewSignature()}

	nameVal := v.LookupPath(cue.ParsePath("name"))
	if nameVal.Exists() {
		name, err := nameVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		spec.Name = name
	}

	compsVal := v.LookupPath(cue.ParsePath("components"))
	if !compsVal.Exists() {
		return nil, &CompileError{
			Field:   "components",
			Message: "components roster is required",
			Pos:     v.Pos(),
		}
	}
	iter, err := compsVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		name, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		if _, ok := spec.Signature.ComponentID(name); ok {
			return nil, &CompileError{
				Field:   "components",
				Message: fmt.Sprintf("component %q declared twice", name),
				Pos:     iter.Value().Pos(),
			}
		}
		if _, err := spec.Signature.AddComponent(name); err != nil {
			return nil, &CompileError{
				Field:   "components",
				Message: err.Error(),
				Pos:     iter.Value().Pos(),
			}
		}
	}
	if spec.Signature.NumComponents() == 0 {
		return nil, &CompileError{
			Field:   "components",
			Message: "at least one component is required",
			Pos:     compsVal.Pos(),
		}
	}

	interVal := v.LookupPath(cue.ParsePath("interaction"))
	if !interVal.Exists() {
		return nil, &CompileError{
			Field:   "interaction",
			Message: "interaction term is required",
			Pos:     v.Pos(),
		}
	}
	inter, err := compileTerm(interVal, spec.Signature, "interaction")
	if err != nil {
		return nil, err
	}
	spec.Interaction = inter
	return spec, nil
}

func compileTerm(v cue.Value, sig *trace.Signature, field string) (*term.Interaction, error) {
	opVal := v.LookupPath(cue.ParsePath("op"))
	if !opVal.Exists() {
		return nil, &CompileError{
			Field:   field,
			Message: "term node needs an op field",
			Pos:     v.Pos(),
		}
	}
	op, err := opVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}

	switch op {
	case "empty":
		return term.Empty(), nil

	case "transmission":
		return compileTransmission(v, sig, field)

	case "strict", "seq", "par", "alt":
		l, r, err := compileBranches(v, sig, field)
		if err != nil {
			return nil, err
		}
		switch op {
		case "strict":
			return term.Strict(l, r), nil
		case "seq":
			return term.Seq(l, r), nil
		case "par":
			return term.Par(l, r), nil
		default:
			return term.Alt(l, r), nil
		}

	case "coreg":
		region, err := compileComponents(v.LookupPath(cue.ParsePath("region")), sig, field+".region")
		if err != nil {
			return nil, err
		}
		l, r, err := compileBranches(v, sig, field)
		if err != nil {
			return nil, err
		}
		return term.CoRegion(region, l, r), nil

	case "loop":
		kindVal := v.LookupPath(cue.ParsePath("kind"))
		kind := term.LoopWeak
		if kindVal.Exists() {
			k, err := kindVal.String()
			if err != nil {
				return nil, formatCUEError(err)
			}
			switch k {
			case "strict":
				kind = term.LoopStrict
			case "weak":
				kind = term.LoopWeak
			case "par":
				kind = term.LoopPar
			default:
				return nil, &CompileError{
					Field:   field + ".kind",
					Message: fmt.Sprintf("unknown loop kind %q", k),
					Pos:     kindVal.Pos(),
				}
			}
		}
		bodyVal := v.LookupPath(cue.ParsePath("body"))
		if !bodyVal.Exists() {
			return nil, &CompileError{
				Field:   field + ".body",
				Message: "loop body is required",
				Pos:     v.Pos(),
			}
		}
		body, err := compileTerm(bodyVal, sig, field+".body")
		if err != nil {
			return nil, err
		}
		return term.Loop(kind, body), nil

	default:
		return nil, &CompileError{
			Field:   field + ".op",
			Message: fmt.Sprintf("unknown operator %q", op),
			Pos:     opVal.Pos(),
		}
	}
}

func compileTransmission(v cue.Value, sig *trace.Signature, field string) (*term.Interaction, error) {
	fromVal := v.LookupPath(cue.ParsePath("from"))
	if !fromVal.Exists() {
		return nil, &CompileError{
			Field:   field + ".from",
			Message: "transmission emitter is required",
			Pos:     v.Pos(),
		}
	}
	fromName, err := fromVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	from, ok := sig.ComponentID(fromName)
	if !ok {
		return nil, &CompileError{
			Field:   field + ".from",
			Message: fmt.Sprintf("component %q not in roster", fromName),
			Pos:     fromVal.Pos(),
		}
	}

	msgVal := v.LookupPath(cue.ParsePath("msg"))
	if !msgVal.Exists() {
		return nil, &CompileError{
			Field:   field + ".msg",
			Message: "transmission message is required",
			Pos:     v.Pos(),
		}
	}
	msg, err := msgVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	if _, err := sig.AddMessage(msg); err != nil {
		return nil, &CompileError{
			Field:   field + ".msg",
			Message: err.Error(),
			Pos:     msgVal.Pos(),
		}
	}

	// "to" is optional: no receivers models an emission to the
	// environment.
	var to []trace.ComponentID
	toVal := v.LookupPath(cue.ParsePath("to"))
	if toVal.Exists() {
		to, err = compileComponents(toVal, sig, field+".to")
		if err != nil {
			return nil, err
		}
	}
	return term.Transmission(msg, from, to...), nil
}

func compileBranches(v cue.Value, sig *trace.Signature, field string) (*term.Interaction, *term.Interaction, error) {
	leftVal := v.LookupPath(cue.ParsePath("left"))
	rightVal := v.LookupPath(cue.ParsePath("right"))
	if !leftVal.Exists() || !rightVal.Exists() {
		return nil, nil, &CompileError{
			Field:   field,
			Message: "binary operator needs left and right",
			Pos:     v.Pos(),
		}
	}
	l, err := compileTerm(leftVal, sig, field+".left")
	if err != nil {
		return nil, nil, err
	}
	r, err := compileTerm(rightVal, sig, field+".right")
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

func compileComponents(v cue.Value, sig *trace.Signature, field string) ([]trace.ComponentID, error) {
	if !v.Exists() {
		return nil, &CompileError{
			Field:   field,
			Message: "component list is required",
			Pos:     v.Pos(),
		}
	}
	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var out []trace.ComponentID
	for iter.Next() {
		name, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		id, ok := sig.ComponentID(name)
		if !ok {
			return nil, &CompileError{
				Field:   field,
				Message: fmt.Sprintf("component %q not in roster", name),
				Pos:     iter.Value().Pos(),
			}
		}
		out = append(out, id)
	}
	return out, nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	positions := cueerrors.Positions(first)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}
	return err
}
