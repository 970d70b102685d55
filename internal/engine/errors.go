package engine

import (
	"errors"
	"fmt"
)

// ContractError represents a violated programming contract between the
// engine and its oracles. These are unrecoverable: they indicate that the
// frontier oracle, the domination oracle, and the co-localization index
// disagree with each other, and the analysis run must abort.
//
// Sound rejection of a frontier element is NOT an error; it simply
// contributes no step.
type ContractError struct {
	// Code identifies the violated contract.
	Code ContractErrorCode

	// Message is a human-readable description.
	Message string

	// CanalID identifies the offending canal, or -1 when the violation is
	// not canal-specific.
	CanalID int
}

// ContractErrorCode categorizes contract violations.
type ContractErrorCode string

const (
	// ErrCodeDoubleTargetedCanal indicates a canal was targeted for exact
	// match and simulation within the same frontier element.
	ErrCodeDoubleTargetedCanal ContractErrorCode = "DOUBLE_TARGETED_CANAL"

	// ErrCodeNotSimulating indicates the simulation gate was invoked for a
	// non-simulating parameterization.
	ErrCodeNotSimulating ContractErrorCode = "NOT_SIMULATING"

	// ErrCodeUnknownComponent indicates a frontier element targets a
	// component the co-localization index does not know.
	ErrCodeUnknownComponent ContractErrorCode = "UNKNOWN_COMPONENT"
)

// Error implements the error interface.
func (e *ContractError) Error() string {
	if e.CanalID >= 0 {
		return fmt.Sprintf("%s: %s (canal=%d)", e.Code, e.Message, e.CanalID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsContractError returns true if the error is a ContractError.
// Uses errors.As to handle wrapped errors.
func IsContractError(err error) bool {
	var ce *ContractError
	return errors.As(err, &ce)
}

func newDoubleTargetError(canalID int) *ContractError {
	return &ContractError{
		Code:    ErrCodeDoubleTargetedCanal,
		Message: "action left to match on a canal already used for match-execution",
		CanalID: canalID,
	}
}

func newNotSimulatingError(kind AnalysisKind) *ContractError {
	return &ContractError{
		Code:    ErrCodeNotSimulating,
		Message: fmt.Sprintf("simulation gate invoked for %s analysis", kind),
		CanalID: -1,
	}
}

func newUnknownComponentError(component int) *ContractError {
	return &ContractError{
		Code:    ErrCodeUnknownComponent,
		Message: fmt.Sprintf("frontier element targets component %d unknown to the co-localization index", component),
		CanalID: -1,
	}
}
