package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/multitrace/sieve/internal/compiler"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid      bool     `json:"valid"`
	Spec       string   `json:"spec,omitempty"`
	Components []string `json:"components,omitempty"`
	Term       string   `json:"term,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "validate <spec.cue>",
		Short:         "Check that a specification compiles",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(rootOpts *RootOptions, specPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	spec, err := loadSpec(specPath)
	if err != nil {
		var compileErr *compiler.CompileError
		result := ValidationResult{Valid: false, Error: err.Error()}
		if errors.As(err, &compileErr) {
			result.Error = compileErr.Error()
		}
		if formatter.JSON() {
			formatter.Success(result)
		} else {
			formatter.Error(result.Error, nil)
		}
		return NewExitError(ExitFailure, "specification invalid")
	}

	result := ValidationResult{
		Valid:      true,
		Spec:       spec.Name,
		Components: spec.Signature.ComponentNames(),
		Term:       spec.Interaction.Format(spec.Signature),
	}
	if formatter.JSON() {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "ok: %s\n", specPath)
	fmt.Fprintf(formatter.Writer, "components: %v\n", result.Components)
	fmt.Fprintf(formatter.Writer, "interaction: %s\n", result.Term)
	return nil
}

func loadSpec(path string) (*compiler.Spec, error) {
	spec, err := compiler.LoadSpecFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading specification: %w", err)
	}
	return spec, nil
}
