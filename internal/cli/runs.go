package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/multitrace/sieve/internal/store"
)

type runsOptions struct {
	DBPath string
	Nodes  bool
}

// NewRunsCommand creates the runs command for inspecting stored analysis
// runs.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &runsOptions{}
	cmd := &cobra.Command{
		Use:           "runs [run-id]",
		Short:         "Inspect recorded analysis runs",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := ""
			if len(args) == 1 {
				runID = args[0]
			}
			return runRuns(rootOpts, opts, runID, cmd)
		},
	}
	cmd.Flags().StringVar(&opts.DBPath, "db", "sieve.db", "SQLite database path")
	cmd.Flags().BoolVar(&opts.Nodes, "nodes", false, "also list the run's search nodes")
	return cmd
}

func runRuns(rootOpts *RootOptions, opts *runsOptions, runID string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	st, err := store.Open(opts.DBPath)
	if err != nil {
		formatter.Error(err.Error(), nil)
		return WrapExitError(ExitCommandError, "opening database", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	if runID == "" {
		runs, err := st.ListRuns(ctx)
		if err != nil {
			formatter.Error(err.Error(), nil)
			return WrapExitError(ExitCommandError, "listing runs", err)
		}
		if formatter.JSON() {
			return formatter.Success(runs)
		}
		for _, r := range runs {
			fmt.Fprintf(formatter.Writer, "%s  %-10s %-8s %-4s %s\n",
				r.ID, r.Verdict, r.Kind, r.Strategy, r.Spec)
		}
		return nil
	}

	run, err := st.GetRun(ctx, runID)
	if err != nil {
		formatter.Error(err.Error(), nil)
		if errors.Is(err, store.ErrRunNotFound) {
			return WrapExitError(ExitFailure, "run not found", err)
		}
		return WrapExitError(ExitCommandError, "fetching run", err)
	}

	if opts.Nodes {
		nodes, err := st.ListNodes(ctx, runID)
		if err != nil {
			formatter.Error(err.Error(), nil)
			return WrapExitError(ExitCommandError, "listing nodes", err)
		}
		if formatter.JSON() {
			return formatter.Success(struct {
				Run   *store.Run         `json:"run"`
				Nodes []store.NodeRecord `json:"nodes"`
			}{run, nodes})
		}
		printRun(formatter, run)
		for _, n := range nodes {
			fmt.Fprintf(formatter.Writer, "node %d (parent %d, depth %d): %s\n",
				n.NodeID, n.ParentID, n.Depth, n.Term)
			if n.Step != "" {
				fmt.Fprintf(formatter.Writer, "  step: %s\n", n.Step)
			}
		}
		return nil
	}

	if formatter.JSON() {
		return formatter.Success(run)
	}
	printRun(formatter, run)
	return nil
}

func printRun(f *OutputFormatter, r *store.Run) {
	fmt.Fprintf(f.Writer, "run %s\n", r.ID)
	fmt.Fprintf(f.Writer, "  spec: %s, kind: %s, strategy: %s\n", r.Spec, r.Kind, r.Strategy)
	fmt.Fprintf(f.Writer, "  verdict: %s\n", r.Verdict)
	fmt.Fprintf(f.Writer, "  nodes: %d created, %d explored, %d steps\n",
		r.NodesCreated, r.NodesExplored, r.StepsEmitted)
}
