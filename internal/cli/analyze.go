package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/multitrace/sieve/internal/engine"
	"github.com/multitrace/sieve/internal/explore"
	"github.com/multitrace/sieve/internal/store"
	"github.com/multitrace/sieve/internal/term"
	"github.com/multitrace/sieve/internal/trace"
)

type analyzeOptions struct {
	Kind            string
	POR             bool
	SimulateBefore  bool
	MaxSimActs      int
	MaxSimLoopDepth int
	Strategy        string
	MaxDepth        int
	MaxLoop         int
	MaxNodes        int
	DBPath          string
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze <spec.cue> <trace.yaml>",
		Short: "Check a multi-trace against a specification",
		Long: `Analyze checks whether the multi-trace is a valid realization of the
interaction specification.

The analysis kind selects what counts as valid: "accept" requires the
multi-trace to be exactly a realization, "prefix" accepts any prefix of a
realization, and "simulate" additionally tolerates bounded slack before a
canal's first or after its last logged multiaction.

Exit code 0 means Pass or WeakPass, 1 means Fail or Inconclusive.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(rootOpts, opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Kind, "kind", "prefix", "analysis kind (accept|prefix|simulate)")
	cmd.Flags().BoolVar(&opts.POR, "por", false, "enable partial-order reduction")
	cmd.Flags().BoolVar(&opts.SimulateBefore, "simulate-before", false, "allow simulated slack before a canal's first multiaction")
	cmd.Flags().IntVar(&opts.MaxSimActs, "max-sim-acts", -1, "bound on simulated actions (-1 = unbounded)")
	cmd.Flags().IntVar(&opts.MaxSimLoopDepth, "max-sim-loop-depth", -1, "bound on loop depth reached through simulation (-1 = unbounded)")
	cmd.Flags().StringVar(&opts.Strategy, "strategy", "BFS", "search strategy (BFS|DFS|HCS)")
	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", 0, "cut search paths deeper than this (0 = off)")
	cmd.Flags().IntVar(&opts.MaxLoop, "max-loop", 0, "cut paths with more loop instantiations than this (0 = off)")
	cmd.Flags().IntVar(&opts.MaxNodes, "max-nodes", 0, "cap on created search nodes (0 = off)")
	cmd.Flags().StringVar(&opts.DBPath, "db", "", "record the run into this SQLite database")

	return cmd
}

func runAnalyze(rootOpts *RootOptions, opts *analyzeOptions, specPath, tracePath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	explorer, ectx, root, closer, err := buildAnalysis(cmd.Context(), opts, specPath, tracePath)
	if err != nil {
		formatter.Error(err.Error(), nil)
		return WrapExitError(ExitCommandError, "analysis setup failed", err)
	}
	if closer != nil {
		defer closer()
	}

	report, err := explorer.Analyze(cmd.Context(), ectx, root)
	if err != nil {
		formatter.Error(err.Error(), nil)
		return WrapExitError(ExitCommandError, "analysis failed", err)
	}

	if err := outputReport(formatter, report); err != nil {
		return err
	}
	if report.Verdict < explore.VerdictWeakPass {
		return NewExitError(ExitFailure, fmt.Sprintf("verdict %s", report.Verdict))
	}
	return nil
}

func buildAnalysis(ctx context.Context, opts *analyzeOptions, specPath, tracePath string) (*explore.Explorer, *engine.Context, *term.Interaction, func(), error) {
	spec, err := loadSpec(specPath)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	mt, coloc, err := trace.LoadMultiTrace(tracePath, spec.Signature)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	ectx, err := engine.NewContext(mt, coloc, term.Dominance{})
	if err != nil {
		return nil, nil, nil, nil, err
	}

	params, err := buildParams(opts)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	strategy, err := explore.ParseStrategy(opts.Strategy)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	explorer := &explore.Explorer{
		Params:     params,
		UsePOR:     opts.POR,
		Strategy:   strategy,
		Priorities: explore.DefaultPriorities(),
		Filters:    buildFilters(opts),
		SpecName:   spec.Name,
	}

	var closer func()
	if opts.DBPath != "" {
		st, err := store.Open(opts.DBPath)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		sink, err := st.BeginRun(ctx, spec.Name, params.Kind.String(), strategy.String())
		if err != nil {
			st.Close()
			return nil, nil, nil, nil, err
		}
		explorer.Sinks = append(explorer.Sinks, sink)
		closer = func() { st.Close() }
	}
	return explorer, ectx, spec.Interaction, closer, nil
}

func buildParams(opts *analyzeOptions) (*engine.Parameterization, error) {
	switch strings.ToLower(opts.Kind) {
	case "accept":
		return engine.Accept(), nil
	case "prefix":
		return engine.Prefix(), nil
	case "simulate":
		cfg := engine.SimulationConfig{SimulateBefore: opts.SimulateBefore}
		if opts.MaxSimActs >= 0 {
			cfg.ActCriterion = engine.ActCritMaxNum
			cfg.MaxSimActions = opts.MaxSimActs
		}
		if opts.MaxSimLoopDepth >= 0 {
			cfg.LoopCriterion = engine.LoopCritMaxDepth
			cfg.MaxSimLoopDepth = opts.MaxSimLoopDepth
		}
		return engine.Simulate(cfg), nil
	default:
		return nil, fmt.Errorf("unknown analysis kind %q (want accept, prefix or simulate)", opts.Kind)
	}
}

func buildFilters(opts *analyzeOptions) []explore.Filter {
	var filters []explore.Filter
	if opts.MaxDepth > 0 {
		filters = append(filters, explore.MaxProcessDepth(opts.MaxDepth))
	}
	if opts.MaxLoop > 0 {
		filters = append(filters, explore.MaxLoopInstantiation(opts.MaxLoop))
	}
	if opts.MaxNodes > 0 {
		filters = append(filters, explore.MaxNodeNumber(opts.MaxNodes))
	}
	return filters
}

func outputReport(f *OutputFormatter, report *explore.Report) error {
	if f.JSON() {
		return f.Success(report)
	}
	fmt.Fprintf(f.Writer, "verdict: %s\n", report.Verdict)
	fmt.Fprintf(f.Writer, "kind: %s, strategy: %s\n", report.Kind, report.Strategy)
	fmt.Fprintf(f.Writer, "nodes: %d created, %d explored, %d steps\n",
		report.NodesCreated, report.NodesExplored, report.StepsEmitted)
	kinds := make([]string, 0, len(report.Eliminations))
	for kind := range report.Eliminations {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		fmt.Fprintf(f.Writer, "cut by %s: %d\n", kind, report.Eliminations[explore.EliminationKind(kind)])
	}
	return nil
}
