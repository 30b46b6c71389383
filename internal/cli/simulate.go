package cli

import (
	"fmt"
	"io"

	"github.com/LeJamon/goTaxLedger/internal/metrics"
	"github.com/LeJamon/goTaxLedger/internal/scenario"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Simulate flags
	scenarioFile string
	jsonOutput   bool
	printMetrics bool
)

// simulateCmd replays a scenario against a fresh ledger
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Replay a YAML scenario against a fresh ledger",
	Long: `Build the genesis ledger from the configuration, replay every step of the
scenario and print each result followed by the final balances.

The command fails if any step's result differs from its "expect" field.`,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().StringVarP(&scenarioFile, "scenario", "s", "", "scenario file (YAML)")
	simulateCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the report as JSON")
	simulateCmd.Flags().BoolVar(&printMetrics, "metrics", false, "print engine metrics in Prometheus text format after the report")
	_ = simulateCmd.MarkFlagRequired("scenario")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	sc, err := scenario.Load(scenarioFile)
	if err != nil {
		return err
	}

	g, err := cfg.ToGenesis()
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	runner := scenario.NewRunner(scenario.Options{
		Genesis:     g,
		Logger:      logger,
		Metrics:     metrics.NewMetrics(registry),
		JournalSize: cfg.Journal.Size,
	})

	logger.Info("running scenario",
		zap.String("file", scenarioFile),
		zap.Int("steps", len(sc.Steps)),
	)
	report, err := runner.Run(cmd.Context(), sc)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		err = report.WriteJSON(out)
	} else {
		err = report.WriteText(out)
	}
	if err != nil {
		return err
	}

	if printMetrics {
		if err := writeMetrics(out, registry); err != nil {
			return err
		}
	}

	if failed := report.Failed(); len(failed) > 0 {
		return fmt.Errorf("%d step(s) did not match their expectation", len(failed))
	}
	return nil
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	fmt.Fprintln(w)
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
