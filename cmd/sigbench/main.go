// Command sigbench measures secp256k1 keypair generation and
// signature verification throughput under three concurrency
// topologies.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"sigbench/internal/bench"
	"sigbench/internal/config"
	"sigbench/internal/progress"
	"sigbench/internal/ratelimit"
	"sigbench/internal/report"
	"sigbench/internal/scenario"
	"sigbench/internal/sigcrypto"
)

const (
	ExitSuccess   = 0
	ExitRunFailed = 1
	ExitError     = 2
)

// errRunFailed marks a measurement that started but did not complete,
// as opposed to a usage or configuration error.
var errRunFailed = errors.New("run failed")

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if errors.Is(err, errRunFailed) {
			os.Exit(ExitRunFailed)
		}
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sigbench",
		Short: "secp256k1 keygen and verification throughput benchmark",
		Long: `Sigbench runs one cycle of benchmark work - a keypair generation, a
signature verification, and every third cycle two extra verifications -
under three concurrency topologies, and reports steady-state operations
per second for each.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var (
		configPath string
		scenarioID string
		duration   time.Duration
		workers    int
		chanCap    int
		rate       int
		output     string
		baseline   string
		quiet      bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = *loaded
			}

			// CLI flags override config file values.
			flags := cmd.Flags()
			if flags.Changed("scenario") {
				cfg.Scenario = scenarioID
			}
			if flags.Changed("duration") {
				cfg.Duration = duration
			}
			if flags.Changed("workers") {
				cfg.Workers = workers
			}
			if flags.Changed("chan-cap") {
				cfg.ChanCap = chanCap
			}
			if flags.Changed("rate") {
				cfg.Rate = rate
			}
			if flags.Changed("output") {
				cfg.Output = output
			}
			if flags.Changed("baseline") {
				cfg.Baseline = baseline
			}
			if flags.Changed("quiet") {
				cfg.Quiet = quiet
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if cfg.Baseline != "" && cfg.Scenario == config.ScenarioAll {
				return errors.New("baseline comparison requires a single scenario")
			}

			return runBenchmark(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to YAML config file")
	cmd.Flags().StringVar(&scenarioID, "scenario", config.ScenarioAll, "scenario to run: 1, 2, 3 or all")
	cmd.Flags().DurationVar(&duration, "duration", 5*time.Second, "minimum measurement window per scenario")
	cmd.Flags().IntVar(&workers, "workers", 0, "multi-core pool size (0 = one per core)")
	cmd.Flags().IntVar(&chanCap, "chan-cap", -1, "split-role channel capacity (0 = unbuffered, -1 = default)")
	cmd.Flags().IntVar(&rate, "rate", 0, "cap on cycle starts per second (0 = unlimited)")
	cmd.Flags().StringVar(&output, "output", "text", "output format: text, json")
	cmd.Flags().StringVar(&baseline, "baseline", "", "previous JSON report to compare rates against")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "suppress progress output")
	return cmd
}

func runBenchmark(parent context.Context, cfg config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	signer := sigcrypto.New()
	prog := progress.NewProgress(cfg.Quiet)
	prog.Printf("Number of CPU cores: %d", runtime.NumCPU())

	for _, sel := range selectedScenarios(cfg.Scenario) {
		sc := buildScenario(sel, cfg)
		prog.Printf("\nRunning %s benchmark...", sc.Name())

		r, err := bench.Run(ctx, sc, signer, bench.Options{
			MinDuration: cfg.Duration,
			Progress:    prog,
		})
		if err != nil {
			return fmt.Errorf("%w: %w", errRunFailed, err)
		}

		switch cfg.Output {
		case "json":
			if err := report.FormatJSON(os.Stdout, r); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
		default:
			report.FormatText(os.Stdout, r)
		}

		if cfg.Baseline != "" {
			if err := report.CompareBaselineFile(os.Stdout, r, cfg.Baseline); err != nil {
				return err
			}
		}
	}
	return nil
}

func selectedScenarios(sel string) []string {
	if sel == config.ScenarioAll {
		return []string{config.ScenarioSingle, config.ScenarioSplit, config.ScenarioMulti}
	}
	return []string{sel}
}

func buildScenario(sel string, cfg config.Config) scenario.Scenario {
	limiter := ratelimit.NewLimiter(cfg.Rate)
	switch sel {
	case config.ScenarioSplit:
		return &scenario.SplitRole{ChanCap: cfg.ChanCap, Limiter: limiter}
	case config.ScenarioMulti:
		return &scenario.MultiCore{Workers: cfg.Workers}
	default:
		return &scenario.SingleCore{Limiter: limiter}
	}
}
