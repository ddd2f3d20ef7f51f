package main

import (
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/okian/teamfit/internal/bench"
	"github.com/okian/teamfit/pkg/logger"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Send optimization requests and verify the responses",
	Long: `Run checks /healthz, then sends --requests optimization requests with
--workers in flight. Flags override values from --scenario. The command
fails when any response breaks a formation invariant.`,
	RunE: runBench,
}

func init() {
	def := bench.DefaultConfig()
	runCmd.Flags().String("scenario", "", "YAML scenario file")
	runCmd.Flags().String("url", def.BaseURL, "base URL of the service")
	runCmd.Flags().Int("requests", def.Requests, "number of requests to send")
	runCmd.Flags().Int("workers", runtime.NumCPU(), "requests in flight")
	runCmd.Flags().Int("pool-size", def.Pool.Size, "candidates per request")
	runCmd.Flags().Int("team-size", def.Pool.TeamSize, "team size per request")
	runCmd.Flags().Duration("timeout", def.Timeout, "per-request timeout")
	runCmd.Flags().Uint64("seed", 0, "generator seed (0 picks one)")
	runCmd.Flags().String("log-format", logger.FormatText, "log format: text or json")
	runCmd.Flags().Bool("verbose", false, "log every failed request")

	rootCmd.AddCommand(runCmd)
}

func runBench(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	format, _ := flags.GetString("log-format")
	if err := logger.Init(logger.WithFormat(format)); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg := bench.DefaultConfig()
	cfg.Workers = runtime.NumCPU()
	if path, _ := flags.GetString("scenario"); path != "" {
		var err error
		if cfg, err = bench.LoadScenario(path, cfg); err != nil {
			return err
		}
	}
	if flags.Changed("url") {
		cfg.BaseURL, _ = flags.GetString("url")
	}
	if flags.Changed("requests") {
		cfg.Requests, _ = flags.GetInt("requests")
	}
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("pool-size") {
		cfg.Pool.Size, _ = flags.GetInt("pool-size")
	}
	if flags.Changed("team-size") {
		cfg.Pool.TeamSize, _ = flags.GetInt("team-size")
	}
	if flags.Changed("timeout") {
		cfg.Timeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("verbose") {
		cfg.Verbose, _ = flags.GetBool("verbose")
	}
	if cfg.Verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, err := bench.Run(ctx, cfg)
	return err
}
