package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"ticksched/internal/config"
	"ticksched/internal/logging"
)

var (
	flagConfig    string
	flagLogLevel  string
	flagLogFormat string

	cfg    config.Config
	logger *slog.Logger
)

// NewRootCmd creates the root cobra command for the ticksched CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ticksched",
		Short: "Discrete-time CPU scheduling simulator",
		Long: `ticksched simulates FCFS, SJN, Round-Robin, Rate-Monotonic and
Earliest-Deadline-First scheduling of a task set on one CPU, tick by tick,
and reports the resulting schedule and metrics.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(".env"); err != nil {
				return err
			}

			c, err := config.Load(flagConfig)
			if err != nil {
				return err
			}
			if err := c.ApplyEnv(); err != nil {
				return err
			}

			if cmd.Flags().Changed("log-level") {
				c.LogLevel = flagLogLevel
			}
			if cmd.Flags().Changed("log-format") {
				c.LogFormat = flagLogFormat
			}

			cfg = c
			logger = logging.NewLogger(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "config.yml", "Configuration file")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newRunCmd(),
		newCompareCmd(),
		newGenerateCmd(),
	)

	return root
}

// Execute runs the CLI and exits through atexit so that buffered recorders
// are flushed.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
