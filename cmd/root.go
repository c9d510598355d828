// Package cmd holds the goloadgen command line.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mweagle/goloadgen/buildinfo"
)

// globalOptions are shared by every subcommand.
type globalOptions struct {
	level  string
	lvl    *slog.LevelVar
	logger *slog.Logger
}

func parseLevel(levelString string) (slog.Level, error) {
	switch strings.ToLower(levelString) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level specified: %s", levelString)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{
		lvl: &slog.LevelVar{},
	}
	cmd := &cobra.Command{
		Use:   "goloadgen",
		Short: "Generate synthetic CPU load scenarios",
		Long: `goloadgen generates piecewise-constant CPU load time series and writes them
as JSON scenario files.

Quick start:
  goloadgen generate --seed 42 --plot cpu.png   # random walk with the defaults
  goloadgen generate --config scenario.yaml     # from a configuration file
  goloadgen summary scenario.json               # statistics for a scenario file
  goloadgen distributions                       # supported distributions`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, levelErr := parseLevel(opts.level)
			if levelErr != nil {
				return levelErr
			}
			opts.lvl.Set(level)
			opts.logger = slog.New(slog.NewTextHandler(cmd.OutOrStdout(), &slog.HandlerOptions{
				Level: opts.lvl,
			}))
			opts.logger.Debug("Welcome to goloadgen!",
				"version", buildinfo.BuildInfo(),
				"go", runtime.Version())
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&opts.level,
		"level",
		"INFO",
		"Logging verbosity level. Must be one of: {DEBUG, INFO, WARN, ERROR}.")

	cmd.AddCommand(newGenerateCmd(opts))
	cmd.AddCommand(newSummaryCmd(opts))
	cmd.AddCommand(newDistributionsCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
