package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mweagle/goloadgen/app"
)

func newSummaryCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <scenario.json>",
		Short: "Log statistics for a scenario file",
		Long: "Read a scenario file and log its slot count, total duration, repeat count\n" +
			"and time weighted CPU load statistics.",
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			_, err := app.SummarizeScenarioFile(args[0], opts.logger)
			return err
		},
	}
}
