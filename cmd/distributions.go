package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mweagle/goloadgen/generator"
	"github.com/mweagle/goloadgen/modulation"
)

func newDistributionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "distributions",
		Short: "List the supported distributions and modulation functions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tKIND\tREQUIRED\tOPTIONAL")
			for _, eachFamily := range generator.Families() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					eachFamily.Name,
					eachFamily.Kind,
					joinOrDash(eachFamily.Required),
					joinOrDash(eachFamily.Optional))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nModulation functions: %s\n",
				strings.Join(modulation.Names(), ", "))
			return nil
		},
	}
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
