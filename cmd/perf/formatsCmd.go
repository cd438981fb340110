package perf

import (
	"fmt"

	"github.com/ValentinKolb/encbench/lib/bench"
	"github.com/spf13/cobra"
)

func listFormats(cmd *cobra.Command, _ []string) error {
	for _, e := range bench.DefaultRegistry().Entries() {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-13s %s\n", e.Key, e.Name); err != nil {
			return err
		}
	}
	return nil
}
