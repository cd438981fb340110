package perf

import (
	"github.com/ValentinKolb/encbench/lib/bench"
	"github.com/ValentinKolb/encbench/lib/record"
	"github.com/spf13/cobra"
)

func profile(cmd *cobra.Command, _ []string) error {
	_, data, entries, err := loadRun()
	if err != nil {
		return err
	}

	profiles, err := bench.Profile(data, entries)
	if err != nil {
		return err
	}

	minimumAvg := float64(record.TheoreticalMinimum(data)) / float64(len(data))
	return bench.WriteProfiles(cmd.OutOrStdout(), profiles, minimumAvg)
}
