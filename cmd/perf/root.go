package perf

import (
	"github.com/ValentinKolb/encbench/cmd/util"
	"github.com/ValentinKolb/encbench/lib/bench"
	"github.com/ValentinKolb/encbench/lib/common"
	"github.com/ValentinKolb/encbench/lib/record"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
)

var (
	Logger = logger.GetLogger("cmd")

	RunCmd = &cobra.Command{
		Use:   "run",
		Short: "Measure all selected formats and print the comparison table",
		Long: `Generate a dataset of random products, encode (and decode) every product with
every selected format and print time, average size and overhead compared to
the theoretical minimum. This is also what encbench does without a subcommand.`,
		RunE: Run,
	}

	ProfileCmd = &cobra.Command{
		Use:   "profile",
		Short: "Print the distribution of encoded sizes per format",
		Long: `Encode every product once per selected format without any timing and print
min, median, 99th percentile, max, mean and standard deviation of the encoded sizes.`,
		RunE: profile,
	}

	FormatsCmd = &cobra.Command{
		Use:   "formats",
		Short: "List all formats in the order they are measured",
		RunE:  listFormats,
	}
)

// loadRun reads and validates the configuration, generates the dataset and
// selects the requested formats
func loadRun() (common.RunConfig, []record.Product, []bench.Entry, error) {
	conf := util.GetRunConfig()
	if err := conf.Validate(); err != nil {
		return conf, nil, nil, err
	}

	entries, err := bench.DefaultRegistry().Select(conf.Formats)
	if err != nil {
		return conf, nil, nil, err
	}

	Logger.Infof("configuration:%s", conf.String())
	Logger.Infof("generating %d products", conf.Entries)
	data := record.Generate(conf.Entries, record.NewRand(conf.Seed))

	return conf, data, entries, nil
}
