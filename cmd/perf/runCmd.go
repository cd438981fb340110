package perf

import (
	"os"

	"github.com/ValentinKolb/encbench/lib/bench"
	"github.com/ValentinKolb/encbench/lib/common"
	"github.com/ValentinKolb/encbench/lib/record"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

// Run executes the benchmark and prints the report to the output of cmd
func Run(cmd *cobra.Command, _ []string) error {
	conf, data, entries, err := loadRun()
	if err != nil {
		return err
	}

	opts := bench.Options{
		SkipDecode: conf.SkipDecode,
		Rounds:     conf.Rounds,
	}

	results, err := bench.RunAll(data, entries, opts)
	if err != nil {
		return err
	}

	report := bench.Report{
		Entries: len(data),
		Results: results,
		Minimum: record.TheoreticalMinimum(data),
	}

	if err := report.Write(cmd.OutOrStdout()); err != nil {
		return eris.Wrap(err, "failed to write report")
	}

	return export(conf, report, opts)
}

// export writes the optional CSV and metrics files
func export(conf common.RunConfig, report bench.Report, opts bench.Options) error {
	if conf.CSVPath != "" {
		if err := writeFile(conf.CSVPath, func(f *os.File) error {
			return bench.WriteCSV(f, report, opts)
		}); err != nil {
			return err
		}
		Logger.Infof("results saved to %s", conf.CSVPath)
	}

	if conf.MetricsPath != "" {
		if err := writeFile(conf.MetricsPath, func(f *os.File) error {
			bench.WriteMetrics(f, report)
			return nil
		}); err != nil {
			return err
		}
		Logger.Infof("metrics saved to %s", conf.MetricsPath)
	}

	return nil
}

// writeFile creates path and hands it to write
func writeFile(path string, write func(f *os.File) error) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "failed to create %s", path)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = eris.Wrapf(cerr, "failed to close %s", path)
		}
	}()

	return write(file)
}
