package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/VictoriaMetrics/metrics"
	"github.com/rotisserie/eris"
)

// WriteCSV writes one row per result plus the theoretical minimum to w
func WriteCSV(w io.Writer, report Report, opts Options) error {
	writer := csv.NewWriter(w)

	header := []string{
		"Format", "Key", "TimeMs", "AvgTimeNs", "AvgSizeBytes", "OverheadPercent",
		"TotalBytes", "Entries", "Rounds", "TimeMeanMs", "TimeStdDevMs", "TimeMinMs", "TimeMaxMs",
		"Decode",
	}
	if err := writer.Write(header); err != nil {
		return eris.Wrap(err, "failed to write CSV header")
	}

	decode := strconv.FormatBool(!opts.SkipDecode)
	for _, res := range report.Results {
		stats := res.RoundStats()
		row := []string{
			res.Name,
			res.Key,
			fmt.Sprintf("%.2f", res.Seconds()*1000.0),
			fmt.Sprintf("%.2f", res.AvgNanos()),
			fmt.Sprintf("%.2f", res.AvgSize()),
			fmt.Sprintf("%.2f", report.Overhead(res.TotalBytes)),
			strconv.Itoa(res.TotalBytes),
			strconv.Itoa(res.Entries),
			strconv.Itoa(len(res.Rounds)),
			fmt.Sprintf("%.3f", stats.Mean),
			fmt.Sprintf("%.3f", stats.StdDeviation),
			fmt.Sprintf("%.3f", stats.Min),
			fmt.Sprintf("%.3f", stats.Max),
			decode,
		}
		if err := writer.Write(row); err != nil {
			return eris.Wrapf(err, "failed to write row for format %s", res.Name)
		}
	}

	// theoretical minimum, time columns stay empty
	row := []string{
		TheoreticalName, "", "", "",
		fmt.Sprintf("%.2f", report.MinimumAvg()),
		fmt.Sprintf("%.2f", report.Overhead(report.Minimum)),
		strconv.Itoa(report.Minimum),
		strconv.Itoa(report.Entries),
		"", "", "", "", "", "",
	}
	if err := writer.Write(row); err != nil {
		return eris.Wrap(err, "failed to write theoretical minimum")
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return eris.Wrap(err, "failed to flush CSV")
	}
	return nil
}

// WriteMetrics writes the report in Prometheus text format to w.
// Every format is a label value of the per-format gauges.
func WriteMetrics(w io.Writer, report Report) {
	set := metrics.NewSet()

	for _, res := range report.Results {
		res := res
		label := fmt.Sprintf(`{format=%q}`, res.Key)

		set.NewGauge("encbench_elapsed_seconds"+label, func() float64 { return res.Seconds() })
		set.NewGauge("encbench_avg_time_nanoseconds"+label, func() float64 { return res.AvgNanos() })
		set.NewGauge("encbench_encoded_bytes"+label, func() float64 { return float64(res.TotalBytes) })
		set.NewGauge("encbench_avg_size_bytes"+label, func() float64 { return res.AvgSize() })
		set.NewGauge("encbench_overhead_percent"+label, func() float64 { return report.Overhead(res.TotalBytes) })
		set.NewGauge("encbench_rounds"+label, func() float64 { return float64(len(res.Rounds)) })
	}

	set.NewGauge("encbench_entries", func() float64 { return float64(report.Entries) })
	set.NewGauge("encbench_theoretical_minimum_bytes", func() float64 { return float64(report.Minimum) })

	set.WritePrometheus(w)
}
