package bench

import (
	"fmt"
	"io"
	"strings"
)

const (
	tableRule   = "--------------|-----------|----------------|-------------------|----------|"
	tableHeader = "Format        | Time (ms) |  Avg Time (ns) |  Avg Size (bytes) | Overhead |"
	tableRow    = "%-13s | %9.2f | %14.2f | %17.2f | %7.2f%% |\n"
	tableNARow  = "%-13s | %9s | %14s | %17.2f | %7.2f%% |\n"

	// TheoreticalName is the row label of the theoretical minimum
	TheoreticalName = "Theoretical"
)

// Report holds everything needed to print the comparison table
type Report struct {
	// Entries is the number of records in the dataset
	Entries int
	// Results in the order they were measured
	Results []Result
	// Minimum is the theoretical minimum size of the whole dataset in bytes
	Minimum int
}

// MinimumAvg returns the theoretical minimum per record in bytes
func (r Report) MinimumAvg() float64 {
	if r.Entries == 0 {
		return 0
	}
	return float64(r.Minimum) / float64(r.Entries)
}

// Overhead returns the overhead of a total size relative to the theoretical
// minimum in percent. A total equal to the minimum yields exactly 0.
func (r Report) Overhead(totalBytes int) float64 {
	return Overhead(float64(totalBytes), float64(r.Minimum))
}

// Overhead returns -100 + 100 * size / minimum, or 0 if minimum is 0
func Overhead(size, minimum float64) float64 {
	if minimum == 0 {
		return 0
	}
	return -100.0 + 100.0*size/minimum
}

// Write prints the table to w. Results appear in order, followed by the
// theoretical minimum row whose time columns are N/A.
func (r Report) Write(w io.Writer) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Benchmark Results (%d entries):\n", r.Entries)
	sb.WriteString(tableRule + "\n")
	sb.WriteString(tableHeader + "\n")
	sb.WriteString(tableRule + "\n")

	for _, res := range r.Results {
		fmt.Fprintf(&sb, tableRow,
			res.Name,
			res.Seconds()*1000.0,
			res.AvgNanos(),
			res.AvgSize(),
			r.Overhead(res.TotalBytes),
		)
	}
	fmt.Fprintf(&sb, tableNARow, TheoreticalName, "N/A", "N/A", r.MinimumAvg(), r.Overhead(r.Minimum))

	_, err := io.WriteString(w, sb.String())
	return err
}
