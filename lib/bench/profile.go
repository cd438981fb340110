package bench

import (
	"fmt"
	"io"
	"strings"

	"github.com/ValentinKolb/encbench/lib/record"
	"github.com/rcrowley/go-metrics"
)

// MaxReservoirSize caps the number of sizes kept per format. Datasets up to
// this size are profiled exactly, larger ones from a uniform sample.
const MaxReservoirSize = 1 << 16

// SizeProfile is the distribution of encoded record sizes of one format
type SizeProfile struct {
	Key    string
	Name   string
	Count  int64
	Min    int64
	Max    int64
	Mean   float64
	StdDev float64
	P50    float64
	P99    float64
}

// Profile encodes every record once per entry without timing and returns
// the size distribution of each format. Nothing is decoded.
func Profile(data []record.Product, entries []Entry) ([]SizeProfile, error) {
	reservoir := len(data)
	if reservoir > MaxReservoirSize {
		reservoir = MaxReservoirSize
	}
	if reservoir < 1 {
		reservoir = 1
	}

	registry := metrics.NewRegistry()
	profiles := make([]SizeProfile, 0, len(entries))

	for _, entry := range entries {
		Logger.Infof("profiling %s", entry.Name)

		h := metrics.GetOrRegisterHistogram(entry.Key, registry, metrics.NewUniformSample(reservoir))
		if err := entry.sizes(data, func(size int) { h.Update(int64(size)) }); err != nil {
			return nil, err
		}

		ps := h.Percentiles([]float64{0.5, 0.99})
		profiles = append(profiles, SizeProfile{
			Key:    entry.Key,
			Name:   entry.Name,
			Count:  h.Count(),
			Min:    h.Min(),
			Max:    h.Max(),
			Mean:   h.Mean(),
			StdDev: h.StdDev(),
			P50:    ps[0],
			P99:    ps[1],
		})
	}

	return profiles, nil
}

// WriteProfiles prints the size distributions as a table. minimumAvg is the
// theoretical minimum per record and is shown as the last row.
func WriteProfiles(w io.Writer, profiles []SizeProfile, minimumAvg float64) error {
	var sb strings.Builder

	sb.WriteString("Size Distribution (bytes per record):\n")
	sb.WriteString("--------------|--------|----------|----------|--------|----------|----------|\n")
	sb.WriteString("Format        |    Min |      P50 |      P99 |    Max |     Mean |   StdDev |\n")
	sb.WriteString("--------------|--------|----------|----------|--------|----------|----------|\n")
	for _, p := range profiles {
		fmt.Fprintf(&sb, "%-13s | %6d | %8.2f | %8.2f | %6d | %8.2f | %8.2f |\n",
			p.Name, p.Min, p.P50, p.P99, p.Max, p.Mean, p.StdDev)
	}
	fmt.Fprintf(&sb, "%-13s | %6s | %8s | %8s | %6s | %8.2f | %8s |\n",
		TheoreticalName, "N/A", "N/A", "N/A", "N/A", minimumAvg, "N/A")

	_, err := io.WriteString(w, sb.String())
	return err
}
