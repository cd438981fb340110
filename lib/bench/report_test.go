package bench

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/ValentinKolb/encbench/lib/record"
)

// testReport is a report over the fixed dataset with a single fake result
// twice the size of the minimum
func testReport() Report {
	data := fixedProducts()
	return Report{
		Entries: len(data),
		Minimum: record.TheoreticalMinimum(data),
		Results: []Result{{
			Key:        "fake",
			Name:       "Fake",
			Elapsed:    3 * time.Millisecond,
			TotalBytes: 130,
			Entries:    len(data),
			Rounds:     []time.Duration{2 * time.Millisecond, 4 * time.Millisecond},
		}},
	}
}

func TestReportWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := testReport().Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	want := strings.Join([]string{
		"Benchmark Results (3 entries):",
		"--------------|-----------|----------------|-------------------|----------|",
		"Format        | Time (ms) |  Avg Time (ns) |  Avg Size (bytes) | Overhead |",
		"--------------|-----------|----------------|-------------------|----------|",
		"Fake          |      3.00 |     1000000.00 |             43.33 |  100.00% |",
		"Theoretical   |       N/A |            N/A |             21.67 |    0.00% |",
		"",
	}, "\n")

	if got := buf.String(); got != want {
		t.Errorf("Unexpected report:\n%s\nexpected:\n%s", got, want)
	}
}

func TestReportMultiByteName(t *testing.T) {
	report := Report{
		Entries: 3,
		Minimum: 65,
		Results: []Result{{Name: "└ No Copies", Elapsed: 1500 * time.Microsecond, TotalBytes: 65, Entries: 3}},
	}

	var buf bytes.Buffer
	if err := report.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	want := "└ No Copies   |      1.50 |      500000.00 |             21.67 |    0.00% |\n"
	if !strings.Contains(buf.String(), want) {
		t.Errorf("Expected row %q in\n%s", want, buf.String())
	}
}

func TestOverhead(t *testing.T) {
	report := testReport()

	if got := report.Overhead(report.Minimum); got != 0 {
		t.Errorf("Expected overhead of the minimum to be exactly 0, got %f", got)
	}
	if got := report.Overhead(130); got != 100 {
		t.Errorf("Expected overhead 100, got %f", got)
	}
	if got := Overhead(10, 0); got != 0 {
		t.Errorf("Expected overhead 0 for an empty minimum, got %f", got)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, testReport(), Options{Rounds: 2}); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected header, one result and the minimum, got %d rows", len(rows))
	}

	header, fake, minimum := rows[0], rows[1], rows[2]
	column := func(row []string, name string) string {
		for i, h := range header {
			if h == name {
				return row[i]
			}
		}
		t.Fatalf("Missing column %s", name)
		return ""
	}

	checks := []struct {
		row  []string
		col  string
		want string
	}{
		{fake, "Format", "Fake"},
		{fake, "TimeMs", "3.00"},
		{fake, "AvgSizeBytes", "43.33"},
		{fake, "OverheadPercent", "100.00"},
		{fake, "Rounds", "2"},
		{fake, "TimeStdDevMs", "1.000"},
		{fake, "Decode", "true"},
		{minimum, "Format", TheoreticalName},
		{minimum, "TotalBytes", "65"},
		{minimum, "OverheadPercent", "0.00"},
	}
	for _, c := range checks {
		if got := column(c.row, c.col); got != c.want {
			t.Errorf("%s/%s: expected %q, got %q", c.row[0], c.col, c.want, got)
		}
	}
}

func TestWriteMetrics(t *testing.T) {
	var buf bytes.Buffer
	WriteMetrics(&buf, testReport())
	out := buf.String()

	for _, want := range []string{
		`encbench_encoded_bytes{format="fake"} 130`,
		`encbench_overhead_percent{format="fake"} 100`,
		`encbench_rounds{format="fake"} 2`,
		`encbench_entries 3`,
		`encbench_theoretical_minimum_bytes 65`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in metrics output:\n%s", want, out)
		}
	}
}

func TestProfile(t *testing.T) {
	data := fixedProducts()
	entries, err := DefaultRegistry().Select([]string{"binary", "json"})
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	profiles, err := Profile(data, entries)
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("Expected 2 profiles, got %d", len(profiles))
	}

	// binary: 17 fixed + 4 + name + 4 + 2 * (4 + 1)
	bin := profiles[1]
	if bin.Key != "binary" {
		t.Fatalf("Expected binary as second profile, got %s", bin.Key)
	}
	if bin.Count != 3 || bin.Min != 36 || bin.Max != 40 {
		t.Errorf("Unexpected binary profile %+v", bin)
	}

	for _, p := range profiles {
		if p.Min > int64(p.P50) || int64(p.P50) > p.Max {
			t.Errorf("%s: median %f outside [%d, %d]", p.Name, p.P50, p.Min, p.Max)
		}
		if p.Min < 20 {
			t.Errorf("%s: smallest record %d is below its minimum size", p.Name, p.Min)
		}
	}

	var buf bytes.Buffer
	if err := WriteProfiles(&buf, profiles, 65.0/3); err != nil {
		t.Fatalf("WriteProfiles failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Binary        |     36 |") {
		t.Errorf("Unexpected profile table:\n%s", buf.String())
	}
}
