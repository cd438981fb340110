package common

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultEntries is the number of products generated per run
	DefaultEntries = 1_000_000
	// DefaultRounds is the number of timed passes per format
	DefaultRounds = 1
	// DefaultLogLevel keeps stderr quiet unless something goes wrong
	DefaultLogLevel = "warn"
)

// --------------------------------------------------------------------------
// Benchmark run configuration struct
// --------------------------------------------------------------------------

// RunConfig holds all parameters of a benchmark run
type RunConfig struct {
	// Entries is the size of the generated dataset
	Entries int
	// SkipDecode measures encoding only, for every format alike
	SkipDecode bool
	// Rounds is the number of timed passes over the dataset per format
	Rounds int
	// Seed for the dataset, 0 means unseeded
	Seed uint64
	// Formats restricts the run to the named formats, empty means all
	Formats []string

	// optional exports
	CSVPath     string
	MetricsPath string

	// Logging configuration
	LogLevel string
}

// DefaultRunConfig returns the configuration used when nothing is overridden
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Entries:  DefaultEntries,
		Rounds:   DefaultRounds,
		LogLevel: DefaultLogLevel,
	}
}

// Validate checks the configuration for values a run cannot work with
func (c *RunConfig) Validate() error {
	if c.Entries <= 0 {
		return fmt.Errorf("entries must be positive, got %d", c.Entries)
	}
	if c.Rounds <= 0 {
		return fmt.Errorf("rounds must be positive, got %d", c.Rounds)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// String returns a formatted string representation of the configuration
func (c *RunConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// Dataset
	addSection("Dataset")
	addField("Entries", strconv.Itoa(c.Entries))
	if c.Seed == 0 {
		addField("Seed", "none (random)")
	} else {
		addField("Seed", strconv.FormatUint(c.Seed, 10))
	}

	// Measurement
	addSection("Measurement")
	addField("Decode", strconv.FormatBool(!c.SkipDecode))
	addField("Rounds", strconv.Itoa(c.Rounds))
	if len(c.Formats) == 0 {
		addField("Formats", "all")
	} else {
		addField("Formats", strings.Join(c.Formats, ", "))
	}

	// Exports
	if c.CSVPath != "" || c.MetricsPath != "" {
		addSection("Export")
		if c.CSVPath != "" {
			addField("CSV", c.CSVPath)
		}
		if c.MetricsPath != "" {
			addField("Metrics", c.MetricsPath)
		}
	}

	// Logging configuration
	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}
