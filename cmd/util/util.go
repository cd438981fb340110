package util

import (
	"os"
	"strings"

	"github.com/ValentinKolb/encbench/lib/common"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50

	// EnvPrefix is the prefix of all environment variables (e.g. ENCBENCH_ENTRIES)
	EnvPrefix = "encbench"
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupRunFlags adds the dataset and measurement flags to a command
func SetupRunFlags(cmd *cobra.Command) {
	key := "entries"
	cmd.PersistentFlags().Int(key, common.DefaultEntries, WrapString("Number of products in the generated dataset"))

	key = "seed"
	cmd.PersistentFlags().Uint64(key, 0, WrapString("Seed for the dataset. 0 generates a different dataset on every run"))

	key = "formats"
	cmd.PersistentFlags().String(key, "", WrapString("Formats to measure (comma separated, e.g. json,proto). See 'encbench formats' for all keys. Empty measures all formats"))

	key = "skip-decode"
	cmd.PersistentFlags().Bool(key, false, WrapString("Only measure encoding. Decoding and the id check are skipped for every format"))

	key = "rounds"
	cmd.PersistentFlags().Int(key, common.DefaultRounds, WrapString("Number of timed passes over the dataset per format. The reported time is the mean of all rounds"))

	key = "csv"
	cmd.PersistentFlags().String(key, "", WrapString("Optional path to save the results as CSV"))

	key = "metrics"
	cmd.PersistentFlags().String(key, "", WrapString("Optional path to save the results in the Prometheus text format"))

	key = "log-level"
	cmd.PersistentFlags().String(key, common.DefaultLogLevel, WrapString("LogLevel is the level at which logs will be written to stderr (debug, info, warn, error)"))
}

// InitConfig loads .env files and initializes viper with the defaults
// of all keys and the environment variable binding
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	defaults := common.DefaultRunConfig()
	viper.SetDefault("entries", defaults.Entries)
	viper.SetDefault("rounds", defaults.Rounds)
	viper.SetDefault("log-level", defaults.LogLevel)

	// initialize viper
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// GetRunConfig reads the run configuration from viper
func GetRunConfig() common.RunConfig {
	conf := common.RunConfig{
		Entries:     viper.GetInt("entries"),
		SkipDecode:  viper.GetBool("skip-decode"),
		Rounds:      viper.GetInt("rounds"),
		Seed:        viper.GetUint64("seed"),
		CSVPath:     viper.GetString("csv"),
		MetricsPath: viper.GetString("metrics"),
		LogLevel:    viper.GetString("log-level"),
	}

	for _, f := range strings.Split(viper.GetString("formats"), ",") {
		if f = strings.TrimSpace(f); f != "" {
			conf.Formats = append(conf.Formats, f)
		}
	}

	return conf
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// PrintError writes err in red to stderr
func PrintError(err error) {
	_, _ = color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
}
