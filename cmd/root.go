package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/encbench/cmd/perf"
	"github.com/ValentinKolb/encbench/cmd/util"
	"github.com/ValentinKolb/encbench/lib/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands.
	// Without a subcommand it runs the benchmark.
	RootCmd = &cobra.Command{
		Use:   "encbench",
		Short: "serialization format benchmark",
		Long: fmt.Sprintf(`encbench (v%s)

Measures encode/decode time and wire size of several serialization formats
against the same random dataset and compares them to the theoretical minimum
size of the data. The configuration can be set via command line flags or
environment variables in the format ENCBENCH_<flag> (e.g. ENCBENCH_ENTRIES=1000).`, Version),
		PersistentPreRunE: setup,
		RunE:              perf.Run,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of encbench",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("encbench v%s\n", Version)
		},
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(perf.RunCmd)
	RootCmd.AddCommand(perf.ProfileCmd)
	RootCmd.AddCommand(perf.FormatsCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	util.SetupRunFlags(RootCmd)
}

// setup binds the flags of the executed command and configures the loggers
func setup(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}
	return common.InitLoggers(viper.GetString("log-level"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		util.PrintError(err)
		os.Exit(1)
	}
}
