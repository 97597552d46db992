// Package cmd provides the root command and CLI setup for dupscan.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"dupscan.dev/pkg/dupscan/internal/adapter"
	"dupscan.dev/pkg/dupscan/internal/domain"
)

var hasher adapter.Hasher
var fsAdapter adapter.ScanFSAdapter
var scanner domain.Scanner
var grouper domain.Grouper

// logLevelFlag is a root-level flag controlling diagnostic verbosity.
var logLevelFlag string

func init() {
	// Initialize shared dependencies.
	hasher = adapter.NewBlake3Hasher()
	fsAdapter = adapter.NewLocalScanFSAdapter()
	scanner = domain.NewScanner(fsAdapter, hasher)
	grouper = domain.NewGrouper(hasher)
}

const rootLongDescription = `Dupscan walks a directory tree and reports groups of files with identical
content. A cheap digest over the first chunk of each file forms candidate
buckets; only files that collide there are read in full, so unique files
never pay for a complete read.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dupscan",
		Short: "Duplicate file scanner",
		Long:  rootLongDescription,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVar(
			&logLevelFlag, logFlagName,
			viper.GetString(logLevelKey),
			"log level (debug, info, warn, error)",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFlagName), logLevelKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
