package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dupscan.dev/pkg/dupscan/internal/controller"
	"dupscan.dev/pkg/dupscan/internal/domain"
	m "dupscan.dev/pkg/dupscan/internal/model"
)

var scanPathFlag string
var scanIgnoreFlag bool
var scanParallelFlag int

const scanLongDescription = `Scan a directory tree for duplicate files.

Files are bucketed by a digest of their first 1 MiB; buckets with more than
one member are re-hashed in full to confirm byte-identical duplicates. Each
confirmed group is printed as its digest followed by the member paths.`

// scanCmd represents the scan command.
var scanCmd = newScanCmd()

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a directory tree for duplicate files",
		Long:  scanLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := configureLogger(viper.GetString(logLevelKey)); err != nil {
				return err
			}

			root := m.Path(viper.GetString(scanPathConfigKey))
			if len(args) == 1 {
				root = m.Path(args[0])
			}

			minSize := domain.MinSize(viper.GetBool(scanIgnoreConfigKey))
			threads := viper.GetInt(scanParallelConfigKey)

			return runScan(cmd.Context(), cmd, root, minSize, threads)
		},
	}

	configureScanFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func configureScanFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&scanPathFlag, pathFlagName, viper.GetString(scanPathConfigKey), "root directory to scan")
	bindFlagToConfig(cmd.Flags().Lookup(pathFlagName), scanPathConfigKey)

	cmd.Flags().BoolVar(&scanIgnoreFlag, ignoreFlagName, viper.GetBool(scanIgnoreConfigKey), "ignore small files, less than 128KiB")
	bindFlagToConfig(cmd.Flags().Lookup(ignoreFlagName), scanIgnoreConfigKey)

	cmd.Flags().IntVarP(&scanParallelFlag, parallelFlagName, "p", viper.GetInt(scanParallelConfigKey), "number of parallel workers for full re-hashing")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), scanParallelConfigKey)
}

// runScan drives the scan pipeline: stream records, group them, report. An
// aborted run prints no report.
func runScan(ctx context.Context, cmd *cobra.Command, root m.Path, minSize int64, threads int) error {
	records, errc := scanner.Stream(ctx, root, minSize)

	groups, err := grouper.Group(ctx, records, threads)
	if err != nil {
		return err
	}

	// The record channel is closed by now; a walk failure wins over the
	// possibly partial grouping result.
	if err := <-errc; err != nil {
		return err
	}

	ui := controller.NewUI(cmd, controller.IsTTY(os.Stdout))

	if err := ui.DisplayGroups(ctx, groups); err != nil {
		return err
	}

	return ui.DisplaySummary(ctx, groups)
}
