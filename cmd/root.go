package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "puzzleimg",
	Short: "Ratio-aware photo preparation for puzzle tiling",
	Long: `puzzleimg — turns arbitrary user photos into device-fitted puzzle sources.

Crops content-preservingly to a device-appropriate aspect ratio (never pads),
downscales to a bounded resolution, and re-encodes lossily. Every geometric
decision is recorded in a trace so results stay explainable.`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"puzzleimg %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[puzzleimg] "+format+"\n", args...)
	}
}
