package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/puzzleimg/internal/batch"
	"github.com/AnyUserName/puzzleimg/internal/optimize"
	"github.com/AnyUserName/puzzleimg/internal/report"
)

var (
	buildDevice  deviceFlags
	buildOutDir  string
	buildWorkers int
	buildMaxDim  int
	buildQuality int
	buildFormat  string
	buildNoCrop  bool
)

var buildCmd = &cobra.Command{
	Use:   "build <input_dir>",
	Short: "Optimize a directory of photos and write a run report",
	Long: `Scans the input directory for photos (png, jpg, jpeg, webp, gif, bmp, tiff),
runs each through the crop/resize/encode pipeline in parallel and writes
content-addressed outputs plus a JSON report of every decision taken.

Output filenames: <key>.<w>.<h>.<hash>.<ext>`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildDevice.register(buildCmd)
	buildCmd.Flags().StringVarP(&buildOutDir, "out", "o", "./puzzleimg_out", "output directory")
	buildCmd.Flags().IntVarP(&buildWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	buildCmd.Flags().IntVar(&buildMaxDim, "max-dimension", optimize.DefaultMaxDimension, "bound for the longer output axis")
	buildCmd.Flags().IntVarP(&buildQuality, "quality", "q", optimize.DefaultQuality, "encode quality 1-100")
	buildCmd.Flags().StringVar(&buildFormat, "format", "", "output format: jpeg, webp or png (default jpeg, png for photos with alpha)")
	buildCmd.Flags().BoolVar(&buildNoCrop, "no-smart-crop", false, "skip ratio-aware cropping even with a device context")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(_ *cobra.Command, args []string) error {
	inputDir := args[0]
	start := time.Now()

	absInput, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(buildOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	logVerbose("input:  %s", absInput)
	logVerbose("output: %s", absOutput)

	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	runner := batch.New(batch.Config{
		InputDir:         absInput,
		OutputDir:        absOutput,
		MaxDimension:     buildMaxDim,
		Quality:          buildQuality,
		Format:           buildFormat,
		Device:           buildDevice.descriptor(),
		DisableSmartCrop: buildNoCrop,
		Workers:          buildWorkers,
		Verbose:          verbose,
	})

	rep, err := runner.Run()
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}

	reportPath := filepath.Join(absOutput, "puzzleimg.report.json")
	if err := report.WriteJSON(rep, reportPath); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	printBuildReport(rep, time.Since(start))
	return nil
}

func printBuildReport(rep *report.Report, elapsed time.Duration) {
	s := rep.Stats

	fmt.Println()
	fmt.Printf("  Photos:      %d\n", s.TotalImages)
	fmt.Printf("  Cropped:     %d\n", s.TotalCropped)
	fmt.Printf("  Resized:     %d\n", s.TotalResized)
	if s.Failed > 0 {
		fmt.Printf("  Failed:      %d\n", s.Failed)
	}
	fmt.Printf("  Input size:  %s\n", formatBytes(s.TotalInputBytes))
	fmt.Printf("  Output size: %s\n", formatBytes(s.TotalOutputBytes))
	if s.TotalInputBytes > 0 {
		ratio := float64(s.TotalOutputBytes) / float64(s.TotalInputBytes) * 100
		fmt.Printf("  Ratio:       %.1f%% of original\n", ratio)
	}
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	if rep.RunInfo != nil {
		fmt.Printf("  Workers:     %d\n", rep.RunInfo.Workers)
		if rep.RunInfo.Device != "" {
			fmt.Printf("  Device:      %s\n", rep.RunInfo.Device)
		}
	}
	fmt.Println()

	// Heaviest inputs first, top 10.
	if len(rep.Images) > 0 {
		type item struct {
			key  string
			in   int64
			out  int64
		}
		var items []item
		for key, rec := range rep.Images {
			items = append(items, item{key, rec.Original.Size, rec.Output.Size})
		}
		sort.Slice(items, func(i, j int) bool { return items[i].in > items[j].in })
		if len(items) > 10 {
			items = items[:10]
		}
		fmt.Println("  Heaviest inputs:")
		for _, it := range items {
			fmt.Printf("    %-32s %10s -> %s\n", it.key, formatBytes(it.in), formatBytes(it.out))
		}
		fmt.Println()
	}
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
