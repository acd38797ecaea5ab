package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/puzzleimg/internal/report"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_report>",
	Short: "Display statistics for a completed build run",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, args []string) error {
	path := args[0]

	// If path is a directory, look for the report inside.
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, "puzzleimg.report.json")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read report: %w", err)
	}

	var rep report.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return fmt.Errorf("parse report: %w", err)
	}

	printStats(&rep)
	return nil
}

func printStats(rep *report.Report) {
	fmt.Println()
	fmt.Printf("  Report version: %d\n", rep.Version)
	fmt.Printf("  Generated:      %s\n", rep.GeneratedAt)
	if rep.RunInfo != nil {
		fmt.Printf("  Workers:        %d\n", rep.RunInfo.Workers)
		fmt.Printf("  Max dimension:  %d\n", rep.RunInfo.MaxDimension)
		fmt.Printf("  Quality:        %d (%s)\n", rep.RunInfo.Quality, rep.RunInfo.Format)
		fmt.Printf("  Smart crop:     %v", rep.RunInfo.SmartCrop)
		if rep.RunInfo.Device != "" {
			fmt.Printf("  (%s)", rep.RunInfo.Device)
		}
		fmt.Println()
	}
	fmt.Println()

	s := rep.Stats
	fmt.Printf("  Total photos:   %d\n", s.TotalImages)
	fmt.Printf("  Cropped:        %d\n", s.TotalCropped)
	fmt.Printf("  Resized:        %d\n", s.TotalResized)
	if s.Failed > 0 {
		fmt.Printf("  Failed:         %d\n", s.Failed)
	}
	fmt.Printf("  Input size:     %s\n", formatBytes(s.TotalInputBytes))
	fmt.Printf("  Output size:    %s\n", formatBytes(s.TotalOutputBytes))
	if s.TotalInputBytes > 0 {
		ratio := float64(s.TotalOutputBytes) / float64(s.TotalInputBytes) * 100
		fmt.Printf("  Compression:    %.1f%% of original\n", ratio)
	}
	fmt.Println()

	// Highest pixel-compression photos, top 10.
	type item struct {
		key   string
		ratio float64
	}
	var items []item
	for key, rec := range rep.Images {
		items = append(items, item{key, rec.CompressionRatio})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ratio > items[j].ratio })
	if len(items) > 10 {
		items = items[:10]
	}
	if len(items) > 0 {
		fmt.Println("  Highest pixel compression:")
		for _, it := range items {
			fmt.Printf("    %-32s %.2fx\n", it.key, it.ratio)
		}
		fmt.Println()
	}

	// Warnings.
	var warnings []string
	for key, rec := range rep.Images {
		if rec.Output.Path == "" {
			warnings = append(warnings, fmt.Sprintf("photo %q has no output", key))
		}
		if rec.Trace == "" {
			warnings = append(warnings, fmt.Sprintf("photo %q missing trace", key))
		}
	}
	if len(warnings) > 0 {
		fmt.Printf("  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    - %s\n", w)
		}
		fmt.Println()
	}
}
