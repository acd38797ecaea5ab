package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/puzzleimg/internal/hasher"
	"github.com/AnyUserName/puzzleimg/internal/optimize"
)

var (
	optimizeDevice   deviceFlags
	optimizeOut      string
	optimizeMaxDim   int
	optimizeQuality  int
	optimizeFormat   string
	optimizeNoCrop   bool
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize <image>",
	Short: "Optimize a single photo for puzzle tiling",
	Long: `Decodes a photo, crops it to the device-appropriate aspect ratio
(content-preserving, never padded), downscales it to the bounded resolution
and re-encodes it. Without --screen-width/--screen-height the crop stage is
skipped and the photo is only resized and re-encoded.`,
	Args: cobra.ExactArgs(1),
	RunE: runOptimize,
}

func init() {
	optimizeDevice.register(optimizeCmd)
	optimizeCmd.Flags().StringVarP(&optimizeOut, "out", "o", "", "output file (default: content-addressed name next to input)")
	optimizeCmd.Flags().IntVar(&optimizeMaxDim, "max-dimension", optimize.DefaultMaxDimension, "bound for the longer output axis")
	optimizeCmd.Flags().IntVarP(&optimizeQuality, "quality", "q", optimize.DefaultQuality, "encode quality 1-100")
	optimizeCmd.Flags().StringVar(&optimizeFormat, "format", "", "output format: jpeg, webp or png (default jpeg, png for photos with alpha)")
	optimizeCmd.Flags().BoolVar(&optimizeNoCrop, "no-smart-crop", false, "skip ratio-aware cropping even with a device context")
	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(_ *cobra.Command, args []string) error {
	inputPath := args[0]

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", inputPath, err)
	}

	device := optimizeDevice.descriptor()
	if device == nil {
		logVerbose("no device context, cropping will be skipped")
	}

	pipe := optimize.New()
	res, err := pipe.Optimize(data, device, optimize.Options{
		MaxDimension:     optimizeMaxDim,
		Quality:          optimizeQuality,
		Format:           optimizeFormat,
		DisableSmartCrop: optimizeNoCrop,
	})
	if err != nil {
		return fmt.Errorf("optimize: %w", err)
	}

	outPath := optimizeOut
	if outPath == "" {
		base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
		hash := hasher.ContentHash(res.Data, 16)
		outPath = filepath.Join(filepath.Dir(inputPath),
			fmt.Sprintf("%s.%d.%d.%s.%s", base, res.FinalWidth, res.FinalHeight, hash[:8], res.Extension))
	}
	if err := os.WriteFile(outPath, res.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	fmt.Printf("  %dx%d -> %dx%d  (cropped=%v resized=%v, %.2fx pixel compression)\n",
		res.OriginalWidth, res.OriginalHeight, res.FinalWidth, res.FinalHeight,
		res.WasCropped, res.WasResized, res.CompressionRatio())
	fmt.Printf("  trace: %s\n", res.OptimizationInfo)
	fmt.Printf("  wrote: %s (%d bytes)\n", outPath, len(res.Data))
	return nil
}
