package cmd

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/spf13/cobra"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/AnyUserName/puzzleimg/internal/crop"
	"github.com/AnyUserName/puzzleimg/internal/ratio"
)

var planDevice deviceFlags

var planCmd = &cobra.Command{
	Use:   "plan <image>",
	Short: "Show the crop plan for a photo without touching it",
	Long: `Reads only the photo header, resolves the device ratio window and
prints the crop plan the pipeline would execute. Nothing is written.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	planDevice.register(planCmd)
	rootCmd.AddCommand(planCmd)
}

func runPlan(_ *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open %s: %w", args[0], err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return fmt.Errorf("decode header %s: %w", args[0], err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d in %s", cfg.Width, cfg.Height, args[0])
	}

	var rc ratio.Config
	if device := planDevice.descriptor(); device != nil {
		rc = ratio.Resolve(*device)
	} else {
		rc = ratio.Default()
	}

	p := crop.Compute(cfg.Width, cfg.Height, rc)

	fmt.Printf("  photo:    %dx%d %s (ratio %.3f)\n", cfg.Width, cfg.Height, format, p.OriginalRatio)
	fmt.Printf("  window:   %s  target %.2f  [%.2f, %.2f]\n", rc.Description, rc.TargetRatio, rc.MinRatio, rc.MaxRatio)
	fmt.Printf("  plan:     %s\n", p.Action)
	if p.NeedsCropping {
		fmt.Printf("  crop:     %dx%d at offset (%d, %d), final ratio %.3f\n",
			p.NewWidth, p.NewHeight, p.OffsetX, p.OffsetY, p.FinalRatio)
	}
	return nil
}
