package cmd

import (
	"github.com/spf13/cobra"

	"github.com/AnyUserName/puzzleimg/internal/ratio"
)

// deviceFlags are the display flags shared by the optimize, plan and build
// commands. Zero screen dimensions mean "no device context": the pipeline
// then skips cropping.
type deviceFlags struct {
	screenWidth  int
	screenHeight int
	orientation  string
}

func (f *deviceFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.screenWidth, "screen-width", 0, "device screen width (0 = no device context)")
	cmd.Flags().IntVar(&f.screenHeight, "screen-height", 0, "device screen height (0 = no device context)")
	cmd.Flags().StringVar(&f.orientation, "orientation", "", "device orientation: portrait or landscape (default: derived)")
}

// descriptor builds the device descriptor from flags, or nil when no usable
// screen dimensions were given.
func (f *deviceFlags) descriptor() *ratio.DeviceDescriptor {
	if f.screenWidth <= 0 || f.screenHeight <= 0 {
		return nil
	}
	return &ratio.DeviceDescriptor{
		ScreenWidth:  f.screenWidth,
		ScreenHeight: f.screenHeight,
		Orientation:  ratio.Orientation(f.orientation),
	}
}
