// Package crop computes and applies trim-only crop plans: pixels are only
// ever removed to reach a target aspect ratio, never padded.
package crop

import (
	"fmt"
	"math"

	"github.com/AnyUserName/puzzleimg/internal/ratio"
)

// topBiasFraction is the share of a vertical trim taken from the top edge.
// Keeping 70% of the removed rows off the bottom approximates rule-of-thirds
// framing: headroom, faces and sky survive while foreground goes first.
const topBiasFraction = 0.30

// Plan describes how much, and where, to trim an image before resizing.
// Offsets and dimensions always stay inside the original image.
type Plan struct {
	NewWidth  int
	NewHeight int
	OffsetX   int
	OffsetY   int

	OriginalRatio float64
	TargetRatio   float64
	FinalRatio    float64

	NeedsCropping bool
	Action        string
}

// Compute builds a crop plan for an image of the given dimensions against a
// ratio window. Dimensions must be positive; the orchestrator validates that
// before planning.
func Compute(originalWidth, originalHeight int, cfg ratio.Config) Plan {
	originalRatio := float64(originalHeight) / float64(originalWidth)

	p := Plan{
		NewWidth:      originalWidth,
		NewHeight:     originalHeight,
		OriginalRatio: originalRatio,
		TargetRatio:   cfg.TargetRatio,
		FinalRatio:    originalRatio,
	}

	switch {
	case cfg.Contains(originalRatio):
		p.Action = fmt.Sprintf("no crop: ratio %.3f within [%.2f, %.2f]",
			originalRatio, cfg.MinRatio, cfg.MaxRatio)

	case originalRatio < cfg.MinRatio:
		// Too wide: trim width, centered.
		newWidth := int(math.Round(float64(originalHeight) / cfg.TargetRatio))
		if newWidth > originalWidth {
			newWidth = originalWidth
		}
		if newWidth < 1 {
			newWidth = 1
		}
		cropAmount := originalWidth - newWidth

		p.NewWidth = newWidth
		p.OffsetX = cropAmount / 2
		p.NeedsCropping = true
		p.Action = fmt.Sprintf("horizontal crop: trimmed %dpx of width (%dpx per side)",
			cropAmount, cropAmount/2)

	default:
		// Too tall: trim height with a fixed top bias.
		newHeight := int(math.Round(float64(originalWidth) * cfg.TargetRatio))
		if newHeight > originalHeight {
			newHeight = originalHeight
		}
		if newHeight < 1 {
			newHeight = 1
		}
		cropAmount := originalHeight - newHeight

		p.NewHeight = newHeight
		p.OffsetY = int(math.Round(topBiasFraction * float64(cropAmount)))
		p.NeedsCropping = true
		p.Action = fmt.Sprintf("vertical crop: trimmed %dpx of height (%dpx top, %dpx bottom)",
			cropAmount, p.OffsetY, cropAmount-p.OffsetY)
	}

	p.FinalRatio = float64(p.NewHeight) / float64(p.NewWidth)
	return p
}
