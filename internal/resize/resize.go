// Package resize bounds image dimensions while preserving aspect ratio.
package resize

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Fit downscales img so neither dimension exceeds maxDimension, preserving
// aspect ratio, and reports whether any resampling happened. Images already
// inside the bound pass through unchanged; nothing is ever upscaled.
// Lanczos resampling: this runs once per puzzle load, so quality wins.
func Fit(img image.Image, maxDimension int) (image.Image, bool) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDimension <= 0 || (w <= maxDimension && h <= maxDimension) {
		return img, false
	}

	newW, newH := FitDimensions(w, h, maxDimension)
	return imaging.Resize(img, newW, newH, imaging.Lanczos), true
}

// FitDimensions computes the bounded dimensions: the longer axis becomes
// maxDimension and the other follows the original width/height ratio.
func FitDimensions(width, height, maxDimension int) (int, int) {
	r := float64(width) / float64(height)
	var newW, newH int
	if width > height {
		newW = maxDimension
		newH = int(math.Round(float64(maxDimension) / r))
	} else {
		newH = maxDimension
		newW = int(math.Round(float64(maxDimension) * r))
	}
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}
	return newW, newH
}
