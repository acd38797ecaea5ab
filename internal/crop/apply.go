package crop

import (
	"image"

	"github.com/disintegration/imaging"
)

// Apply executes a plan against a decoded image. Plans that need no cropping
// hand back the input untouched; otherwise the planned sub-rectangle is
// extracted into a fresh buffer. No scaling happens here.
func Apply(img image.Image, p Plan) image.Image {
	if !p.NeedsCropping {
		return img
	}
	rect := image.Rect(p.OffsetX, p.OffsetY, p.OffsetX+p.NewWidth, p.OffsetY+p.NewHeight)
	return imaging.Crop(img, rect)
}
