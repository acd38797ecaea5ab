package encoder

import (
	"image"
)

// Encoder serializes a prepared puzzle photo to a specific format.
type Encoder interface {
	// Format returns the output format name ("jpeg", "webp", "png").
	Format() string

	// Encode converts the image to bytes at the given quality (1-100).
	Encode(img image.Image, quality int) ([]byte, error)

	// Available returns true if the encoder is ready to use.
	Available() bool

	// Extension returns the file extension without dot.
	Extension() string
}
