package optimize

// Result is the output of one pipeline run: the encoded bytes plus enough
// metadata for the tiling layer and for diagnostics.
type Result struct {
	// Data is the encoded image.
	Data []byte
	// Format is the encoded format name ("jpeg", "webp", "png").
	Format string
	// Extension is the encoder's file extension without dot, for callers
	// that write Data to disk.
	Extension string

	OriginalWidth  int
	OriginalHeight int
	FinalWidth     int
	FinalHeight    int

	WasCropped bool
	WasResized bool

	// OptimizationInfo is the joined trace of every decision the pipeline
	// made, in order. Purely diagnostic.
	OptimizationInfo string
}

// CompressionRatio reports how many source pixels map onto one output pixel.
func (r *Result) CompressionRatio() float64 {
	finalPixels := r.FinalWidth * r.FinalHeight
	if finalPixels == 0 {
		return 0
	}
	return float64(r.OriginalWidth*r.OriginalHeight) / float64(finalPixels)
}

// TileSlicer is the downstream puzzle-tiling collaborator: it receives the
// optimized bytes and final dimensions and slices tiles on a uniform grid.
// Implemented outside this package.
type TileSlicer interface {
	Slice(data []byte, width, height int) error
}
