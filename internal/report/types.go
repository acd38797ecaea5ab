package report

// Report is the top-level output of a puzzleimg batch run.
type Report struct {
	Version     int               `json:"version"`
	GeneratedAt string            `json:"generated_at"`
	BasePath    string            `json:"base_path"`
	RunInfo     *RunInfo          `json:"run_info,omitempty"`
	Images      map[string]Record `json:"images"`
	Stats       Stats             `json:"stats"`
}

// RunInfo captures run-time parameters for diagnostics.
type RunInfo struct {
	Workers      int    `json:"workers"`
	MaxDimension int    `json:"max_dimension"`
	Quality      int    `json:"quality"`
	Format       string `json:"format"`
	SmartCrop    bool   `json:"smart_crop"`
	Device       string `json:"device,omitempty"` // resolved ratio config label
}

// Record describes one source photo and the optimized output written for it.
type Record struct {
	Original OriginalInfo `json:"original"`
	Output   OutputInfo   `json:"output"`

	WasCropped bool `json:"was_cropped"`
	WasResized bool `json:"was_resized"`

	// CompressionRatio is original pixels per output pixel.
	CompressionRatio float64 `json:"compression_ratio"`
	// Trace is the pipeline's joined decision log for this photo.
	Trace string `json:"trace"`
}

// OriginalInfo holds metadata about the source photo.
type OriginalInfo struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Size   int64  `json:"size"`
}

// OutputInfo describes the optimized file written to disk.
type OutputInfo struct {
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"`
	Hash   string `json:"hash"` // first 16 hex chars of xxhash64
	Path   string `json:"path"` // relative to base_path
}

// Stats aggregates run metrics.
type Stats struct {
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	TotalImages      int   `json:"total_images"`
	TotalCropped     int   `json:"total_cropped"`
	TotalResized     int   `json:"total_resized"`
	Failed           int   `json:"failed,omitempty"`
}

// SupportedReportVersion is the current schema version.
const SupportedReportVersion = 1
