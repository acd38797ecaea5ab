package report

import (
	"encoding/json"
	"os"
	"time"
)

// New creates an empty report with defaults.
func New() *Report {
	return &Report{
		Version:     SupportedReportVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		BasePath:    "./",
		Images:      make(map[string]Record),
	}
}

// ComputeStats recalculates aggregate statistics from image records.
// Failed stays as set by the runner.
func (r *Report) ComputeStats() {
	failed := r.Stats.Failed
	var s Stats
	s.TotalImages = len(r.Images)
	for _, rec := range r.Images {
		s.TotalInputBytes += rec.Original.Size
		s.TotalOutputBytes += rec.Output.Size
		if rec.WasCropped {
			s.TotalCropped++
		}
		if rec.WasResized {
			s.TotalResized++
		}
	}
	s.Failed = failed
	r.Stats = s
}

// WriteJSON serializes the report to a JSON file with stable ordering.
func WriteJSON(r *Report, path string) error {
	r.ComputeStats()

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
