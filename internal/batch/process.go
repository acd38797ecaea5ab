package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/puzzleimg/internal/hasher"
	"github.com/AnyUserName/puzzleimg/internal/optimize"
	"github.com/AnyUserName/puzzleimg/internal/report"
)

// processResult holds the outcome of optimizing a single source photo.
type processResult struct {
	key    string
	record report.Record
	err    error
}

// processPhoto handles one source photo: read, optimize, content-hash, write.
func processPhoto(src Source, cfg Config, pipe *optimize.Pipeline) processResult {
	result := processResult{key: src.Key}

	data, err := os.ReadFile(src.AbsPath)
	if err != nil {
		result.err = fmt.Errorf("read %s: %w", src.RelPath, err)
		return result
	}

	res, err := pipe.Optimize(data, cfg.Device, optimize.Options{
		MaxDimension:     cfg.MaxDimension,
		Quality:          cfg.Quality,
		Format:           cfg.Format,
		DisableSmartCrop: cfg.DisableSmartCrop,
	})
	if err != nil {
		result.err = fmt.Errorf("optimize %s: %w", src.RelPath, err)
		return result
	}

	// Ensure output subdirectory exists.
	keyDir := filepath.Dir(src.Key)
	if keyDir != "." {
		os.MkdirAll(filepath.Join(cfg.OutputDir, keyDir), 0o755)
	}

	// Content hash for filename: key.w.h.hash.ext
	contentHash := hasher.ContentHash(res.Data, 16)
	fileName := fmt.Sprintf("%s.%d.%d.%s.%s",
		filepath.Base(src.Key), res.FinalWidth, res.FinalHeight, contentHash[:8], res.Extension)
	relPath := filepath.ToSlash(filepath.Join(keyDir, fileName))

	outPath := filepath.Join(cfg.OutputDir, relPath)
	if err := os.WriteFile(outPath, res.Data, 0o644); err != nil {
		result.err = fmt.Errorf("write %s: %w", relPath, err)
		return result
	}

	result.record = report.Record{
		Original: report.OriginalInfo{
			Width:  res.OriginalWidth,
			Height: res.OriginalHeight,
			Format: src.Format,
			Size:   src.Size,
		},
		Output: report.OutputInfo{
			Format: res.Format,
			Width:  res.FinalWidth,
			Height: res.FinalHeight,
			Size:   int64(len(res.Data)),
			Hash:   contentHash,
			Path:   relPath,
		},
		WasCropped:       res.WasCropped,
		WasResized:       res.WasResized,
		CompressionRatio: res.CompressionRatio(),
		Trace:            res.OptimizationInfo,
	}
	return result
}
