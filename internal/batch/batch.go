// Package batch optimizes whole directories of photos, one independent
// pipeline invocation per file.
package batch

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/AnyUserName/puzzleimg/internal/optimize"
	"github.com/AnyUserName/puzzleimg/internal/ratio"
	"github.com/AnyUserName/puzzleimg/internal/report"
)

// Config holds all parameters for a batch run.
type Config struct {
	InputDir         string
	OutputDir        string
	MaxDimension     int
	Quality          int
	Format           string
	Device           *ratio.DeviceDescriptor // nil disables ratio-aware cropping
	DisableSmartCrop bool
	Workers          int
	Verbose          bool
}

// Runner orchestrates a batch of photo optimizations.
type Runner struct {
	cfg  Config
	pipe *optimize.Pipeline
}

// New creates a configured runner.
func New(cfg Config) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Runner{
		cfg:  cfg,
		pipe: optimize.New(),
	}
}

// Run optimizes every photo under InputDir and returns the run report.
// Photos are processed concurrently; each invocation owns its buffers
// end-to-end, so workers need no coordination beyond the semaphore.
func (r *Runner) Run() (*report.Report, error) {
	sources, err := ScanPhotos(r.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", r.cfg.InputDir)
	}

	if r.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[puzzleimg] found %d photos\n", len(sources))
	}

	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, r.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			if r.cfg.Verbose {
				fmt.Fprintf(os.Stderr, "[puzzleimg] processing: %s\n", s.Key)
			}

			results[idx] = processPhoto(s, r.cfg, r.pipe)

			if r.cfg.Verbose && results[idx].err == nil {
				fmt.Fprintf(os.Stderr, "[puzzleimg] done: %s (%s)\n",
					s.Key, results[idx].record.Output.Path)
			}
		}(i, src)
	}
	wg.Wait()

	rep := report.New()
	rep.RunInfo = &report.RunInfo{
		Workers:      r.cfg.Workers,
		MaxDimension: pick(r.cfg.MaxDimension, optimize.DefaultMaxDimension),
		Quality:      pick(r.cfg.Quality, optimize.DefaultQuality),
		Format:       pickStr(r.cfg.Format, optimize.DefaultFormat),
		SmartCrop:    !r.cfg.DisableSmartCrop && r.cfg.Device != nil,
	}
	if r.cfg.Device != nil {
		rep.RunInfo.Device = ratio.Resolve(*r.cfg.Device).Description
	}

	var errs []error
	for _, res := range results {
		if res.err != nil {
			errs = append(errs, res.err)
			continue
		}
		rep.Images[res.key] = res.record
	}

	// Report errors but don't fail the entire run for partial failures.
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "[puzzleimg] error: %v\n", e)
		}
		if len(errs) == len(sources) {
			return nil, fmt.Errorf("all %d photos failed to process", len(errs))
		}
		fmt.Fprintf(os.Stderr, "[puzzleimg] warning: %d of %d photos had errors\n",
			len(errs), len(sources))
	}

	rep.Stats.Failed = len(errs)
	rep.ComputeStats()
	return rep, nil
}

func pick(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func pickStr(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
