// Package optimize prepares user photos for puzzle tiling: ratio-aware
// trim-only cropping, bounded downscaling and lossy re-encoding in one
// sequential pass per photo. Concurrent calls are independent; the pipeline
// holds no mutable state between runs.
package optimize

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/webp" // register webp decoding

	"github.com/AnyUserName/puzzleimg/internal/crop"
	"github.com/AnyUserName/puzzleimg/internal/encoder"
	"github.com/AnyUserName/puzzleimg/internal/ratio"
	"github.com/AnyUserName/puzzleimg/internal/resize"
)

// Defaults for per-call options left at their zero value. DefaultFormat
// applies to opaque photos; photos with alpha default to PNG instead.
const (
	DefaultMaxDimension = 1024
	DefaultQuality      = 85
	DefaultFormat       = "jpeg"
)

// Options are the per-call knobs of the pipeline. The zero value means
// "defaults with smart cropping enabled".
type Options struct {
	// MaxDimension bounds the longer output axis. 0 means DefaultMaxDimension.
	MaxDimension int
	// Quality is the lossy encode quality 1-100. 0 means DefaultQuality.
	Quality int
	// Format selects the output encoder. Empty means DefaultFormat, except
	// that photos carrying alpha fall back to PNG so transparency survives.
	Format string
	// DisableSmartCrop skips the ratio-aware crop stage even when a device
	// descriptor is supplied.
	DisableSmartCrop bool
}

func (o Options) withDefaults() Options {
	if o.MaxDimension <= 0 {
		o.MaxDimension = DefaultMaxDimension
	}
	if o.Quality <= 0 || o.Quality > 100 {
		o.Quality = DefaultQuality
	}
	return o
}

// Pipeline sequences decode, crop, resize and encode for single photos.
// Safe for concurrent use: the only shared state is the read-only encoder
// registry.
type Pipeline struct {
	registry *encoder.Registry
}

// New creates a pipeline with all available encoders registered.
func New() *Pipeline {
	return &Pipeline{registry: encoder.NewRegistry()}
}

// Optimize runs the full pipeline over raw image bytes. A nil device
// descriptor degrades gracefully: cropping is skipped, noted only in the
// trace, and resize/encode proceed as usual. Terminal errors come only from
// the input itself (see errors.go); they propagate without retry.
func (p *Pipeline) Optimize(data []byte, device *ratio.DeviceDescriptor, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	origW, origH := img.Bounds().Dx(), img.Bounds().Dy()
	if origW <= 0 || origH <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, origW, origH)
	}

	trace := []string{fmt.Sprintf("decoded %dx%d", origW, origH)}

	img, wasCropped, cropNote := p.smartCrop(img, device, opts)
	trace = append(trace, cropNote)

	img, wasResized := resize.Fit(img, opts.MaxDimension)
	finalW, finalH := img.Bounds().Dx(), img.Bounds().Dy()
	if wasResized {
		trace = append(trace, fmt.Sprintf("resized to %dx%d (max %d)", finalW, finalH, opts.MaxDimension))
	} else {
		trace = append(trace, fmt.Sprintf("no resize needed (max %d)", opts.MaxDimension))
	}

	format := opts.Format
	if format == "" {
		alpha := hasAlpha(img)
		format = p.registry.ResolveFormat("", alpha)
		if alpha {
			trace = append(trace, "alpha detected, keeping transparency")
		}
	}
	enc := p.registry.Get(format)
	if enc == nil {
		return nil, fmt.Errorf("no encoder for format %q", format)
	}
	out, err := enc.Encode(img, opts.Quality)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", enc.Format(), err)
	}
	if len(out) == 0 {
		return nil, ErrEmptyEncode
	}
	trace = append(trace, fmt.Sprintf("encoded %s q%d (%d bytes)", enc.Format(), opts.Quality, len(out)))

	return &Result{
		Data:             out,
		Format:           enc.Format(),
		Extension:        enc.Extension(),
		OriginalWidth:    origW,
		OriginalHeight:   origH,
		FinalWidth:       finalW,
		FinalHeight:      finalH,
		WasCropped:       wasCropped,
		WasResized:       wasResized,
		OptimizationInfo: strings.Join(trace, "; "),
	}, nil
}

// OptimizeBasic is the legacy resize-only path for callers with no device
// context at all: fixed defaults, no cropping. Behaviorally a strict subset
// of Optimize with the same resize and encode rules.
func (p *Pipeline) OptimizeBasic(data []byte) (*Result, error) {
	return p.Optimize(data, nil, Options{DisableSmartCrop: true})
}

// smartCrop applies the ratio-aware crop stage when a usable device context
// exists. It never fails: missing or invalid context only shows up as a
// trace note.
func (p *Pipeline) smartCrop(img image.Image, device *ratio.DeviceDescriptor, opts Options) (image.Image, bool, string) {
	switch {
	case opts.DisableSmartCrop:
		return img, false, "smart crop disabled, skipping"
	case device == nil:
		return img, false, "no device context, skipping crop"
	case !device.Valid():
		return img, false, "invalid device context, skipping crop"
	}

	cfg := ratio.Resolve(*device)
	plan := crop.Compute(img.Bounds().Dx(), img.Bounds().Dy(), cfg)
	note := fmt.Sprintf("%s: %s", cfg.Description, plan.Action)
	if !plan.NeedsCropping {
		return img, false, note
	}
	return crop.Apply(img, plan), true, note
}

// hasAlpha reports whether the image carries non-opaque pixels that should
// survive encoding.
func hasAlpha(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	return false
}
