// Package ratio maps a device display to the aspect-ratio window that puzzle
// photos should be cropped into. All ratios are height/width.
package ratio

// Orientation of the device display at the time a photo is prepared.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// DeviceDescriptor is the minimal display information a caller supplies to
// pick a ratio window: logical screen dimensions plus orientation. A nil or
// zero-dimension descriptor means no usable device context.
type DeviceDescriptor struct {
	ScreenWidth  int
	ScreenHeight int
	Orientation  Orientation
}

// Valid reports whether the descriptor carries usable screen dimensions.
func (d DeviceDescriptor) Valid() bool {
	return d.ScreenWidth > 0 && d.ScreenHeight > 0
}

// Config describes the acceptance window for one device class + orientation.
// Images whose ratio already falls inside [MinRatio, MaxRatio] are left
// uncropped; TargetRatio is what cropping aims for otherwise.
type Config struct {
	TargetRatio float64
	MinRatio    float64
	MaxRatio    float64
	Description string
}

// Contains reports whether r falls inside the acceptance window. Bounds are
// inclusive, so an image sitting exactly on the edge needs no crop.
func (c Config) Contains(r float64) bool {
	return r >= c.MinRatio && r <= c.MaxRatio
}

type deviceClass string

const (
	classPhone  deviceClass = "phone"
	classTablet deviceClass = "tablet"
)

// tabletBreakpoint is the shortest screen side, in logical pixels, at and
// above which a device counts as a tablet.
const tabletBreakpoint = 600

type presetKey struct {
	class       deviceClass
	orientation Orientation
}

// Empirically tuned windows, roughly ±15% around each target so that
// near-compliant photos are not cropped for nothing. Read-only after init.
var presets = map[presetKey]Config{
	{classPhone, Portrait}:   {TargetRatio: 1.90, MinRatio: 1.60, MaxRatio: 2.20, Description: "phone portrait"},
	{classPhone, Landscape}:  {TargetRatio: 0.37, MinRatio: 0.31, MaxRatio: 0.43, Description: "phone landscape"},
	{classTablet, Portrait}:  {TargetRatio: 1.35, MinRatio: 1.15, MaxRatio: 1.55, Description: "tablet portrait"},
	{classTablet, Landscape}: {TargetRatio: 0.74, MinRatio: 0.63, MaxRatio: 0.85, Description: "tablet landscape"},
}

// Default returns the config used when no usable device context exists.
// Phones in portrait are by far the common case for this app.
func Default() Config {
	c := presets[presetKey{classPhone, Portrait}]
	c.Description = "default (assumed phone portrait)"
	return c
}

// Resolve picks the ratio window for a device. It never fails: descriptors
// without usable dimensions fall back to Default, and a missing orientation
// is derived from the screen dimensions.
func Resolve(d DeviceDescriptor) Config {
	if !d.Valid() {
		return Default()
	}

	orientation := d.Orientation
	if orientation != Portrait && orientation != Landscape {
		if d.ScreenHeight >= d.ScreenWidth {
			orientation = Portrait
		} else {
			orientation = Landscape
		}
	}

	class := classPhone
	if min(d.ScreenWidth, d.ScreenHeight) >= tabletBreakpoint {
		class = classTablet
	}

	return presets[presetKey{class, orientation}]
}
