package optimize

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnyUserName/puzzleimg/internal/ratio"
)

// phonePortraitDevice resolves to the 1.90 [1.60, 2.20] window.
var phonePortraitDevice = &ratio.DeviceDescriptor{
	ScreenWidth: 390, ScreenHeight: 844, Orientation: ratio.Portrait,
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x % 256), G: uint8(y % 256), B: uint8((x + y) % 256), A: 255,
			})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func encodeAlphaPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x % 256), G: 50, B: 120, A: 128})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestOptimizeGracefulWithoutDevice(t *testing.T) {
	pipe := New()

	res, err := pipe.Optimize(encodeJPEG(t, 3000, 1000), nil, Options{})

	require.NoError(t, err)
	assert.False(t, res.WasCropped)
	assert.Contains(t, res.OptimizationInfo, "no device context")
}

func TestOptimizeSkipsCropForInvalidDevice(t *testing.T) {
	pipe := New()

	// A descriptor without screen dimensions is as unusable as none at all:
	// cropping must be skipped, never fall back to a default window.
	res, err := pipe.Optimize(encodeJPEG(t, 3000, 1000), &ratio.DeviceDescriptor{}, Options{})

	require.NoError(t, err)
	assert.False(t, res.WasCropped)
	assert.Equal(t, 1024, res.FinalWidth)
	assert.Equal(t, 341, res.FinalHeight) // resize only: round(1024/3)
	assert.Contains(t, res.OptimizationInfo, "invalid device context")
	assert.NotContains(t, res.OptimizationInfo, "crop:")
}

func TestOptimizeCropsWidePhotoForPhonePortrait(t *testing.T) {
	pipe := New()

	res, err := pipe.Optimize(encodeJPEG(t, 3000, 1000), phonePortraitDevice, Options{})

	require.NoError(t, err)
	assert.True(t, res.WasCropped)
	assert.Equal(t, 3000, res.OriginalWidth)
	assert.Equal(t, 1000, res.OriginalHeight)
	// round(1000/1.90) = 526 wide; both axes under 1024, so no resize.
	assert.Equal(t, 526, res.FinalWidth)
	assert.Equal(t, 1000, res.FinalHeight)
	assert.False(t, res.WasResized)
	assert.Contains(t, res.OptimizationInfo, "horizontal crop")
	assert.InDelta(t, float64(3000*1000)/float64(526*1000), res.CompressionRatio(), 1e-9)
}

func TestOptimizeCropsTallPhotoTopBiasedThenResizes(t *testing.T) {
	pipe := New()

	res, err := pipe.Optimize(encodeJPEG(t, 1000, 3000), phonePortraitDevice, Options{})

	require.NoError(t, err)
	assert.True(t, res.WasCropped)
	assert.True(t, res.WasResized)
	// Crop to 1000x1900, then bound the 1900 axis to 1024:
	// round(1024 * 1000/1900) = 539.
	assert.Equal(t, 539, res.FinalWidth)
	assert.Equal(t, 1024, res.FinalHeight)
	assert.Contains(t, res.OptimizationInfo, "vertical crop")
}

func TestOptimizeCompliantPhotoUntouched(t *testing.T) {
	pipe := New()

	res, err := pipe.Optimize(encodeJPEG(t, 500, 950), phonePortraitDevice, Options{})

	require.NoError(t, err)
	assert.False(t, res.WasCropped)
	assert.False(t, res.WasResized)
	assert.Equal(t, 500, res.FinalWidth)
	assert.Equal(t, 950, res.FinalHeight)
	assert.Contains(t, res.OptimizationInfo, "no crop")
}

func TestOptimizeOutputDecodesToFinalDimensions(t *testing.T) {
	pipe := New()

	res, err := pipe.Optimize(encodeJPEG(t, 2048, 1536), nil, Options{})
	require.NoError(t, err)
	require.True(t, res.WasResized)
	require.Equal(t, 1024, res.FinalWidth)
	require.Equal(t, 768, res.FinalHeight)

	decoded, err := jpeg.Decode(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Equal(t, res.FinalWidth, decoded.Bounds().Dx())
	assert.Equal(t, res.FinalHeight, decoded.Bounds().Dy())
}

func TestOptimizeSmartCropDisabled(t *testing.T) {
	pipe := New()

	res, err := pipe.Optimize(encodeJPEG(t, 3000, 1000), phonePortraitDevice,
		Options{DisableSmartCrop: true})

	require.NoError(t, err)
	assert.False(t, res.WasCropped)
	assert.Contains(t, res.OptimizationInfo, "smart crop disabled")
}

func TestOptimizeAlphaPhotoFallsBackToPNG(t *testing.T) {
	pipe := New()

	res, err := pipe.Optimize(encodeAlphaPNG(t, 64, 100), nil, Options{})

	require.NoError(t, err)
	assert.Equal(t, "png", res.Format)
	assert.Equal(t, "png", res.Extension)
	assert.Contains(t, res.OptimizationInfo, "alpha detected")

	decoded, err := png.Decode(bytes.NewReader(res.Data))
	require.NoError(t, err)
	_, _, _, a := decoded.At(10, 10).RGBA()
	assert.NotEqual(t, uint32(0xffff), a, "transparency should survive the fallback")
}

func TestOptimizeExplicitFormatWinsOverAlpha(t *testing.T) {
	pipe := New()

	res, err := pipe.Optimize(encodeAlphaPNG(t, 64, 100), nil, Options{Format: "jpeg"})

	require.NoError(t, err)
	assert.Equal(t, "jpeg", res.Format)
	assert.NotContains(t, res.OptimizationInfo, "alpha detected")
}

func TestOptimizeOpaquePhotoDefaultsToJPEG(t *testing.T) {
	pipe := New()

	res, err := pipe.Optimize(encodeJPEG(t, 64, 100), nil, Options{})

	require.NoError(t, err)
	assert.Equal(t, "jpeg", res.Format)
	assert.Equal(t, "jpeg", res.Extension)
}

func TestOptimizeBasicIsResizeOnly(t *testing.T) {
	pipe := New()

	res, err := pipe.OptimizeBasic(encodeJPEG(t, 2048, 1536))

	require.NoError(t, err)
	assert.False(t, res.WasCropped)
	assert.True(t, res.WasResized)
	assert.Equal(t, 1024, res.FinalWidth)
	assert.Equal(t, 768, res.FinalHeight)
	assert.Equal(t, "jpeg", res.Format)
}

func TestOptimizeEmptyInput(t *testing.T) {
	pipe := New()

	_, err := pipe.Optimize(nil, nil, Options{})

	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestOptimizeCorruptInput(t *testing.T) {
	pipe := New()

	_, err := pipe.Optimize([]byte("definitely not an image"), nil, Options{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode image")
}

func TestOptimizeUnknownFormat(t *testing.T) {
	pipe := New()

	_, err := pipe.Optimize(encodeJPEG(t, 64, 64), nil, Options{Format: "avif"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no encoder")
}

func TestOptimizeWebPOutput(t *testing.T) {
	pipe := New()

	res, err := pipe.Optimize(encodeJPEG(t, 600, 400), nil, Options{Format: "webp"})

	require.NoError(t, err)
	assert.Equal(t, "webp", res.Format)
	require.GreaterOrEqual(t, len(res.Data), 12)
	assert.Equal(t, "RIFF", string(res.Data[:4]))
}

func TestOptimizeCustomMaxDimension(t *testing.T) {
	pipe := New()

	res, err := pipe.Optimize(encodeJPEG(t, 800, 600), nil, Options{MaxDimension: 400})

	require.NoError(t, err)
	assert.Equal(t, 400, res.FinalWidth)
	assert.Equal(t, 300, res.FinalHeight)
}
