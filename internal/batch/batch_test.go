package batch

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AnyUserName/puzzleimg/internal/ratio"
)

func writeJPEG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: 99, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir fixture: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

func TestScanPhotosFindsNestedImages(t *testing.T) {
	dir := t.TempDir()
	writeJPEG(t, filepath.Join(dir, "a.jpg"), 32, 32)
	writeJPEG(t, filepath.Join(dir, "sub", "b.jpeg"), 32, 32)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	sources, err := ScanPhotos(dir)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("sources: got %d, want 2", len(sources))
	}
	for _, s := range sources {
		if s.Format != "jpeg" {
			t.Errorf("format: got %q", s.Format)
		}
		if strings.Contains(s.Key, ".") {
			t.Errorf("key contains extension: %q", s.Key)
		}
	}
}

func TestScanPhotosSkipsHiddenDirectories(t *testing.T) {
	dir := t.TempDir()
	writeJPEG(t, filepath.Join(dir, "keep.jpg"), 16, 16)
	writeJPEG(t, filepath.Join(dir, ".cache", "skip.jpg"), 16, 16)

	sources, err := ScanPhotos(dir)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("sources: got %d, want 1", len(sources))
	}
	if sources[0].Key != "keep" {
		t.Errorf("key: got %q", sources[0].Key)
	}
}

func TestNormalizeFormatMatchesDecodableSet(t *testing.T) {
	cases := map[string]string{
		".jpg": "jpeg", ".JPEG": "jpeg", ".png": "png", ".gif": "gif",
		".bmp": "bmp", ".tif": "tiff", ".tiff": "tiff", ".webp": "webp",
		".txt": "", ".heic": "", "": "",
	}
	for ext, want := range cases {
		if got := normalizeFormat(ext); got != want {
			t.Errorf("normalizeFormat(%q): got %q, want %q", ext, got, want)
		}
	}
}

func TestRunOptimizesDirectory(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeJPEG(t, filepath.Join(in, "wide.jpg"), 3000, 1000)
	// Already inside the phone-portrait window (ratio 1.9): resized only.
	writeJPEG(t, filepath.Join(in, "sub", "tall.jpg"), 1000, 1900)

	runner := New(Config{
		InputDir:  in,
		OutputDir: out,
		Device:    &ratio.DeviceDescriptor{ScreenWidth: 390, ScreenHeight: 844, Orientation: ratio.Portrait},
		Workers:   2,
	})

	rep, err := runner.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(rep.Images) != 2 {
		t.Fatalf("images: got %d, want 2", len(rep.Images))
	}

	wide, ok := rep.Images["wide"]
	if !ok {
		t.Fatal("record for wide missing")
	}
	if !wide.WasCropped {
		t.Error("wide photo not cropped")
	}
	if wide.Output.Width != 526 || wide.Output.Height != 1000 {
		t.Errorf("wide output dims: got %dx%d", wide.Output.Width, wide.Output.Height)
	}
	if wide.Trace == "" {
		t.Error("wide trace missing")
	}

	// Output files exist where the report says, named by encoder extension.
	for key, rec := range rep.Images {
		if !strings.HasSuffix(rec.Output.Path, ".jpeg") {
			t.Errorf("output path for %q missing encoder extension: %q", key, rec.Output.Path)
		}
		p := filepath.Join(out, filepath.FromSlash(rec.Output.Path))
		info, err := os.Stat(p)
		if err != nil {
			t.Errorf("output for %q missing: %v", key, err)
			continue
		}
		if info.Size() != rec.Output.Size {
			t.Errorf("output size for %q: disk %d, report %d", key, info.Size(), rec.Output.Size)
		}
	}

	if rep.Stats.TotalCropped != 1 {
		t.Errorf("total_cropped: got %d", rep.Stats.TotalCropped)
	}
	if rep.Stats.TotalResized != 1 {
		t.Errorf("total_resized: got %d", rep.Stats.TotalResized)
	}
	if rep.Stats.Failed != 0 {
		t.Errorf("failed: got %d", rep.Stats.Failed)
	}
	if rep.RunInfo == nil || rep.RunInfo.Device != "phone portrait" {
		t.Error("run_info device label missing")
	}
}

func TestRunToleratesPartialFailures(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeJPEG(t, filepath.Join(in, "good.jpg"), 640, 480)
	if err := os.WriteFile(filepath.Join(in, "broken.jpg"), []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	runner := New(Config{InputDir: in, OutputDir: out, Workers: 1})

	rep, err := runner.Run()
	if err != nil {
		t.Fatalf("run should tolerate partial failure: %v", err)
	}
	if len(rep.Images) != 1 {
		t.Errorf("images: got %d, want 1", len(rep.Images))
	}
	if rep.Stats.Failed != 1 {
		t.Errorf("failed: got %d, want 1", rep.Stats.Failed)
	}
}

func TestRunFailsWhenEverythingFails(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	if err := os.WriteFile(filepath.Join(in, "broken.jpg"), []byte("junk"), 0o644); err != nil {
		t.Fatal(err)
	}

	runner := New(Config{InputDir: in, OutputDir: out, Workers: 1})

	if _, err := runner.Run(); err == nil {
		t.Fatal("expected error when all photos fail")
	}
}

func TestRunFailsOnEmptyDirectory(t *testing.T) {
	runner := New(Config{InputDir: t.TempDir(), OutputDir: t.TempDir()})

	if _, err := runner.Run(); err == nil {
		t.Fatal("expected error for empty input dir")
	}
}
