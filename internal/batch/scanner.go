package batch

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Source represents a discovered photo file.
type Source struct {
	// AbsPath is the absolute path to the file on disk.
	AbsPath string
	// RelPath is the path relative to the input directory.
	RelPath string
	// Key is the photo key (relpath without extension).
	Key string
	// Format is the normalized source format ("jpeg", "png", ...).
	Format string
	// Size is the file size in bytes.
	Size int64
}

// normalizeFormat maps a file extension to the decodable format it names,
// or "" for files the pipeline cannot decode. The set matches exactly the
// codecs the optimize core registers: jpeg/png/gif/bmp/tiff via imaging,
// webp via the x/image decoder.
func normalizeFormat(ext string) string {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".png":
		return "png"
	case ".gif":
		return "gif"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	case ".webp":
		return "webp"
	default:
		return ""
	}
}

// ScanPhotos walks the input directory and returns all decodable photo
// sources. Hidden directories are skipped.
func ScanPhotos(inputDir string) ([]Source, error) {
	var sources []Source

	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != inputDir {
				return filepath.SkipDir
			}
			return nil
		}

		ext := filepath.Ext(path)
		format := normalizeFormat(ext)
		if format == "" {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}

		sources = append(sources, Source{
			AbsPath: path,
			RelPath: filepath.ToSlash(relPath),
			Key:     filepath.ToSlash(strings.TrimSuffix(relPath, ext)),
			Format:  format,
			Size:    info.Size(),
		})
		return nil
	})

	return sources, err
}
