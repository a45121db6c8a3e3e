package processor

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"aspect/pkg/imgutil"
)

// Codec decodes, crops and encodes images.
type Codec interface {
	Decode(path string) (image.Image, error)
	Crop(img image.Image, rect image.Rectangle) image.Image
	Save(img image.Image, path string) error
}

const DefaultJPEGQuality = 95

// ImagingCodec is the Codec backed by github.com/disintegration/imaging.
// The output format is chosen from the destination file extension.
type ImagingCodec struct {
	JPEGQuality int
}

func (c ImagingCodec) Decode(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	kind, err := imgutil.SniffReader(file)
	if err != nil && !errors.Is(err, imgutil.ErrShortHeader) {
		return nil, err
	}
	if kind == imgutil.KindUnknown {
		return nil, ErrUnsupportedFormat
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}
	return img, nil
}

func (c ImagingCodec) Crop(img image.Image, rect image.Rectangle) image.Image {
	return imaging.Crop(img, rect)
}

// Save encodes img into a temporary file next to path and renames it into
// place, so readers never observe a half-written destination.
func (c ImagingCodec) Save(img image.Image, path string) error {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	quality := c.JPEGQuality
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".aspect-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmpFile.Name())

	if err := imaging.Encode(tmpFile, img, format, imaging.JPEGQuality(quality)); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}

	return replaceFile(tmpFile.Name(), path)
}

func replaceFile(tmpPath, destPath string) error {
	if err := os.Rename(tmpPath, destPath); err == nil {
		return nil
	}
	if err := os.Remove(destPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Rename(tmpPath, destPath)
}
