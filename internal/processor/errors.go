package processor

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrCropTooSmall      = errors.New("image is smaller than one ratio unit")
	ErrInvalidFilename   = errors.New("filename is not valid UTF-8")
)

// FileError tags a per-file failure with the stage and file it came from.
type FileError struct {
	Op   string
	Name string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Name, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }
