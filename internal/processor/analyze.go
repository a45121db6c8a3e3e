package processor

import (
	"io"
	"strconv"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"

	"aspect/pkg/imgutil"
)

// ExifAnalysis holds the EXIF fields the scan report uses.
type ExifAnalysis struct {
	Orientation int
	Make        string
	Model       string
	Captured    string
}

func analyzeExif(rs io.ReadSeeker) (ExifAnalysis, error) {
	analysis := ExifAnalysis{}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return analysis, err
	}

	tags, _, err := exif.GetFlatExifDataUniversalSearchWithReadSeeker(rs, nil, true)
	if err != nil {
		if errorsIsNoExif(err) {
			return analysis, nil
		}
		return analysis, err
	}

	for _, tag := range tags {
		value := strings.TrimSpace(tag.FormattedFirst)
		switch tag.TagName {
		case "Orientation":
			if n, err := strconv.Atoi(value); err == nil {
				analysis.Orientation = n
			}
		case "Make":
			analysis.Make = value
		case "Model":
			analysis.Model = value
		case "DateTimeOriginal":
			analysis.Captured = value
		case "DateTime":
			if analysis.Captured == "" {
				analysis.Captured = value
			}
		}
	}

	return analysis, nil
}

// Device joins make and model, dropping a make the model already repeats.
func (a ExifAnalysis) Device() string {
	if a.Make == "" || strings.HasPrefix(strings.ToLower(a.Model), strings.ToLower(a.Make)) {
		return a.Model
	}
	return strings.TrimSpace(a.Make + " " + a.Model)
}

// orientedSize swaps the sides of res for EXIF orientations 5-8, which
// rotate the stored pixels by 90 degrees.
func orientedSize(res imgutil.Resolution, orientation int) imgutil.Resolution {
	if orientation >= 5 && orientation <= 8 {
		return imgutil.Resolution{Width: res.Height, Height: res.Width}
	}
	return res
}

func errorsIsNoExif(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "no exif")
}
