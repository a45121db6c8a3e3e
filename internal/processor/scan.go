package processor

import (
	"context"
	"errors"
	"image"
	"io"
	"io/fs"
	"os"

	"aspect/internal/filter"
	"aspect/pkg/imgutil"
)

// Scan reports what a run with cfg would do to each file under root without
// decoding pixel data or writing anything. Per-file problems are recorded in
// the report; only walk errors are returned.
func Scan(ctx context.Context, root string, cfg filter.Config, exclude []string) ([]ScanReport, error) {
	s := &scanner{cfg: cfg}
	err := Walker{Root: root, Exclude: exclude}.Walk(ctx, s)
	return s.reports, err
}

type scanner struct {
	cfg     filter.Config
	reports []ScanReport
}

func (s *scanner) Visit(path string, _ fs.DirEntry) error {
	s.reports = append(s.reports, scanFile(path, s.cfg))
	return nil
}

func scanFile(path string, cfg filter.Config) ScanReport {
	report := ScanReport{Path: path}

	file, err := os.Open(path)
	if err != nil {
		report.Err = err
		return report
	}
	defer file.Close()

	kind, err := imgutil.SniffReader(file)
	if err != nil && !errors.Is(err, imgutil.ErrShortHeader) {
		report.Err = err
		return report
	}
	report.Kind = kind
	if kind == imgutil.KindUnknown {
		report.Err = ErrUnsupportedFormat
		return report
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		report.Err = err
		return report
	}
	header, _, err := image.DecodeConfig(file)
	if err != nil {
		report.Err = err
		return report
	}
	report.Resolution = imgutil.Resolution{Width: uint32(header.Width), Height: uint32(header.Height)}

	// EXIF is informational; a broken block only loses the extra fields.
	if analysis, err := analyzeExif(file); err == nil {
		report.Resolution = orientedSize(report.Resolution, analysis.Orientation)
		report.Device = analysis.Device()
		report.Captured = analysis.Captured
	}

	decision, err := filter.Evaluate(report.Resolution, cfg)
	if err != nil {
		report.Err = err
		return report
	}
	if decision.Action == filter.CropTo && decision.Crop.IsZero() {
		report.Err = ErrCropTooSmall
		return report
	}
	report.Decision = decision
	return report
}
