package processor

import (
	"image"

	"aspect/internal/filter"
	"aspect/pkg/imgutil"
)

type taskResult struct {
	Accepted bool
	Original imgutil.Resolution
	Output   imgutil.Resolution
}

// processFile decodes, filters, optionally crops and saves one image.
// A rejected image returns a zero taskResult and no error.
func processFile(codec Codec, job Job, cfg filter.Config) (taskResult, error) {
	img, err := codec.Decode(job.Path)
	if err != nil {
		return taskResult{}, &FileError{Op: "decode", Name: job.Name, Err: err}
	}

	bounds := img.Bounds()
	dims := imgutil.Resolution{Width: uint32(bounds.Dx()), Height: uint32(bounds.Dy())}

	decision, err := filter.Evaluate(dims, cfg)
	if err != nil {
		return taskResult{}, &FileError{Op: "filter", Name: job.Name, Err: err}
	}

	out := dims
	switch decision.Action {
	case filter.Reject:
		return taskResult{}, nil
	case filter.CropTo:
		if decision.Crop.IsZero() {
			return taskResult{}, &FileError{Op: "crop", Name: job.Name, Err: ErrCropTooSmall}
		}
		rect := image.Rect(0, 0, int(decision.Crop.Width), int(decision.Crop.Height)).Add(bounds.Min)
		img = codec.Crop(img, rect)
		out = decision.Crop
	}

	if err := codec.Save(img, job.Output); err != nil {
		return taskResult{}, &FileError{Op: "save", Name: job.Name, Err: err}
	}

	return taskResult{Accepted: true, Original: dims, Output: out}, nil
}

func runJob(codec Codec, job Job, cfg filter.Config) Outcome {
	out := Outcome{Path: job.Path, Name: job.Name}

	res, err := processFile(codec, job, cfg)
	switch {
	case err != nil:
		out.Status = StatusFailed
		out.Err = err
	case !res.Accepted:
		out.Status = StatusSkipped
	default:
		out.Status = StatusSucceeded
		out.Resolution = res.Original
		out.Output = res.Output
	}
	return out
}
