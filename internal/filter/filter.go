// Package filter decides whether an image of a given size is kept, dropped,
// or cropped to an exact aspect ratio.
package filter

import (
	"errors"
	"fmt"

	"aspect/pkg/imgutil"
)

type ResolutionRule int

const (
	AtLeast ResolutionRule = iota + 1
	Exactly
)

func (r ResolutionRule) String() string {
	switch r {
	case AtLeast:
		return "at-least"
	case Exactly:
		return "exactly"
	default:
		return "off"
	}
}

type RatioRule int

const (
	FilterOnly RatioRule = iota + 1
	Crop
)

func (r RatioRule) String() string {
	switch r {
	case FilterOnly:
		return "filter"
	case Crop:
		return "crop"
	default:
		return "off"
	}
}

type ResolutionFilter struct {
	Rule ResolutionRule
	Size imgutil.Resolution
}

type RatioFilter struct {
	Rule  RatioRule
	Ratio imgutil.Ratio
	// SkipMismatch drops FilterOnly mismatches silently instead of
	// reporting them as failures.
	SkipMismatch bool
}

// Config is the filter applied to every image in a run. A nil rule means no
// filtering on that axis.
type Config struct {
	Resolution *ResolutionFilter
	Ratio      *RatioFilter
}

func (c Config) String() string {
	res, ratio := "off", "off"
	if c.Resolution != nil {
		res = fmt.Sprintf("%s %s", c.Resolution.Rule, c.Resolution.Size)
	}
	if c.Ratio != nil {
		ratio = fmt.Sprintf("%s %s", c.Ratio.Rule, c.Ratio.Ratio)
	}
	return fmt.Sprintf("resolution: %s, ratio: %s", res, ratio)
}

type Action int

const (
	Reject Action = iota
	Accept
	CropTo
)

func (a Action) String() string {
	switch a {
	case Accept:
		return "keep"
	case CropTo:
		return "crop"
	default:
		return "reject"
	}
}

// Decision is the outcome of Evaluate. Crop is set only for CropTo.
type Decision struct {
	Action Action
	Crop   imgutil.Resolution
}

var (
	ErrRatioMismatch = errors.New("aspect ratio does not match")
	ErrEmptyImage    = errors.New("image has no pixels")
)

// MismatchError is returned for FilterOnly ratio mismatches.
type MismatchError struct {
	Got  imgutil.Resolution
	Want imgutil.Ratio
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: image is %d:%d, want %s", ErrRatioMismatch, e.Got.Width, e.Got.Height, e.Want)
}

func (e *MismatchError) Unwrap() error { return ErrRatioMismatch }

// Evaluate applies cfg to an image of size dims. It has no side effects.
func Evaluate(dims imgutil.Resolution, cfg Config) (Decision, error) {
	if rf := cfg.Resolution; rf != nil {
		var pass bool
		switch rf.Rule {
		case AtLeast:
			pass = dims.Width >= rf.Size.Width && dims.Height >= rf.Size.Height
		case Exactly:
			pass = dims == rf.Size
		default:
			pass = true
		}
		if !pass {
			return Decision{Action: Reject}, nil
		}
	}

	if rf := cfg.Ratio; rf != nil {
		if dims.IsZero() {
			return Decision{}, ErrEmptyImage
		}
		switch rf.Rule {
		case FilterOnly:
			simplified := imgutil.Simplify(dims)
			if !rf.Ratio.Matches(simplified) {
				if rf.SkipMismatch {
					return Decision{Action: Reject}, nil
				}
				return Decision{}, &MismatchError{Got: simplified, Want: rf.Ratio}
			}
		case Crop:
			return Decision{Action: CropTo, Crop: imgutil.MaxCropSize(dims, rf.Ratio)}, nil
		}
	}

	return Decision{Action: Accept}, nil
}
