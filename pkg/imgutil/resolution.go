package imgutil

import (
	"fmt"
	"strconv"
	"strings"
)

// Resolution is an image size in pixels.
type Resolution struct {
	Width  uint32
	Height uint32
}

func (r Resolution) String() string {
	return fmt.Sprintf("%d×%d", r.Width, r.Height)
}

// IsZero reports whether either side is zero.
func (r Resolution) IsZero() bool {
	return r.Width == 0 || r.Height == 0
}

// Ratio is an aspect ratio such as 16:9. Both sides must be non-zero.
type Ratio struct {
	Width  uint8
	Height uint8
}

func (r Ratio) String() string {
	return fmt.Sprintf("%d:%d", r.Width, r.Height)
}

// GCD returns the greatest common divisor of a and b. Neither may be zero.
func GCD(a, b uint32) uint32 {
	if a > b {
		a, b = b, a
	}
	for b%a != 0 {
		a, b = b%a, a
	}
	return a
}

// Simplify divides both sides of res by their greatest common divisor.
func Simplify(res Resolution) Resolution {
	d := GCD(res.Width, res.Height)
	return Resolution{Width: res.Width / d, Height: res.Height / d}
}

// Matches reports whether a simplified resolution equals r.
func (r Ratio) Matches(simplified Resolution) bool {
	return simplified.Width == uint32(r.Width) && simplified.Height == uint32(r.Height)
}

// MaxCropSize returns the largest resolution with exactly ratio r that fits
// inside current. The result is zero-area when current is smaller than one
// ratio unit on either side.
func MaxCropSize(current Resolution, r Ratio) Resolution {
	rw, rh := uint32(r.Width), uint32(r.Height)
	unit := min(current.Width/rw, current.Height/rh)
	return Resolution{Width: unit * rw, Height: unit * rh}
}

// ParseResolution parses "1920x1080". The separator may be x, X, × or *.
func ParseResolution(s string) (Resolution, error) {
	s = strings.TrimSpace(s)
	w, h, ok := cutAny(s, "x", "X", "×", "*")
	if !ok {
		return Resolution{}, fmt.Errorf("invalid resolution %q: expected WIDTHxHEIGHT", s)
	}
	width, err := strconv.ParseUint(strings.TrimSpace(w), 10, 32)
	if err != nil {
		return Resolution{}, fmt.Errorf("invalid resolution width %q", w)
	}
	height, err := strconv.ParseUint(strings.TrimSpace(h), 10, 32)
	if err != nil {
		return Resolution{}, fmt.Errorf("invalid resolution height %q", h)
	}
	if width == 0 || height == 0 {
		return Resolution{}, fmt.Errorf("invalid resolution %q: sides must be positive", s)
	}
	return Resolution{Width: uint32(width), Height: uint32(height)}, nil
}

// ParseRatio parses "16:9" or "16/9". Each side must be in 1..255.
func ParseRatio(s string) (Ratio, error) {
	s = strings.TrimSpace(s)
	w, h, ok := cutAny(s, ":", "/")
	if !ok {
		return Ratio{}, fmt.Errorf("invalid ratio %q: expected WIDTH:HEIGHT", s)
	}
	width, err := strconv.ParseUint(strings.TrimSpace(w), 10, 8)
	if err != nil {
		return Ratio{}, fmt.Errorf("invalid ratio width %q: must be 1-255", w)
	}
	height, err := strconv.ParseUint(strings.TrimSpace(h), 10, 8)
	if err != nil {
		return Ratio{}, fmt.Errorf("invalid ratio height %q: must be 1-255", h)
	}
	if width == 0 || height == 0 {
		return Ratio{}, fmt.Errorf("invalid ratio %q: sides must be positive", s)
	}
	return Ratio{Width: uint8(width), Height: uint8(height)}, nil
}

func cutAny(s string, seps ...string) (string, string, bool) {
	for _, sep := range seps {
		if before, after, ok := strings.Cut(s, sep); ok {
			return before, after, true
		}
	}
	return "", "", false
}
