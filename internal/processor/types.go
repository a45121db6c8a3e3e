package processor

import (
	"github.com/charmbracelet/log"

	"aspect/internal/filter"
	"aspect/pkg/imgutil"
)

type Options struct {
	OutputDir string
	Filter    filter.Config
	Codec     Codec
	// Jobs bounds the number of files processed at once. Zero means no bound.
	Jobs    int
	Exclude []string
	Logger  *log.Logger
}

// Job is one discovered file and the path it is written to.
type Job struct {
	Path   string
	Name   string
	Output string
}

type Status int

const (
	StatusSkipped Status = iota
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "skipped"
	}
}

// Outcome is the result of processing one file. Resolution is the size of
// the decoded source; Output is the size that was written.
type Outcome struct {
	Path       string
	Name       string
	Status     Status
	Resolution imgutil.Resolution
	Output     imgutil.Resolution
	Err        error
}

// Message is the failure description, or "" for non-failures.
func (o Outcome) Message() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// Sink receives every succeeded or failed outcome of a run. Accept is never
// called concurrently.
type Sink interface {
	Accept(Outcome)
}

type ProgressUpdate struct {
	DiscoveredDelta int
	SucceededDelta  int
	FailedDelta     int
	SkippedDelta    int
}

type ScanReport struct {
	Path       string
	Kind       imgutil.Kind
	Resolution imgutil.Resolution
	Decision   filter.Decision
	Device     string
	Captured   string
	Err        error
}
