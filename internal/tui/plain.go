package tui

import (
	"io"

	"github.com/schollz/progressbar/v3"

	"aspect/internal/processor"
)

// RunPlain renders updates as a single progress bar on w until updates is
// closed. It is used when a full-screen UI is unwanted, e.g. in pipelines.
func RunPlain(updates <-chan processor.ProgressUpdate, w io.Writer) {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("aspect"),
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	discovered := 0
	for u := range updates {
		if u.DiscoveredDelta > 0 {
			discovered += u.DiscoveredDelta
			bar.ChangeMax(discovered)
		}
		if done := u.SucceededDelta + u.FailedDelta + u.SkippedDelta; done > 0 {
			_ = bar.Add(done)
		}
	}
	_ = bar.Finish()
}
