package processor

import (
	"context"
	"io"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"

	"aspect/internal/filter"
)

// Run walks root and processes every file it finds in its own goroutine,
// writing accepted images to opts.OutputDir/<basename>. Succeeded and failed
// outcomes are handed to sink in completion order; skipped files produce no
// call. Files with the same basename in different directories write to the
// same output path and the last one to finish wins.
//
// Run returns once every started file has been delivered. A walk error is
// returned after the files discovered before it have drained.
func Run(ctx context.Context, root string, opts Options, sink Sink, updates chan<- ProgressUpdate) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	codec := opts.Codec
	if codec == nil {
		codec = ImagingCodec{}
	}

	results := make(chan Outcome)

	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		for out := range results {
			switch out.Status {
			case StatusSkipped:
				logger.Debug("skipped", "file", out.Name)
				sendUpdate(updates, ProgressUpdate{SkippedDelta: 1})
				continue
			case StatusSucceeded:
				logger.Debug("saved", "file", out.Name, "resolution", out.Resolution, "output", out.Output)
				sendUpdate(updates, ProgressUpdate{SucceededDelta: 1})
			case StatusFailed:
				logger.Debug("failed", "file", out.Name, "err", out.Err)
				sendUpdate(updates, ProgressUpdate{FailedDelta: 1})
			}
			if sink != nil {
				sink.Accept(out)
			}
		}
	}()

	d := &dispatcher{
		outputDir: opts.OutputDir,
		codec:     codec,
		cfg:       opts.Filter,
		results:   results,
		updates:   updates,
		logger:    logger,
	}
	if opts.Jobs > 0 {
		d.slots = make(chan struct{}, opts.Jobs)
	}

	logger.Debug("walking", "root", root, "filter", opts.Filter, "jobs", opts.Jobs)
	// An output folder inside root would feed earlier results back in.
	walkErr := Walker{Root: root, Exclude: opts.Exclude, Skip: opts.OutputDir}.Walk(ctx, d)
	if walkErr != nil {
		logger.Debug("walk aborted", "err", walkErr, "started", d.started)
	}

	d.wg.Wait()
	close(results)
	<-collectorDone

	return walkErr
}

// dispatcher is the Visitor that starts one task per discovered file.
type dispatcher struct {
	outputDir string
	codec     Codec
	cfg       filter.Config
	results   chan<- Outcome
	updates   chan<- ProgressUpdate
	logger    *log.Logger
	slots     chan struct{}
	wg        sync.WaitGroup
	started   int
}

func (d *dispatcher) Visit(path string, _ fs.DirEntry) error {
	name := filepath.Base(path)
	job := Job{
		Path:   path,
		Name:   name,
		Output: filepath.Join(d.outputDir, name),
	}

	d.logger.Debug("dispatch", "file", path)
	sendUpdate(d.updates, ProgressUpdate{DiscoveredDelta: 1})
	if d.slots != nil {
		d.slots <- struct{}{}
	}

	d.started++
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if d.slots != nil {
			defer func() { <-d.slots }()
		}
		d.results <- runJob(d.codec, job, d.cfg)
	}()
	return nil
}

func sendUpdate(updates chan<- ProgressUpdate, u ProgressUpdate) {
	if updates != nil {
		updates <- u
	}
}
