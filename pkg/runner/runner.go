package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// ProcessFunc handles one file and reports its outcome. Implementations
// read the file themselves so the runner stays agnostic about whether a
// run formats, checks, or lints. The runner fills in the outcome's Path.
type ProcessFunc func(ctx context.Context, path string) FileOutcome

// Runner orchestrates multi-file processing with a worker pool.
type Runner struct {
	// Process handles per-file work.
	Process ProcessFunc
}

// New creates a new Runner with the given per-file processor.
func New(process ProcessFunc) *Runner {
	return &Runner{Process: process}
}

// Run discovers files under opts.Paths and processes them concurrently.
// Outcomes are returned in discovery order regardless of which worker
// finished first, so output is deterministic across runs.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers complete out of order; index by path and rebuild in
	// discovery order afterwards.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker processes files from workCh and sends outcomes to outCh.
func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := r.Process(ctx, path)
		outcome.Path = path

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}
