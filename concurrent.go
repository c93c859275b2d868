package lux

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BatchRunner executes many scripts in parallel. Each script gets its own
// interpreter, output buffer and diagnostics, so scripts never share state.
type BatchRunner struct {
	workers int
	opts    []Option
}

// NewBatchRunner creates a runner; workers <= 0 means one per CPU. opts are
// applied to every interpreter before the per-script output and reporter.
func NewBatchRunner(workers int, opts ...Option) *BatchRunner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &BatchRunner{workers: workers, opts: opts}
}

// Workers reports the concurrency limit.
func (br *BatchRunner) Workers() int {
	return br.workers
}

// FileResult is the outcome of one script. Err is a read failure or the
// *MultiError returned by Run.
type FileResult struct {
	Filename    string
	Output      string
	Diagnostics []Diagnostic
	Err         error
}

func (r FileResult) Failed() bool {
	return r.Err != nil
}

// RunFiles runs each file and returns results in input order. A cancelled
// context stops scheduling further files and is returned as the error.
func (br *BatchRunner) RunFiles(ctx context.Context, files []string) ([]FileResult, error) {
	return br.run(ctx, len(files), func(ctx context.Context, i int) FileResult {
		return br.runFile(ctx, files[i])
	})
}

// RunSources runs in-memory scripts; results are named "<source N>".
func (br *BatchRunner) RunSources(ctx context.Context, sources []string) ([]FileResult, error) {
	return br.run(ctx, len(sources), func(ctx context.Context, i int) FileResult {
		return br.runSource(ctx, fmt.Sprintf("<source %d>", i), sources[i])
	})
}

func (br *BatchRunner) run(ctx context.Context, n int, job func(context.Context, int) FileResult) ([]FileResult, error) {
	if n == 0 {
		return nil, nil
	}
	results := make([]FileResult, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(br.workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = job(ctx, i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func (br *BatchRunner) runFile(ctx context.Context, filename string) FileResult {
	content, err := os.ReadFile(filename)
	if err != nil {
		return FileResult{Filename: filename, Err: fmt.Errorf("failed to read file %s: %w", filename, err)}
	}
	return br.runSource(ctx, filename, string(content))
}

func (br *BatchRunner) runSource(ctx context.Context, name, source string) FileResult {
	var out bytes.Buffer
	opts := make([]Option, 0, len(br.opts)+2)
	opts = append(opts, br.opts...)
	opts = append(opts, WithStdout(&out), WithReporter(MultiReporter{}))

	err := NewInterpreter(opts...).RunContext(ctx, source)
	result := FileResult{Filename: name, Output: out.String(), Err: err}
	var me *MultiError
	if errors.As(err, &me) {
		result.Diagnostics = me.Diagnostics()
	}
	return result
}
