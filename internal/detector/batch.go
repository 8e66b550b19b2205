package detector

import (
	"context"
	"runtime"

	"github.com/mydehq/mediascout/internal/types"
	"golang.org/x/sync/errgroup"
)

// inlineBatch is the batch size below which AnalyzeBatch skips the pool
const inlineBatch = 64

// AnalyzeBatch classifies filenames over a pool of workers goroutines
// (0 means runtime.NumCPU()). Results keep the order of filenames. The only
// error is the context's.
func (d *Detector) AnalyzeBatch(ctx context.Context, filenames []string, workers int) ([]types.DetectionResult, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	results := make([]types.DetectionResult, len(filenames))

	if workers == 1 || len(filenames) < inlineBatch {
		for i, f := range filenames {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = d.Analyze(f)
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, f := range filenames {
		if gctx.Err() != nil {
			break
		}
		i, f := i, f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = d.Analyze(f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// The pool may have stopped early without any worker seeing the cancel.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
