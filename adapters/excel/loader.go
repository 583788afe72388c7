package excel

import (
	"context"
	"fmt"

	"bmireport/domain/dataset"
	"bmireport/internal"

	"golang.org/x/sync/errgroup"
)

// LoadPair reads the training and (optional) validation tables concurrently.
// An empty validationPath leaves Pair.Validation nil.
func LoadPair(ctx context.Context, trainPath, validationPath string, logger *internal.Logger) (*dataset.Pair, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}

	pair := &dataset.Pair{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ds, err := loadOne(ctx, trainPath, logger)
		if err != nil {
			return fmt.Errorf("training set: %w", err)
		}
		pair.Train = ds
		return nil
	})

	if validationPath != "" {
		g.Go(func() error {
			ds, err := loadOne(ctx, validationPath, logger)
			if err != nil {
				return fmt.Errorf("validation set: %w", err)
			}
			pair.Validation = ds
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pair, nil
}

func loadOne(ctx context.Context, path string, logger *internal.Logger) (*dataset.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return NewDataReader(path).WithLogger(logger).Load()
}
