package ui

import (
	"context"

	"bmireport/adapters/excel"
	"bmireport/domain/dataset"
	"bmireport/internal"
)

// DatasetSource supplies the table a request reports on. Implementations must
// return a fresh or immutable dataset; the report is recomputed per request.
type DatasetSource interface {
	Dataset(ctx context.Context) (*dataset.Dataset, error)
}

// FileSource reads the dataset from disk on every call
type FileSource struct {
	Path   string
	Logger *internal.Logger
}

// Dataset loads the configured CSV or XLSX file
func (s FileSource) Dataset(ctx context.Context) (*dataset.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	reader := excel.NewDataReader(s.Path)
	if s.Logger != nil {
		reader = reader.WithLogger(s.Logger)
	}
	return reader.Load()
}

// StaticSource serves an in-memory dataset
type StaticSource struct {
	Data *dataset.Dataset
}

// Dataset returns the wrapped dataset
func (s StaticSource) Dataset(ctx context.Context) (*dataset.Dataset, error) {
	return s.Data, nil
}
