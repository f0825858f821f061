package ports

import (
	"context"

	"github.com/lcalzada-xor/duskboard/internal/core/domain"
)

// Storage defines the behavior for the sample archive.
type Storage interface {
	// SaveSamplesBatch persists samples in a single transaction.
	SaveSamplesBatch(ctx context.Context, samples []domain.Sample) error

	// ListSamples returns archived samples, oldest first.
	ListSamples(ctx context.Context, filter domain.SampleFilter) ([]domain.Sample, error)

	// CountSamples returns the archive size.
	CountSamples(ctx context.Context) (int64, error)

	// Close closes the storage connection.
	Close() error
}
