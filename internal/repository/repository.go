package repository

import (
	"context"

	"annals/internal/domain"
)

// EntryRepository defines the interface for historical entry data access
type EntryRepository interface {
	// Read operations
	Get(ctx context.Context, id int64) (*domain.Entry, error)
	List(ctx context.Context) ([]domain.Entry, error)
	Count(ctx context.Context) (int64, error)

	// Write operations
	Create(ctx context.Context, in domain.EntryInput) (*domain.Entry, error)
	Update(ctx context.Context, id int64, in domain.EntryInput) (*domain.Entry, error)
	Delete(ctx context.Context, id int64) error

	// Ping checks connectivity to the backing database
	Ping(ctx context.Context) error

	// Close releases resources
	Close() error
}

// BulkCreator is implemented by repositories that can insert many entries
// in a single transaction. Either all inputs are stored or none are.
type BulkCreator interface {
	CreateMany(ctx context.Context, ins []domain.EntryInput) ([]domain.Entry, error)
}
