package repository

import (
	"context"

	"alcyxob/workout-planner/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	// Create assigns ID and timestamps. A taken email yields ErrDuplicate.
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// SeriesRepository stores workout series in their persisted shape, one record
// per series. It is only written to by the background persistence worker and
// read once at startup; all queries are answered from memory.
type SeriesRepository interface {
	// Upsert writes the whole record, replacing any previous version.
	Upsert(ctx context.Context, rec domain.SeriesRecord) error
	// Delete removes the owner's series. ErrNotFound if the owner has no such series.
	Delete(ctx context.Context, ownerID, id string) error
	// ListAll returns every stored record, for all owners.
	ListAll(ctx context.Context) ([]domain.SeriesRecord, error)
}
