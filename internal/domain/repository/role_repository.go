package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medisync/user-service/internal/domain/entity"
)

// ErrDuplicateKey is returned by Save when the store's unique index rejects
// a write. The service layer pre-checks uniqueness for a friendlier error,
// but the index is the authoritative guard under concurrent writes.
var ErrDuplicateKey = errors.New("duplicate key")

// RoleRepository is the document-store contract for roles.
// Lookups return (nil, nil) when no document matches.
type RoleRepository interface {
	// Save inserts the role when its ID is zero, otherwise replaces the
	// stored document. Timestamps are maintained by the store layer.
	Save(ctx context.Context, role *entity.Role) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Role, error)
	GetByName(ctx context.Context, name string) (*entity.Role, error)
	List(ctx context.Context, activeOnly bool) ([]entity.Role, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}
