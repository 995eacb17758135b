package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/medisync/user-service/internal/domain/entity"
	"github.com/medisync/user-service/internal/domain/repository"
)

const rolesCollection = "roles"

type RoleRepository struct {
	col *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{col: db.Collection(rolesCollection)}
}

func (r *RoleRepository) Save(ctx context.Context, role *entity.Role) error {
	now := time.Now().UTC()
	role.UpdatedAt = now
	if role.ID.IsZero() {
		role.ID = primitive.NewObjectID()
		role.CreatedAt = now
		_, err := r.col.InsertOne(ctx, role)
		return translateErr(err)
	}
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": role.ID}, role)
	return translateErr(err)
}

func (r *RoleRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Role, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *RoleRepository) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *RoleRepository) findOne(ctx context.Context, filter bson.M) (*entity.Role, error) {
	role := &entity.Role{}
	if err := r.col.FindOne(ctx, filter).Decode(role); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return role, nil
}

func (r *RoleRepository) List(ctx context.Context, activeOnly bool) ([]entity.Role, error) {
	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()
	roles := []entity.Role{}
	if err := cur.All(ctx, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *RoleRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *RoleRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

// translateErr maps driver-level unique-index violations onto the domain
// sentinel so services can report Conflict without importing mongo.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicateKey
	}
	return err
}

var _ repository.RoleRepository = (*RoleRepository)(nil)
