package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/medisync/user-service/internal/domain/entity"
	"github.com/medisync/user-service/internal/domain/repository"
)

const auditCollection = "audit_logs"

type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(auditCollection)}
}

func (r *AuditRepository) Insert(ctx context.Context, log *entity.AuditLog) error {
	if log.ID.IsZero() {
		log.ID = primitive.NewObjectID()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, log)
	return err
}

var _ repository.AuditRepository = (*AuditRepository)(nil)
