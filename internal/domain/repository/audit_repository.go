package repository

import (
	"context"

	"github.com/medisync/user-service/internal/domain/entity"
)

// AuditRepository persists authentication events consumed from the queue.
type AuditRepository interface {
	Insert(ctx context.Context, log *entity.AuditLog) error
}
