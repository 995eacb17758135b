package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditLog is one persisted authentication event, written by the audit worker.
type AuditLog struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    string             `json:"userId" bson:"userId"`
	Username  string             `json:"username" bson:"username"`
	Action    string             `json:"action" bson:"action"`
	IP        string             `json:"ip,omitempty" bson:"ip,omitempty"`
	UserAgent string             `json:"userAgent,omitempty" bson:"userAgent,omitempty"`
	Metadata  map[string]any     `json:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
