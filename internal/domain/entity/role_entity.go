package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role represents an authorization role. Users embed a copy of the role
// assigned to them, so a role document can be deactivated without breaking
// existing assignments.
type Role struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Active    bool               `json:"active" bson:"active"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}
