package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the aggregate root for the user domain.
// Password holds a bcrypt hash and is never serialized to JSON.
//
// Role is a value copy of the role document at assignment time, not a live
// reference: renaming or deactivating a role is not reflected on users until
// the role is reassigned.
type User struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username    string             `json:"username" bson:"username"`
	Email       string             `json:"email,omitempty" bson:"email,omitempty"`
	Password    string             `json:"-" bson:"password"`
	Role        Role               `json:"role" bson:"role"`
	PushToken   string             `json:"pushToken,omitempty" bson:"pushToken,omitempty"`
	Active      bool               `json:"active" bson:"active"`
	LastLoginAt *time.Time         `json:"lastLoginAt,omitempty" bson:"lastLoginAt,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}
