// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Auth methods for User.AuthMethod.
const (
	AuthMethodPassword = "password"
	AuthMethodGoogle   = "google"
)

// Account roles for User.Role.
const (
	RoleTraveler = "traveler"
	RoleAdmin    = "admin"
)

// Account statuses for User.Status.
const (
	StatusActive   = "active"
	StatusDisabled = "disabled"
)

// User represents a traveler account.
//
// NOTE:
//   - Group membership is not embedded on User. A user's groups live inside
//     each Group document's members array; use the groups store to discover
//     them.
//   - PasswordHash is empty for accounts created through Google sign-in.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DisplayName  string             `bson:"display_name" json:"display_name"`
	Email        string             `bson:"email" json:"email"`
	EmailCI      string             `bson:"email_ci" json:"-"` // lowercase, diacritics-stripped
	PasswordHash string             `bson:"password_hash,omitempty" json:"-"`
	AuthMethod   string             `bson:"auth_method,omitempty" json:"auth_method,omitempty"` // password | google
	Role         string             `bson:"role" json:"role"`                                   // traveler | admin
	Status       string             `bson:"status,omitempty" json:"status,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
