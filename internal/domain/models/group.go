// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group is a collaboration space aggregate. Members, posts, and messages are
// embedded arrays on the one group document so every mutation is a single
// atomic document update: two concurrent joins at capacity cannot both pass
// the capacity guard, and concurrent message sends cannot overwrite each
// other's append.
//
// NOTE:
//   - InviteCode is set only for private groups, lazily the first time the
//     group is persisted without one, and never regenerated afterwards.
//   - Inactive groups (IsActive == false) behave as not-found everywhere.
type Group struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Description string             `bson:"description" json:"description"`
	CreatorID   primitive.ObjectID `bson:"creator_id" json:"creator_id"`
	IsPublic    bool               `bson:"is_public" json:"is_public"`
	MaxMembers  int                `bson:"max_members" json:"max_members"`
	InviteCode  string             `bson:"invite_code,omitempty" json:"invite_code,omitempty"`
	IsActive    bool               `bson:"is_active" json:"-"`

	Members  []Membership   `bson:"members" json:"members"`
	Posts    []GroupPost    `bson:"posts" json:"-"`
	Messages []GroupMessage `bson:"messages" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Membership is one entry in a group's members array. Insertion order is join
// order; at most one entry per user.
type Membership struct {
	UserID   primitive.ObjectID `bson:"user_id" json:"user_id"`
	Role     string             `bson:"role" json:"role"` // member | moderator | admin
	JoinedAt time.Time          `bson:"joined_at" json:"joined_at"`
}

// GroupPost is an immutable entry in a group's posts array.
type GroupPost struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	AuthorID  primitive.ObjectID `bson:"author_id" json:"author_id"`
	Content   string             `bson:"content" json:"content"`
	Photos    []string           `bson:"photos,omitempty" json:"photos,omitempty"` // opaque storage keys
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// GroupMessage is an immutable entry in a group's messages array, stored in
// creation order (oldest first).
type GroupMessage struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	SenderID    primitive.ObjectID `bson:"sender_id" json:"sender_id"`
	Content     string             `bson:"content" json:"content"`
	MessageType string             `bson:"message_type" json:"message_type"` // text | image | system
	ReadBy      []ReadReceipt      `bson:"read_by,omitempty" json:"read_by,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// ReadReceipt records that a user has read a message. The field is stored for
// client compatibility but no current operation writes it.
type ReadReceipt struct {
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`
	ReadAt time.Time          `bson:"read_at" json:"read_at"`
}

// Group member role values.
const (
	GroupRoleMember    = "member"
	GroupRoleModerator = "moderator"
	GroupRoleAdmin     = "admin"
)

// Message type values.
const (
	MessageTypeText   = "text"
	MessageTypeImage  = "image"
	MessageTypeSystem = "system"
)

// IsValidGroupRole reports whether role is one of the known member roles.
func IsValidGroupRole(role string) bool {
	return role == GroupRoleMember || role == GroupRoleModerator || role == GroupRoleAdmin
}

// IsValidMessageType reports whether t is one of the known message types.
func IsValidMessageType(t string) bool {
	return t == MessageTypeText || t == MessageTypeImage || t == MessageTypeSystem
}
