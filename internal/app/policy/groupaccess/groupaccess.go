// internal/app/policy/groupaccess/groupaccess.go
//
// Access rules over a loaded group document. These are pure functions so the
// rules stay testable without a database; callers load the group first and
// the stores enforce the same conditions atomically on write.
package groupaccess

import (
	"github.com/voyagehq/voyagehub/internal/app/system/apperr"
	"github.com/voyagehq/voyagehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IsMember reports whether userID appears in the group's member list.
func IsMember(g models.Group, userID primitive.ObjectID) bool {
	for _, m := range g.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// CanView reports whether userID may see the group's detail, feed, and
// member list. Public groups are visible to any signed-in user; private
// groups only to members.
func CanView(g models.Group, userID primitive.ObjectID) bool {
	if g.IsPublic {
		return true
	}
	return IsMember(g, userID)
}

// CanReadMessages reports whether userID may read the message thread.
// Same visibility as the group itself: membership is required only for
// private groups. Sending is stricter, see CanSend.
func CanReadMessages(g models.Group, userID primitive.ObjectID) bool {
	return CanView(g, userID)
}

// CanPost reports whether userID may post to the group feed.
func CanPost(g models.Group, userID primitive.ObjectID) bool {
	return IsMember(g, userID)
}

// CanSend reports whether userID may send a chat message.
func CanSend(g models.Group, userID primitive.ObjectID) bool {
	return IsMember(g, userID)
}

// CheckJoin validates the invite requirement for joining. Public groups
// need no code. Private groups require the presented code to match the
// group's current code; a group persisted without one cannot be joined by
// code until EnsureInviteCode backfills it.
func CheckJoin(g models.Group, inviteCode string) error {
	if g.IsPublic {
		return nil
	}
	if g.InviteCode == "" || inviteCode != g.InviteCode {
		return apperr.ErrInviteRequired
	}
	return nil
}
