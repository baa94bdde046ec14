// internal/app/features/groups/types.go
package groups

import (
	"time"

	"github.com/voyagehq/voyagehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// createGroupRequest is the body for POST /groups.
type createGroupRequest struct {
	Name        string `json:"name" validate:"required,max=100" label:"Group name"`
	Description string `json:"description" validate:"max=500" label:"Description"`
	IsPublic    *bool  `json:"is_public" label:"Visibility"`
	MaxMembers  int    `json:"max_members" validate:"required,min=2,max=500" label:"Member limit"`
}

// joinGroupRequest is the body for POST /groups/{id}/join. The invite code
// is only consulted for private groups.
type joinGroupRequest struct {
	InviteCode string `json:"invite_code" label:"Invite code"`
}

// addPostRequest is the body for POST /groups/{id}/posts.
type addPostRequest struct {
	Content string   `json:"content" validate:"required,max=1000" label:"Post content"`
	Photos  []string `json:"photos" label:"Photos"`
}

// sendMessageRequest is the body for POST /groups/{id}/messages.
type sendMessageRequest struct {
	Content     string `json:"content" validate:"required,max=1000" label:"Message content"`
	MessageType string `json:"message_type" validate:"messagetype" label:"Message type"`
}

// groupResponse is the wire shape for a group. The invite code appears only
// for members of private groups; posts and messages have their own endpoints.
type groupResponse struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	CreatorID   primitive.ObjectID `json:"creator_id"`
	IsPublic    bool               `json:"is_public"`
	MaxMembers  int                `json:"max_members"`
	MemberCount int                `json:"member_count"`
	IsMember    bool               `json:"is_member"`
	InviteCode  string             `json:"invite_code,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// memberResponse is one row of a group's member list.
type memberResponse struct {
	UserID   primitive.ObjectID `json:"user_id"`
	Role     string             `json:"role"`
	JoinedAt time.Time          `json:"joined_at"`
}

// groupDetailResponse is the full detail payload.
type groupDetailResponse struct {
	groupResponse
	Members []memberResponse `json:"members"`
}

// messagesResponse is the paged message window. Messages inside the window
// are in ascending time order; pages count back from the newest.
type messagesResponse struct {
	Messages      []models.GroupMessage `json:"messages"`
	TotalMessages int                   `json:"total_messages"`
	HasMore       bool                  `json:"has_more"`
	Page          int                   `json:"page"`
	Limit         int                   `json:"limit"`
}

func toGroupResponse(g models.Group, viewer primitive.ObjectID, isMember bool) groupResponse {
	resp := groupResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		CreatorID:   g.CreatorID,
		IsPublic:    g.IsPublic,
		MaxMembers:  g.MaxMembers,
		MemberCount: len(g.Members),
		IsMember:    isMember,
		CreatedAt:   g.CreatedAt,
	}
	if isMember && !g.IsPublic {
		resp.InviteCode = g.InviteCode
	}
	return resp
}

func toGroupDetailResponse(g models.Group, viewer primitive.ObjectID, isMember bool) groupDetailResponse {
	members := make([]memberResponse, 0, len(g.Members))
	for _, m := range g.Members {
		members = append(members, memberResponse{
			UserID:   m.UserID,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		})
	}
	return groupDetailResponse{
		groupResponse: toGroupResponse(g, viewer, isMember),
		Members:       members,
	}
}
