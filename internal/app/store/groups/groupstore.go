// internal/app/store/groups/groupstore.go
//
// Groups are stored as single documents with members, posts, and messages
// embedded. Every mutation is one guarded UpdateOne, so concurrent joins,
// leaves, and appends serialize on the document without app-side locking.
package groupstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/voyagehq/voyagehub/internal/app/system/apperr"
	"github.com/voyagehq/voyagehub/internal/app/system/invitecode"
	"github.com/voyagehq/voyagehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c     *mongo.Collection
	codes *invitecode.Generator
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("groups"),
		codes: invitecode.New(),
	}
}

// Create inserts a new group with the creator as its first member.
// The creator's membership carries the admin role. Private groups get their
// invite code here, at first persist; it never changes afterwards.
func (s *Store) Create(ctx context.Context, g models.Group) (models.Group, error) {
	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	g.NameCI = text.Fold(g.Name)
	g.IsActive = true
	g.InviteCode = ""
	if !g.IsPublic {
		g.InviteCode = s.codes.Generate()
	}
	g.Members = []models.Membership{{
		UserID:   g.CreatorID,
		Role:     models.GroupRoleAdmin,
		JoinedAt: now,
	}}
	g.Posts = []models.GroupPost{}
	g.Messages = []models.GroupMessage{}
	g.CreatedAt = now
	g.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// GetByID returns an active group. Deactivated groups behave exactly like
// missing ones.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	var g models.Group
	err := s.c.FindOne(ctx, bson.M{"_id": id, "is_active": true}).Decode(&g)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Group{}, apperr.ErrNotFound
	}
	if err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// EnsureInviteCode returns the group's invite code. Codes are assigned at
// creation; this backstops any group persisted without one. The set-once
// filter makes concurrent callers converge on a single code.
func (s *Store) EnsureInviteCode(ctx context.Context, id primitive.ObjectID) (string, error) {
	code := s.codes.Generate()
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "is_active": true, "invite_code": ""},
		bson.M{"$set": bson.M{"invite_code": code, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return "", err
	}
	// Re-read: either our code landed or an earlier one already had.
	g, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if g.InviteCode == "" {
		return "", fmt.Errorf("invite code not assigned for group %s", id.Hex())
	}
	return g.InviteCode, nil
}

// Join adds userID as a member. The filter enforces, in one atomic step,
// that the group is active, the user is not already a member, and the
// member list is below capacity. When the update matches nothing the group
// is re-read to classify which guard failed.
func (s *Store) Join(ctx context.Context, id, userID primitive.ObjectID) (models.Membership, error) {
	m := models.Membership{
		UserID:   userID,
		Role:     models.GroupRoleMember,
		JoinedAt: time.Now().UTC(),
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"_id":             id,
			"is_active":       true,
			"members.user_id": bson.M{"$ne": userID},
			"$expr":           bson.M{"$lt": bson.A{bson.M{"$size": "$members"}, "$max_members"}},
		},
		bson.M{
			"$push": bson.M{"members": m},
			"$set":  bson.M{"updated_at": m.JoinedAt},
		},
	)
	if err != nil {
		return models.Membership{}, err
	}
	if res.ModifiedCount == 0 {
		return models.Membership{}, s.classifyJoinFailure(ctx, id, userID)
	}
	return m, nil
}

func (s *Store) classifyJoinFailure(ctx context.Context, id, userID primitive.ObjectID) error {
	g, err := s.GetByID(ctx, id)
	if err != nil {
		return err // ErrNotFound for missing or deactivated groups
	}
	for _, m := range g.Members {
		if m.UserID == userID {
			return apperr.ErrAlreadyMember
		}
	}
	if len(g.Members) >= g.MaxMembers {
		return apperr.ErrGroupFull
	}
	// The guards passed on re-read; the state changed between the two calls.
	return fmt.Errorf("join group %s: concurrent membership change", id.Hex())
}

// Leave removes userID from the member list. The creator can never leave;
// they deactivate the group instead.
func (s *Store) Leave(ctx context.Context, id, userID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"_id":             id,
			"is_active":       true,
			"creator_id":      bson.M{"$ne": userID},
			"members.user_id": userID,
		},
		bson.M{
			"$pull": bson.M{"members": bson.M{"user_id": userID}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return s.classifyLeaveFailure(ctx, id, userID)
	}
	return nil
}

func (s *Store) classifyLeaveFailure(ctx context.Context, id, userID primitive.ObjectID) error {
	g, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if g.CreatorID == userID {
		return apperr.ErrCreatorCannotLeave
	}
	return apperr.ErrNotAMember
}

// AppendPost adds a post to the group feed. Only members can post.
func (s *Store) AppendPost(ctx context.Context, id, authorID primitive.ObjectID, content string, photos []string) (models.GroupPost, error) {
	p := models.GroupPost{
		ID:        primitive.NewObjectID(),
		AuthorID:  authorID,
		Content:   content,
		Photos:    photos,
		CreatedAt: time.Now().UTC(),
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "is_active": true, "members.user_id": authorID},
		bson.M{
			"$push": bson.M{"posts": p},
			"$set":  bson.M{"updated_at": p.CreatedAt},
		},
	)
	if err != nil {
		return models.GroupPost{}, err
	}
	if res.ModifiedCount == 0 {
		return models.GroupPost{}, s.classifyMemberWriteFailure(ctx, id, authorID)
	}
	return p, nil
}

// AppendMessage adds a chat message to the group thread. Only members can send.
func (s *Store) AppendMessage(ctx context.Context, id, senderID primitive.ObjectID, content, messageType string) (models.GroupMessage, error) {
	m := models.GroupMessage{
		ID:          primitive.NewObjectID(),
		SenderID:    senderID,
		Content:     content,
		MessageType: messageType,
		ReadBy:      []models.ReadReceipt{},
		CreatedAt:   time.Now().UTC(),
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "is_active": true, "members.user_id": senderID},
		bson.M{
			"$push": bson.M{"messages": m},
			"$set":  bson.M{"updated_at": m.CreatedAt},
		},
	)
	if err != nil {
		return models.GroupMessage{}, err
	}
	if res.ModifiedCount == 0 {
		return models.GroupMessage{}, s.classifyMemberWriteFailure(ctx, id, senderID)
	}
	return m, nil
}

func (s *Store) classifyMemberWriteFailure(ctx context.Context, id, userID primitive.ObjectID) error {
	g, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	for _, m := range g.Members {
		if m.UserID == userID {
			return fmt.Errorf("append to group %s: concurrent membership change", id.Hex())
		}
	}
	return apperr.ErrForbidden
}

// Deactivate soft-deletes a group. Only the creator may do this; the group
// afterwards behaves as if it does not exist.
func (s *Store) Deactivate(ctx context.Context, id, byUserID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "is_active": true, "creator_id": byUserID},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		g, err := s.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if g.CreatorID != byUserID {
			return apperr.ErrForbidden
		}
		return fmt.Errorf("deactivate group %s: concurrent change", id.Hex())
	}
	return nil
}

// listProjection trims the heavy embedded arrays out of list results.
// Member counts still need the members array; posts and messages do not.
var listProjection = bson.M{"posts": 0, "messages": 0}

// ListPublic returns active public groups sorted by folded name.
// page is 1-based; limit rows per page.
func (s *Store) ListPublic(ctx context.Context, page, limit int) ([]models.Group, error) {
	if page < 1 {
		page = 1
	}
	opts := options.Find().
		SetProjection(listProjection).
		SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cur, err := s.c.Find(ctx, bson.M{"is_public": true, "is_active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	groups := []models.Group{}
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// ListByMember returns the active groups userID belongs to, sorted by
// folded name.
func (s *Store) ListByMember(ctx context.Context, userID primitive.ObjectID) ([]models.Group, error) {
	opts := options.Find().
		SetProjection(listProjection).
		SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"is_active": true, "members.user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	groups := []models.Group{}
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}
