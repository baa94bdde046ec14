package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/voyagehq/voyagehub/internal/app/system/invitecode"
	"github.com/voyagehq/voyagehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given parameters.
// Returns the created user with its generated ID.
func (f *Fixtures) CreateUser(ctx context.Context, displayName, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:          primitive.NewObjectID(),
		DisplayName: displayName,
		Email:       email,
		EmailCI:     text.Fold(email),
		AuthMethod:  models.AuthMethodPassword,
		Role:        role,
		Status:      "active",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateTraveler creates a test user with the traveler role.
func (f *Fixtures) CreateTraveler(ctx context.Context, displayName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, displayName, email, models.RoleTraveler)
}

// CreateAdmin creates a test user with the admin role.
func (f *Fixtures) CreateAdmin(ctx context.Context, displayName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, displayName, email, models.RoleAdmin)
}

// CreateGroup creates an active group with the given creator already
// embedded as its admin member.
func (f *Fixtures) CreateGroup(ctx context.Context, name string, creatorID primitive.ObjectID, isPublic bool, maxMembers int) models.Group {
	f.t.Helper()

	now := time.Now().UTC()
	code := ""
	if !isPublic {
		// Private groups carry their invite code from creation, like Create.
		code = invitecode.New().Generate()
	}
	g := models.Group{
		ID:         primitive.NewObjectID(),
		Name:       name,
		NameCI:     text.Fold(name),
		CreatorID:  creatorID,
		IsPublic:   isPublic,
		MaxMembers: maxMembers,
		IsActive:   true,
		InviteCode: code,
		Members: []models.Membership{{
			UserID:   creatorID,
			Role:     models.GroupRoleAdmin,
			JoinedAt: now,
		}},
		Posts:     []models.GroupPost{},
		Messages:  []models.GroupMessage{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("groups").InsertOne(ctx, g); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}
	return g
}

// AddMember appends a plain membership to an existing group document.
func (f *Fixtures) AddMember(ctx context.Context, groupID, userID primitive.ObjectID) {
	f.t.Helper()

	m := models.Membership{
		UserID:   userID,
		Role:     models.GroupRoleMember,
		JoinedAt: time.Now().UTC(),
	}
	res, err := f.db.Collection("groups").UpdateByID(ctx, groupID,
		map[string]any{"$push": map[string]any{"members": m}})
	if err != nil || res.ModifiedCount == 0 {
		f.t.Fatalf("failed to add test member: modified=%d err=%v", res.ModifiedCount, err)
	}
}

// CreateDestination creates a published destination.
func (f *Fixtures) CreateDestination(ctx context.Context, name, country string) models.Destination {
	f.t.Helper()

	now := time.Now().UTC()
	d := models.Destination{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Country:   country,
		CountryCI: text.Fold(country),
		Summary:   "A test destination.",
		Status:    "published",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("destinations").InsertOne(ctx, d); err != nil {
		f.t.Fatalf("failed to create test destination: %v", err)
	}
	return d
}

// CreateItinerary creates an itinerary owned by the given user.
func (f *Fixtures) CreateItinerary(ctx context.Context, ownerID primitive.ObjectID, title string, isPublic bool) models.Itinerary {
	f.t.Helper()

	now := time.Now().UTC()
	it := models.Itinerary{
		ID:        primitive.NewObjectID(),
		OwnerID:   ownerID,
		Title:     title,
		IsPublic:  isPublic,
		Days:      []models.ItineraryDay{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("itineraries").InsertOne(ctx, it); err != nil {
		f.t.Fatalf("failed to create test itinerary: %v", err)
	}
	return it
}

// CreateReview creates a review of a destination by the given author.
func (f *Fixtures) CreateReview(ctx context.Context, destinationID, authorID primitive.ObjectID, rating int, body string) models.Review {
	f.t.Helper()

	r := models.Review{
		ID:            primitive.NewObjectID(),
		DestinationID: destinationID,
		AuthorID:      authorID,
		Rating:        rating,
		Body:          body,
		CreatedAt:     time.Now().UTC(),
	}
	if _, err := f.db.Collection("reviews").InsertOne(ctx, r); err != nil {
		f.t.Fatalf("failed to create test review: %v", err)
	}
	return r
}
