package groupstore_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/voyagehq/voyagehub/internal/app/policy/groupaccess"
	"github.com/voyagehq/voyagehub/internal/app/system/apperr"
	groupstore "github.com/voyagehq/voyagehub/internal/app/store/groups"
	"github.com/voyagehq/voyagehub/internal/domain/models"
	"github.com/voyagehq/voyagehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateTraveler(ctx, "Ana", "ana@example.com")

	created, err := store.Create(ctx, models.Group{
		Name:        "Tokyo Foodies",
		Description: "Eating our way through Tokyo",
		CreatorID:   creator.ID,
		IsPublic:    true,
		MaxMembers:  8,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.NameCI == "" {
		t.Error("expected NameCI to be set")
	}
	if !created.IsActive {
		t.Error("expected new group to be active")
	}
	if created.InviteCode != "" {
		t.Error("public groups carry no invite code")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}

	// Creator is the first member with the admin role.
	if len(created.Members) != 1 {
		t.Fatalf("members: got %d, want 1", len(created.Members))
	}
	if created.Members[0].UserID != creator.ID {
		t.Errorf("first member: got %v, want creator %v", created.Members[0].UserID, creator.ID)
	}
	if created.Members[0].Role != models.GroupRoleAdmin {
		t.Errorf("creator role: got %q, want %q", created.Members[0].Role, models.GroupRoleAdmin)
	}
}

func TestStore_GetByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateTraveler(ctx, "Ana", "ana@example.com")
	g := fixtures.CreateGroup(ctx, "Patagonia Hikers", creator.ID, true, 6)

	got, err := store.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Patagonia Hikers" {
		t.Errorf("name: got %q", got.Name)
	}

	t.Run("missing group", func(t *testing.T) {
		_, err := store.GetByID(ctx, primitive.NewObjectID())
		if !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("got %v, want ErrNotFound", err)
		}
	})

	t.Run("deactivated group behaves as missing", func(t *testing.T) {
		if err := store.Deactivate(ctx, g.ID, creator.ID); err != nil {
			t.Fatalf("Deactivate failed: %v", err)
		}
		_, err := store.GetByID(ctx, g.ID)
		if !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("got %v, want ErrNotFound", err)
		}
	})
}

func TestStore_Join(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateTraveler(ctx, "Ana", "ana@example.com")
	joiner := fixtures.CreateTraveler(ctx, "Ben", "ben@example.com")
	g := fixtures.CreateGroup(ctx, "Lisbon Weekend", creator.ID, true, 3)

	m, err := store.Join(ctx, g.ID, joiner.ID)
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if m.Role != models.GroupRoleMember {
		t.Errorf("joined role: got %q, want %q", m.Role, models.GroupRoleMember)
	}

	got, err := store.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.Members) != 2 {
		t.Fatalf("members after join: got %d, want 2", len(got.Members))
	}

	t.Run("joining twice returns ErrAlreadyMember", func(t *testing.T) {
		_, err := store.Join(ctx, g.ID, joiner.ID)
		if !errors.Is(err, apperr.ErrAlreadyMember) {
			t.Errorf("got %v, want ErrAlreadyMember", err)
		}
	})

	t.Run("creator rejoining returns ErrAlreadyMember", func(t *testing.T) {
		_, err := store.Join(ctx, g.ID, creator.ID)
		if !errors.Is(err, apperr.ErrAlreadyMember) {
			t.Errorf("got %v, want ErrAlreadyMember", err)
		}
	})

	t.Run("full group returns ErrGroupFull", func(t *testing.T) {
		third := fixtures.CreateTraveler(ctx, "Cora", "cora@example.com")
		if _, err := store.Join(ctx, g.ID, third.ID); err != nil {
			t.Fatalf("third join failed: %v", err)
		}
		fourth := fixtures.CreateTraveler(ctx, "Dev", "dev@example.com")
		_, err := store.Join(ctx, g.ID, fourth.ID)
		if !errors.Is(err, apperr.ErrGroupFull) {
			t.Errorf("got %v, want ErrGroupFull", err)
		}
	})

	t.Run("missing group returns ErrNotFound", func(t *testing.T) {
		_, err := store.Join(ctx, primitive.NewObjectID(), joiner.ID)
		if !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("got %v, want ErrNotFound", err)
		}
	})
}

func TestStore_Join_ConcurrentNeverExceedsCapacity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateTraveler(ctx, "Ana", "ana@example.com")
	g := fixtures.CreateGroup(ctx, "Crowded Group", creator.ID, true, 4)

	const joiners = 10
	var wg sync.WaitGroup
	successes := make(chan struct{}, joiners)
	for i := 0; i < joiners; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Join(ctx, g.ID, primitive.NewObjectID()); err == nil {
				successes <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(successes)

	won := 0
	for range successes {
		won++
	}
	// Capacity is 4 with the creator already in, so exactly 3 can win.
	if won != 3 {
		t.Errorf("successful joins: got %d, want 3", won)
	}

	got, err := store.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.Members) != 4 {
		t.Errorf("members: got %d, want 4", len(got.Members))
	}
}

func TestStore_Leave(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateTraveler(ctx, "Ana", "ana@example.com")
	member := fixtures.CreateTraveler(ctx, "Ben", "ben@example.com")
	g := fixtures.CreateGroup(ctx, "Alps Ski Trip", creator.ID, false, 5)
	fixtures.AddMember(ctx, g.ID, member.ID)

	if err := store.Leave(ctx, g.ID, member.ID); err != nil {
		t.Fatalf("Leave failed: %v", err)
	}

	got, err := store.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.Members) != 1 {
		t.Fatalf("members after leave: got %d, want 1", len(got.Members))
	}

	t.Run("leaving twice returns ErrNotAMember", func(t *testing.T) {
		err := store.Leave(ctx, g.ID, member.ID)
		if !errors.Is(err, apperr.ErrNotAMember) {
			t.Errorf("got %v, want ErrNotAMember", err)
		}
	})

	t.Run("creator cannot leave", func(t *testing.T) {
		err := store.Leave(ctx, g.ID, creator.ID)
		if !errors.Is(err, apperr.ErrCreatorCannotLeave) {
			t.Errorf("got %v, want ErrCreatorCannotLeave", err)
		}
	})

	t.Run("missing group returns ErrNotFound", func(t *testing.T) {
		err := store.Leave(ctx, primitive.NewObjectID(), member.ID)
		if !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("got %v, want ErrNotFound", err)
		}
	})
}

func TestStore_CreatePrivateAssignsInviteCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateTraveler(ctx, "Ana", "ana@example.com")
	joiner := fixtures.CreateTraveler(ctx, "Bea", "bea@example.com")

	created, err := store.Create(ctx, models.Group{
		Name:       "Secret Trip",
		CreatorID:  creator.ID,
		IsPublic:   false,
		MaxMembers: 5,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.InviteCode == "" {
		t.Fatal("private group should carry an invite code from creation")
	}

	// The code returned at creation is immediately usable for joining.
	g, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if g.InviteCode != created.InviteCode {
		t.Errorf("persisted code %q differs from created code %q", g.InviteCode, created.InviteCode)
	}
	if err := groupaccess.CheckJoin(g, created.InviteCode); err != nil {
		t.Errorf("join with creation code rejected: %v", err)
	}
	if _, err := store.Join(ctx, created.ID, joiner.ID); err != nil {
		t.Errorf("Join failed: %v", err)
	}
}

func TestStore_EnsureInviteCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateTraveler(ctx, "Ana", "ana@example.com")
	g := fixtures.CreateGroup(ctx, "Secret Trip", creator.ID, false, 5)

	// A group with a code keeps it.
	code, err := store.EnsureInviteCode(ctx, g.ID)
	if err != nil {
		t.Fatalf("EnsureInviteCode failed: %v", err)
	}
	if code != g.InviteCode {
		t.Errorf("invite code rotated: %q then %q", g.InviteCode, code)
	}

	// Backstop: a group persisted without a code gets one, set once.
	if _, err := db.Collection("groups").UpdateOne(ctx,
		bson.M{"_id": g.ID}, bson.M{"$set": bson.M{"invite_code": ""}}); err != nil {
		t.Fatalf("failed to clear invite code: %v", err)
	}
	fresh, err := store.EnsureInviteCode(ctx, g.ID)
	if err != nil {
		t.Fatalf("EnsureInviteCode after clear failed: %v", err)
	}
	if fresh == "" {
		t.Fatal("expected a generated invite code")
	}
	again, err := store.EnsureInviteCode(ctx, g.ID)
	if err != nil {
		t.Fatalf("second EnsureInviteCode failed: %v", err)
	}
	if again != fresh {
		t.Errorf("invite code rotated: %q then %q", fresh, again)
	}

	t.Run("missing group returns ErrNotFound", func(t *testing.T) {
		_, err := store.EnsureInviteCode(ctx, primitive.NewObjectID())
		if !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("got %v, want ErrNotFound", err)
		}
	})
}

func TestStore_AppendPost(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateTraveler(ctx, "Ana", "ana@example.com")
	outsider := fixtures.CreateTraveler(ctx, "Eve", "eve@example.com")
	g := fixtures.CreateGroup(ctx, "Food Tour", creator.ID, true, 5)

	p, err := store.AppendPost(ctx, g.ID, creator.ID, "First stop: ramen.", []string{"photos/ramen.jpg"})
	if err != nil {
		t.Fatalf("AppendPost failed: %v", err)
	}
	if p.ID == primitive.NilObjectID {
		t.Error("expected post ID to be assigned")
	}

	got, err := store.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.Posts) != 1 || got.Posts[0].Content != "First stop: ramen." {
		t.Errorf("posts after append: %+v", got.Posts)
	}

	t.Run("non-member returns ErrForbidden", func(t *testing.T) {
		_, err := store.AppendPost(ctx, g.ID, outsider.ID, "Let me in", nil)
		if !errors.Is(err, apperr.ErrForbidden) {
			t.Errorf("got %v, want ErrForbidden", err)
		}
	})

	t.Run("missing group returns ErrNotFound", func(t *testing.T) {
		_, err := store.AppendPost(ctx, primitive.NewObjectID(), creator.ID, "hello", nil)
		if !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("got %v, want ErrNotFound", err)
		}
	})
}

func TestStore_AppendMessage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateTraveler(ctx, "Ana", "ana@example.com")
	member := fixtures.CreateTraveler(ctx, "Ben", "ben@example.com")
	outsider := fixtures.CreateTraveler(ctx, "Eve", "eve@example.com")
	g := fixtures.CreateGroup(ctx, "Trip Chat", creator.ID, false, 5)
	fixtures.AddMember(ctx, g.ID, member.ID)

	m, err := store.AppendMessage(ctx, g.ID, member.ID, "Landed!", models.MessageTypeText)
	if err != nil {
		t.Fatalf("AppendMessage failed: %v", err)
	}
	if m.ID == primitive.NilObjectID {
		t.Error("expected message ID to be assigned")
	}
	if m.ReadBy == nil {
		t.Error("expected empty (non-nil) read receipts")
	}

	got, err := store.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.Messages) != 1 || got.Messages[0].Content != "Landed!" {
		t.Errorf("messages after append: %+v", got.Messages)
	}

	t.Run("non-member returns ErrForbidden", func(t *testing.T) {
		_, err := store.AppendMessage(ctx, g.ID, outsider.ID, "hi", models.MessageTypeText)
		if !errors.Is(err, apperr.ErrForbidden) {
			t.Errorf("got %v, want ErrForbidden", err)
		}
	})
}

func TestStore_Deactivate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateTraveler(ctx, "Ana", "ana@example.com")
	member := fixtures.CreateTraveler(ctx, "Ben", "ben@example.com")
	g := fixtures.CreateGroup(ctx, "Doomed Group", creator.ID, true, 5)
	fixtures.AddMember(ctx, g.ID, member.ID)

	t.Run("non-creator returns ErrForbidden", func(t *testing.T) {
		err := store.Deactivate(ctx, g.ID, member.ID)
		if !errors.Is(err, apperr.ErrForbidden) {
			t.Errorf("got %v, want ErrForbidden", err)
		}
	})

	if err := store.Deactivate(ctx, g.ID, creator.ID); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}

	t.Run("deactivated group is gone from reads", func(t *testing.T) {
		_, err := store.GetByID(ctx, g.ID)
		if !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("got %v, want ErrNotFound", err)
		}
	})

	t.Run("joins against deactivated group return ErrNotFound", func(t *testing.T) {
		_, err := store.Join(ctx, g.ID, primitive.NewObjectID())
		if !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("got %v, want ErrNotFound", err)
		}
	})
}

func TestStore_Lists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ana := fixtures.CreateTraveler(ctx, "Ana", "ana@example.com")
	ben := fixtures.CreateTraveler(ctx, "Ben", "ben@example.com")

	zeta := fixtures.CreateGroup(ctx, "Zeta Trip", ana.ID, true, 5)
	alpha := fixtures.CreateGroup(ctx, "Alpha Trip", ana.ID, true, 5)
	hidden := fixtures.CreateGroup(ctx, "Hidden Trip", ben.ID, false, 5)
	fixtures.AddMember(ctx, hidden.ID, ana.ID)

	t.Run("public list sorted by name, private excluded", func(t *testing.T) {
		got, err := store.ListPublic(ctx, 1, 20)
		if err != nil {
			t.Fatalf("ListPublic failed: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("public groups: got %d, want 2", len(got))
		}
		if got[0].ID != alpha.ID || got[1].ID != zeta.ID {
			t.Errorf("public order: got %q then %q", got[0].Name, got[1].Name)
		}
	})

	t.Run("list projection omits heavy arrays", func(t *testing.T) {
		if _, err := store.AppendPost(ctx, alpha.ID, ana.ID, "hello", nil); err != nil {
			t.Fatalf("AppendPost failed: %v", err)
		}
		got, err := store.ListPublic(ctx, 1, 20)
		if err != nil {
			t.Fatalf("ListPublic failed: %v", err)
		}
		for _, g := range got {
			if len(g.Posts) != 0 || len(g.Messages) != 0 {
				t.Errorf("list row %q carries embedded posts/messages", g.Name)
			}
		}
	})

	t.Run("member list includes private memberships", func(t *testing.T) {
		got, err := store.ListByMember(ctx, ana.ID)
		if err != nil {
			t.Fatalf("ListByMember failed: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("ana's groups: got %d, want 3", len(got))
		}
	})

	t.Run("deactivated groups drop out of lists", func(t *testing.T) {
		if err := store.Deactivate(ctx, zeta.ID, ana.ID); err != nil {
			t.Fatalf("Deactivate failed: %v", err)
		}
		pub, err := store.ListPublic(ctx, 1, 20)
		if err != nil {
			t.Fatalf("ListPublic failed: %v", err)
		}
		if len(pub) != 1 {
			t.Errorf("public groups after deactivate: got %d, want 1", len(pub))
		}
		mine, err := store.ListByMember(ctx, ana.ID)
		if err != nil {
			t.Fatalf("ListByMember failed: %v", err)
		}
		if len(mine) != 2 {
			t.Errorf("ana's groups after deactivate: got %d, want 2", len(mine))
		}
	})
}
