// internal/app/features/favorites/favorites.go
package favorites

import (
	"net/http"
	"time"

	destinationstore "github.com/voyagehq/voyagehub/internal/app/store/destinations"
	favoritestore "github.com/voyagehq/voyagehub/internal/app/store/favorites"
	"github.com/voyagehq/voyagehub/internal/app/system/apperr"
	"github.com/voyagehq/voyagehub/internal/app/system/authz"
	"github.com/voyagehq/voyagehub/internal/app/system/timeouts"
	"github.com/voyagehq/voyagehub/internal/app/system/webjson"
	"github.com/voyagehq/voyagehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// favoriteRow is one saved destination with its display reference. The
// reference is nil if the destination has since been removed.
type favoriteRow struct {
	DestinationID primitive.ObjectID     `json:"destination_id"`
	Destination   *models.DestinationRef `json:"destination,omitempty"`
	SavedAt       time.Time              `json:"saved_at"`
}

type favoritesResponse struct {
	Favorites []favoriteRow `json:"favorites"`
}

// HandleSave handles PUT /favorites/destinations/{id}. Saving an already
// saved destination succeeds without effect.
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	did, err := destinationID(r)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	uid := authz.UserID(r)
	if uid == primitive.NilObjectID {
		webjson.WriteError(w, h.Log, apperr.ErrForbidden)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "save favorite")
	defer cancel()

	if _, err := destinationstore.New(h.DB).GetByID(ctx, did); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	if err := favoritestore.New(h.DB).Add(ctx, uid, did); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("favorite saved",
		zap.String("user_id", uid.Hex()),
		zap.String("destination_id", did.Hex()))

	webjson.Write(w, http.StatusNoContent, nil)
}

// HandleRemove handles DELETE /favorites/destinations/{id}. Removing a
// destination that was never saved is a no-op.
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	did, err := destinationID(r)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	uid := authz.UserID(r)
	if uid == primitive.NilObjectID {
		webjson.WriteError(w, h.Log, apperr.ErrForbidden)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "remove favorite")
	defer cancel()

	if err := favoritestore.New(h.DB).Remove(ctx, uid, did); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	webjson.Write(w, http.StatusNoContent, nil)
}

// ServeList handles GET /favorites: the signed-in user's saved
// destinations, most recently saved first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	uid := authz.UserID(r)
	if uid == primitive.NilObjectID {
		webjson.WriteError(w, h.Log, apperr.ErrForbidden)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "list favorites")
	defer cancel()

	favs, err := favoritestore.New(h.DB).ListByUser(ctx, uid)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	resp := favoritesResponse{Favorites: make([]favoriteRow, 0, len(favs))}
	if len(favs) == 0 {
		webjson.Write(w, http.StatusOK, resp)
		return
	}

	ids := make([]primitive.ObjectID, 0, len(favs))
	for _, fav := range favs {
		ids = append(ids, fav.DestinationID)
	}
	refs, err := destinationstore.New(h.DB).Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"_id": 1, "name": 1, "country": 1}))
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	byID := make(map[primitive.ObjectID]models.DestinationRef, len(refs))
	for _, d := range refs {
		byID[d.ID] = models.DestinationRef{ID: d.ID, Name: d.Name, Country: d.Country}
	}

	for _, fav := range favs {
		row := favoriteRow{DestinationID: fav.DestinationID, SavedAt: fav.CreatedAt}
		if ref, ok := byID[fav.DestinationID]; ok {
			row.Destination = &ref
		}
		resp.Favorites = append(resp.Favorites, row)
	}
	webjson.Write(w, http.StatusOK, resp)
}
