// internal/app/features/destinations/detail.go
package destinations

import (
	"net/http"

	destinationstore "github.com/voyagehq/voyagehub/internal/app/store/destinations"
	favoritestore "github.com/voyagehq/voyagehub/internal/app/store/favorites"
	reviewstore "github.com/voyagehq/voyagehub/internal/app/store/reviews"
	"github.com/voyagehq/voyagehub/internal/app/system/apperr"
	"github.com/voyagehq/voyagehub/internal/app/system/authz"
	"github.com/voyagehq/voyagehub/internal/app/system/timeouts"
	"github.com/voyagehq/voyagehub/internal/app/system/webjson"
	"github.com/voyagehq/voyagehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// detailResponse is the full destination payload, including rating stats
// and the viewer's favorite flag.
type detailResponse struct {
	models.Destination
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
	IsFavorite    bool    `json:"is_favorite"`
}

// ServeDetail handles GET /destinations/{id}. Drafts are only visible to
// admins; to everyone else they do not exist.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	did, err := destinationID(r)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "destination detail")
	defer cancel()

	d, err := destinationstore.New(h.DB).GetByID(ctx, did)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	if d.Status != models.DestinationPublished && !authz.IsAdmin(r) {
		webjson.WriteError(w, h.Log, apperr.ErrNotFound)
		return
	}

	avg, count, err := reviewstore.New(h.DB).AverageRating(ctx, did)
	if err != nil {
		h.Log.Warn("rating aggregation failed",
			zap.String("destination_id", did.Hex()), zap.Error(err))
	}

	isFav := false
	if uid := authz.UserID(r); uid != primitive.NilObjectID {
		if fav, err := favoritestore.New(h.DB).IsFavorite(ctx, uid, did); err == nil {
			isFav = fav
		}
	}

	webjson.Write(w, http.StatusOK, detailResponse{
		Destination:   d,
		AverageRating: avg,
		ReviewCount:   count,
		IsFavorite:    isFav,
	})
}
