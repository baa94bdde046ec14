// internal/app/features/reviews/reviews.go
package reviews

import (
	"errors"
	"net/http"

	destinationstore "github.com/voyagehq/voyagehub/internal/app/store/destinations"
	reviewstore "github.com/voyagehq/voyagehub/internal/app/store/reviews"
	"github.com/voyagehq/voyagehub/internal/app/system/apperr"
	"github.com/voyagehq/voyagehub/internal/app/system/authz"
	"github.com/voyagehq/voyagehub/internal/app/system/htmlsanitize"
	"github.com/voyagehq/voyagehub/internal/app/system/inputval"
	"github.com/voyagehq/voyagehub/internal/app/system/limits"
	"github.com/voyagehq/voyagehub/internal/app/system/paging"
	"github.com/voyagehq/voyagehub/internal/app/system/photokey"
	"github.com/voyagehq/voyagehub/internal/app/system/timeouts"
	"github.com/voyagehq/voyagehub/internal/app/system/webjson"
	"github.com/voyagehq/voyagehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type createReviewRequest struct {
	Rating int      `json:"rating" validate:"required,min=1,max=5" label:"Rating"`
	Body   string   `json:"body" validate:"required,max=1000" label:"Review"`
	Photos []string `json:"photos" label:"Photos"`
}

type reviewListResponse struct {
	Reviews       []models.Review `json:"reviews"`
	AverageRating float64         `json:"average_rating"`
	ReviewCount   int64           `json:"review_count"`
	Page          int             `json:"page"`
	Limit         int             `json:"limit"`
}

// ServeList handles GET /destinations/{id}/reviews, newest first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	did, err := urlObjectID(r, "id")
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	page := paging.ParsePage(r)
	limit := paging.ParseLimit(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "destination reviews")
	defer cancel()

	if _, err := destinationstore.New(h.DB).GetByID(ctx, did); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	store := reviewstore.New(h.DB)
	rows, err := store.ListByDestination(ctx, did, page, limit)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	avg, count, err := store.AverageRating(ctx, did)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	if rows == nil {
		rows = []models.Review{}
	}

	webjson.Write(w, http.StatusOK, reviewListResponse{
		Reviews:       rows,
		AverageRating: avg,
		ReviewCount:   count,
		Page:          page,
		Limit:         limit,
	})
}

// HandleCreate handles POST /destinations/{id}/reviews. One review per
// traveler per destination; a second attempt conflicts.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	did, err := urlObjectID(r, "id")
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	uid := authz.UserID(r)
	if uid == primitive.NilObjectID {
		webjson.WriteError(w, h.Log, apperr.ErrForbidden)
		return
	}

	var req createReviewRequest
	if err := webjson.Decode(w, r, &req, limits.MaxJSONBodySize); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	req.Body = htmlsanitize.Plain(req.Body)
	if res := inputval.Validate(&req); res.HasErrors() {
		webjson.WriteError(w, h.Log, validationError(res))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create review")
	defer cancel()

	if _, err := destinationstore.New(h.DB).GetByID(ctx, did); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	created, err := reviewstore.New(h.DB).Create(ctx, models.Review{
		DestinationID: did,
		AuthorID:      uid,
		Rating:        req.Rating,
		Body:          req.Body,
		Photos:        photokey.NewBatch(req.Photos),
	})
	if err != nil {
		if errors.Is(err, reviewstore.ErrAlreadyReviewed) {
			webjson.WriteError(w, h.Log, apperr.ErrAlreadyReviewed)
			return
		}
		webjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("review created",
		zap.String("review_id", created.ID.Hex()),
		zap.String("destination_id", did.Hex()),
		zap.String("author_id", uid.Hex()),
		zap.Int("rating", created.Rating))

	webjson.Write(w, http.StatusCreated, created)
}

// HandleDelete handles DELETE /destinations/{id}/reviews/{reviewID}.
// Authors delete their own reviews; admins may delete any.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	rid, err := urlObjectID(r, "reviewID")
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	uid := authz.UserID(r)
	if uid == primitive.NilObjectID {
		webjson.WriteError(w, h.Log, apperr.ErrForbidden)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete review")
	defer cancel()

	store := reviewstore.New(h.DB)
	err = store.Delete(ctx, rid, uid)
	if errors.Is(err, apperr.ErrForbidden) && authz.IsAdmin(r) {
		err = store.DeleteAny(ctx, rid)
	}
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("review deleted",
		zap.String("review_id", rid.Hex()),
		zap.String("by_user_id", uid.Hex()))

	webjson.Write(w, http.StatusNoContent, nil)
}
