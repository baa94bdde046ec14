// internal/app/features/itineraries/itineraries.go
package itineraries

import (
	"net/http"

	destinationstore "github.com/voyagehq/voyagehub/internal/app/store/destinations"
	itinerarystore "github.com/voyagehq/voyagehub/internal/app/store/itineraries"
	"github.com/voyagehq/voyagehub/internal/app/system/apperr"
	"github.com/voyagehq/voyagehub/internal/app/system/authz"
	"github.com/voyagehq/voyagehub/internal/app/system/htmlsanitize"
	"github.com/voyagehq/voyagehub/internal/app/system/inputval"
	"github.com/voyagehq/voyagehub/internal/app/system/limits"
	"github.com/voyagehq/voyagehub/internal/app/system/normalize"
	"github.com/voyagehq/voyagehub/internal/app/system/paging"
	"github.com/voyagehq/voyagehub/internal/app/system/timeouts"
	"github.com/voyagehq/voyagehub/internal/app/system/webjson"
	"github.com/voyagehq/voyagehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// maxItineraryDays bounds how many day entries one plan may carry.
const maxItineraryDays = 60

type dayEntry struct {
	DayNumber     int    `json:"day_number"`
	DestinationID string `json:"destination_id"`
	Activities    string `json:"activities"`
}

type itineraryRequest struct {
	Title    string     `json:"title" validate:"required,max=200" label:"Title"`
	Notes    string     `json:"notes" validate:"max=2000" label:"Notes"`
	IsPublic bool       `json:"is_public"`
	Days     []dayEntry `json:"days"`
}

type itineraryListResponse struct {
	Itineraries []models.Itinerary `json:"itineraries"`
	Page        int                `json:"page,omitempty"`
	Limit       int                `json:"limit,omitempty"`
}

// parseDays validates and converts the day entries: day numbers must run
// 1..n in order, and every destination must exist.
func (h *Handler) parseDays(r *http.Request, entries []dayEntry) ([]models.ItineraryDay, error) {
	if len(entries) > maxItineraryDays {
		return nil, apperr.Validation("days", "An itinerary can cover at most 60 days.")
	}

	days := make([]models.ItineraryDay, 0, len(entries))
	ids := make([]primitive.ObjectID, 0, len(entries))
	for i, e := range entries {
		if e.DayNumber != i+1 {
			return nil, apperr.Validation("days", "Day numbers must run 1, 2, 3... in order.")
		}
		did, err := primitive.ObjectIDFromHex(e.DestinationID)
		if err != nil {
			return nil, apperr.Validation("days", "Each day needs a valid destination.")
		}
		days = append(days, models.ItineraryDay{
			DayNumber:     e.DayNumber,
			DestinationID: did,
			Activities:    htmlsanitize.Plain(e.Activities),
		})
		ids = append(ids, did)
	}
	if len(ids) == 0 {
		return days, nil
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "verify itinerary destinations")
	defer cancel()

	count, err := destinationstore.New(h.DB).Count(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	unique := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	if count != int64(len(unique)) {
		return nil, apperr.Validation("days", "One or more destinations do not exist.")
	}
	return days, nil
}

// HandleCreate handles POST /itineraries.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	uid := authz.UserID(r)
	if uid == primitive.NilObjectID {
		webjson.WriteError(w, h.Log, apperr.ErrForbidden)
		return
	}

	var req itineraryRequest
	if err := webjson.Decode(w, r, &req, limits.MaxJSONBodySize); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	req.Title = htmlsanitize.Plain(normalize.Name(req.Title))
	req.Notes = htmlsanitize.Plain(req.Notes)
	if res := inputval.Validate(&req); res.HasErrors() {
		webjson.WriteError(w, h.Log, validationError(res))
		return
	}
	days, err := h.parseDays(r, req.Days)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create itinerary")
	defer cancel()

	created, err := itinerarystore.New(h.DB).Create(ctx, models.Itinerary{
		OwnerID:  uid,
		Title:    req.Title,
		Notes:    req.Notes,
		IsPublic: req.IsPublic,
		Days:     days,
	})
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("itinerary created",
		zap.String("itinerary_id", created.ID.Hex()),
		zap.String("owner_id", uid.Hex()),
		zap.Int("days", len(created.Days)))

	webjson.Write(w, http.StatusCreated, created)
}

// ServeDetail handles GET /itineraries/{id}: visible to the owner, or to
// anyone when public. Private plans report not-found to strangers.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	iid, err := itineraryID(r)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "itinerary detail")
	defer cancel()

	it, err := itinerarystore.New(h.DB).GetByID(ctx, iid)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	if !it.IsPublic && it.OwnerID != authz.UserID(r) {
		webjson.WriteError(w, h.Log, apperr.ErrNotFound)
		return
	}

	webjson.Write(w, http.StatusOK, it)
}

// ServeMine handles GET /itineraries/mine.
func (h *Handler) ServeMine(w http.ResponseWriter, r *http.Request) {
	uid := authz.UserID(r)
	if uid == primitive.NilObjectID {
		webjson.WriteError(w, h.Log, apperr.ErrForbidden)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "my itineraries")
	defer cancel()

	its, err := itinerarystore.New(h.DB).ListByOwner(ctx, uid)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	if its == nil {
		its = []models.Itinerary{}
	}
	webjson.Write(w, http.StatusOK, itineraryListResponse{Itineraries: its})
}

// ServePublic handles GET /itineraries: public plans, newest first.
func (h *Handler) ServePublic(w http.ResponseWriter, r *http.Request) {
	page := paging.ParsePage(r)
	limit := paging.ParseLimit(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "public itineraries")
	defer cancel()

	its, err := itinerarystore.New(h.DB).ListPublic(ctx, page, limit)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	if its == nil {
		its = []models.Itinerary{}
	}
	webjson.Write(w, http.StatusOK, itineraryListResponse{Itineraries: its, Page: page, Limit: limit})
}

// HandleUpdate handles PUT /itineraries/{id}. Owner only; the whole
// editable surface is replaced.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	iid, err := itineraryID(r)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	uid := authz.UserID(r)
	if uid == primitive.NilObjectID {
		webjson.WriteError(w, h.Log, apperr.ErrForbidden)
		return
	}

	var req itineraryRequest
	if err := webjson.Decode(w, r, &req, limits.MaxJSONBodySize); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	req.Title = htmlsanitize.Plain(normalize.Name(req.Title))
	req.Notes = htmlsanitize.Plain(req.Notes)
	if res := inputval.Validate(&req); res.HasErrors() {
		webjson.WriteError(w, h.Log, validationError(res))
		return
	}
	days, err := h.parseDays(r, req.Days)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update itinerary")
	defer cancel()

	store := itinerarystore.New(h.DB)
	if err := store.Update(ctx, iid, uid, req.Title, req.Notes, req.IsPublic, days); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	it, err := store.GetByID(ctx, iid)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	webjson.Write(w, http.StatusOK, it)
}

// HandleDelete handles DELETE /itineraries/{id}. Owner only.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	iid, err := itineraryID(r)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	uid := authz.UserID(r)
	if uid == primitive.NilObjectID {
		webjson.WriteError(w, h.Log, apperr.ErrForbidden)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete itinerary")
	defer cancel()

	if err := itinerarystore.New(h.DB).Delete(ctx, iid, uid); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("itinerary deleted",
		zap.String("itinerary_id", iid.Hex()),
		zap.String("owner_id", uid.Hex()))

	webjson.Write(w, http.StatusNoContent, nil)
}
