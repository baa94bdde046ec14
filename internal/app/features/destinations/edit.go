// internal/app/features/destinations/edit.go
package destinations

import (
	"errors"
	"net/http"

	destinationstore "github.com/voyagehq/voyagehub/internal/app/store/destinations"
	"github.com/voyagehq/voyagehub/internal/app/system/apperr"
	"github.com/voyagehq/voyagehub/internal/app/system/htmlsanitize"
	"github.com/voyagehq/voyagehub/internal/app/system/inputval"
	"github.com/voyagehq/voyagehub/internal/app/system/limits"
	"github.com/voyagehq/voyagehub/internal/app/system/normalize"
	"github.com/voyagehq/voyagehub/internal/app/system/timeouts"
	"github.com/voyagehq/voyagehub/internal/app/system/webjson"
	"github.com/voyagehq/voyagehub/internal/domain/models"
	"go.uber.org/zap"
)

type createDestinationRequest struct {
	Name    string   `json:"name" validate:"required,max=200" label:"Name"`
	Country string   `json:"country" validate:"required,max=100" label:"Country"`
	Summary string   `json:"summary" validate:"max=1000" label:"Summary"`
	Guide   string   `json:"guide" label:"Guide"`
	Photos  []string `json:"photos" label:"Photos"`
	Status  string   `json:"status" label:"Status"`
}

type updateDestinationRequest struct {
	Summary string   `json:"summary" validate:"max=1000" label:"Summary"`
	Guide   string   `json:"guide" label:"Guide"`
	Photos  []string `json:"photos" label:"Photos"`
}

// HandleCreate handles POST /destinations. Admin only; the route guard
// enforces the role. The guide keeps safe formatting markup, everything
// else is stripped to plain text.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createDestinationRequest
	if err := webjson.Decode(w, r, &req, limits.MaxGuideBodySize); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	req.Name = htmlsanitize.Plain(normalize.Name(req.Name))
	req.Country = htmlsanitize.Plain(normalize.Name(req.Country))
	req.Summary = htmlsanitize.Plain(req.Summary)
	req.Guide = htmlsanitize.Sanitize(req.Guide)
	if res := inputval.Validate(&req); res.HasErrors() {
		webjson.WriteError(w, h.Log, validationError(res))
		return
	}
	if req.Status != "" && req.Status != models.DestinationPublished && req.Status != models.DestinationDraft {
		webjson.WriteError(w, h.Log, apperr.Validation("status", "Status must be published or draft."))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create destination")
	defer cancel()

	created, err := destinationstore.New(h.DB).Create(ctx, models.Destination{
		Name:    req.Name,
		Country: req.Country,
		Summary: req.Summary,
		Guide:   req.Guide,
		Photos:  req.Photos,
		Status:  req.Status,
	})
	if err != nil {
		if errors.Is(err, destinationstore.ErrDuplicateDestination) {
			webjson.WriteError(w, h.Log, apperr.Validation("name", err.Error()))
			return
		}
		webjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("destination created",
		zap.String("destination_id", created.ID.Hex()),
		zap.String("name", created.Name))

	webjson.Write(w, http.StatusCreated, created)
}

// HandleUpdate handles PUT /destinations/{id}. Admin only. Name and country
// are fixed at creation; only the content fields change.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	did, err := destinationID(r)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	var req updateDestinationRequest
	if err := webjson.Decode(w, r, &req, limits.MaxGuideBodySize); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	req.Summary = htmlsanitize.Plain(req.Summary)
	req.Guide = htmlsanitize.Sanitize(req.Guide)
	if res := inputval.Validate(&req); res.HasErrors() {
		webjson.WriteError(w, h.Log, validationError(res))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update destination")
	defer cancel()

	store := destinationstore.New(h.DB)
	if err := store.UpdateContent(ctx, did, req.Summary, req.Guide, req.Photos); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	d, err := store.GetByID(ctx, did)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("destination updated",
		zap.String("destination_id", did.Hex()))

	webjson.Write(w, http.StatusOK, d)
}
