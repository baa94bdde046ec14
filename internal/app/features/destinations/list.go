// internal/app/features/destinations/list.go
package destinations

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	destinationstore "github.com/voyagehq/voyagehub/internal/app/store/destinations"
	"github.com/voyagehq/voyagehub/internal/app/system/normalize"
	"github.com/voyagehq/voyagehub/internal/app/system/paging"
	"github.com/voyagehq/voyagehub/internal/app/system/timeouts"
	"github.com/voyagehq/voyagehub/internal/app/system/webjson"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/voyagehq/voyagehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// listItem is one row of the catalog listing; the long-form guide stays out
// of the list payload.
type listItem struct {
	ID      primitive.ObjectID `json:"id"`
	Name    string             `json:"name"`
	Country string             `json:"country"`
	Summary string             `json:"summary"`
	Photos  []string           `json:"photos,omitempty"`
}

type catalogResponse struct {
	Destinations []listItem `json:"destinations"`
	Total        int64      `json:"total"`
	HasPrev      bool       `json:"has_prev"`
	HasNext      bool       `json:"has_next"`
	PrevCursor   string     `json:"prev_cursor,omitempty"`
	NextCursor   string     `json:"next_cursor,omitempty"`
}

// ServeCatalog handles GET /destinations: published destinations in folded
// name order, keyset-paged via before/after cursors. An optional country
// filter narrows the catalog.
func (h *Handler) ServeCatalog(w http.ResponseWriter, r *http.Request) {
	after := query.Get(r, "after")
	before := query.Get(r, "before")
	country := normalize.QueryParam(query.Get(r, "country"))

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "destination catalog")
	defer cancel()

	store := destinationstore.New(h.DB)

	base := bson.M{"status": models.DestinationPublished}
	if country != "" {
		base["country_ci"] = text.Fold(country)
	}

	total, err := store.Count(ctx, base)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	filter := bson.M{}
	for k, v := range base {
		filter[k] = v
	}

	findOpts := options.Find().SetProjection(bson.M{"guide": 0})
	cfg := paging.ConfigureKeyset(before, after)
	cfg.ApplyToFind(findOpts, "name_ci")
	if window := cfg.KeysetWindow("name_ci"); window != nil {
		filter["$or"] = window["$or"]
	}

	ds, err := store.Find(ctx, filter, findOpts)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	page := paging.TrimPage(&ds, before, after)
	if before != "" {
		paging.Reverse(ds)
	}

	prev, next := paging.BuildCursors(ds,
		func(d models.Destination) string { return d.NameCI },
		func(d models.Destination) primitive.ObjectID { return d.ID })

	resp := catalogResponse{
		Destinations: make([]listItem, 0, len(ds)),
		Total:        total,
		HasPrev:      page.HasPrev,
		HasNext:      page.HasNext,
	}
	if page.HasPrev {
		resp.PrevCursor = prev
	}
	if page.HasNext {
		resp.NextCursor = next
	}
	for _, d := range ds {
		resp.Destinations = append(resp.Destinations, listItem{
			ID:      d.ID,
			Name:    d.Name,
			Country: d.Country,
			Summary: d.Summary,
			Photos:  d.Photos,
		})
	}
	webjson.Write(w, http.StatusOK, resp)
}
