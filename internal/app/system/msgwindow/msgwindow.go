// internal/app/system/msgwindow/msgwindow.go

// Package msgwindow computes the paginated chat window for a group's message
// array.
//
// Messages are stored in creation order (oldest first), but the chat UI loads
// newest-first: page 1 is the most recent messages, page 2 the next-most-
// recent, and so on. Within each page the messages are returned in ascending
// chronological order so a client can render them top to bottom. Pages are
// therefore not globally chronological across page boundaries, only within
// a page.
package msgwindow

import (
	"sort"

	"github.com/voyagehq/voyagehub/internal/domain/models"
)

// Result is the outcome of one window computation.
type Result struct {
	Window        []models.GroupMessage // ascending within the page
	TotalMessages int
	HasMore       bool
}

// Window selects page (1-based) of size limit from msgs.
//
// Selection order is newest-first: messages are ranked by created_at
// descending, ties broken by insertion order with the most recently appended
// first. The selected slice is then reversed so the returned window is
// ascending. page < 1 is treated as 1; limit < 1 yields an empty window with
// correct totals.
func Window(msgs []models.GroupMessage, page, limit int) Result {
	if page < 1 {
		page = 1
	}

	total := len(msgs)
	if limit < 1 {
		return Result{Window: []models.GroupMessage{}, TotalMessages: total, HasMore: total > 0}
	}

	// Rank newest-first without disturbing the stored slice. Stable sort on a
	// reversed index walk keeps later-appended messages ahead of earlier ones
	// when created_at ties.
	desc := make([]models.GroupMessage, total)
	for i, m := range msgs {
		desc[total-1-i] = m
	}
	sort.SliceStable(desc, func(i, j int) bool {
		return desc[i].CreatedAt.After(desc[j].CreatedAt)
	})

	skip := (page - 1) * limit
	if skip >= total {
		return Result{Window: []models.GroupMessage{}, TotalMessages: total, HasMore: false}
	}

	end := skip + limit
	if end > total {
		end = total
	}
	window := make([]models.GroupMessage, end-skip)
	copy(window, desc[skip:end])

	// Ascending within the page.
	for i, j := 0, len(window)-1; i < j; i, j = i+1, j-1 {
		window[i], window[j] = window[j], window[i]
	}

	return Result{
		Window:        window,
		TotalMessages: total,
		HasMore:       skip+limit < total,
	}
}
