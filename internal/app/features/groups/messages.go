// internal/app/features/groups/messages.go
package groups

import (
	"net/http"

	"github.com/voyagehq/voyagehub/internal/app/policy/groupaccess"
	groupstore "github.com/voyagehq/voyagehub/internal/app/store/groups"
	"github.com/voyagehq/voyagehub/internal/app/system/apperr"
	"github.com/voyagehq/voyagehub/internal/app/system/htmlsanitize"
	"github.com/voyagehq/voyagehub/internal/app/system/inputval"
	"github.com/voyagehq/voyagehub/internal/app/system/limits"
	"github.com/voyagehq/voyagehub/internal/app/system/msgwindow"
	"github.com/voyagehq/voyagehub/internal/app/system/paging"
	"github.com/voyagehq/voyagehub/internal/app/system/timeouts"
	"github.com/voyagehq/voyagehub/internal/app/system/webjson"
	"github.com/voyagehq/voyagehub/internal/domain/models"
	"go.uber.org/zap"
)

// HandleSendMessage handles POST /groups/{id}/messages. Members only, even
// for public groups. An omitted message type defaults to text.
func (h *Handler) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	gid, err := groupID(r)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	uid, ok := currentUserID(r)
	if !ok {
		webjson.WriteError(w, h.Log, apperr.ErrForbidden)
		return
	}

	var req sendMessageRequest
	if err := webjson.Decode(w, r, &req, limits.MaxJSONBodySize); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	req.Content = htmlsanitize.Plain(req.Content)
	if req.MessageType == "" {
		req.MessageType = models.MessageTypeText
	}
	if res := inputval.Validate(&req); res.HasErrors() {
		webjson.WriteError(w, h.Log, validationError(res))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "send message")
	defer cancel()

	msg, err := groupstore.New(h.DB).AppendMessage(ctx, gid, uid, req.Content, req.MessageType)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("message sent",
		zap.String("group_id", gid.Hex()),
		zap.String("message_id", msg.ID.Hex()),
		zap.String("sender_id", uid.Hex()),
		zap.String("message_type", msg.MessageType))

	webjson.Write(w, http.StatusCreated, msg)
}

// ServeGroupMessages handles GET /groups/{id}/messages. The thread follows
// group visibility: anyone signed in can read a public group's thread, a
// private group's thread is members-only (and reads as not-found).
//
// Page 1 holds the newest messages; within a page messages run oldest to
// newest so a client renders them top to bottom.
func (h *Handler) ServeGroupMessages(w http.ResponseWriter, r *http.Request) {
	gid, err := groupID(r)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	uid, ok := currentUserID(r)
	if !ok {
		webjson.WriteError(w, h.Log, apperr.ErrForbidden)
		return
	}

	page := paging.ParsePage(r)
	limit := paging.ParseLimit(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "group messages")
	defer cancel()

	g, err := groupstore.New(h.DB).GetByID(ctx, gid)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	if !groupaccess.CanReadMessages(g, uid) {
		// Only private groups deny reads, and their existence stays hidden.
		webjson.WriteError(w, h.Log, apperr.ErrNotFound)
		return
	}

	win := msgwindow.Window(g.Messages, page, limit)
	webjson.Write(w, http.StatusOK, messagesResponse{
		Messages:      win.Window,
		TotalMessages: win.TotalMessages,
		HasMore:       win.HasMore,
		Page:          page,
		Limit:         limit,
	})
}
