// internal/app/features/account/logout.go
package account

import (
	"net/http"

	"github.com/voyagehq/voyagehub/internal/app/system/webjson"
)

// HandleLogout handles POST /account/logout. Signing out when already
// signed out is a no-op, not an error.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.SignOut(w, r); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusNoContent, nil)
}
