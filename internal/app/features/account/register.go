// internal/app/features/account/register.go
package account

import (
	"errors"
	"net/http"

	userstore "github.com/voyagehq/voyagehub/internal/app/store/users"
	"github.com/voyagehq/voyagehub/internal/app/system/apperr"
	"github.com/voyagehq/voyagehub/internal/app/system/htmlsanitize"
	"github.com/voyagehq/voyagehub/internal/app/system/inputval"
	"github.com/voyagehq/voyagehub/internal/app/system/limits"
	"github.com/voyagehq/voyagehub/internal/app/system/normalize"
	"github.com/voyagehq/voyagehub/internal/app/system/timeouts"
	"github.com/voyagehq/voyagehub/internal/app/system/webjson"
	"github.com/voyagehq/voyagehub/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	DisplayName string `json:"display_name" validate:"required,max=100" label:"Display name"`
	Email       string `json:"email" validate:"required,email,max=254" label:"Email"`
	Password    string `json:"password" validate:"required,min=8,max=128" label:"Password"`
}

// userResponse is the wire shape for the signed-in account.
type userResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:          u.ID.Hex(),
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Role:        u.Role,
	}
}

// HandleRegister handles POST /account/register. A successful registration
// signs the new account in immediately.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := webjson.Decode(w, r, &req, limits.MaxJSONBodySize); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	req.DisplayName = htmlsanitize.Plain(normalize.Name(req.DisplayName))
	req.Email = normalize.Email(req.Email)
	if res := inputval.Validate(&req); res.HasErrors() {
		webjson.WriteError(w, h.Log, validationError(res))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "register account")
	defer cancel()

	created, err := userstore.New(h.DB).Create(ctx, models.User{
		DisplayName:  req.DisplayName,
		Email:        req.Email,
		PasswordHash: string(hash),
		AuthMethod:   models.AuthMethodPassword,
		Role:         models.RoleTraveler,
		Status:       models.StatusActive,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			webjson.WriteError(w, h.Log, apperr.Validation("email", userstore.ErrDuplicateEmail.Error()))
			return
		}
		webjson.WriteError(w, h.Log, err)
		return
	}

	if err := h.Sessions.SignIn(w, r, sessionUserFor(&created)); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("account registered",
		zap.String("user_id", created.ID.Hex()),
		zap.String("email", created.Email))

	webjson.Write(w, http.StatusCreated, toUserResponse(&created))
}
