// internal/app/features/authgoogle/handler.go

// Package authgoogle implements the Google OAuth sign-in flow. Accounts are
// created on first sign-in; an existing account with the same email simply
// gains Google as a sign-in path.
package authgoogle

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"github.com/voyagehq/voyagehub/internal/app/store/oauthstate"
	userstore "github.com/voyagehq/voyagehub/internal/app/store/users"
	"github.com/voyagehq/voyagehub/internal/app/system/apperr"
	"github.com/voyagehq/voyagehub/internal/app/system/auth"
	"github.com/voyagehq/voyagehub/internal/app/system/normalize"
	"github.com/voyagehq/voyagehub/internal/app/system/timeouts"
	"github.com/voyagehq/voyagehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// stateTTL bounds how long a login attempt may sit on Google's consent
// screen before the state expires.
const stateTTL = 10 * time.Minute

// Handler handles Google OAuth authentication.
type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	Sessions   *auth.SessionManager
	StateStore *oauthstate.Store

	ClientID     string
	ClientSecret string
	RedirectURL  string // e.g. "https://voyagehub.app/auth/google/callback"
}

// NewHandler creates a Google OAuth handler. baseURL is the externally
// visible origin the callback is registered under.
func NewHandler(
	db *mongo.Database,
	sm *auth.SessionManager,
	stateStore *oauthstate.Store,
	clientID, clientSecret, baseURL string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		DB:           db,
		Log:          logger,
		Sessions:     sm,
		StateStore:   stateStore,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  baseURL + "/auth/google/callback",
	}
}

func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// IsConfigured reports whether Google OAuth credentials are present.
func (h *Handler) IsConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}

// ServeLogin handles GET /auth/google: stores a one-time state value and
// redirects to Google's consent screen.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		h.Log.Warn("Google OAuth not configured")
		http.Redirect(w, r, "/login?error=google_not_configured", http.StatusSeeOther)
		return
	}

	state, err := generateState()
	if err != nil {
		h.Log.Error("failed to generate OAuth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	returnURL := query.Get(r, "return")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "save oauth state")
	defer cancel()

	expiresAt := time.Now().UTC().Add(stateTTL)
	if err := h.StateStore.Save(ctx, state, returnURL, expiresAt); err != nil {
		h.Log.Error("failed to save OAuth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	url := h.oauth2Config().AuthCodeURL(state, oauth2.AccessTypeOffline)

	h.Log.Debug("initiating Google OAuth flow",
		zap.String("return_url", returnURL))

	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// ServeCallback handles GET /auth/google/callback: validates the one-time
// state, exchanges the code, fetches the Google profile, finds or creates
// the matching account, and signs it in.
func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Log.Warn("Google OAuth error",
			zap.String("error", errParam),
			zap.String("description", r.URL.Query().Get("error_description")))
		http.Redirect(w, r, "/login?error=google_denied", http.StatusSeeOther)
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		h.Log.Warn("missing OAuth state parameter")
		http.Redirect(w, r, "/login?error=invalid_state", http.StatusSeeOther)
		return
	}

	stateCtx, cancel := timeouts.WithTimeout(ctx, timeouts.Short(), h.Log, "validate oauth state")
	defer cancel()

	returnURL, valid, err := h.StateStore.Validate(stateCtx, state)
	if err != nil {
		h.Log.Error("failed to validate OAuth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}
	if !valid {
		h.Log.Warn("invalid or expired OAuth state")
		http.Redirect(w, r, "/login?error=invalid_state", http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.Log.Warn("missing OAuth code parameter")
		http.Redirect(w, r, "/login?error=invalid_code", http.StatusSeeOther)
		return
	}

	token, err := h.oauth2Config().Exchange(ctx, code)
	if err != nil {
		h.Log.Error("failed to exchange OAuth code", zap.Error(err))
		http.Redirect(w, r, "/login?error=token_exchange", http.StatusSeeOther)
		return
	}

	googleUser, err := fetchGoogleUserInfo(ctx, token)
	if err != nil {
		h.Log.Error("failed to fetch Google user info", zap.Error(err))
		http.Redirect(w, r, "/login?error=user_info", http.StatusSeeOther)
		return
	}
	if !googleUser.EmailVerified {
		h.Log.Warn("Google account email not verified",
			zap.String("email", googleUser.Email))
		http.Redirect(w, r, "/login?error=email_unverified", http.StatusSeeOther)
		return
	}

	u, err := h.findOrCreateUser(ctx, googleUser)
	if err != nil {
		if errors.Is(err, errUserDisabled) {
			http.Redirect(w, r, "/login?error=account_disabled", http.StatusSeeOther)
			return
		}
		h.Log.Error("failed to resolve Google account", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	if err := h.Sessions.SignIn(w, r, auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.DisplayName,
		Email: u.Email,
		Role:  u.Role,
	}); err != nil {
		h.Log.Error("save session failed", zap.Error(err),
			zap.String("user_id", u.ID.Hex()))
		http.Redirect(w, r, "/login?error=session", http.StatusSeeOther)
		return
	}

	h.Log.Info("user signed in",
		zap.String("user_id", u.ID.Hex()),
		zap.String("auth_method", models.AuthMethodGoogle))

	http.Redirect(w, r, urlutil.SafeReturn(returnURL, "", "/"), http.StatusSeeOther)
}

var errUserDisabled = errors.New("account disabled")

// googleUserInfo is Google's userinfo payload.
type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// fetchGoogleUserInfo retrieves the profile behind the token.
func fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	return &info, nil
}

// findOrCreateUser resolves the Google profile to an account. Matching is by
// folded email; a brand-new email gets a fresh traveler account.
func (h *Handler) findOrCreateUser(ctx context.Context, googleUser *googleUserInfo) (*models.User, error) {
	store := userstore.New(h.DB)

	lookupCtx, cancel := timeouts.WithTimeout(ctx, timeouts.Medium(), h.Log, "google account lookup")
	defer cancel()

	u, err := store.GetByEmail(lookupCtx, googleUser.Email)
	switch {
	case err == nil:
		if u.Status == models.StatusDisabled {
			return nil, errUserDisabled
		}
		return u, nil
	case errors.Is(err, apperr.ErrNotFound):
		// First sign-in: create the account.
	default:
		return nil, err
	}

	name := normalize.Name(googleUser.Name)
	if name == "" {
		name = googleUser.Email
	}
	created, err := store.Create(lookupCtx, models.User{
		DisplayName: name,
		Email:       googleUser.Email,
		AuthMethod:  models.AuthMethodGoogle,
		Role:        models.RoleTraveler,
		Status:      models.StatusActive,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			// Raced with a concurrent first sign-in; the account exists now.
			return store.GetByEmail(lookupCtx, googleUser.Email)
		}
		return nil, err
	}

	h.Log.Info("account created from Google profile",
		zap.String("user_id", created.ID.Hex()),
		zap.String("email", created.Email))

	return &created, nil
}

// generateState creates a cryptographically secure random state string.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
