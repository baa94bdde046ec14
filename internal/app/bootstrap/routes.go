// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	accountfeature "github.com/voyagehq/voyagehub/internal/app/features/account"
	authgooglefeature "github.com/voyagehq/voyagehub/internal/app/features/authgoogle"
	destinationsfeature "github.com/voyagehq/voyagehub/internal/app/features/destinations"
	favoritesfeature "github.com/voyagehq/voyagehub/internal/app/features/favorites"
	groupsfeature "github.com/voyagehq/voyagehub/internal/app/features/groups"
	healthfeature "github.com/voyagehq/voyagehub/internal/app/features/health"
	itinerariesfeature "github.com/voyagehq/voyagehub/internal/app/features/itineraries"
	reviewsfeature "github.com/voyagehq/voyagehub/internal/app/features/reviews"
	"github.com/voyagehq/voyagehub/internal/app/store/oauthstate"
	"github.com/voyagehq/voyagehub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// Startup have completed. The session middleware runs globally so every
// handler can read the current user; each feature router guards its own
// endpoints.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	db := deps.MongoDatabase

	r := chi.NewRouter()
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Registration, password sign-in, profile.
	accountHandler := accountfeature.NewHandler(db, logger, sessionMgr)
	r.Mount("/account", accountfeature.Routes(accountHandler))

	// Google sign-in.
	googleHandler := authgooglefeature.NewHandler(db, sessionMgr, oauthstate.New(db),
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, logger)
	r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))

	// Group collaboration.
	groupsHandler := groupsfeature.NewHandler(db, logger)
	r.Mount("/groups", groupsfeature.Routes(groupsHandler, sessionMgr))

	// Destination catalog, with per-destination reviews nested inside.
	destinationsHandler := destinationsfeature.NewHandler(db, logger)
	destinationsRouter := destinationsfeature.Routes(destinationsHandler, sessionMgr)

	reviewsHandler := reviewsfeature.NewHandler(db, logger)
	destinationsRouter.Mount("/{id}/reviews", reviewsfeature.Routes(reviewsHandler, sessionMgr))
	r.Mount("/destinations", destinationsRouter)

	// Trip plans.
	itinerariesHandler := itinerariesfeature.NewHandler(db, logger)
	r.Mount("/itineraries", itinerariesfeature.Routes(itinerariesHandler, sessionMgr))

	// Saved destinations.
	favoritesHandler := favoritesfeature.NewHandler(db, logger)
	r.Mount("/favorites", favoritesfeature.Routes(favoritesHandler, sessionMgr))

	return r, nil
}
