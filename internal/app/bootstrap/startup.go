// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"

	"github.com/dalemusser/waffle/config"
	"github.com/voyagehq/voyagehub/internal/app/store/oauthstate"
	userstore "github.com/voyagehq/voyagehub/internal/app/store/users"
	"github.com/voyagehq/voyagehub/internal/app/system/apperr"
	"github.com/voyagehq/voyagehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.AdminEmail != "" {
		if err := ensureAdmin(ctx, deps, appCfg.AdminEmail, logger); err != nil {
			return err
		}
	}

	// One-time-use states normally delete themselves on validation; this
	// sweeps the ones abandoned on the consent screen.
	if removed, err := oauthstate.New(deps.MongoDatabase).CleanupExpired(ctx); err != nil {
		logger.Warn("oauth state cleanup failed", zap.Error(err))
	} else if removed > 0 {
		logger.Info("expired oauth states removed", zap.Int64("count", removed))
	}

	return nil
}

// ensureAdmin promotes the configured account to the admin role. The
// account must already exist; admins register like any other traveler
// first.
func ensureAdmin(ctx context.Context, deps DBDeps, email string, logger *zap.Logger) error {
	store := userstore.New(deps.MongoDatabase)

	u, err := store.GetByEmail(ctx, email)
	if errors.Is(err, apperr.ErrNotFound) {
		logger.Warn("admin account not found; register it and restart to promote",
			zap.String("email", email))
		return nil
	}
	if err != nil {
		return err
	}
	if u.Role == models.RoleAdmin {
		return nil
	}

	if _, err := deps.MongoDatabase.Collection("users").UpdateByID(ctx, u.ID,
		bson.M{"$set": bson.M{"role": models.RoleAdmin}}); err != nil {
		return err
	}

	logger.Info("account promoted to admin",
		zap.String("user_id", u.ID.Hex()),
		zap.String("email", email))
	return nil
}
