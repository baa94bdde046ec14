// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"github.com/voyagehq/voyagehub/internal/app/system/indexes"
	"go.uber.org/zap"
)

// EnsureSchema reconciles MongoDB indexes with the declared set.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		return err
	}
	logger.Info("MongoDB indexes reconciled")
	return nil
}
