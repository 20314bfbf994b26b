package migrate

import (
	"context"
	"fmt"

	"github.com/novamart/storefront-backend/pkg/config"
	"github.com/novamart/storefront-backend/pkg/db"
	"github.com/novamart/storefront-backend/pkg/db/models"
	"github.com/novamart/storefront-backend/pkg/logger"
)

// MaybeAutoRun prepares the schema on startup. SQLite deployments always use
// GORM auto-migration (the file may not exist yet); postgres only does so in
// dev with the flag enabled — production schemas are managed with goose.
func MaybeAutoRun(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.DB.IsSQLite() && !(cfg.App.IsDev() && cfg.FeatureFlags.AutoMigrate) {
		return nil
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "driver": cfg.DB.Driver})
	logg.Info(ctx, "running schema auto-migration")

	if err := client.DB().WithContext(ctx).AutoMigrate(
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.NewsletterSubscription{},
	); err != nil {
		return fmt.Errorf("auto-migrating schema: %w", err)
	}

	if cfg.FeatureFlags.SeedOnStart {
		seeded, err := SeedProducts(ctx, client)
		if err != nil {
			return fmt.Errorf("seeding products: %w", err)
		}
		if seeded {
			logg.Info(ctx, "seeded initial product catalog")
		}
	}

	logg.Info(ctx, "schema auto-migration completed")
	return nil
}
