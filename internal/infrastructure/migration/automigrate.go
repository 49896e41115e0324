package migration

import (
	"gorm.io/gorm"

	"github.com/licensehub/licensehub/internal/infrastructure/persistence/models"
)

const liveSKUIndex = "idx_pack_live_sku"

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.CustomerModel{},
		&models.PackModel{},
		&models.SubscriptionModel{},
		&models.SubscriptionEventModel{},
	}
}

// ensureLiveSKUIndex adds the unique index over live pack skus, which struct
// tags cannot express. Same DDL as scripts/*/00002_pack_live_sku.sql.
func ensureLiveSKUIndex(db *gorm.DB) error {
	switch db.Dialector.Name() {
	case "sqlite":
		return db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS " + liveSKUIndex +
			" ON subscription_packs (sku) WHERE deleted_at IS NULL").Error
	case "mysql":
		if db.Migrator().HasIndex(&models.PackModel{}, liveSKUIndex) {
			return nil
		}
		return db.Exec("ALTER TABLE subscription_packs" +
			" ADD COLUMN live_sku VARCHAR(64) GENERATED ALWAYS AS (IF(deleted_at IS NULL, sku, NULL)) VIRTUAL," +
			" ADD UNIQUE KEY " + liveSKUIndex + " (live_sku)").Error
	default:
		return nil
	}
}
