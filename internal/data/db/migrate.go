package db

import (
	"gorm.io/gorm"

	"github.com/readling/readling-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// Identity + catalog
		&domain.User{},
		&domain.Book{},

		// Activity definitions (flat option arena)
		&domain.Activity{},
		&domain.ActivityOption{},

		// Attempt ledger (append-only)
		&domain.Attempt{},

		// Reading progress + gamification
		&domain.ReadingProgress{},
		&domain.Badge{},
		&domain.UserBadge{},
	)
}
