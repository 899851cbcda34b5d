package store

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// runMigrations runs all database migrations using gormigrate.
func runMigrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		// Migration 001: key-keyed state documents
		{
			ID: "001_state_documents",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&StateDocument{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("state_documents")
			},
		},

		// Migration 002: completed session records
		{
			ID: "002_session_records",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&SessionRecord{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("session_records")
			},
		},
	})

	return m.Migrate()
}
