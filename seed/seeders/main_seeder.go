package seeders

import (
	"gorm.io/gorm"
)

// MainSeeder coordinates the individual seeders.
type MainSeeder struct {
	db *gorm.DB
}

func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// SeedAll runs every seeder. Each one is idempotent so SeedAll is safe to
// re-run against a populated database.
func (s *MainSeeder) SeedAll() error {
	if err := NewAdminSeeder(s.db).SeedAdmin(); err != nil {
		return err
	}
	return NewSettingsSeeder(s.db).SeedSettings()
}

// SeedAdminOnly bootstraps just the admin account.
func (s *MainSeeder) SeedAdminOnly() error {
	return NewAdminSeeder(s.db).SeedAdmin()
}

// SeedSettingsOnly persists just the site settings singleton.
func (s *MainSeeder) SeedSettingsOnly() error {
	return NewSettingsSeeder(s.db).SeedSettings()
}
