package seeders

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/harborview-realty/estate_api/model"
)

// SettingsSeeder persists the site settings singleton so the admin surface
// has a row to edit.
type SettingsSeeder struct {
	db *gorm.DB
}

func NewSettingsSeeder(db *gorm.DB) *SettingsSeeder {
	return &SettingsSeeder{db: db}
}

func (s *SettingsSeeder) SeedSettings() error {
	var existing model.SiteSettings
	err := s.db.Where("id = ?", model.SiteSettingsID).First(&existing).Error
	if err == nil {
		log.Info().Msg("Site settings already exist, skipping")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	settings := model.SiteSettings{
		ID:        model.SiteSettingsID,
		SiteName:  "Harborview Realty",
		Tagline:   "Coastal homes, local expertise",
		HeroTitle: "Find your place on the water",
		UpdatedAt: time.Now(),
	}
	if err := s.db.Create(&settings).Error; err != nil {
		return err
	}

	log.Info().Msg("Created default site settings")
	return nil
}
