package services

import (
	"errors"
	"time"

	"github.com/harborview-realty/estate_api/dto"
	"github.com/harborview-realty/estate_api/model"

	"github.com/alphabatem/common/context"
	"gorm.io/gorm"
)

// SettingsService manages the singleton site-settings row.
type SettingsService struct {
	context.DefaultService

	sqlSvc *PostgresService
}

const SETTINGS_SVC = "settings_svc"

func (svc SettingsService) Id() string {
	return SETTINGS_SVC
}

func (svc *SettingsService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *SettingsService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	return nil
}

func (svc *SettingsService) Get() (*model.SiteSettings, error) {
	var settings model.SiteSettings
	err := svc.sqlSvc.Db().Where("id = ?", model.SiteSettingsID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.SiteSettings{
			ID:       model.SiteSettingsID,
			SiteName: "Harborview Realty",
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (svc *SettingsService) Update(req dto.UpdateSettingsRequest) (*model.SiteSettings, error) {
	settings, err := svc.Get()
	if err != nil {
		return nil, err
	}

	if req.SiteName != "" {
		settings.SiteName = req.SiteName
	}
	if req.Tagline != "" {
		settings.Tagline = req.Tagline
	}
	if req.ContactEmail != "" {
		settings.ContactEmail = req.ContactEmail
	}
	if req.PhoneNumber != "" {
		settings.PhoneNumber = req.PhoneNumber
	}
	if req.Address != "" {
		settings.Address = req.Address
	}
	if req.FacebookURL != "" {
		settings.FacebookURL = req.FacebookURL
	}
	if req.InstagramURL != "" {
		settings.InstagramURL = req.InstagramURL
	}
	if req.LinkedinURL != "" {
		settings.LinkedinURL = req.LinkedinURL
	}
	if req.HeroTitle != "" {
		settings.HeroTitle = req.HeroTitle
	}
	if req.HeroSubtitle != "" {
		settings.HeroSubtitle = req.HeroSubtitle
	}

	settings.UpdatedAt = time.Now()
	if err := svc.sqlSvc.Db().Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}
