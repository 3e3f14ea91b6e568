package model

import "time"

// SiteSettings is a singleton row (ID is always "site") editable from the
// admin surface.
type SiteSettings struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	SiteName     string    `json:"site_name"`
	Tagline      string    `json:"tagline"`
	ContactEmail string    `json:"contact_email"`
	PhoneNumber  string    `json:"phone_number"`
	Address      string    `json:"address"`
	FacebookURL  string    `json:"facebook_url"`
	InstagramURL string    `json:"instagram_url"`
	LinkedinURL  string    `json:"linkedin_url"`
	HeroTitle    string    `json:"hero_title"`
	HeroSubtitle string    `json:"hero_subtitle"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const SiteSettingsID = "site"
