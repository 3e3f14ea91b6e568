package dto

type UpdateSettingsRequest struct {
	SiteName     string `json:"site_name" validate:"omitempty,max=200"`
	Tagline      string `json:"tagline" validate:"omitempty,max=300"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	PhoneNumber  string `json:"phone_number" validate:"omitempty,max=30"`
	Address      string `json:"address" validate:"omitempty,max=300"`
	FacebookURL  string `json:"facebook_url" validate:"omitempty,url"`
	InstagramURL string `json:"instagram_url" validate:"omitempty,url"`
	LinkedinURL  string `json:"linkedin_url" validate:"omitempty,url"`
	HeroTitle    string `json:"hero_title" validate:"omitempty,max=300"`
	HeroSubtitle string `json:"hero_subtitle" validate:"omitempty,max=500"`
}

func (r UpdateSettingsRequest) Validate() error {
	return validate.Struct(r)
}
