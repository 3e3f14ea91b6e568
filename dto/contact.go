package dto

type ContactRequest struct {
	Name           string `json:"name" validate:"required,max=200"`
	Email          string `json:"email" validate:"required,email"`
	Message        string `json:"message" validate:"required,max=5000"`
	RecaptchaToken string `json:"recaptcha_token"`
}

func (r ContactRequest) Validate() error {
	return validate.Struct(r)
}

type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
