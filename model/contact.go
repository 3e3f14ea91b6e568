package model

import "time"

// ContactSubmission keeps a copy of every contact-form message alongside the
// notification email, so inquiries survive mail-delivery hiccups.
type ContactSubmission struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"not null"`
	Email          string    `json:"email" gorm:"not null;index"`
	Message        string    `json:"message" gorm:"type:text;not null"`
	ClientIP       string    `json:"client_ip" gorm:"size:45"`
	RecaptchaScore *float64  `json:"recaptcha_score"`
	EmailSent      bool      `json:"email_sent" gorm:"default:false"`
	CreatedAt      time.Time `json:"created_at"`
}
