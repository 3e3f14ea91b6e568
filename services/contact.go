package services

import (
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/harborview-realty/estate_api/dto"
	"github.com/harborview-realty/estate_api/model"
	"github.com/harborview-realty/estate_api/services/repositories"
	"github.com/harborview-realty/estate_api/shared"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
)

const recaptchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// reCAPTCHA v3 scores run 0.0 (bot) to 1.0 (human).
const recaptchaMinScore = 0.5

type ContactService struct {
	context.DefaultService

	sqlSvc   *PostgresService
	emailSvc *EmailService

	contactRepo *repositories.ContactRepository

	recaptchaSecret string
	verifyURL       string
	httpClient      *http.Client
}

const CONTACT_SVC = "contact_svc"

func (svc ContactService) Id() string {
	return CONTACT_SVC
}

func (svc *ContactService) Configure(ctx *context.Context) error {
	svc.recaptchaSecret = os.Getenv("RECAPTCHA_SECRET_KEY")
	svc.verifyURL = recaptchaVerifyURL
	svc.httpClient = &http.Client{Timeout: 10 * time.Second}
	return svc.DefaultService.Configure(ctx)
}

func (svc *ContactService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.emailSvc = svc.Service(EMAIL_SVC).(*EmailService)

	svc.contactRepo = repositories.NewContactRepository(svc.sqlSvc.Db())

	if svc.recaptchaSecret == "" {
		log.Warn("RECAPTCHA_SECRET_KEY not configured, skipping verification")
	}
	return nil
}

type recaptchaVerifyResponse struct {
	Success    bool     `json:"success"`
	Score      *float64 `json:"score,omitempty"`
	Action     string   `json:"action,omitempty"`
	Hostname   string   `json:"hostname,omitempty"`
	ErrorCodes []string `json:"error-codes,omitempty"`
}

// Submit validates and records a contact-form message, then forwards it to
// the site inbox.
func (svc *ContactService) Submit(req dto.ContactRequest, clientIP string) (*dto.ContactResponse, error) {
	var score *float64

	if req.RecaptchaToken != "" && svc.recaptchaSecret != "" {
		valid, s, err := svc.verifyRecaptcha(req.RecaptchaToken)
		if err != nil {
			log.WithError(err).Error("reCAPTCHA verification error")
			return nil, shared.ErrForbidden("Security verification failed. Please try again.")
		}
		if !valid {
			log.WithField("score", s).Warn("reCAPTCHA verification failed")
			return nil, shared.ErrForbidden("Security verification failed. Please try again.")
		}
		score = s
	}

	submission := &model.ContactSubmission{
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.TrimSpace(req.Email),
		Message:        strings.TrimSpace(req.Message),
		ClientIP:       clientIP,
		RecaptchaScore: score,
	}

	submission, err := svc.contactRepo.Create(submission)
	if err != nil {
		return nil, err
	}

	if err := svc.emailSvc.SendContactInquiryEmail(submission.Name, submission.Email, submission.Message); err != nil {
		// The submission is already stored; delivery failure is not
		// surfaced to the visitor.
		log.WithError(err).WithField("submission_id", submission.ID).Error("Failed to deliver contact inquiry email")
	} else {
		if err := svc.contactRepo.MarkEmailSent(submission.ID); err != nil {
			log.WithError(err).WithField("submission_id", submission.ID).Warn("Failed to mark submission as delivered")
		}
	}

	return &dto.ContactResponse{
		Success: true,
		Message: "We'll be in touch with you as soon as possible!",
	}, nil
}

func (svc *ContactService) List(page, limit int) ([]model.ContactSubmission, int64, error) {
	return svc.contactRepo.List(page, limit)
}

func (svc *ContactService) verifyRecaptcha(token string) (bool, *float64, error) {
	form := url.Values{}
	form.Set("secret", svc.recaptchaSecret)
	form.Set("response", token)

	resp, err := svc.httpClient.PostForm(svc.verifyURL, form)
	if err != nil {
		return false, nil, err
	}
	defer resp.Body.Close()

	var result recaptchaVerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, nil, err
	}

	valid := result.Success && (result.Score == nil || *result.Score >= recaptchaMinScore)
	return valid, result.Score, nil
}
