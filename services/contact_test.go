package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/harborview-realty/estate_api/dto"
	"github.com/harborview-realty/estate_api/model"
	"github.com/harborview-realty/estate_api/services/repositories"
	"github.com/harborview-realty/estate_api/shared"
)

func newContactTestService(t *testing.T, secret, verifyURL string) *ContactService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.ContactSubmission{}))

	return &ContactService{
		emailSvc:        &EmailService{},
		contactRepo:     repositories.NewContactRepository(db),
		recaptchaSecret: secret,
		verifyURL:       verifyURL,
		httpClient:      &http.Client{Timeout: time.Second},
	}
}

func recaptchaStub(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.NotEmpty(t, r.Form.Get("secret"))
		assert.NotEmpty(t, r.Form.Get("response"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestContactSubmitStoresSubmission(t *testing.T) {
	svc := newContactTestService(t, "", "")

	resp, err := svc.Submit(dto.ContactRequest{
		Name:    "  Jamie Buyer  ",
		Email:   "jamie@example.com",
		Message: "Is the villa still available?",
	}, "10.1.2.3")
	require.NoError(t, err)
	assert.True(t, resp.Success)

	submissions, total, err := svc.List(1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, submissions, 1)
	assert.Equal(t, "Jamie Buyer", submissions[0].Name)
	assert.Equal(t, "10.1.2.3", submissions[0].ClientIP)
	assert.Nil(t, submissions[0].RecaptchaScore)
}

func TestContactSubmitVerifiesRecaptcha(t *testing.T) {
	server := recaptchaStub(t, `{"success": true, "score": 0.9}`)
	svc := newContactTestService(t, "secret", server.URL)

	_, err := svc.Submit(dto.ContactRequest{
		Name:           "Jamie",
		Email:          "jamie@example.com",
		Message:        "Hello",
		RecaptchaToken: "token",
	}, "10.1.2.3")
	require.NoError(t, err)

	submissions, _, err := svc.List(1, 10)
	require.NoError(t, err)
	require.Len(t, submissions, 1)
	require.NotNil(t, submissions[0].RecaptchaScore)
	assert.Equal(t, 0.9, *submissions[0].RecaptchaScore)
}

func TestContactSubmitRejectsLowScore(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"low score", `{"success": true, "score": 0.2}`},
		{"not success", `{"success": false, "error-codes": ["invalid-input-response"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := recaptchaStub(t, tt.body)
			svc := newContactTestService(t, "secret", server.URL)

			_, err := svc.Submit(dto.ContactRequest{
				Name:           "Bot",
				Email:          "bot@example.com",
				Message:        "spam",
				RecaptchaToken: "token",
			}, "10.9.9.9")
			require.Error(t, err)

			appErr, ok := shared.GetAppError(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusForbidden, appErr.StatusCode)

			// Rejected submissions are never stored.
			_, total, listErr := svc.List(1, 10)
			require.NoError(t, listErr)
			assert.Equal(t, int64(0), total)
		})
	}
}

func TestContactSubmitSkipsVerificationWithoutSecret(t *testing.T) {
	// Token present but no secret configured: verification is skipped
	// rather than failing closed.
	svc := newContactTestService(t, "", "")

	_, err := svc.Submit(dto.ContactRequest{
		Name:           "Jamie",
		Email:          "jamie@example.com",
		Message:        "Hello",
		RecaptchaToken: "token",
	}, "10.1.2.3")
	assert.NoError(t, err)
}
