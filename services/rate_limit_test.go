package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborview-realty/estate_api/model"
)

func testClock(start time.Time) (func() time.Time, func(time.Duration)) {
	current := start
	now := func() time.Time { return current }
	advance := func(d time.Duration) { current = current.Add(d) }
	return now, advance
}

func TestRateLimitStoreFirstRequest(t *testing.T) {
	now, _ := testClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	store := NewRateLimitStore(now)
	cfg := model.RateLimitConfig{Requests: 5, Window: time.Minute}

	decision := store.Check("login:1.2.3.4", cfg)

	assert.True(t, decision.Allowed)
	assert.Equal(t, 4, decision.Remaining)
	assert.Equal(t, now().Add(time.Minute), decision.ResetTime)
}

func TestRateLimitStoreExhaustsQuota(t *testing.T) {
	now, _ := testClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	store := NewRateLimitStore(now)
	cfg := model.RateLimitConfig{Requests: 5, Window: time.Minute}

	for i := 1; i <= cfg.Requests; i++ {
		decision := store.Check("k", cfg)
		assert.True(t, decision.Allowed, "request %d should be allowed", i)
		assert.Equal(t, cfg.Requests-i, decision.Remaining)
	}

	decision := store.Check("k", cfg)
	assert.False(t, decision.Allowed)
	assert.Equal(t, 0, decision.Remaining)
}

func TestRateLimitStoreWindowExpiryResets(t *testing.T) {
	now, advance := testClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	store := NewRateLimitStore(now)
	cfg := model.RateLimitConfig{Requests: 2, Window: time.Minute}

	store.Check("k", cfg)
	store.Check("k", cfg)
	decision := store.Check("k", cfg)
	require.False(t, decision.Allowed)

	advance(time.Minute + time.Second)

	decision = store.Check("k", cfg)
	assert.True(t, decision.Allowed)
	assert.Equal(t, 1, decision.Remaining)
	assert.Equal(t, now().Add(time.Minute), decision.ResetTime)
}

func TestRateLimitStoreSeparateKeys(t *testing.T) {
	now, _ := testClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	store := NewRateLimitStore(now)
	cfg := model.RateLimitConfig{Requests: 1, Window: time.Minute}

	require.True(t, store.Check("a", cfg).Allowed)
	require.False(t, store.Check("a", cfg).Allowed)
	assert.True(t, store.Check("b", cfg).Allowed)
}

func TestRateLimitStoreSweep(t *testing.T) {
	now, advance := testClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	store := NewRateLimitStore(now)

	store.Check("short", model.RateLimitConfig{Requests: 5, Window: time.Minute})
	store.Check("long", model.RateLimitConfig{Requests: 5, Window: time.Hour})
	require.Equal(t, 2, store.Size())

	advance(2 * time.Minute)
	store.Sweep(now())

	assert.Equal(t, 1, store.Size())

	// An entry expiring exactly at sweep time is not strictly past.
	advance(58 * time.Minute)
	store.Sweep(now())
	assert.Equal(t, 1, store.Size())

	advance(time.Nanosecond)
	store.Sweep(now())
	assert.Equal(t, 0, store.Size())
}

func newTestRateLimitService(now func() time.Time) *RateLimitService {
	return &RateLimitService{
		store:     NewRateLimitStore(now),
		apiPrefix: "/api/",
		quotas: []PrefixQuota{
			{Prefix: "/api/users/login", Config: model.RateLimitConfig{Requests: 5, Window: time.Minute}},
			{Prefix: "/api/users/forgot-password", Config: model.RateLimitConfig{Requests: 3, Window: time.Minute}},
			{Prefix: "/api/users/reset-password", Config: model.RateLimitConfig{Requests: 5, Window: time.Minute}},
		},
		catchAll: model.RateLimitConfig{Requests: 60, Window: time.Minute},
	}
}

func newTestApp(svc *RateLimitService) *fiber.App {
	app := fiber.New()
	app.Use(svc.Middleware())
	app.All("/*", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func decodeBody(resp *http.Response, dest interface{}) error {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, dest)
}

func doRequest(t *testing.T, app *fiber.App, path string, headers map[string]string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestMiddlewareRejectsOverQuota(t *testing.T) {
	svc := newTestRateLimitService(time.Now)
	app := newTestApp(svc)
	headers := map[string]string{"X-Forwarded-For": "10.0.0.1"}

	for i := 0; i < 5; i++ {
		resp := doRequest(t, app, "/api/users/login", headers)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "5", resp.Header.Get("X-RateLimit-Limit"))
	}

	resp := doRequest(t, app, "/api/users/login", headers)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
	assert.NotEmpty(t, resp.Header.Get("X-RateLimit-Reset"))

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, decodeBody(resp, &body))
	assert.Equal(t, "Too many requests. Please try again later.", body.Error)
}

func TestMiddlewareBypassesNonAPIPaths(t *testing.T) {
	svc := newTestRateLimitService(time.Now)
	app := newTestApp(svc)

	for i := 0; i < 100; i++ {
		resp := doRequest(t, app, "/ping", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
	assert.Equal(t, 0, svc.Store().Size())
}

func TestMiddlewareCatchAllOmitsHeadersOnSuccess(t *testing.T) {
	svc := newTestRateLimitService(time.Now)
	app := newTestApp(svc)

	resp := doRequest(t, app, "/api/properties", map[string]string{"X-Forwarded-For": "10.0.0.2"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("X-RateLimit-Limit"))
	assert.Empty(t, resp.Header.Get("X-RateLimit-Remaining"))
}

func TestMiddlewareCatchAllQuota(t *testing.T) {
	svc := newTestRateLimitService(time.Now)
	app := newTestApp(svc)
	headers := map[string]string{"X-Forwarded-For": "10.0.0.3"}

	for i := 0; i < 60; i++ {
		resp := doRequest(t, app, fmt.Sprintf("/api/properties?page=%d", i), headers)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp := doRequest(t, app, "/api/properties", headers)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestMiddlewareQuotaKeysIsolatedPerPrefix(t *testing.T) {
	svc := newTestRateLimitService(time.Now)
	app := newTestApp(svc)
	headers := map[string]string{"X-Forwarded-For": "10.0.0.4"}

	for i := 0; i < 3; i++ {
		resp := doRequest(t, app, "/api/users/forgot-password", headers)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp := doRequest(t, app, "/api/users/forgot-password", headers)
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	// Exhausting one prefix quota does not touch siblings.
	resp = doRequest(t, app, "/api/users/login", headers)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestClientIPDerivation(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"forwarded single", map[string]string{"X-Forwarded-For": "1.2.3.4"}, "1.2.3.4"},
		{"forwarded list takes first", map[string]string{"X-Forwarded-For": "1.2.3.4, 5.6.7.8"}, "1.2.3.4"},
		{"forwarded list with spaces", map[string]string{"X-Forwarded-For": " 9.9.9.9 ,5.6.7.8"}, "9.9.9.9"},
		{"real ip fallback", map[string]string{"X-Real-IP": "2.3.4.5"}, "2.3.4.5"},
		{"forwarded wins over real ip", map[string]string{"X-Forwarded-For": "1.1.1.1", "X-Real-IP": "2.2.2.2"}, "1.1.1.1"},
		{"no headers", nil, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			var got string
			app.Get("/", func(c *fiber.Ctx) error {
				got = getClientIP(c)
				return c.SendString("ok")
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			_, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnonymousClientsShareBucket(t *testing.T) {
	svc := newTestRateLimitService(time.Now)
	app := newTestApp(svc)

	for i := 0; i < 5; i++ {
		resp := doRequest(t, app, "/api/users/login", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	// A different headerless client lands in the same "unknown" bucket.
	resp := doRequest(t, app, "/api/users/login", nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}
