package services

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/harborview-realty/estate_api/model"
	log "github.com/sirupsen/logrus"
)

// RateLimitStore holds per-key sliding counters. It is an owned object
// rather than a package global so tests can build independent instances.
//
// The store is process-local: in a horizontally scaled deployment each
// instance enforces its own quota independently. Accepted coarsening for
// abuse mitigation, not exact accounting.
type RateLimitStore struct {
	mu      sync.Mutex
	entries map[string]*model.RateLimitEntry
	now     func() time.Time
}

func NewRateLimitStore(now func() time.Time) *RateLimitStore {
	if now == nil {
		now = time.Now
	}
	return &RateLimitStore{
		entries: make(map[string]*model.RateLimitEntry),
		now:     now,
	}
}

// Check admits or rejects one request for key under cfg. The whole
// read-modify-write runs under the store lock so concurrent requests for the
// same key cannot under-count.
func (s *RateLimitStore) Check(key string, cfg model.RateLimitConfig) model.RateLimitDecision {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, ok := s.entries[key]

	// No live entry, or the previous window has expired: start a fresh one.
	if !ok || entry.ResetTime.Before(now) {
		resetTime := now.Add(cfg.Window)
		s.entries[key] = &model.RateLimitEntry{Count: 1, ResetTime: resetTime}
		return model.RateLimitDecision{
			Allowed:   true,
			Remaining: cfg.Requests - 1,
			ResetTime: resetTime,
		}
	}

	entry.Count++

	remaining := cfg.Requests - entry.Count
	if remaining < 0 {
		remaining = 0
	}

	return model.RateLimitDecision{
		Allowed:   entry.Count <= cfg.Requests,
		Remaining: remaining,
		ResetTime: entry.ResetTime,
	}
}

// Sweep drops entries whose window ended strictly before now.
func (s *RateLimitStore) Sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, entry := range s.entries {
		if entry.ResetTime.Before(now) {
			delete(s.entries, key)
		}
	}
}

// Size reports the number of live entries.
func (s *RateLimitStore) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// PrefixQuota binds a path prefix to its quota. Quotas are kept in a slice,
// not a map: matching is first-prefix-wins in declaration order.
type PrefixQuota struct {
	Prefix string
	Config model.RateLimitConfig
}

type RateLimitService struct {
	context.DefaultService

	store    *RateLimitStore
	quotas   []PrefixQuota
	catchAll model.RateLimitConfig

	apiPrefix     string
	sweepInterval time.Duration
	stopSweep     chan struct{}
}

const RATE_LIMIT_SVC = "rate_limit_svc"

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *context.Context) error {
	svc.store = NewRateLimitStore(time.Now)
	svc.apiPrefix = "/api/"
	svc.sweepInterval = 5 * time.Minute
	svc.stopSweep = make(chan struct{})

	svc.quotas = []PrefixQuota{
		{Prefix: "/api/users/login", Config: model.RateLimitConfig{Requests: 5, Window: time.Minute}},
		{Prefix: "/api/users/forgot-password", Config: model.RateLimitConfig{Requests: 3, Window: time.Minute}},
		{Prefix: "/api/users/reset-password", Config: model.RateLimitConfig{Requests: 5, Window: time.Minute}},
	}
	svc.catchAll = model.RateLimitConfig{Requests: 60, Window: time.Minute}

	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	go svc.sweepLoop()
	return nil
}

func (svc *RateLimitService) Shutdown() {
	close(svc.stopSweep)
}

// Store exposes the underlying store, mainly for tests.
func (svc *RateLimitService) Store() *RateLimitStore {
	return svc.store
}

func (svc *RateLimitService) sweepLoop() {
	ticker := time.NewTicker(svc.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			svc.store.Sweep(now)
		case <-svc.stopSweep:
			return
		}
	}
}

// Middleware applies the configured quotas. Paths outside the API prefix
// pass through untouched; configured prefixes get limit headers on success;
// the catch-all does not.
func (svc *RateLimitService) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if !strings.HasPrefix(path, svc.apiPrefix) {
			return c.Next()
		}

		clientIP := getClientIP(c)

		for _, quota := range svc.quotas {
			if !strings.HasPrefix(path, quota.Prefix) {
				continue
			}

			decision := svc.store.Check(quota.Prefix+":"+clientIP, quota.Config)
			if !decision.Allowed {
				return svc.reject(c, quota.Config, decision)
			}

			setRateLimitHeaders(c, quota.Config, decision)
			return c.Next()
		}

		decision := svc.store.Check("api:"+clientIP, svc.catchAll)
		if !decision.Allowed {
			return svc.reject(c, svc.catchAll, decision)
		}

		return c.Next()
	}
}

func (svc *RateLimitService) reject(c *fiber.Ctx, cfg model.RateLimitConfig, decision model.RateLimitDecision) error {
	retryAfterMs := time.Until(decision.ResetTime).Milliseconds()
	retryAfterSec := (retryAfterMs + 999) / 1000
	if retryAfterSec < 0 {
		retryAfterSec = 0
	}

	c.Set("Retry-After", strconv.FormatInt(retryAfterSec, 10))
	setRateLimitHeaders(c, cfg, decision)

	log.WithFields(log.Fields{
		"path":   c.Path(),
		"client": getClientIP(c),
	}).Warn("Rate limit exceeded")

	return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
		"error": "Too many requests. Please try again later.",
	})
}

func setRateLimitHeaders(c *fiber.Ctx, cfg model.RateLimitConfig, decision model.RateLimitDecision) {
	c.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Requests))
	c.Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
	c.Set("X-RateLimit-Reset", strconv.FormatInt(decision.ResetTime.UnixMilli(), 10))
}

// getClientIP resolves the client identity from proxy headers. Clients with
// neither header share the "unknown" bucket, so one abusive anonymous client
// exhausts the quota for all of them until the window resets. Known
// coarsening, kept on purpose.
func getClientIP(c *fiber.Ctx) string {
	forwarded := c.Get("X-Forwarded-For")
	if forwarded != "" {
		ips := strings.Split(forwarded, ",")
		if len(ips) > 0 {
			ip := strings.TrimSpace(ips[0])
			if ip != "" {
				return ip
			}
		}
	}

	realIP := c.Get("X-Real-IP")
	if realIP != "" {
		return realIP
	}

	return "unknown"
}
