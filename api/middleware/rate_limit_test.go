package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/novamart/storefront-backend/pkg/config"
	"github.com/novamart/storefront-backend/pkg/logger"
	"github.com/rs/zerolog"
)

type stubCounterStore struct {
	counts map[string]int64
	err    error
}

func (s *stubCounterStore) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	if s.counts == nil {
		s.counts = map[string]int64{}
	}
	s.counts[key]++
	return s.counts[key], nil
}

func quietLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled})
}

func signupRequest(remoteAddr, email string) *http.Request {
	body := `{"email":"` + email + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/newsletter/subscribe", strings.NewReader(body))
	req.RemoteAddr = remoteAddr
	return req
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestNewsletterRateLimitPerEmail(t *testing.T) {
	t.Parallel()

	store := &stubCounterStore{}
	cfg := config.NewsletterRateLimitConfig{Window: time.Minute, IPLimit: 100, EmailLimit: 2}
	handler := NewsletterRateLimit(store, cfg, quietLogger())(okHandler())

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, signupRequest("10.0.0.1:1234", "ada@example.com"))
		if rec.Code != http.StatusOK {
			t.Fatalf("attempt %d: expected 200, got %d", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, signupRequest("10.0.0.2:1234", "ada@example.com"))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 on third attempt, got %d", rec.Code)
	}

	// a different email from the same IP still passes
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, signupRequest("10.0.0.1:1234", "grace@example.com"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for fresh email, got %d", rec.Code)
	}
}

func TestNewsletterRateLimitPerIP(t *testing.T) {
	t.Parallel()

	store := &stubCounterStore{}
	cfg := config.NewsletterRateLimitConfig{Window: time.Minute, IPLimit: 3, EmailLimit: 0}
	handler := NewsletterRateLimit(store, cfg, quietLogger())(okHandler())

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, signupRequest("10.0.0.1:1234", "user@example.com"))
		if rec.Code != http.StatusOK {
			t.Fatalf("attempt %d: expected 200, got %d", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, signupRequest("10.0.0.1:1234", "user@example.com"))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 when IP budget exhausted, got %d", rec.Code)
	}
}

func TestNewsletterRateLimitFailsOpen(t *testing.T) {
	t.Parallel()

	store := &stubCounterStore{err: context.DeadlineExceeded}
	cfg := config.NewsletterRateLimitConfig{Window: time.Minute, IPLimit: 1, EmailLimit: 1}
	handler := NewsletterRateLimit(store, cfg, quietLogger())(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, signupRequest("10.0.0.1:1234", "ada@example.com"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through on store failure, got %d", rec.Code)
	}
}

func TestNewsletterRateLimitNilStorePassesThrough(t *testing.T) {
	t.Parallel()

	cfg := config.NewsletterRateLimitConfig{Window: time.Minute, IPLimit: 1, EmailLimit: 1}
	handler := NewsletterRateLimit(nil, cfg, quietLogger())(okHandler())

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, signupRequest("10.0.0.1:1234", "ada@example.com"))
		if rec.Code != http.StatusOK {
			t.Fatalf("attempt %d: expected 200, got %d", i+1, rec.Code)
		}
	}
}

func TestClientIPPrefersForwardedHeader(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	if got := clientIP(req); got != "203.0.113.7" {
		t.Fatalf("expected forwarded ip, got %q", got)
	}

	req.Header.Del("X-Forwarded-For")
	if got := clientIP(req); got != "10.0.0.1" {
		t.Fatalf("expected remote addr host, got %q", got)
	}
}
