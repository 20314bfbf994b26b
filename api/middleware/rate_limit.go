package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/novamart/storefront-backend/api/responses"
	"github.com/novamart/storefront-backend/pkg/config"
	"github.com/novamart/storefront-backend/pkg/errors"
	"github.com/novamart/storefront-backend/pkg/logger"
)

// CounterStore is the fixed-window counter backend, satisfied by the redis
// client.
type CounterStore interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// NewsletterRateLimit throttles signup attempts per source IP and per target
// email over a fixed window. With no store configured it passes everything
// through; a store failure also fails open, since the unique index downstream
// still prevents duplicate subscriptions.
func NewsletterRateLimit(store CounterStore, cfg config.NewsletterRateLimitConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if cfg.IPLimit > 0 {
				key := "ratelimit:newsletter:ip:" + hashValue(clientIP(r))
				count, err := store.IncrWithTTL(ctx, key, cfg.Window)
				if err != nil {
					logg.Warn(logg.WithField(ctx, "error", err.Error()), "rate limit store unavailable")
				} else if count > int64(cfg.IPLimit) {
					responses.WriteError(w, r, logg,
						errors.New(errors.CodeRateLimit, "too many signup attempts, try again later"))
					return
				}
			}

			if cfg.EmailLimit > 0 {
				if email := extractEmail(r); email != "" {
					key := "ratelimit:newsletter:email:" + hashValue(email)
					count, err := store.IncrWithTTL(ctx, key, cfg.Window)
					if err != nil {
						logg.Warn(logg.WithField(ctx, "error", err.Error()), "rate limit store unavailable")
					} else if count > int64(cfg.EmailLimit) {
						responses.WriteError(w, r, logg,
							errors.New(errors.CodeRateLimit, "too many signup attempts for this email"))
						return
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// extractEmail peeks at the body for the email field, restoring the body so
// the handler can decode it again.
func extractEmail(r *http.Request) string {
	if r.Body == nil {
		return ""
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil {
		return ""
	}

	var payload struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(payload.Email))
}

func hashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
