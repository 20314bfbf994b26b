package middleware

import (
	"fmt"
	"net/http"

	"github.com/novamart/storefront-backend/api/responses"
	"github.com/novamart/storefront-backend/pkg/errors"
	"github.com/novamart/storefront-backend/pkg/logger"
)

// Recoverer converts handler panics into 500 responses instead of dropped
// connections.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err := errors.Wrap(errors.CodeInternal,
						fmt.Errorf("panic: %v", rec), "handler panicked")
					responses.WriteError(w, r, logg, err)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
