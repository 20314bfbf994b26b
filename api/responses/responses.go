package responses

import (
	"encoding/json"
	"net/http"

	"github.com/novamart/storefront-backend/pkg/errors"
	"github.com/novamart/storefront-backend/pkg/logger"
	"github.com/novamart/storefront-backend/pkg/types"
)

// WriteSuccess renders data inside the success envelope with status 200.
func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusOK, data)
}

// WriteSuccessStatus renders data inside the success envelope.
func WriteSuccessStatus(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.SuccessEnvelope{Data: data})
}

// WriteError maps the error to its public shape and logs the full chain.
// Untyped errors render as 500 with no internals leaked.
func WriteError(w http.ResponseWriter, r *http.Request, logg *logger.Logger, err error) {
	code := errors.CodeInternal
	message := errors.MetadataFor(code).PublicMessage
	var details any

	if typed := errors.As(err); typed != nil {
		code = typed.Code()
		if typed.Message() != "" {
			message = typed.Message()
		} else {
			message = errors.MetadataFor(code).PublicMessage
		}
		if errors.MetadataFor(code).DetailsAllowed {
			details = typed.Details()
		}
	}

	meta := errors.MetadataFor(code)
	if logg != nil {
		ctx := logg.WithField(r.Context(), "error_dump", errors.Dump(err))
		if meta.HTTPStatus >= http.StatusInternalServerError {
			logg.Error(ctx, "request failed", err)
		} else {
			logg.Warn(ctx, "request rejected")
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(meta.HTTPStatus)
	_ = json.NewEncoder(w).Encode(types.ErrorEnvelope{
		Error: types.APIError{
			Code:    string(code),
			Message: message,
			Details: details,
		},
	})
}
