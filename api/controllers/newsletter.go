package controllers

import (
	"context"
	"net/http"

	"github.com/novamart/storefront-backend/api/responses"
	"github.com/novamart/storefront-backend/api/validators"
	"github.com/novamart/storefront-backend/internal/newsletter"
	"github.com/novamart/storefront-backend/pkg/logger"
)

type newsletterService interface {
	Subscribe(ctx context.Context, req newsletter.SubscribeRequest) (*newsletter.SubscriptionResponse, error)
}

// NewsletterController serves signup requests.
type NewsletterController struct {
	svc  newsletterService
	logg *logger.Logger
}

func NewNewsletterController(svc newsletterService, logg *logger.Logger) *NewsletterController {
	return &NewsletterController{svc: svc, logg: logg}
}

// Subscribe handles POST /api/newsletter/subscribe.
func (c *NewsletterController) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req newsletter.SubscribeRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(w, r, c.logg, err)
		return
	}

	sub, err := c.svc.Subscribe(r.Context(), req)
	if err != nil {
		responses.WriteError(w, r, c.logg, err)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusCreated, sub)
}
