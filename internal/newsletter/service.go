package newsletter

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/novamart/storefront-backend/pkg/db"
	"github.com/novamart/storefront-backend/pkg/db/models"
	"github.com/novamart/storefront-backend/pkg/errors"
)

// SubscribeRequest is the signup payload.
type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SubscriptionResponse confirms a stored subscription.
type SubscriptionResponse struct {
	Email string `json:"email"`
}

// Service handles newsletter signups.
type Service struct {
	repo     *Repository
	validate *validator.Validate
}

func NewService(repo *Repository) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Subscribe stores the email, lowercased so the unique index catches
// re-signups regardless of casing. An existing subscription is a conflict.
func (s *Service) Subscribe(ctx context.Context, req SubscribeRequest) (*SubscriptionResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validate.Struct(req); err != nil {
		return nil, errors.New(errors.CodeValidation, "a valid email address is required")
	}

	sub := models.NewsletterSubscription{Email: req.Email}
	if err := s.repo.Create(ctx, &sub); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, errors.New(errors.CodeConflict, "email is already subscribed")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "storing subscription")
	}

	return &SubscriptionResponse{Email: sub.Email}, nil
}
