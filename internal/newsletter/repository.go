package newsletter

import (
	"context"

	"gorm.io/gorm"

	"github.com/novamart/storefront-backend/pkg/db/models"
)

// Repository owns newsletter subscription persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a subscription. The email column carries a unique index, so
// duplicates surface as a constraint violation rather than a read-then-write
// race.
func (r *Repository) Create(ctx context.Context, sub *models.NewsletterSubscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

// Count returns the number of subscriptions.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.NewsletterSubscription{}).Count(&count).Error
	return count, err
}
