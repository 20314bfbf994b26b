package catalog

import (
	"context"
	stdErrors "errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/novamart/storefront-backend/pkg/errors"
)

// Service exposes catalog reads to the HTTP layer.
type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// List returns catalog entries matching the filters. No filters returns the
// whole catalog.
func (s *Service) List(ctx context.Context, filters Filters) ([]ProductResponse, error) {
	products, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing products")
	}
	return toProductResponses(products), nil
}

// Get returns one product by id.
func (s *Service) Get(ctx context.Context, id int64) (*ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, fmt.Sprintf("product %d not found", id))
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "loading product")
	}
	resp := toProductResponse(*product)
	return &resp, nil
}

// Categories returns the distinct category names in the catalog.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing categories")
	}
	return categories, nil
}
