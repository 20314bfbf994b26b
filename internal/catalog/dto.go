package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/novamart/storefront-backend/pkg/db/models"
)

// ProductResponse is the wire shape for a catalog listing.
type ProductResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url,omitempty"`
	Badge       string          `json:"badge,omitempty"`
	Stock       int             `json:"stock"`
}

func toProductResponse(p models.Product) ProductResponse {
	resp := ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Price:    p.Price.Round(2),
		Stock:    p.Stock,
	}
	if p.Description != nil {
		resp.Description = *p.Description
	}
	if p.ImageURL != nil {
		resp.ImageURL = *p.ImageURL
	}
	if p.Badge != nil {
		resp.Badge = *p.Badge
	}
	return resp
}

func toProductResponses(products []models.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}
