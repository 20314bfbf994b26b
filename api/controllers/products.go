package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/novamart/storefront-backend/api/responses"
	"github.com/novamart/storefront-backend/internal/catalog"
	"github.com/novamart/storefront-backend/pkg/errors"
	"github.com/novamart/storefront-backend/pkg/logger"
)

type catalogService interface {
	List(ctx context.Context, filters catalog.Filters) ([]catalog.ProductResponse, error)
	Get(ctx context.Context, id int64) (*catalog.ProductResponse, error)
	Categories(ctx context.Context) ([]string, error)
}

// ProductController serves the catalog read endpoints.
type ProductController struct {
	svc  catalogService
	logg *logger.Logger
}

func NewProductController(svc catalogService, logg *logger.Logger) *ProductController {
	return &ProductController{svc: svc, logg: logg}
}

// List handles GET /api/products with optional q and category filters.
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	filters := catalog.Filters{
		Query:    r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
	}

	products, err := c.svc.List(r.Context(), filters)
	if err != nil {
		responses.WriteError(w, r, c.logg, err)
		return
	}
	responses.WriteSuccess(w, products)
}

// Detail handles GET /api/products/{id}.
func (c *ProductController) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		responses.WriteError(w, r, c.logg,
			errors.New(errors.CodeValidation, "product id must be a positive integer"))
		return
	}

	product, svcErr := c.svc.Get(r.Context(), id)
	if svcErr != nil {
		responses.WriteError(w, r, c.logg, svcErr)
		return
	}
	responses.WriteSuccess(w, product)
}

// Categories handles GET /api/categories.
func (c *ProductController) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.svc.Categories(r.Context())
	if err != nil {
		responses.WriteError(w, r, c.logg, err)
		return
	}
	responses.WriteSuccess(w, categories)
}
