package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/novamart/storefront-backend/api/responses"
	"github.com/novamart/storefront-backend/api/validators"
	"github.com/novamart/storefront-backend/internal/orders"
	"github.com/novamart/storefront-backend/pkg/enums"
	"github.com/novamart/storefront-backend/pkg/errors"
	"github.com/novamart/storefront-backend/pkg/logger"
	"github.com/novamart/storefront-backend/pkg/pagination"
)

type orderService interface {
	PlaceOrder(ctx context.Context, req orders.PlaceOrderRequest) (*orders.OrderResponse, error)
	Get(ctx context.Context, id int64) (*orders.OrderResponse, error)
	List(ctx context.Context, filters orders.ListFilters, params pagination.Params) (*orders.OrderListResponse, error)
	UpdateStatus(ctx context.Context, id int64, next enums.OrderStatus) (*orders.OrderResponse, error)
}

// OrderController serves order commit, lookup, and lifecycle endpoints.
type OrderController struct {
	svc  orderService
	logg *logger.Logger
}

func NewOrderController(svc orderService, logg *logger.Logger) *OrderController {
	return &OrderController{svc: svc, logg: logg}
}

// Place handles POST /api/orders.
func (c *OrderController) Place(w http.ResponseWriter, r *http.Request) {
	var req orders.PlaceOrderRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(w, r, c.logg, err)
		return
	}

	order, err := c.svc.PlaceOrder(r.Context(), req)
	if err != nil {
		responses.WriteError(w, r, c.logg, err)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusCreated, order)
}

// List handles GET /api/orders with optional status filter and cursor
// pagination.
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	params := pagination.Params{Cursor: query.Get("cursor")}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			responses.WriteError(w, r, c.logg,
				errors.New(errors.CodeValidation, "limit must be an integer"))
			return
		}
		params.Limit = limit
	}

	filters := orders.ListFilters{Status: enums.OrderStatus(query.Get("status"))}
	page, err := c.svc.List(r.Context(), filters, params)
	if err != nil {
		responses.WriteError(w, r, c.logg, err)
		return
	}
	responses.WriteSuccess(w, page)
}

// Detail handles GET /api/orders/{id}.
func (c *OrderController) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := c.orderID(w, r)
	if !ok {
		return
	}

	order, err := c.svc.Get(r.Context(), id)
	if err != nil {
		responses.WriteError(w, r, c.logg, err)
		return
	}
	responses.WriteSuccess(w, order)
}

// UpdateStatus handles POST /api/orders/{id}/status.
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := c.orderID(w, r)
	if !ok {
		return
	}

	var req orders.UpdateStatusRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(w, r, c.logg, err)
		return
	}

	order, err := c.svc.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		responses.WriteError(w, r, c.logg, err)
		return
	}
	responses.WriteSuccess(w, order)
}

func (c *OrderController) orderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		responses.WriteError(w, r, c.logg,
			errors.New(errors.CodeValidation, "order id must be a positive integer"))
		return 0, false
	}
	return id, true
}
