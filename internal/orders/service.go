package orders

import (
	"context"
	stdErrors "errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/novamart/storefront-backend/internal/catalog"
	"github.com/novamart/storefront-backend/pkg/db"
	"github.com/novamart/storefront-backend/pkg/db/models"
	"github.com/novamart/storefront-backend/pkg/enums"
	"github.com/novamart/storefront-backend/pkg/errors"
	"github.com/novamart/storefront-backend/pkg/metrics"
	"github.com/novamart/storefront-backend/pkg/pagination"
)

// Service commits orders and walks them through their lifecycle.
type Service struct {
	client  *db.Client
	orders  *Repository
	catalog *catalog.Repository
	metrics *metrics.OrderMetrics
}

func NewService(client *db.Client, orders *Repository, catalogRepo *catalog.Repository, orderMetrics *metrics.OrderMetrics) *Service {
	return &Service{
		client:  client,
		orders:  orders,
		catalog: catalogRepo,
		metrics: orderMetrics,
	}
}

// PlaceOrder validates every requested line, prices the order from the
// current catalog, and commits the order row, its items, and the stock
// decrements in one transaction. The decrement is guarded per product, so
// two commits racing for the last units cannot both succeed: the loser's
// guard matches zero rows and the whole transaction rolls back.
//
// The client never supplies a total; the stored total is the sum of the
// current unit prices times quantities, nothing else. Tax, shipping and
// promo discounts are display concerns of the cart quote, not of the
// committed order. Unit prices are frozen onto the order items.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*OrderResponse, error) {
	lines := mergeLines(req.Items)
	if len(lines) == 0 {
		err := errors.New(errors.CodeEmptyOrder, "order must contain at least one item")
		s.metrics.IncFailure(string(errors.CodeEmptyOrder))
		return nil, err
	}

	var committed models.Order
	txErr := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		catalogRepo := s.catalog.WithTx(tx)
		ordersRepo := s.orders.WithTx(tx)

		// Resolve and validate every line before touching anything, so a
		// bad line late in the order leaves no partial writes behind.
		products := make([]*models.Product, 0, len(lines))
		for _, line := range lines {
			product, err := catalogRepo.FindByID(ctx, line.ProductID)
			if err != nil {
				if stdErrors.Is(err, gorm.ErrRecordNotFound) {
					return errors.New(errors.CodeUnknownProduct,
						fmt.Sprintf("product %d does not exist", line.ProductID)).
						WithDetails(map[string]any{"product_id": line.ProductID})
				}
				return errors.Wrap(errors.CodeInternal, err, "loading product")
			}
			if product.Stock < line.Quantity {
				return insufficientStock(product, line.Quantity)
			}
			products = append(products, product)
		}

		total := decimal.Zero
		for i, line := range lines {
			total = total.Add(products[i].Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		order := models.Order{
			Total:  total,
			Status: enums.OrderStatusCreated,
			Items:  make([]models.OrderItem, 0, len(lines)),
		}
		if name := strings.TrimSpace(req.CustomerName); name != "" {
			order.CustomerName = &name
		}
		if email := strings.TrimSpace(req.CustomerEmail); email != "" {
			order.CustomerEmail = &email
		}
		for i, line := range lines {
			order.Items = append(order.Items, models.OrderItem{
				ProductID: products[i].ID,
				Name:      products[i].Name,
				Quantity:  line.Quantity,
				Price:     products[i].Price,
			})
		}

		if err := ordersRepo.Create(ctx, &order); err != nil {
			return errors.Wrap(errors.CodeInternal, err, "creating order")
		}

		// The earlier stock check read a snapshot; the guarded update is
		// what actually settles the race against concurrent commits.
		for i, line := range lines {
			ok, err := catalogRepo.DecrementStock(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return errors.Wrap(errors.CodeInternal, err, "decrementing stock")
			}
			if !ok {
				return insufficientStock(products[i], line.Quantity)
			}
		}

		committed = order
		return nil
	})
	if txErr != nil {
		if typed := errors.As(txErr); typed != nil {
			s.metrics.IncFailure(string(typed.Code()))
			return nil, typed
		}
		s.metrics.IncFailure(string(errors.CodeInternal))
		return nil, errors.Wrap(errors.CodeInternal, txErr, "committing order")
	}

	s.metrics.IncPlaced()
	resp := toOrderResponse(committed)
	return &resp, nil
}

// Get returns one order with its items.
func (s *Service) Get(ctx context.Context, id int64) (*OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, fmt.Sprintf("order %d not found", id))
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "loading order")
	}
	resp := toOrderResponse(*order)
	return &resp, nil
}

// List returns a page of orders, newest first.
func (s *Service) List(ctx context.Context, filters ListFilters, params pagination.Params) (*OrderListResponse, error) {
	if filters.Status != "" && !filters.Status.Valid() {
		return nil, errors.New(errors.CodeValidation,
			fmt.Sprintf("unknown status %q", filters.Status))
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, errors.Wrap(errors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	rows, err := s.orders.List(ctx, filters, cursor, limit+1)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing orders")
	}

	resp := &OrderListResponse{Orders: make([]OrderResponse, 0, len(rows))}
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		resp.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	for _, row := range rows {
		resp.Orders = append(resp.Orders, toOrderResponse(row))
	}
	return resp, nil
}

// UpdateStatus advances the order one lifecycle step. Anything other than
// the single legal forward move is rejected.
func (s *Service) UpdateStatus(ctx context.Context, id int64, next enums.OrderStatus) (*OrderResponse, error) {
	if !next.Valid() {
		return nil, errors.New(errors.CodeValidation, fmt.Sprintf("unknown status %q", next))
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, fmt.Sprintf("order %d not found", id))
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "loading order")
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, errors.New(errors.CodeStateConflict,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, next)).
			WithDetails(map[string]any{"current": order.Status, "requested": next})
	}

	if err := s.orders.UpdateStatus(ctx, id, next); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "updating order status")
	}

	order.Status = next
	resp := toOrderResponse(*order)
	return &resp, nil
}

func insufficientStock(product *models.Product, requested int) *errors.Error {
	return errors.New(errors.CodeInsufficientStock,
		fmt.Sprintf("insufficient stock for %s", product.Name)).
		WithDetails(map[string]any{
			"product_id": product.ID,
			"name":       product.Name,
			"requested":  requested,
			"available":  product.Stock,
		})
}

// mergeLines collapses duplicate product ids and drops non-positive
// quantities so validation sees one line per product.
func mergeLines(items []PlaceOrderItem) []PlaceOrderItem {
	out := make([]PlaceOrderItem, 0, len(items))
	index := make(map[int64]int, len(items))
	for _, item := range items {
		if item.ProductID <= 0 || item.Quantity <= 0 {
			continue
		}
		if i, ok := index[item.ProductID]; ok {
			out[i].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(out)
		out = append(out, item)
	}
	return out
}
