package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/novamart/storefront-backend/pkg/db/models"
	"github.com/novamart/storefront-backend/pkg/enums"
)

// PlaceOrderItem is one requested line in an incoming order.
type PlaceOrderItem struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

// PlaceOrderRequest is the commit payload. Customer fields are optional;
// guest checkout is allowed. There is deliberately no pricing input here:
// the total is derived from the catalog alone.
type PlaceOrderRequest struct {
	Items         []PlaceOrderItem `json:"items" validate:"dive"`
	CustomerName  string           `json:"customer_name" validate:"omitempty,max=200"`
	CustomerEmail string           `json:"customer_email" validate:"omitempty,email"`
}

// UpdateStatusRequest moves an order one step along its lifecycle.
type UpdateStatusRequest struct {
	Status enums.OrderStatus `json:"status" validate:"required"`
}

// OrderItemResponse is the wire shape of a committed line. Price is the
// frozen unit price from commit time.
type OrderItemResponse struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// OrderResponse is the wire shape of a committed order.
type OrderResponse struct {
	ID            int64               `json:"id"`
	CustomerName  string              `json:"customer_name,omitempty"`
	CustomerEmail string              `json:"customer_email,omitempty"`
	Total         decimal.Decimal     `json:"total"`
	Status        enums.OrderStatus   `json:"status"`
	Items         []OrderItemResponse `json:"items"`
	CreatedAt     time.Time           `json:"created_at"`
}

// OrderListResponse carries one page of orders plus the cursor for the next.
type OrderListResponse struct {
	Orders     []OrderResponse `json:"orders"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

func toOrderResponse(order models.Order) OrderResponse {
	resp := OrderResponse{
		ID:        order.ID,
		Total:     order.Total.Round(2),
		Status:    order.Status,
		Items:     make([]OrderItemResponse, 0, len(order.Items)),
		CreatedAt: order.CreatedAt,
	}
	if order.CustomerName != nil {
		resp.CustomerName = *order.CustomerName
	}
	if order.CustomerEmail != nil {
		resp.CustomerEmail = *order.CustomerEmail
	}
	for _, item := range order.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price.Round(2),
		})
	}
	return resp
}
