package enums

// OrderStatus tracks the fulfillment lifecycle of an order.
type OrderStatus string

const (
	OrderStatusCreated   OrderStatus = "created"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
)

var orderStatusRank = map[OrderStatus]int{
	OrderStatusCreated:   0,
	OrderStatusShipped:   1,
	OrderStatusDelivered: 2,
}

// Valid reports whether the value is a known order status.
func (s OrderStatus) Valid() bool {
	_, ok := orderStatusRank[s]
	return ok
}

// CanTransitionTo reports whether moving to next is a legal single forward
// step. The lifecycle is strictly created -> shipped -> delivered; backward
// moves and skips are rejected.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	from, ok := orderStatusRank[s]
	if !ok {
		return false
	}
	to, ok := orderStatusRank[next]
	if !ok {
		return false
	}
	return to == from+1
}

// All returns every known status in lifecycle order.
func AllOrderStatuses() []OrderStatus {
	return []OrderStatus{OrderStatusCreated, OrderStatusShipped, OrderStatusDelivered}
}
