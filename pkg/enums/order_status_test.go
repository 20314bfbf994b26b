package enums

import "testing"

func TestOrderStatusValid(t *testing.T) {
	t.Parallel()

	for _, status := range AllOrderStatuses() {
		if !status.Valid() {
			t.Fatalf("%s should be valid", status)
		}
	}
	for _, status := range []OrderStatus{"", "cancelled", "CREATED", "pending"} {
		if status.Valid() {
			t.Fatalf("%q should be invalid", status)
		}
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	t.Parallel()

	allowed := map[[2]OrderStatus]bool{
		{OrderStatusCreated, OrderStatusShipped}:   true,
		{OrderStatusShipped, OrderStatusDelivered}: true,
	}

	for _, from := range AllOrderStatuses() {
		for _, to := range AllOrderStatuses() {
			want := allowed[[2]OrderStatus{from, to}]
			if got := from.CanTransitionTo(to); got != want {
				t.Fatalf("%s -> %s: expected %v, got %v", from, to, want, got)
			}
		}
	}

	if OrderStatus("bogus").CanTransitionTo(OrderStatusShipped) {
		t.Fatal("unknown status must not transition")
	}
	if OrderStatusCreated.CanTransitionTo("bogus") {
		t.Fatal("transition to unknown status must fail")
	}
}
