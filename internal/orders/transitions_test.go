package orders

import (
	"testing"

	"github.com/waiyanphyo/shopdesk-backend/pkg/enums"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from    enums.OrderStatus
		to      enums.OrderStatus
		allowed bool
	}{
		{enums.OrderStatusPending, enums.OrderStatusAccepted, true},
		{enums.OrderStatusPending, enums.OrderStatusDelivered, true},
		{enums.OrderStatusPending, enums.OrderStatusDone, true},
		{enums.OrderStatusPending, enums.OrderStatusCanceled, true},
		{enums.OrderStatusAccepted, enums.OrderStatusDelivered, true},
		{enums.OrderStatusAccepted, enums.OrderStatusDone, true},
		{enums.OrderStatusAccepted, enums.OrderStatusCanceled, true},
		{enums.OrderStatusAccepted, enums.OrderStatusPending, false},
		{enums.OrderStatusDelivered, enums.OrderStatusDone, true},
		{enums.OrderStatusDelivered, enums.OrderStatusCanceled, true},
		{enums.OrderStatusDelivered, enums.OrderStatusAccepted, false},
		{enums.OrderStatusDone, enums.OrderStatusCanceled, true},
		{enums.OrderStatusDone, enums.OrderStatusAccepted, false},
		{enums.OrderStatusDone, enums.OrderStatusDelivered, false},
		{enums.OrderStatusCanceled, enums.OrderStatusPending, false},
		{enums.OrderStatusCanceled, enums.OrderStatusAccepted, false},
		{enums.OrderStatusCanceled, enums.OrderStatusDelivered, false},
		{enums.OrderStatusCanceled, enums.OrderStatusDone, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.allowed {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestCanTransitionNeverSelf(t *testing.T) {
	for from := range transitionTable {
		if CanTransition(from, from) {
			t.Errorf("self transition allowed for %s", from)
		}
	}
}

func TestCanceledIsTerminal(t *testing.T) {
	if edges := transitionTable[enums.OrderStatusCanceled]; len(edges) != 0 {
		t.Fatalf("canceled should have no outbound transitions, got %v", edges)
	}
}
