package orders

import "github.com/waiyanphyo/shopdesk-backend/pkg/enums"

// transitionTable is the order-status DAG. Statuses only move forward;
// canceled is terminal with no outbound edges.
var transitionTable = map[enums.OrderStatus][]enums.OrderStatus{
	enums.OrderStatusPending: {
		enums.OrderStatusAccepted,
		enums.OrderStatusDelivered,
		enums.OrderStatusDone,
		enums.OrderStatusCanceled,
	},
	enums.OrderStatusAccepted: {
		enums.OrderStatusDelivered,
		enums.OrderStatusDone,
		enums.OrderStatusCanceled,
	},
	enums.OrderStatusDelivered: {
		enums.OrderStatusDone,
		enums.OrderStatusCanceled,
	},
	enums.OrderStatusDone: {
		enums.OrderStatusCanceled,
	},
	enums.OrderStatusCanceled: {},
}

// CanTransition reports whether target is reachable from current in one step.
func CanTransition(current, target enums.OrderStatus) bool {
	for _, candidate := range transitionTable[current] {
		if candidate == target {
			return true
		}
	}
	return false
}
