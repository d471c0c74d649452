package model

import "testing"

func TestCanTransitionTo(t *testing.T) {
	t.Parallel()

	allowed := map[OrderStatus][]OrderStatus{
		StatusPending:   {StatusConfirmed, StatusCancelled},
		StatusConfirmed: {StatusPreparing, StatusCancelled},
		StatusPreparing: {StatusShipped, StatusCancelled},
		StatusShipped:   {StatusDelivered},
		StatusDelivered: {},
		StatusCancelled: {},
	}
	all := []OrderStatus{StatusPending, StatusConfirmed, StatusPreparing, StatusShipped, StatusDelivered, StatusCancelled}

	for from, tos := range allowed {
		ok := make(map[OrderStatus]bool, len(tos))
		for _, to := range tos {
			ok[to] = true
		}
		for _, to := range all {
			if got := from.CanTransitionTo(to); got != ok[to] {
				t.Errorf("%s -> %s = %v, want %v", from, to, got, ok[to])
			}
		}
	}
}

func TestTerminal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status OrderStatus
		want   bool
	}{
		{StatusPending, false},
		{StatusConfirmed, false},
		{StatusPreparing, false},
		{StatusShipped, false},
		{StatusDelivered, true},
		{StatusCancelled, true},
	}
	for _, tc := range tests {
		if got := tc.status.Terminal(); got != tc.want {
			t.Errorf("%s.Terminal() = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestStatusValid(t *testing.T) {
	t.Parallel()

	for _, s := range []OrderStatus{StatusPending, StatusConfirmed, StatusPreparing, StatusShipped, StatusDelivered, StatusCancelled} {
		if !s.Valid() {
			t.Errorf("%s.Valid() = false", s)
		}
	}
	if OrderStatus("paid").Valid() {
		t.Error(`"paid" should not be a fulfillment status`)
	}
	if OrderStatus("").Valid() {
		t.Error("empty status should not be valid")
	}
}
