package model

import (
	"errors"
	"testing"
)

func TestComputePricing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		items       []OrderItem
		shippingFee float64
		discount    float64
		wantSub     float64
		wantTotal   float64
		wantErr     error
	}{
		{
			name:        "single line with shipping",
			items:       []OrderItem{{ProductName: "campaign tee", Quantity: 2, UnitPrice: 299}},
			shippingFee: 60,
			wantSub:     598,
			wantTotal:   658,
		},
		{
			name: "multiple lines",
			items: []OrderItem{
				{ProductName: "campaign tee", Quantity: 1, UnitPrice: 299},
				{ProductName: "tote bag", Quantity: 3, UnitPrice: 150},
			},
			shippingFee: 60,
			wantSub:     749,
			wantTotal:   809,
		},
		{
			name:        "discount applied",
			items:       []OrderItem{{ProductName: "campaign tee", Quantity: 1, UnitPrice: 299}},
			shippingFee: 60,
			discount:    50,
			wantSub:     299,
			wantTotal:   309,
		},
		{
			name:    "no items",
			items:   nil,
			wantErr: ErrNoItems,
		},
		{
			name:    "zero quantity",
			items:   []OrderItem{{ProductName: "campaign tee", Quantity: 0, UnitPrice: 299}},
			wantErr: ErrInvalidQuantity,
		},
		{
			name:    "negative quantity",
			items:   []OrderItem{{ProductName: "campaign tee", Quantity: -1, UnitPrice: 299}},
			wantErr: ErrInvalidQuantity,
		},
		{
			name:    "negative price",
			items:   []OrderItem{{ProductName: "campaign tee", Quantity: 1, UnitPrice: -5}},
			wantErr: ErrNegativePrice,
		},
		{
			name:     "negative discount",
			items:    []OrderItem{{ProductName: "campaign tee", Quantity: 1, UnitPrice: 299}},
			discount: -10,
			wantErr:  ErrNegativeDiscount,
		},
		{
			name:     "discount exceeding total",
			items:    []OrderItem{{ProductName: "sticker", Quantity: 1, UnitPrice: 20}},
			discount: 100,
			wantErr:  ErrNegativeTotal,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			items, pricing, err := ComputePricing(tc.items, tc.shippingFee, tc.discount)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("ComputePricing() error = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ComputePricing() unexpected error: %v", err)
			}
			if pricing.Subtotal != tc.wantSub {
				t.Errorf("subtotal = %v, want %v", pricing.Subtotal, tc.wantSub)
			}
			if pricing.Total != tc.wantTotal {
				t.Errorf("total = %v, want %v", pricing.Total, tc.wantTotal)
			}
			var sum float64
			for _, it := range items {
				if it.Subtotal != float64(it.Quantity)*it.UnitPrice {
					t.Errorf("item subtotal = %v, want %v", it.Subtotal, float64(it.Quantity)*it.UnitPrice)
				}
				sum += it.Subtotal
			}
			if sum != pricing.Subtotal {
				t.Errorf("sum of item subtotals = %v, want pricing subtotal %v", sum, pricing.Subtotal)
			}
		})
	}
}

func TestComputePricingDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := []OrderItem{{ProductName: "campaign tee", Quantity: 2, UnitPrice: 299}}
	if _, _, err := ComputePricing(in, 60, 0); err != nil {
		t.Fatalf("ComputePricing() unexpected error: %v", err)
	}
	if in[0].Subtotal != 0 {
		t.Errorf("input slice was mutated: subtotal = %v", in[0].Subtotal)
	}
}
