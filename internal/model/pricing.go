package model

import "errors"

var (
	ErrNoItems          = errors.New("order must contain at least one item")
	ErrInvalidQuantity  = errors.New("item quantity must be at least 1")
	ErrNegativePrice    = errors.New("item price cannot be negative")
	ErrNegativeDiscount = errors.New("discount cannot be negative")
	ErrNegativeTotal    = errors.New("order total cannot be negative")
)

// ComputePricing fills in per-item subtotals and derives the order
// totals from the items. Client-supplied totals are never trusted.
func ComputePricing(items []OrderItem, shippingFee, discount float64) ([]OrderItem, Pricing, error) {
	if len(items) == 0 {
		return nil, Pricing{}, ErrNoItems
	}
	if discount < 0 {
		return nil, Pricing{}, ErrNegativeDiscount
	}

	out := make([]OrderItem, len(items))
	var subtotal float64
	for i, it := range items {
		if it.Quantity < 1 {
			return nil, Pricing{}, ErrInvalidQuantity
		}
		if it.UnitPrice < 0 {
			return nil, Pricing{}, ErrNegativePrice
		}
		it.Subtotal = float64(it.Quantity) * it.UnitPrice
		subtotal += it.Subtotal
		out[i] = it
	}

	p := Pricing{
		Subtotal:    subtotal,
		ShippingFee: shippingFee,
		Discount:    discount,
		Total:       subtotal + shippingFee - discount,
	}
	if p.Total < 0 {
		return nil, Pricing{}, ErrNegativeTotal
	}
	return out, p, nil
}
