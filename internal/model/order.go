package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the fulfillment state of an order. Payment state is
// tracked separately on Payment.Status; confirming a payment never
// advances fulfillment on its own.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

const DefaultPaymentMethod = "promptpay"

type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber string             `bson:"order_number" json:"orderNumber"`
	UserID      string             `bson:"user_id" json:"userId"`
	Customer    Customer           `bson:"customer" json:"customer"`
	Items       []OrderItem        `bson:"items" json:"items"`
	Pricing     Pricing            `bson:"pricing" json:"pricing"`
	Payment     Payment            `bson:"payment" json:"payment"`
	Status      OrderStatus        `bson:"status" json:"status"`
	History     []StatusRecord     `bson:"history" json:"statusHistory"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Customer is a snapshot of contact details taken at order time. Later
// edits to the user's profile must not rewrite historical orders.
type Customer struct {
	Name    string  `bson:"name" json:"name"`
	Phone   string  `bson:"phone" json:"phone"`
	Email   string  `bson:"email" json:"email"`
	Address Address `bson:"address" json:"address"`
}

type Address struct {
	FullAddress string `bson:"full_address" json:"fullAddress"`
	PostalCode  string `bson:"postal_code" json:"postalCode"`
}

type OrderItem struct {
	ProductID   string  `bson:"product_id,omitempty" json:"productId,omitempty"`
	ProductName string  `bson:"product_name" json:"productName"`
	Size        string  `bson:"size" json:"size"`
	Quantity    int     `bson:"quantity" json:"quantity"`
	UnitPrice   float64 `bson:"unit_price" json:"price"`
	Subtotal    float64 `bson:"subtotal" json:"subtotal"`
}

type Pricing struct {
	Subtotal    float64 `bson:"subtotal" json:"subtotal"`
	ShippingFee float64 `bson:"shipping_fee" json:"shippingFee"`
	Discount    float64 `bson:"discount" json:"discount"`
	Total       float64 `bson:"total" json:"total"`
}

type Payment struct {
	Method        string        `bson:"method" json:"method"`
	Status        PaymentStatus `bson:"status" json:"status"`
	SlipURL       string        `bson:"slip_url,omitempty" json:"slipUrl,omitempty"`
	PaidAt        *time.Time    `bson:"paid_at,omitempty" json:"paidAt,omitempty"`
	TransactionID string        `bson:"transaction_id,omitempty" json:"transactionId,omitempty"`
}

// StatusRecord is one entry of the append-only audit trail.
type StatusRecord struct {
	Status    OrderStatus `bson:"status" json:"status"`
	Timestamp time.Time   `bson:"timestamp" json:"timestamp"`
	UpdatedBy string      `bson:"updated_by" json:"updatedBy"`
	Note      string      `bson:"note,omitempty" json:"note,omitempty"`
}

// Permitted fulfillment transitions. Anything not listed is rejected,
// including every edge out of a terminal state.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered},
}

var terminalStates = map[OrderStatus]bool{
	StatusDelivered: true,
	StatusCancelled: true,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return terminalStates[s]
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, v := range transitions[s] {
		if v == next {
			return true
		}
	}
	return false
}

func (o *Order) IsOwnedBy(userID string) bool {
	return o.UserID != "" && o.UserID == userID
}

// TotalItems sums quantities across all line items.
func (o *Order) TotalItems() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}
