package dto

import "time"

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

type CreateOrderRequest struct {
	CustomerName string         `json:"customerName"`
	Phone        string         `json:"phone"`
	Email        string         `json:"email" binding:"omitempty,email"`
	Address      AddressDTO     `json:"address"`
	Items        []OrderItemDTO `json:"items" binding:"required,min=1,dive"`
	Discount     float64        `json:"discount" binding:"omitempty,gte=0"`
}

type AddressDTO struct {
	FullAddress string `json:"fullAddress"`
	PostalCode  string `json:"postalCode"`
}

type OrderItemDTO struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName" binding:"required_without=ProductID"`
	Size        string  `json:"size"`
	Quantity    int     `json:"quantity" binding:"required,min=1"`
	UnitPrice   float64 `json:"price" binding:"omitempty,gte=0"`
}

// AttachPaymentRequest carries the uploaded slip evidence. Resubmitting
// replaces the previous slip.
type AttachPaymentRequest struct {
	SlipImage string     `json:"slipImage" binding:"required"`
	Method    string     `json:"method"`
	PaidAt    *time.Time `json:"paidAt"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

type CancelOrderRequest struct {
	Note string `json:"note"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}
