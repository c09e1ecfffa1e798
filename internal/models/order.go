package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderProduct captures a line at submission time: the price is the one taken
// when the product entered the cart, never a live re-fetch.
type OrderProduct struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type CreateOrderRequest struct {
	Products          []OrderProduct  `json:"products" validate:"required,min=1,dive"`
	ShippingAddress   ShippingAddress `json:"shippingAddress" validate:"required"`
	PaymentMethod     PaymentType     `json:"paymentMethod" validate:"required,oneof=credit debit paypal bank_transfer"`
	CardInfo          *CardInfo       `json:"cardInfo,omitempty"`
	SelectedPaymentID string          `json:"selectedPaymentId,omitempty"`
	GiftCardCode      string          `json:"giftCardCode,omitempty"`
	GiftCardAmount    decimal.Decimal `json:"giftCardAmount,omitempty"`
	IdempotencyKey    string          `json:"idempotencyKey"`
}

type Order struct {
	ID              string          `json:"id"`
	User            User            `json:"user"`
	Products        []OrderProduct  `json:"products"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	Status          OrderStatus     `json:"status"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending confirmed shipped delivered cancelled"`
}
