package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type GiftCard struct {
	ID        string          `json:"id"`
	Code      string          `json:"code"`
	Balance   decimal.Decimal `json:"balance"`
	ExpiresAt *time.Time      `json:"expires_at,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type Registry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	EventDate time.Time `json:"event_date"`
	Items     []Product `json:"items"`
}

type Notification struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Subject   string     `json:"subject"`
	Body      string     `json:"body"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
