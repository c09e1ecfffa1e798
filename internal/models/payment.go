package models

import "time"

type PaymentType string

const (
	PaymentTypeCredit       PaymentType = "credit"
	PaymentTypeDebit        PaymentType = "debit"
	PaymentTypePayPal       PaymentType = "paypal"
	PaymentTypeBankTransfer PaymentType = "bank_transfer"
)

// IsCard reports whether the type carries card data (number, expiry, CVV).
func (t PaymentType) IsCard() bool {
	return t == PaymentTypeCredit || t == PaymentTypeDebit
}

// PaymentMethod is a saved payment record. The backend only ever returns the
// last four digits of the number; it never stores or returns a CVV.
type PaymentMethod struct {
	ID         string      `json:"id"`
	UserID     string      `json:"user_id"`
	Type       PaymentType `json:"type"`
	LastFour   string      `json:"last_four"`
	ExpMonth   int         `json:"exp_month"`
	ExpYear    int         `json:"exp_year"`
	HolderName string      `json:"holder_name"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

type PaymentMethodRequest struct {
	Type       PaymentType `json:"type" validate:"required,oneof=credit debit paypal bank_transfer"`
	CardNumber string      `json:"card_number" validate:"omitempty,len=16,numeric"`
	ExpMonth   int         `json:"exp_month" validate:"omitempty,min=1,max=12"`
	ExpYear    int         `json:"exp_year" validate:"omitempty,min=2000"`
	HolderName string      `json:"holder_name" validate:"omitempty,max=100"`
}

// CardInfo is the card data on the checkout form. For a saved method the
// number is the masked form and the expiry is copied in, but the CVV is
// always freshly entered.
type CardInfo struct {
	CardNumber string `json:"cardNumber"`
	ExpMonth   int    `json:"expMonth"`
	ExpYear    int    `json:"expYear"`
	CVV        string `json:"cvv"`
}
