// Package checkout implements the checkout form controller and the order
// submission flow: address and payment selection, gift-card redemption,
// derived-total arithmetic, synchronous validation, and the mapping of
// server rejections back onto form fields.
package checkout

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopsphere/storefront-client/internal/cart"
	"github.com/shopsphere/storefront-client/internal/models"
	"github.com/shopsphere/storefront-client/internal/payment"
)

// Mode tags whether the shopper is entering fresh data or reusing a saved
// record. Each concern (address, payment) carries its own mode.
type Mode string

const (
	ModeNew      Mode = "new"
	ModeExisting Mode = "existing"
)

// FieldErrors maps a form field key to exactly one message. The GeneralKey
// entry is the banner shown for failures that belong to no single field.
type FieldErrors map[string]string

const GeneralKey = "general"

// Redemption is an applied gift card: the code and the amount actually
// redeemed after clamping.
type Redemption struct {
	Code   string
	Amount decimal.Decimal
}

// Form is the checkout form state. Selecting a saved record copies its
// fields into the working state and flips the concern to ModeExisting;
// editing any copied field flips it back to ModeNew and drops the selection,
// because a user edit always means "I'm providing fresh data". The CVV is
// the one exception: it is freshly required in both modes, so entering it
// never flips anything and mode switches never clear it.
type Form struct {
	paymentType       models.PaymentType
	addressMode       Mode
	address           models.ShippingAddress
	selectedAddressID string
	paymentMode       Mode
	card              models.CardInfo
	selectedPaymentID string
	giftCard          *Redemption
	errors            FieldErrors
}

func NewForm() *Form {
	return &Form{
		paymentType: models.PaymentTypeCredit,
		addressMode: ModeNew,
		paymentMode: ModeNew,
		errors:      FieldErrors{},
	}
}

func (f *Form) AddressMode() Mode                       { return f.addressMode }
func (f *Form) PaymentMode() Mode                       { return f.paymentMode }
func (f *Form) PaymentType() models.PaymentType         { return f.paymentType }
func (f *Form) ShippingAddress() models.ShippingAddress { return f.address }
func (f *Form) SelectedAddressID() string               { return f.selectedAddressID }
func (f *Form) SelectedPaymentID() string               { return f.selectedPaymentID }
func (f *Form) Card() models.CardInfo                   { return f.card }

func (f *Form) GiftCard() *Redemption {
	if f.giftCard == nil {
		return nil
	}

	r := *f.giftCard

	return &r
}

func (f *Form) Errors() FieldErrors {
	out := make(FieldErrors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}

	return out
}

func (f *Form) SetFieldError(field, message string) {
	f.errors[field] = message
}

func (f *Form) SetGeneralError(message string) {
	f.errors[GeneralKey] = message
}

// SelectAddress copies the saved record's fields into the working address
// and switches the address concern to ModeExisting.
func (f *Form) SelectAddress(saved models.Address) {
	f.address = models.ShippingAddress{
		Street:  saved.Street,
		City:    saved.City,
		State:   saved.State,
		ZipCode: saved.ZipCode,
		Country: saved.Country,
	}
	f.selectedAddressID = saved.ID
	f.addressMode = ModeExisting
}

func (f *Form) editAddress() {
	if f.addressMode == ModeExisting {
		f.addressMode = ModeNew
		f.selectedAddressID = ""
	}
}

func (f *Form) SetStreet(v string)  { f.editAddress(); f.address.Street = v }
func (f *Form) SetCity(v string)    { f.editAddress(); f.address.City = v }
func (f *Form) SetState(v string)   { f.editAddress(); f.address.State = v }
func (f *Form) SetZipCode(v string) { f.editAddress(); f.address.ZipCode = v }
func (f *Form) SetCountry(v string) { f.editAddress(); f.address.Country = v }

// SelectPaymentMethod copies the saved record into the working card state
// with the number masked down to its last four digits. The CVV already typed
// in is kept: a saved method never supplies one.
func (f *Form) SelectPaymentMethod(saved models.PaymentMethod) {
	cvv := f.card.CVV
	f.card = models.CardInfo{
		CardNumber: payment.MaskLastFour(saved.LastFour),
		ExpMonth:   saved.ExpMonth,
		ExpYear:    saved.ExpYear,
		CVV:        cvv,
	}
	f.selectedPaymentID = saved.ID
	f.paymentType = saved.Type
	f.paymentMode = ModeExisting
}

func (f *Form) editPayment() {
	if f.paymentMode == ModeExisting {
		f.paymentMode = ModeNew
		f.selectedPaymentID = ""
	}
}

func (f *Form) SetCardNumber(v string) { f.editPayment(); f.card.CardNumber = v }
func (f *Form) SetExpMonth(v int)      { f.editPayment(); f.card.ExpMonth = v }
func (f *Form) SetExpYear(v int)       { f.editPayment(); f.card.ExpYear = v }

// SetCVV never flips the payment mode: the CVV is required fresh either way.
func (f *Form) SetCVV(v string) { f.card.CVV = v }

func (f *Form) SetPaymentType(t models.PaymentType) { f.paymentType = t }

// ApplyGiftCard records a redemption capped at the card's balance and the
// cart subtotal, and returns the amount actually applied.
func (f *Form) ApplyGiftCard(card models.GiftCard, requested, subtotal decimal.Decimal) decimal.Decimal {
	redeemed := decimal.Min(requested, card.Balance, subtotal)
	if redeemed.IsNegative() {
		redeemed = decimal.Zero
	}

	f.giftCard = &Redemption{Code: card.Code, Amount: redeemed}

	return redeemed
}

func (f *Form) RemoveGiftCard() {
	f.giftCard = nil
}

// ChargeableTotal is the subtotal minus the gift-card redemption, re-clamped
// against the current subtotal since the cart may have changed after the
// card was applied.
func (f *Form) ChargeableTotal(subtotal decimal.Decimal) decimal.Decimal {
	if f.giftCard == nil {
		return subtotal
	}

	total := subtotal.Sub(decimal.Min(f.giftCard.Amount, subtotal))
	if total.IsNegative() {
		return decimal.Zero
	}

	return total
}

// Validate runs every synchronous rule and replaces the form's error map
// with the result. It returns true when submission may proceed. Each failing
// rule contributes exactly one field-level message.
func (f *Form) Validate(ledger *cart.Ledger) bool {

	errs := FieldErrors{}

	if ledger == nil || ledger.IsEmpty() {
		errs["cart"] = "Your cart is empty"
	}

	f.validateAddress(errs)
	f.validatePayment(errs)

	f.errors = errs

	return len(errs) == 0
}

func (f *Form) validateAddress(errs FieldErrors) {
	if f.addressMode == ModeExisting {
		if f.selectedAddressID == "" {
			errs["addressId"] = "Please select a shipping address"
		}

		return
	}

	required := []struct {
		key, value, message string
	}{
		{"street", f.address.Street, "Street is required"},
		{"city", f.address.City, "City is required"},
		{"state", f.address.State, "State is required"},
		{"zipCode", f.address.ZipCode, "Zip code is required"},
		{"country", f.address.Country, "Country is required"},
	}

	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			errs[field.key] = field.message
		}
	}
}

func (f *Form) validatePayment(errs FieldErrors) {

	// PayPal and bank transfer carry no card data at all.
	if !f.paymentType.IsCard() {
		return
	}

	if f.paymentMode == ModeExisting {
		if f.selectedPaymentID == "" {
			errs["paymentId"] = "Please select a payment method"
		}
	} else {
		f.validateNewCard(errs)
	}

	if !isDigits(f.card.CVV) || len(f.card.CVV) < 3 || len(f.card.CVV) > 4 {
		errs["cvv"] = "CVV must be 3 or 4 digits"
	}

	if f.card.CVV == "" {
		errs["cvv"] = "CVV is required"
	}

	// Prefix check against whichever number is active: the saved number
	// stripped of its mask, or the freshly entered one.
	if _, taken := errs["cardNumber"]; !taken {
		if active := payment.StripMask(f.card.CardNumber); active != "" {
			if !payment.ValidatePrefix(active).IsValid {
				errs["cardNumber"] = "Card number is not recognized"
			}
		}
	}
}

func (f *Form) validateNewCard(errs FieldErrors) {

	switch {
	case f.card.CardNumber == "":
		errs["cardNumber"] = "Card number is required"
	case !isDigits(f.card.CardNumber) || len(f.card.CardNumber) != 16:
		errs["cardNumber"] = "Card number must be 16 digits"
	}

	switch {
	case f.card.ExpMonth == 0:
		errs["expMonth"] = "Expiration month is required"
	case f.card.ExpMonth < 1 || f.card.ExpMonth > 12:
		errs["expMonth"] = "Expiration month must be between 1 and 12"
	}

	year := time.Now().Year()

	switch {
	case f.card.ExpYear == 0:
		errs["expYear"] = "Expiration year is required"
	case f.card.ExpYear < year || f.card.ExpYear > year+20:
		errs["expYear"] = "Expiration year is out of range"
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
