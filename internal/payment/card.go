// Package payment holds the client-side card helpers: the issuer-prefix
// lookup used as an early sanity check before submission, and the
// presentational masking applied to saved card numbers. Real card validation
// happens at the payment gateway; nothing here verifies authenticity or
// Luhn checksums.
package payment

import "strings"

// MaskRune pads everything but the last four digits of a displayed number.
const MaskRune = '*'

// issuerByPrefix maps the first two digits of a card number to an issuer
// label. Advisory only.
var issuerByPrefix = map[string]string{
	"12": "Bank of America",
	"23": "Citibank",
	"34": "American Express",
	"37": "American Express",
	"40": "Visa",
	"41": "Chase",
	"42": "Wells Fargo",
	"45": "Capital One",
	"51": "Mastercard",
	"52": "HSBC",
	"53": "Barclays",
	"60": "Discover",
	"65": "US Bank",
}

type PrefixResult struct {
	IsValid  bool
	BankName string
}

// ValidatePrefix looks up the first two characters of cardNumber against the
// issuer table. Unknown prefixes (and inputs shorter than two characters)
// come back invalid with no issuer name.
func ValidatePrefix(cardNumber string) PrefixResult {
	if len(cardNumber) < 2 {
		return PrefixResult{}
	}

	bank, ok := issuerByPrefix[cardNumber[:2]]
	if !ok {
		return PrefixResult{}
	}

	return PrefixResult{IsValid: true, BankName: bank}
}

// MaskNumber keeps the last four digits and replaces the rest with MaskRune.
// The masked form is display-only and must never be transmitted as card data.
func MaskNumber(number string) string {
	if len(number) <= 4 {
		return number
	}

	return strings.Repeat(string(MaskRune), len(number)-4) + number[len(number)-4:]
}

// MaskLastFour builds the display form of a saved method from the only
// digits the backend returns: twelve placeholders plus the last four.
func MaskLastFour(lastFour string) string {
	return strings.Repeat(string(MaskRune), 12) + lastFour
}

// StripMask drops mask characters, leaving whatever real digits remain.
func StripMask(number string) string {
	return strings.ReplaceAll(number, string(MaskRune), "")
}
