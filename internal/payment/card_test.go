package payment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shopsphere/storefront-client/internal/payment"
)

func TestValidatePrefix(t *testing.T) {
	t.Run("Known Prefix - Citibank", func(t *testing.T) {
		result := payment.ValidatePrefix("2345678901234567")

		assert.True(t, result.IsValid)
		assert.Equal(t, "Citibank", result.BankName)
	})

	t.Run("Known Prefix - Bank of America", func(t *testing.T) {
		result := payment.ValidatePrefix("1234567890123456")

		assert.True(t, result.IsValid)
		assert.Equal(t, "Bank of America", result.BankName)
	})

	t.Run("Unknown Prefix", func(t *testing.T) {
		result := payment.ValidatePrefix("9912345678901234")

		assert.False(t, result.IsValid)
		assert.Empty(t, result.BankName)
	})

	t.Run("Too Short", func(t *testing.T) {
		assert.False(t, payment.ValidatePrefix("4").IsValid)
		assert.False(t, payment.ValidatePrefix("").IsValid)
	})
}

func TestMaskNumber(t *testing.T) {
	assert.Equal(t, "************3456", payment.MaskNumber("1234567890123456"))
	assert.Equal(t, "1234", payment.MaskNumber("1234"))
}

func TestStripMask(t *testing.T) {
	assert.Equal(t, "3456", payment.StripMask("************3456"))
	assert.Equal(t, "1234567890123456", payment.StripMask("1234567890123456"))
}
