package checkout_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsphere/storefront-client/internal/cart"
	"github.com/shopsphere/storefront-client/internal/checkout"
	"github.com/shopsphere/storefront-client/internal/models"
)

func filledCart(t *testing.T) *cart.Ledger {
	t.Helper()

	ledger := cart.New()
	ledger.Add(models.Product{ID: "a", Name: "A", Price: decimal.RequireFromString("10.00")}, 2)
	ledger.Add(models.Product{ID: "b", Name: "B", Price: decimal.RequireFromString("25.00")}, 1)

	return ledger
}

func savedAddress() models.Address {
	return models.Address{
		ID:      "addr-1",
		Street:  "1 Main St",
		City:    "Springfield",
		State:   "IL",
		ZipCode: "62701",
		Country: "US",
	}
}

func savedCard() models.PaymentMethod {
	return models.PaymentMethod{
		ID:       "pm-1",
		Type:     models.PaymentTypeCredit,
		LastFour: "3456",
		ExpMonth: 9,
		ExpYear:  time.Now().Year() + 2,
	}
}

// fillValidNewCheckout puts the form into a state that passes every rule.
func fillValidNewCheckout(f *checkout.Form) {
	f.SetStreet("1 Main St")
	f.SetCity("Springfield")
	f.SetState("IL")
	f.SetZipCode("62701")
	f.SetCountry("US")
	f.SetCardNumber("1234567890123456")
	f.SetExpMonth(12)
	f.SetExpYear(time.Now().Year() + 1)
	f.SetCVV("123")
}

func TestAddressModeTransitions(t *testing.T) {
	t.Run("Selecting Saved Address Copies Fields And Switches Mode", func(t *testing.T) {
		form := checkout.NewForm()

		form.SelectAddress(savedAddress())

		assert.Equal(t, checkout.ModeExisting, form.AddressMode())
		assert.Equal(t, "addr-1", form.SelectedAddressID())
		assert.Equal(t, "Springfield", form.ShippingAddress().City)
	})

	t.Run("Editing Any Field Flips Back To New And Clears Selection", func(t *testing.T) {
		form := checkout.NewForm()
		form.SelectAddress(savedAddress())

		form.SetCity("Shelbyville")

		assert.Equal(t, checkout.ModeNew, form.AddressMode())
		assert.Empty(t, form.SelectedAddressID())
		assert.Equal(t, "Shelbyville", form.ShippingAddress().City)
		// the other copied fields stay as a starting point for the fresh address
		assert.Equal(t, "1 Main St", form.ShippingAddress().Street)
	})
}

func TestPaymentModeTransitions(t *testing.T) {
	t.Run("Selecting Saved Method Masks Number And Keeps CVV", func(t *testing.T) {
		form := checkout.NewForm()
		form.SetCVV("987")

		form.SelectPaymentMethod(savedCard())

		assert.Equal(t, checkout.ModeExisting, form.PaymentMode())
		assert.Equal(t, "pm-1", form.SelectedPaymentID())
		assert.Equal(t, "************3456", form.Card().CardNumber)
		assert.Equal(t, "987", form.Card().CVV, "CVV survives the mode switch")
	})

	t.Run("Editing Card Number Flips To New", func(t *testing.T) {
		form := checkout.NewForm()
		form.SelectPaymentMethod(savedCard())

		form.SetCardNumber("1234567890123456")

		assert.Equal(t, checkout.ModeNew, form.PaymentMode())
		assert.Empty(t, form.SelectedPaymentID())
	})

	t.Run("Entering CVV Never Flips Mode", func(t *testing.T) {
		form := checkout.NewForm()
		form.SelectPaymentMethod(savedCard())

		form.SetCVV("123")

		assert.Equal(t, checkout.ModeExisting, form.PaymentMode())
		assert.Equal(t, "pm-1", form.SelectedPaymentID())
	})
}

func TestValidate(t *testing.T) {
	t.Run("Empty Cart Always Fails With Cart Error", func(t *testing.T) {
		form := checkout.NewForm()
		fillValidNewCheckout(form)

		ok := form.Validate(cart.New())

		assert.False(t, ok)
		assert.Contains(t, form.Errors(), "cart")
	})

	t.Run("Blank New Address Produces Exactly Five Field Errors", func(t *testing.T) {
		form := checkout.NewForm()
		form.SetPaymentType(models.PaymentTypePayPal) // isolate the address rules

		ok := form.Validate(filledCart(t))

		assert.False(t, ok)
		errs := form.Errors()
		assert.Len(t, errs, 5)

		for _, key := range []string{"street", "city", "state", "zipCode", "country"} {
			assert.Contains(t, errs, key)
		}
	})

	t.Run("Existing Address With Selection Clears Address Errors", func(t *testing.T) {
		form := checkout.NewForm()
		form.SetPaymentType(models.PaymentTypePayPal)
		form.SelectAddress(savedAddress())

		ok := form.Validate(filledCart(t))

		assert.True(t, ok)
		assert.Empty(t, form.Errors())
	})

	t.Run("Existing Address Without Selection Fails On addressId", func(t *testing.T) {
		form := checkout.NewForm()
		form.SetPaymentType(models.PaymentTypePayPal)
		form.SelectAddress(models.Address{}) // existing mode, empty id

		ok := form.Validate(filledCart(t))

		assert.False(t, ok)
		errs := form.Errors()
		assert.Len(t, errs, 1)
		assert.Contains(t, errs, "addressId")
	})

	t.Run("New Card - Full Rule Set", func(t *testing.T) {
		form := checkout.NewForm()
		form.SelectAddress(savedAddress())

		ok := form.Validate(filledCart(t))

		assert.False(t, ok)
		errs := form.Errors()
		assert.Equal(t, "Card number is required", errs["cardNumber"])
		assert.Equal(t, "Expiration month is required", errs["expMonth"])
		assert.Equal(t, "Expiration year is required", errs["expYear"])
		assert.Equal(t, "CVV is required", errs["cvv"])
	})

	t.Run("New Card - Wrong Lengths And Ranges", func(t *testing.T) {
		form := checkout.NewForm()
		form.SelectAddress(savedAddress())
		form.SetCardNumber("1234")
		form.SetExpMonth(13)
		form.SetExpYear(time.Now().Year() + 21)
		form.SetCVV("12")

		ok := form.Validate(filledCart(t))

		assert.False(t, ok)
		errs := form.Errors()
		assert.Equal(t, "Card number must be 16 digits", errs["cardNumber"])
		assert.Equal(t, "Expiration month must be between 1 and 12", errs["expMonth"])
		assert.Equal(t, "Expiration year is out of range", errs["expYear"])
		assert.Equal(t, "CVV must be 3 or 4 digits", errs["cvv"])
	})

	t.Run("Known Prefix Passes, Unknown Prefix Fails", func(t *testing.T) {
		form := checkout.NewForm()
		form.SelectAddress(savedAddress())
		fillValidNewCheckout(form)

		require.True(t, form.Validate(filledCart(t)), "prefix 12 (Bank of America) must pass")

		form.SetCardNumber("9912345678901234")

		assert.False(t, form.Validate(filledCart(t)))
		assert.Equal(t, "Card number is not recognized", form.Errors()["cardNumber"])
	})

	t.Run("Existing Payment Without Selection Fails On paymentId", func(t *testing.T) {
		form := checkout.NewForm()
		form.SelectAddress(savedAddress())
		form.SelectPaymentMethod(models.PaymentMethod{Type: models.PaymentTypeCredit})
		form.SetCVV("123")

		ok := form.Validate(filledCart(t))

		assert.False(t, ok)
		assert.Contains(t, form.Errors(), "paymentId")
	})

	t.Run("Non-Card Type Skips All Card Rules", func(t *testing.T) {
		form := checkout.NewForm()
		form.SelectAddress(savedAddress())
		form.SetPaymentType(models.PaymentTypeBankTransfer)

		ok := form.Validate(filledCart(t))

		assert.True(t, ok)
		assert.Empty(t, form.Errors())
	})
}

func TestGiftCard(t *testing.T) {
	subtotal := decimal.RequireFromString("45.00")

	t.Run("Redemption Reduces Chargeable Total", func(t *testing.T) {
		form := checkout.NewForm()
		card := models.GiftCard{Code: "GC-1", Balance: decimal.RequireFromString("100.00")}

		redeemed := form.ApplyGiftCard(card, decimal.RequireFromString("5.00"), subtotal)

		assert.True(t, redeemed.Equal(decimal.RequireFromString("5.00")))
		assert.True(t, form.ChargeableTotal(subtotal).Equal(decimal.RequireFromString("40.00")))
	})

	t.Run("Redemption Capped By Balance", func(t *testing.T) {
		form := checkout.NewForm()
		card := models.GiftCard{Code: "GC-1", Balance: decimal.RequireFromString("3.00")}

		redeemed := form.ApplyGiftCard(card, decimal.RequireFromString("20.00"), subtotal)

		assert.True(t, redeemed.Equal(decimal.RequireFromString("3.00")))
	})

	t.Run("Redemption Capped By Subtotal", func(t *testing.T) {
		form := checkout.NewForm()
		card := models.GiftCard{Code: "GC-1", Balance: decimal.RequireFromString("500.00")}

		redeemed := form.ApplyGiftCard(card, decimal.RequireFromString("500.00"), subtotal)

		assert.True(t, redeemed.Equal(subtotal))
		assert.True(t, form.ChargeableTotal(subtotal).IsZero())
	})

	t.Run("Removal Restores Full Total", func(t *testing.T) {
		form := checkout.NewForm()
		form.ApplyGiftCard(models.GiftCard{Code: "GC-1", Balance: subtotal}, subtotal, subtotal)

		form.RemoveGiftCard()

		assert.Nil(t, form.GiftCard())
		assert.True(t, form.ChargeableTotal(subtotal).Equal(subtotal))
	})

	t.Run("Shrunken Cart Re-Clamps At Charge Time", func(t *testing.T) {
		form := checkout.NewForm()
		form.ApplyGiftCard(models.GiftCard{Code: "GC-1", Balance: subtotal}, subtotal, subtotal)

		smaller := decimal.RequireFromString("10.00")

		assert.True(t, form.ChargeableTotal(smaller).IsZero())
	})
}
