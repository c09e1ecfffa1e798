package checkout

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopsphere/storefront-client/internal/cart"
	apperrors "github.com/shopsphere/storefront-client/internal/errors"
	"github.com/shopsphere/storefront-client/internal/models"
	"github.com/shopsphere/storefront-client/internal/payment"
)

// cvvMismatchReason is the one rejection reason the backend reports that
// maps to a specific field instead of the general banner.
const cvvMismatchReason = "CVV does not match"

// OrderAPI is the slice of the backend client the submitter needs.
type OrderAPI interface {
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error)
}

// CartClearer clears the persisted cart after a fulfilled order.
type CartClearer interface {
	ClearCart(ctx context.Context) error
}

// Confirmation carries what the confirmation step displays: the new order id
// and the resolved card number used to pay.
type Confirmation struct {
	OrderID    string
	CardNumber string
}

// Submitter turns a validated form plus the cart ledger into an order
// request, submits it, and resolves every failure at this boundary: field
// errors for known rejections, the general banner for everything else.
type Submitter struct {
	api    OrderAPI
	carts  CartClearer
	logger *slog.Logger
}

func NewSubmitter(api OrderAPI, carts CartClearer) *Submitter {
	return &Submitter{api: api, carts: carts, logger: slog.Default()}
}

// Submit re-validates (the UI should already block invalid forms, but the
// flow defends itself), re-runs the prefix check on the resolved number,
// builds the request with add-time prices, and submits. A fulfilled order
// clears the cart; a rejection or transport fault sets form errors and
// returns the underlying error.
func (s *Submitter) Submit(ctx context.Context, form *Form, ledger *cart.Ledger) (*Confirmation, error) {

	if !form.Validate(ledger) {
		return nil, apperrors.ValidationError("Checkout form has validation errors")
	}

	var resolved string

	if form.PaymentType().IsCard() {
		resolved = payment.StripMask(form.Card().CardNumber)

		if !payment.ValidatePrefix(resolved).IsValid {
			form.SetFieldError("cardNumber", "Card number is not recognized")

			return nil, apperrors.ValidationError("Card number failed the issuer check")
		}
	}

	req := s.buildRequest(form, ledger)

	order, err := s.api.CreateOrder(ctx, req)
	if err != nil {

		if appErr, ok := apperrors.IsAppError(err); ok && appErr.Code == apperrors.ErrCodeOrderRejected {

			if strings.EqualFold(strings.TrimSpace(appErr.Message), cvvMismatchReason) {
				form.SetFieldError("cvv", "Invalid pin")
			} else {
				form.SetGeneralError(appErr.Message)
			}

			s.logger.Warn("Order rejected by server", slog.String("reason", appErr.Message))

			return nil, err
		}

		form.SetGeneralError("Something went wrong while placing your order. Please try again.")
		s.logger.Error("Order submission failed", slog.Any("error", err))

		return nil, err
	}

	// The order is placed; a stale persisted cart is recoverable, so a
	// failed clear is logged rather than surfaced as a checkout failure.
	if err := s.carts.ClearCart(ctx); err != nil {
		s.logger.Warn("Failed to clear cart after order", slog.String("orderId", order.ID), slog.Any("error", err))
	}

	s.logger.Info("Order placed", slog.String("orderId", order.ID))

	return &Confirmation{OrderID: order.ID, CardNumber: resolved}, nil
}

func (s *Submitter) buildRequest(form *Form, ledger *cart.Ledger) *models.CreateOrderRequest {

	items := ledger.Items()
	products := make([]models.OrderProduct, 0, len(items))

	for _, item := range items {
		products = append(products, models.OrderProduct{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Product.Price,
		})
	}

	req := &models.CreateOrderRequest{
		Products:        products,
		ShippingAddress: form.ShippingAddress(),
		PaymentMethod:   form.PaymentType(),
		// Resubmission after a transient failure is a fresh submission; the
		// key lets the backend deduplicate it.
		IdempotencyKey: uuid.NewString(),
	}

	if form.PaymentType().IsCard() {
		if form.PaymentMode() == ModeExisting {
			// The masked number is presentation only. Only the reference id
			// and the fresh CVV travel.
			req.SelectedPaymentID = form.SelectedPaymentID()
			req.CardInfo = &models.CardInfo{CVV: form.Card().CVV}
		} else {
			card := form.Card()
			req.CardInfo = &card
		}
	}

	if gc := form.GiftCard(); gc != nil {
		req.GiftCardCode = gc.Code
		req.GiftCardAmount = decimal.Min(gc.Amount, ledger.TotalAmount())
	}

	return req
}
