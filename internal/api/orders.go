package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	apperrors "github.com/shopsphere/storefront-client/internal/errors"
	"github.com/shopsphere/storefront-client/internal/models"
)

// CreateOrder submits an assembled order. A 4xx rejection other than an
// auth or routing failure is surfaced as ErrCodeOrderRejected carrying the
// backend's reason verbatim, so the checkout flow can map it onto fields.
func (c *Client) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {

	var order models.Order

	if err := c.post(ctx, "/orders", req, &order); err != nil {

		if appErr, ok := apperrors.IsAppError(err); ok && isRejectionStatus(appErr.StatusCode) {
			rejected := apperrors.OrderRejectedError(appErr.Message).WithError(err)
			rejected.StatusCode = appErr.StatusCode

			return nil, rejected
		}

		return nil, err
	}

	return &order, nil
}

func isRejectionStatus(status int) bool {
	switch status {
	case http.StatusBadRequest, http.StatusPaymentRequired, http.StatusConflict, http.StatusUnprocessableEntity:
		return true
	}

	return false
}

func (c *Client) GetOrder(ctx context.Context, id string) (*models.Order, error) {

	var order models.Order

	if err := c.get(ctx, "/orders/"+url.PathEscape(id), &order); err != nil {
		return nil, err
	}

	return &order, nil
}

type ordersPage struct {
	Data     []models.Order `json:"data"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}

func (c *Client) ListOrders(ctx context.Context, page, pageSize int) ([]models.Order, int, error) {

	var result ordersPage

	path := fmt.Sprintf("/orders?page=%d&pageSize=%d", page, pageSize)

	if err := c.get(ctx, path, &result); err != nil {
		return nil, 0, err
	}

	return result.Data, result.Total, nil
}

// UpdateOrderStatus is the admin-side status transition. The client never
// moves an order's status locally; it only re-fetches what the backend says.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {

	var order models.Order

	body := models.UpdateOrderStatusRequest{Status: status}

	if err := c.put(ctx, "/orders/"+url.PathEscape(id)+"/status", body, &order); err != nil {
		return nil, err
	}

	return &order, nil
}

func (c *Client) GiftCardByCode(ctx context.Context, code string) (*models.GiftCard, error) {

	var card models.GiftCard

	if err := c.get(ctx, "/gift-cards/code/"+url.PathEscape(code), &card); err != nil {
		return nil, err
	}

	return &card, nil
}
