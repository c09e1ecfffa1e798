package api

import (
	"context"
	"net/url"

	"github.com/shopsphere/storefront-client/internal/models"
)

func (c *Client) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {

	var result models.LoginResponse

	if err := c.post(ctx, "/auth/login", req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// CheckoutData fetches the checkout bundle: profile, saved addresses and
// saved payment methods, in one call when the checkout screen opens.
func (c *Client) CheckoutData(ctx context.Context) (*models.CheckoutData, error) {

	var data models.CheckoutData

	if err := c.get(ctx, "/user/checkout-data", &data); err != nil {
		return nil, err
	}

	return &data, nil
}

func (c *Client) CreateAddress(ctx context.Context, req *models.AddressRequest) (*models.Address, error) {

	var address models.Address

	if err := c.post(ctx, "/user/addresses", req, &address); err != nil {
		return nil, err
	}

	return &address, nil
}

func (c *Client) UpdateAddress(ctx context.Context, id string, req *models.AddressRequest) (*models.Address, error) {

	var address models.Address

	if err := c.put(ctx, "/user/addresses/"+url.PathEscape(id), req, &address); err != nil {
		return nil, err
	}

	return &address, nil
}

func (c *Client) DeleteAddress(ctx context.Context, id string) error {
	return c.delete(ctx, "/user/addresses/"+url.PathEscape(id))
}

func (c *Client) CreatePaymentMethod(ctx context.Context, req *models.PaymentMethodRequest) (*models.PaymentMethod, error) {

	var method models.PaymentMethod

	if err := c.post(ctx, "/user/payment-methods", req, &method); err != nil {
		return nil, err
	}

	return &method, nil
}

func (c *Client) UpdatePaymentMethod(ctx context.Context, id string, req *models.PaymentMethodRequest) (*models.PaymentMethod, error) {

	var method models.PaymentMethod

	if err := c.put(ctx, "/user/payment-methods/"+url.PathEscape(id), req, &method); err != nil {
		return nil, err
	}

	return &method, nil
}

func (c *Client) DeletePaymentMethod(ctx context.Context, id string) error {
	return c.delete(ctx, "/user/payment-methods/"+url.PathEscape(id))
}

func (c *Client) ListNotifications(ctx context.Context) ([]models.Notification, error) {

	var notifications []models.Notification

	if err := c.get(ctx, "/notifications", &notifications); err != nil {
		return nil, err
	}

	return notifications, nil
}

func (c *Client) ListRegistries(ctx context.Context) ([]models.Registry, error) {

	var registries []models.Registry

	if err := c.get(ctx, "/user/registries", &registries); err != nil {
		return nil, err
	}

	return registries, nil
}
