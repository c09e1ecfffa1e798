package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/shopsphere/storefront-client/internal/models"
)

type productsPage struct {
	Data     []models.Product `json:"data"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

func (c *Client) ListProducts(ctx context.Context, page, pageSize int) ([]models.Product, int, error) {

	var result productsPage

	path := fmt.Sprintf("/products?page=%d&pageSize=%d", page, pageSize)

	if err := c.get(ctx, path, &result); err != nil {
		return nil, 0, err
	}

	return result.Data, result.Total, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {

	var product models.Product

	if err := c.get(ctx, "/products/"+url.PathEscape(id), &product); err != nil {
		return nil, err
	}

	return &product, nil
}

func (c *Client) CreateProduct(ctx context.Context, req *models.ProductRequest) (*models.Product, error) {

	var product models.Product

	if err := c.post(ctx, "/products", req, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, req *models.ProductRequest) (*models.Product, error) {

	var product models.Product

	if err := c.put(ctx, "/products/"+url.PathEscape(id), req, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.delete(ctx, "/products/"+url.PathEscape(id))
}

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {

	var categories []models.Category

	if err := c.get(ctx, "/categories", &categories); err != nil {
		return nil, err
	}

	return categories, nil
}

func (c *Client) GetCategory(ctx context.Context, id string) (*models.Category, error) {

	var category models.Category

	if err := c.get(ctx, "/categories/"+url.PathEscape(id), &category); err != nil {
		return nil, err
	}

	return &category, nil
}

func (c *Client) CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.Category, error) {

	var category models.Category

	if err := c.post(ctx, "/categories", req, &category); err != nil {
		return nil, err
	}

	return &category, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id string, req *models.CategoryRequest) (*models.Category, error) {

	var category models.Category

	if err := c.put(ctx, "/categories/"+url.PathEscape(id), req, &category); err != nil {
		return nil, err
	}

	return &category, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.delete(ctx, "/categories/"+url.PathEscape(id))
}
