// Package catalog supports product browsing and comparison: it sanitizes
// the free-form description HTML the backend serves and builds comparison
// tables from a category's comparison-field definitions.
package catalog

import (
	"context"

	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"

	apperrors "github.com/shopsphere/storefront-client/internal/errors"
	"github.com/shopsphere/storefront-client/internal/models"
)

type API interface {
	ListProducts(ctx context.Context, page, pageSize int) ([]models.Product, int, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

type Service struct {
	api       API
	sanitizer *bluemonday.Policy
}

func NewService(api API) *Service {
	return &Service{
		api: api,
		// Descriptions are rendered as text in the client; strip markup
		// entirely rather than allowlisting tags.
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *Service) Browse(ctx context.Context, page, pageSize int) ([]models.Product, int, error) {

	if page < 1 {
		page = 1
	}

	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	products, total, err := s.api.ListProducts(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	for i := range products {
		products[i].Description = s.sanitizer.Sanitize(products[i].Description)
	}

	return products, total, nil
}

func (s *Service) Product(ctx context.Context, id string) (*models.Product, error) {

	if id == "" {
		return nil, apperrors.BadRequestError("Product id is required")
	}

	product, err := s.api.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Description = s.sanitizer.Sanitize(product.Description)

	return product, nil
}

func (s *Service) Categories(ctx context.Context) ([]models.Category, error) {
	return s.api.ListCategories(ctx)
}

// ComparisonRow is one attribute across the compared products, in the same
// order the products were given.
type ComparisonRow struct {
	Field  models.ComparisonField
	Values []string
}

// missingValue marks a feature a product does not define.
const missingValue = "—"

// Compare fetches the category and the named products and builds one row
// per comparison field the category defines. Features outside the
// category's definitions are not compared.
func (s *Service) Compare(ctx context.Context, categoryID string, productIDs []string) ([]ComparisonRow, error) {

	if len(productIDs) < 2 {
		return nil, apperrors.BadRequestError("Select at least two products to compare")
	}

	category, err := s.api.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(productIDs))

	for _, id := range productIDs {
		product, err := s.api.GetProduct(ctx, id)
		if err != nil {
			return nil, err
		}

		if product.CategoryID != categoryID {
			return nil, apperrors.BadRequestError("Products from different categories cannot be compared")
		}

		products = append(products, *product)
	}

	return BuildComparison(*category, products), nil
}

// BuildComparison is the pure table builder behind Compare.
func BuildComparison(category models.Category, products []models.Product) []ComparisonRow {

	rows := make([]ComparisonRow, 0, len(category.ComparisonFields))

	for _, field := range category.ComparisonFields {

		values := make([]string, 0, len(products))

		for _, product := range products {
			if v, ok := product.Features[field.Name]; ok && v != "" {
				values = append(values, v)
			} else {
				values = append(values, missingValue)
			}
		}

		rows = append(rows, ComparisonRow{Field: field, Values: values})
	}

	return rows
}

// FormatPrice renders a decimal amount for display.
func FormatPrice(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}
