package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Price         decimal.Decimal   `json:"price"`
	CategoryID    string            `json:"category_id"`
	StockQuantity int               `json:"stock_quantity"`
	InStock       bool              `json:"in_stock"`
	Images        []string          `json:"images"`
	Features      map[string]string `json:"features"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

type ProductRequest struct {
	Name          string            `json:"name" validate:"required,min=2,max=200"`
	Description   string            `json:"description" validate:"max=5000"`
	Price         decimal.Decimal   `json:"price" validate:"required"`
	CategoryID    string            `json:"category_id" validate:"required"`
	StockQuantity int               `json:"stock_quantity" validate:"gte=0"`
	Images        []string          `json:"images" validate:"dive,url"`
	Features      map[string]string `json:"features"`
}

// ComparisonField is a category-defined attribute used both for feature
// display and for cross-product comparison tables.
type ComparisonField struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

type Category struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	ComparisonFields []ComparisonField `json:"comparison_fields"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

type CategoryRequest struct {
	Name             string            `json:"name" validate:"required,min=2,max=100"`
	Description      string            `json:"description" validate:"max=2000"`
	ComparisonFields []ComparisonField `json:"comparison_fields" validate:"dive"`
}

type PaginatedResponse struct {
	Data     any `json:"data"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}
