// Package admin is the back-office side of the client: contract-level CRUD
// for products, categories and order status transitions. Requests are
// validated locally before they go out; everything else is the backend's
// business.
package admin

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/shopsphere/storefront-client/internal/errors"
	"github.com/shopsphere/storefront-client/internal/models"
)

type API interface {
	CreateProduct(ctx context.Context, req *models.ProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, req *models.ProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, req *models.CategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error)
	ListOrders(ctx context.Context, page, pageSize int) ([]models.Order, int, error)
}

type Service struct {
	api       API
	validator *validator.Validate
	logger    *slog.Logger
}

func NewService(api API) *Service {
	return &Service{
		api:       api,
		validator: validator.New(),
		logger:    slog.Default(),
	}
}

// validationError names the first failing field when the validator reports
// one, otherwise falls back to the generic message.
func validationError(message string, err error) *apperrors.AppError {

	var fieldErrs validator.ValidationErrors

	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return apperrors.AddValidationError(fieldErrs[0].Field(), fieldErrs[0].Tag()).WithError(err)
	}

	return apperrors.ValidationError(message).WithError(err)
}

func (s *Service) CreateProduct(ctx context.Context, req *models.ProductRequest) (*models.Product, error) {

	if err := s.validator.Struct(req); err != nil {
		return nil, validationError("Invalid product data", err)
	}

	product, err := s.api.CreateProduct(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Product created", slog.String("productId", product.ID))

	return product, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id string, req *models.ProductRequest) (*models.Product, error) {

	if id == "" {
		return nil, apperrors.BadRequestError("Product id is required")
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, validationError("Invalid product data", err)
	}

	return s.api.UpdateProduct(ctx, id, req)
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {

	if id == "" {
		return apperrors.BadRequestError("Product id is required")
	}

	return s.api.DeleteProduct(ctx, id)
}

func (s *Service) CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.Category, error) {

	if err := s.validator.Struct(req); err != nil {
		return nil, validationError("Invalid category data", err)
	}

	category, err := s.api.CreateCategory(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Category created", slog.String("categoryId", category.ID))

	return category, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id string, req *models.CategoryRequest) (*models.Category, error) {

	if id == "" {
		return nil, apperrors.BadRequestError("Category id is required")
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, validationError("Invalid category data", err)
	}

	return s.api.UpdateCategory(ctx, id, req)
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {

	if id == "" {
		return apperrors.BadRequestError("Category id is required")
	}

	return s.api.DeleteCategory(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context, page, pageSize int) ([]models.Order, int, error) {

	if page < 1 {
		page = 1
	}

	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return s.api.ListOrders(ctx, page, pageSize)
}

// UpdateOrderStatus pushes a status transition to the backend. The backend
// owns the transition rules; the client only screens for a known status
// value.
func (s *Service) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {

	if id == "" {
		return nil, apperrors.BadRequestError("Order id is required")
	}

	req := models.UpdateOrderStatusRequest{Status: status}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError("Unknown order status", err)
	}

	order, err := s.api.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order status updated",
		slog.String("orderId", id),
		slog.String("status", string(status)))

	return order, nil
}
