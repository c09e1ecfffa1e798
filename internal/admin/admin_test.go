package admin_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shopsphere/storefront-client/internal/admin"
	apperrors "github.com/shopsphere/storefront-client/internal/errors"
	"github.com/shopsphere/storefront-client/internal/models"
)

type mockAdminAPI struct {
	mock.Mock
}

func (m *mockAdminAPI) CreateProduct(ctx context.Context, req *models.ProductRequest) (*models.Product, error) {
	args := m.Called(ctx, req)
	if p := args.Get(0); p != nil {
		return p.(*models.Product), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockAdminAPI) UpdateProduct(ctx context.Context, id string, req *models.ProductRequest) (*models.Product, error) {
	args := m.Called(ctx, id, req)
	if p := args.Get(0); p != nil {
		return p.(*models.Product), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockAdminAPI) DeleteProduct(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAdminAPI) CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.Category, error) {
	args := m.Called(ctx, req)
	if c := args.Get(0); c != nil {
		return c.(*models.Category), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockAdminAPI) UpdateCategory(ctx context.Context, id string, req *models.CategoryRequest) (*models.Category, error) {
	args := m.Called(ctx, id, req)
	if c := args.Get(0); c != nil {
		return c.(*models.Category), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockAdminAPI) DeleteCategory(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAdminAPI) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	args := m.Called(ctx, id, status)
	if o := args.Get(0); o != nil {
		return o.(*models.Order), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockAdminAPI) ListOrders(ctx context.Context, page, pageSize int) ([]models.Order, int, error) {
	args := m.Called(ctx, page, pageSize)
	if o := args.Get(0); o != nil {
		return o.([]models.Order), args.Int(1), args.Error(2)
	}

	return nil, 0, args.Error(2)
}

func validProductRequest() *models.ProductRequest {
	return &models.ProductRequest{
		Name:          "Widget",
		Price:         decimal.RequireFromString("19.99"),
		CategoryID:    "cat-1",
		StockQuantity: 5,
	}
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		api := new(mockAdminAPI)
		service := admin.NewService(api)
		req := validProductRequest()
		api.On("CreateProduct", ctx, req).Return(&models.Product{ID: "p1", Name: "Widget"}, nil).Once()

		// Act
		product, err := service.CreateProduct(ctx, req)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "p1", product.ID)
		api.AssertExpectations(t)
	})

	t.Run("Failure - Validation Blocks The Call", func(t *testing.T) {
		api := new(mockAdminAPI)
		service := admin.NewService(api)

		product, err := service.CreateProduct(ctx, &models.ProductRequest{Name: "x"})

		assert.Nil(t, product)
		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
		api.AssertNotCalled(t, "CreateProduct")
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		api := new(mockAdminAPI)
		service := admin.NewService(api)
		api.On("UpdateOrderStatus", ctx, "order-1", models.OrderStatusShipped).
			Return(&models.Order{ID: "order-1", Status: models.OrderStatusShipped}, nil).Once()

		order, err := service.UpdateOrderStatus(ctx, "order-1", models.OrderStatusShipped)

		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusShipped, order.Status)
	})

	t.Run("Failure - Unknown Status", func(t *testing.T) {
		api := new(mockAdminAPI)
		service := admin.NewService(api)

		order, err := service.UpdateOrderStatus(ctx, "order-1", models.OrderStatus("teleported"))

		assert.Nil(t, order)
		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
		api.AssertNotCalled(t, "UpdateOrderStatus")
	})

	t.Run("Failure - Missing Id", func(t *testing.T) {
		service := admin.NewService(new(mockAdminAPI))

		_, err := service.UpdateOrderStatus(ctx, "", models.OrderStatusShipped)

		require.Error(t, err)
	})
}

func TestListOrders(t *testing.T) {
	ctx := context.Background()

	t.Run("Pagination Defaults Applied", func(t *testing.T) {
		api := new(mockAdminAPI)
		service := admin.NewService(api)
		api.On("ListOrders", ctx, 1, 20).Return([]models.Order{{ID: "order-1"}}, 1, nil).Once()

		orders, total, err := service.ListOrders(ctx, 0, 500)

		require.NoError(t, err)
		assert.Len(t, orders, 1)
		assert.Equal(t, 1, total)
		api.AssertExpectations(t)
	})
}
