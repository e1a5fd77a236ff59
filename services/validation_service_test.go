package services

import (
	"context"
	"errors"
	"testing"

	"storefront-backend/catalog"
	"storefront-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// --- Mock Catalog Reader ---
type MockCatalogReader struct {
	mock.Mock
}

func (m *MockCatalogReader) GetProductsByIDs(ctx context.Context, ids []string) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockCatalogReader) ListProducts(ctx context.Context, limit int) ([]catalog.Product, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func intPtr(v int) *int { return &v }

func TestValidateCart(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - all prices match, total sums over quantities", func(t *testing.T) {
		// Arrange
		mockCatalog := new(MockCatalogReader)
		svc := NewValidationService(mockCatalog, zap.NewNop())

		mockCatalog.On("GetProductsByIDs", mock.Anything, []string{"saree-1", "stole-2"}).
			Return([]catalog.Product{
				{ID: "saree-1", Title: "Kanchipuram Silk Saree", Price: intPtr(4500), Availability: catalog.AvailabilityInStock},
				{ID: "stole-2", Title: "Handwoven Stole", Price: intPtr(1200), Availability: catalog.AvailabilityInStock},
			}, nil).Once()

		items := []models.CartItem{
			{ProductID: "saree-1", UnitPrice: intPtr(4500), Quantity: 1},
			{ProductID: "stole-2", UnitPrice: intPtr(1200), Quantity: 2},
		}

		// Act
		result, svcErr := svc.ValidateCart(ctx, items)

		// Assert
		assert.Nil(t, svcErr)
		assert.True(t, result.Valid)
		assert.Empty(t, result.Errors)
		assert.Equal(t, 4500+2*1200, result.ValidatedTotal)
		assert.Len(t, result.ValidatedItems, 2)
		mockCatalog.AssertExpectations(t)
	})

	t.Run("Failure - price mismatch reports absolute difference", func(t *testing.T) {
		// Arrange
		mockCatalog := new(MockCatalogReader)
		svc := NewValidationService(mockCatalog, zap.NewNop())

		mockCatalog.On("GetProductsByIDs", mock.Anything, []string{"saree-1"}).
			Return([]catalog.Product{
				{ID: "saree-1", Price: intPtr(4500), Availability: catalog.AvailabilityInStock},
			}, nil).Once()

		// Client lowered the price by 500.
		items := []models.CartItem{
			{ProductID: "saree-1", UnitPrice: intPtr(4000), Quantity: 1},
		}

		// Act
		result, svcErr := svc.ValidateCart(ctx, items)

		// Assert
		assert.Nil(t, svcErr)
		assert.False(t, result.Valid)
		assert.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "difference 500")
		assert.Equal(t, 0, result.ValidatedTotal)
		assert.False(t, result.ValidatedItems[0].IsValid)
	})

	t.Run("Failure - inflated price yields the same positive difference", func(t *testing.T) {
		// Arrange
		mockCatalog := new(MockCatalogReader)
		svc := NewValidationService(mockCatalog, zap.NewNop())

		mockCatalog.On("GetProductsByIDs", mock.Anything, []string{"saree-1"}).
			Return([]catalog.Product{
				{ID: "saree-1", Price: intPtr(4500), Availability: catalog.AvailabilityInStock},
			}, nil).Once()

		items := []models.CartItem{
			{ProductID: "saree-1", UnitPrice: intPtr(5000), Quantity: 1},
		}

		// Act
		result, _ := svc.ValidateCart(ctx, items)

		// Assert
		assert.False(t, result.Valid)
		assert.Contains(t, result.Errors[0], "difference 500")
	})

	t.Run("Failure - unknown product is a hard error", func(t *testing.T) {
		// Arrange
		mockCatalog := new(MockCatalogReader)
		svc := NewValidationService(mockCatalog, zap.NewNop())

		mockCatalog.On("GetProductsByIDs", mock.Anything, []string{"ghost-9"}).
			Return([]catalog.Product{}, nil).Once()

		items := []models.CartItem{
			{ProductID: "ghost-9", UnitPrice: intPtr(1000), Quantity: 1},
		}

		// Act
		result, svcErr := svc.ValidateCart(ctx, items)

		// Assert
		assert.Nil(t, svcErr)
		assert.False(t, result.Valid)
		assert.Contains(t, result.Errors[0], "not found")
	})

	t.Run("Failure - missing catalog price is a hard error", func(t *testing.T) {
		// Arrange
		mockCatalog := new(MockCatalogReader)
		svc := NewValidationService(mockCatalog, zap.NewNop())

		mockCatalog.On("GetProductsByIDs", mock.Anything, []string{"bridal-3"}).
			Return([]catalog.Product{
				{ID: "bridal-3", Availability: catalog.AvailabilityMadeToOrder},
			}, nil).Once()

		items := []models.CartItem{
			{ProductID: "bridal-3", UnitPrice: intPtr(20000), Quantity: 1},
		}

		// Act
		result, _ := svc.ValidateCart(ctx, items)

		// Assert
		assert.False(t, result.Valid)
		assert.Contains(t, result.Errors[0], "no catalog price")
	})

	t.Run("Warning - on-request item with a price is valid but flagged", func(t *testing.T) {
		// Arrange
		mockCatalog := new(MockCatalogReader)
		svc := NewValidationService(mockCatalog, zap.NewNop())

		mockCatalog.On("GetProductsByIDs", mock.Anything, []string{"bridal-3"}).
			Return([]catalog.Product{
				{ID: "bridal-3", Availability: catalog.AvailabilityMadeToOrder},
			}, nil).Once()

		items := []models.CartItem{
			{ProductID: "bridal-3", UnitPrice: intPtr(20000), Quantity: 1, PriceDisplay: models.PriceDisplayOnRequest},
		}

		// Act
		result, _ := svc.ValidateCart(ctx, items)

		// Assert
		assert.True(t, result.Valid)
		assert.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "priced on request")
		assert.Equal(t, 0, result.ValidatedTotal)
	})

	t.Run("Warning - sold out product does not block the cart", func(t *testing.T) {
		// Arrange
		mockCatalog := new(MockCatalogReader)
		svc := NewValidationService(mockCatalog, zap.NewNop())

		mockCatalog.On("GetProductsByIDs", mock.Anything, []string{"stole-2"}).
			Return([]catalog.Product{
				{ID: "stole-2", Price: intPtr(1200), Availability: catalog.AvailabilitySoldOut},
			}, nil).Once()

		items := []models.CartItem{
			{ProductID: "stole-2", UnitPrice: intPtr(1200), Quantity: 1},
		}

		// Act
		result, _ := svc.ValidateCart(ctx, items)

		// Assert
		assert.True(t, result.Valid)
		assert.Len(t, result.Warnings, 1)
		assert.Equal(t, 1200, result.ValidatedTotal)
	})

	t.Run("Warning - item without product id is skipped", func(t *testing.T) {
		// Arrange
		mockCatalog := new(MockCatalogReader)
		svc := NewValidationService(mockCatalog, zap.NewNop())

		mockCatalog.On("GetProductsByIDs", mock.Anything, []string{"saree-1"}).
			Return([]catalog.Product{
				{ID: "saree-1", Price: intPtr(4500), Availability: catalog.AvailabilityInStock},
			}, nil).Once()

		items := []models.CartItem{
			{ProductID: "", UnitPrice: intPtr(100), Quantity: 1},
			{ProductID: "saree-1", UnitPrice: intPtr(4500), Quantity: 1},
		}

		// Act
		result, _ := svc.ValidateCart(ctx, items)

		// Assert
		assert.True(t, result.Valid)
		assert.Len(t, result.Warnings, 1)
		assert.Len(t, result.ValidatedItems, 1)
	})

	t.Run("Failure - empty cart is a 400", func(t *testing.T) {
		mockCatalog := new(MockCatalogReader)
		svc := NewValidationService(mockCatalog, zap.NewNop())

		result, svcErr := svc.ValidateCart(ctx, nil)

		assert.Nil(t, result)
		assert.NotNil(t, svcErr)
		assert.Equal(t, 400, svcErr.StatusCode)
		mockCatalog.AssertNotCalled(t, "GetProductsByIDs")
	})

	t.Run("Failure - catalog outage is a 500", func(t *testing.T) {
		mockCatalog := new(MockCatalogReader)
		svc := NewValidationService(mockCatalog, zap.NewNop())

		mockCatalog.On("GetProductsByIDs", mock.Anything, mock.Anything).
			Return(nil, errors.New("connection refused")).Once()

		result, svcErr := svc.ValidateCart(ctx, []models.CartItem{
			{ProductID: "saree-1", UnitPrice: intPtr(4500), Quantity: 1},
		})

		assert.Nil(t, result)
		assert.NotNil(t, svcErr)
		assert.Equal(t, 500, svcErr.StatusCode)
	})
}
