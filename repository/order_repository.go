package repository

import (
	"context"
	"time"

	"storefront-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	CreateWithItems(ctx context.Context, order *models.Order) error
	FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.Order, int64, error)
	FindAll(ctx context.Context, page, limit int) ([]models.Order, int64, error)
	FindByIDAndUserID(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error)
	FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.Order, error)
	MarkPaid(ctx context.Context, gatewayOrderID, gatewayPaymentID, gatewaySignature string) error
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) error
}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

// CreateWithItems persists the order and its items in one transaction.
func (r *GormOrderRepository) CreateWithItems(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *GormOrderRepository) FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Preload("OrderItems").
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *GormOrderRepository) FindAll(ctx context.Context, page, limit int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Order{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Preload("OrderItems").
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *GormOrderRepository) FindByIDAndUserID(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("OrderItems").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByGatewayOrderID looks an order up by the gateway's correlation key.
// The key is client-supplied and untrusted: exact parameterized equality
// only, never a pattern match.
func (r *GormOrderRepository) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("OrderItems").
		Where("gateway_order_id = ?", gatewayOrderID).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// MarkPaid is the single conditional update that moves an order from
// pending/unpaid to processing/paid and records the gateway identifiers.
// Re-applying identical values is safe; zero matched rows surfaces as
// gorm.ErrRecordNotFound rather than fabricating an order.
func (r *GormOrderRepository) MarkPaid(ctx context.Context, gatewayOrderID, gatewayPaymentID, gatewaySignature string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("gateway_order_id = ?", gatewayOrderID).
		Updates(map[string]interface{}{
			"payment_status":     models.PaymentStatusPaid,
			"status":             models.OrderStatusProcessing,
			"gateway_payment_id": gatewayPaymentID,
			"gateway_signature":  gatewaySignature,
			"updated_at":         time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormOrderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
