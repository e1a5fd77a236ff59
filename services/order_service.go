package services

import (
	"context"
	"errors"

	"storefront-backend/models"
	"storefront-backend/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OrderResponse struct {
	Orders []models.Order `json:"orders"`
	Meta   MetaData       `json:"meta"`
}

type MetaData struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalOrders int64 `json:"total_orders"`
	TotalPages  int64 `json:"total_pages"`
	HasMore     bool  `json:"has_more"`
}

// OrderService covers order history for shoppers and the thin admin panel.
type OrderService struct {
	orderRepo repository.OrderRepository
	logger    *zap.Logger
}

func NewOrderService(orderRepo repository.OrderRepository, logger *zap.Logger) *OrderService {
	return &OrderService{orderRepo: orderRepo, logger: logger}
}

// GetUserOrders retrieves paginated orders for a specific user.
func (s *OrderService) GetUserOrders(ctx context.Context, userID string, page, limit int) (*OrderResponse, *ServiceError) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid user ID format"}
	}

	orders, total, err := s.orderRepo.FindByUserID(ctx, userUUID, page, limit)
	if err != nil {
		s.logger.Error("failed to fetch orders", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch orders"}
	}

	return &OrderResponse{
		Orders: orders,
		Meta: MetaData{
			Page:        page,
			Limit:       limit,
			TotalOrders: total,
			TotalPages:  calculateTotalPages(total, limit),
			HasMore:     total > int64(page*limit),
		},
	}, nil
}

// GetAllOrders retrieves paginated orders for all users (admin only).
func (s *OrderService) GetAllOrders(ctx context.Context, page, limit int) (*OrderResponse, *ServiceError) {
	orders, total, err := s.orderRepo.FindAll(ctx, page, limit)
	if err != nil {
		s.logger.Error("failed to fetch all orders", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch orders"}
	}

	return &OrderResponse{
		Orders: orders,
		Meta: MetaData{
			Page:        page,
			Limit:       limit,
			TotalOrders: total,
			TotalPages:  calculateTotalPages(total, limit),
			HasMore:     total > int64(page*limit),
		},
	}, nil
}

// GetOrderByID retrieves a specific order for a user.
func (s *OrderService) GetOrderByID(ctx context.Context, userID string, orderID uuid.UUID) (*models.Order, *ServiceError) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid user ID format"}
	}

	order, err := s.orderRepo.FindByIDAndUserID(ctx, orderID, userUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Order not found"}
		}
		s.logger.Error("failed to fetch order",
			zap.String("order_id", orderID.String()),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch order"}
	}

	return order, nil
}

// UpdateOrderStatus applies an admin shipment-status transition.
// Payment transitions are owned by the verification pipeline, not here.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status string) *ServiceError {
	switch status {
	case models.OrderStatusProcessing, models.OrderStatusShipped,
		models.OrderStatusDelivered, models.OrderStatusCancelled:
	default:
		return &ServiceError{StatusCode: 400, Message: "Invalid order status"}
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ServiceError{StatusCode: 404, Message: "Order not found"}
		}
		s.logger.Error("failed to update order status",
			zap.String("order_id", orderID.String()),
			zap.Error(err),
		)
		return &ServiceError{StatusCode: 500, Message: "Failed to update order status"}
	}

	s.logger.Info("order status updated",
		zap.String("order_id", orderID.String()),
		zap.String("status", status),
	)
	return nil
}

func calculateTotalPages(total int64, limit int) int64 {
	if limit == 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
