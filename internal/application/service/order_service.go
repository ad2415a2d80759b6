package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ndthang/storepos-api/internal/domain/entity"
	"github.com/ndthang/storepos-api/internal/domain/enum"
	"github.com/ndthang/storepos-api/internal/domain/repository"
	"github.com/ndthang/storepos-api/pkg/apperror"
	"github.com/ndthang/storepos-api/pkg/pagination"
)

// OrderService handles order-related business logic
type OrderService struct {
	orderRepo repository.OrderRepository
	storeRepo repository.StoreRepository
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo repository.OrderRepository, storeRepo repository.StoreRepository) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		storeRepo: storeRepo,
	}
}

// CreateOrderInput represents the input for creating an order
type CreateOrderInput struct {
	StoreID        *uuid.UUID
	StaffID        *uuid.UUID
	CustomerName   string
	CustomerPhone  string
	PaymentMethod  string
	SubTotal       int64
	TaxAmount      int64
	DiscountAmount int64
	TotalAmount    int64
	Items          []CreateOrderItemInput
}

// CreateOrderItemInput represents a line item in a new order
type CreateOrderItemInput struct {
	ProductID   uint
	ProductName string
	Quantity    int
	UnitPrice   int64
	TotalPrice  int64
}

// CreateOrder creates a new order with its items
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Đơn hàng phải có ít nhất một sản phẩm")
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Số lượng sản phẩm phải lớn hơn 0")
		}
	}

	order := &entity.Order{
		OrderNumber:    generateOrderNumber(),
		StoreID:        input.StoreID,
		StaffID:        input.StaffID,
		Status:         enum.OrderStatusPending,
		PaymentMethod:  input.PaymentMethod,
		CustomerName:   input.CustomerName,
		CustomerPhone:  input.CustomerPhone,
		SubTotal:       input.SubTotal,
		TaxAmount:      input.TaxAmount,
		DiscountAmount: input.DiscountAmount,
		TotalAmount:    input.TotalAmount,
	}
	for _, item := range input.Items {
		order.Items = append(order.Items, entity.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrder retrieves an order with its items
func (s *OrderService) GetOrder(ctx context.Context, id uint) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders retrieves orders with filtering and pagination
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, p), nil
}

// CancelOrder cancels an order, recording when, why and how much was lost.
// Each item's loss is its line total; the order-level loss is the order
// total, so refunds and reports agree with what the customer was charged.
func (s *OrderService) CancelOrder(ctx context.Context, id uint, reason string) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.Status == enum.OrderStatusCancelled {
		return nil, apperror.NewConflictError("Đơn hàng đã được hủy trước đó")
	}

	now := time.Now()
	order.Status = enum.OrderStatusCancelled
	order.CancelledAt = &now
	order.CancelReason = reason
	order.LossAmount = order.TotalAmount

	cancelledQty := 0
	for i := range order.Items {
		order.Items[i].LossAmount = order.Items[i].TotalPrice
		cancelledQty += order.Items[i].Quantity
	}
	order.CancelledQuantity = cancelledQty

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// generateOrderNumber builds a time-based order number. Uniqueness within a
// second is good enough for a single POS terminal; the primary key is still
// the numeric ID.
func generateOrderNumber() string {
	return fmt.Sprintf("DH%s", time.Now().Format("20060102150405"))
}
