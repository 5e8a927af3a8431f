package services

import (
	"errors"
	"fmt"
	"time"

	"pos_manager/internal/models"
	"pos_manager/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrOrderPaid     = errors.New("paid orders cannot be modified")
	ErrInvalidStatus = errors.New("invalid order status")
	ErrEmptyOrder    = errors.New("order has no items")
)

type OrderService interface {
	CreateOrder(order *models.Order) error
	GetOrderByID(id uint) (*models.Order, error)
	GetAllOrders() ([]models.Order, error)
	GetOrdersByDateRange(startDate, endDate time.Time) ([]models.Order, error)
	UpdateOrderStatus(id uint, status, paymentMethod string, adminOverride bool) (*models.Order, error)
	UpdateOrder(order *models.Order, adminOverride bool) error
	DeleteOrder(id uint) error
}

type orderService struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

// CreateOrder computes the bill breakdown and persists the order. The bill is
// derived from the line items once, at checkout; totalWithDiscount is only set
// when a discount applies, which downstream revenue aggregation relies on.
func (s *orderService) CreateOrder(order *models.Order) error {
	if len(order.Items) == 0 {
		return ErrEmptyOrder
	}
	if order.OrderNumber == "" {
		order.OrderNumber = uuid.NewString()
	}
	if order.Status == "" {
		order.Status = string(models.OrderInProgress)
	}
	calculateBills(order)
	return s.orderRepo.Create(order)
}

func calculateBills(order *models.Order) {
	var subtotal int64
	for _, line := range order.Items {
		subtotal += line.Price.Int64() * int64(line.Quantity)
	}
	order.Bills.Subtotal = models.Amount(subtotal)
	total := models.Amount(subtotal)
	order.Bills.Total = &total
	if order.Bills.Discount > 0 {
		withDiscount := models.Amount(subtotal - order.Bills.Discount.Int64())
		if withDiscount < 0 {
			withDiscount = 0
		}
		order.Bills.TotalWithDiscount = &withDiscount
	} else {
		order.Bills.TotalWithDiscount = nil
	}
}

func (s *orderService) GetOrderByID(id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

func (s *orderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

func (s *orderService) GetOrdersByDateRange(startDate, endDate time.Time) ([]models.Order, error) {
	return s.orderRepo.GetByDateRange(startDate, endDate)
}

var validStatuses = map[string]bool{
	string(models.OrderInProgress): true,
	string(models.OrderPreparing):  true,
	string(models.OrderReady):      true,
	string(models.OrderPaid):       true,
}

// UpdateOrderStatus advances the order lifecycle, recording the payment
// method in the same write when one is supplied. A paid order is immutable
// unless the caller is performing an administrative correction.
func (s *orderService) UpdateOrderStatus(id uint, status, paymentMethod string, adminOverride bool) (*models.Order, error) {
	if !validStatuses[status] {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order.Status == string(models.OrderPaid) && !adminOverride {
		return nil, ErrOrderPaid
	}
	order.Status = status
	if paymentMethod != "" {
		order.PaymentMethod = paymentMethod
	}
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateOrder rewrites an order's content and recomputes its bill breakdown.
// The same Paid guard applies as for status changes.
func (s *orderService) UpdateOrder(order *models.Order, adminOverride bool) error {
	if len(order.Items) == 0 {
		return ErrEmptyOrder
	}
	existing, err := s.orderRepo.GetByID(order.ID)
	if err != nil {
		return err
	}
	if existing.Status == string(models.OrderPaid) && !adminOverride {
		return ErrOrderPaid
	}
	calculateBills(order)
	return s.orderRepo.Update(order)
}

func (s *orderService) DeleteOrder(id uint) error {
	return s.orderRepo.Delete(id)
}
