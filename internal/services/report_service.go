package services

import (
	"errors"
	"fmt"
	"time"

	"pos_manager/internal/metrics"
	"pos_manager/internal/models"
	"pos_manager/internal/repository"
)

var ErrUnknownFilter = errors.New("unknown date filter")

// Names of the polled collections the reports read from.
const (
	CollectionOrders    = "orders"
	CollectionStaff     = "staff"
	CollectionCustomers = "customers"
)

// CollectionSource hands out the last polled copy of a named collection.
// Reports prefer it over a direct read so dashboard queries ride the poller
// instead of hitting the database on every request; when no copy has landed
// yet the repositories remain the authority.
type CollectionSource interface {
	Get(name string) (interface{}, bool)
}

// Summary is the dashboard statistics block. Growth figures compare the
// active period against the same bucket shifted one period back. RevenueTrend
// carries the one-decimal growth convention; RevenueGrowth the integer one.
type Summary struct {
	Revenue       int64   `json:"revenue"`
	Orders        int     `json:"orders"`
	RevenueGrowth int     `json:"revenue_growth"`
	OrdersGrowth  int     `json:"orders_growth"`
	RevenueTrend  float64 `json:"revenue_trend"`
	Customers     int     `json:"customers"`
	NewCustomers  int     `json:"new_customers"`
	VIPCustomers  int     `json:"vip_customers"`
}

// StaffSalesEntry is one leaderboard row with its progress-bar percentage.
type StaffSalesEntry struct {
	metrics.StaffSales
	Percent float64 `json:"percent"`
}

// TopItemEntry is one top-selling-items row with its progress-bar percentage.
type TopItemEntry struct {
	metrics.ItemSales
	Percent float64 `json:"percent"`
}

type ReportService interface {
	Summary(filter string, start, end time.Time) (*Summary, error)
	StaffSales(filter string, start, end time.Time, limit int) ([]StaffSalesEntry, error)
	TopItems(filter string, start, end time.Time, limit int) ([]TopItemEntry, error)
}

type reportService struct {
	orderRepo    repository.OrderRepository
	userRepo     repository.UserRepository
	customerRepo repository.CustomerRepository
	collections  CollectionSource
	now          func() time.Time
}

func NewReportService(orderRepo repository.OrderRepository, userRepo repository.UserRepository, customerRepo repository.CustomerRepository, collections CollectionSource) ReportService {
	return &reportService{
		orderRepo:    orderRepo,
		userRepo:     userRepo,
		customerRepo: customerRepo,
		collections:  collections,
		now:          time.Now,
	}
}

func (s *reportService) allOrders() ([]models.Order, error) {
	if s.collections != nil {
		if v, ok := s.collections.Get(CollectionOrders); ok {
			if orders, ok := v.([]models.Order); ok {
				return orders, nil
			}
		}
	}
	return s.orderRepo.GetAll()
}

func (s *reportService) allStaff() ([]models.User, error) {
	if s.collections != nil {
		if v, ok := s.collections.Get(CollectionStaff); ok {
			if staff, ok := v.([]models.User); ok {
				return staff, nil
			}
		}
	}
	return s.userRepo.GetAll()
}

func (s *reportService) allCustomers() ([]models.Customer, error) {
	if s.collections != nil {
		if v, ok := s.collections.Get(CollectionCustomers); ok {
			if customers, ok := v.([]models.Customer); ok {
				return customers, nil
			}
		}
	}
	return s.customerRepo.GetAll()
}

// rangesFor resolves a filter name into the active bucket and its
// period-over-period counterpart, built from the same bucket constructors
// applied to shifted reference dates.
func rangesFor(filter string, start, end, now time.Time) (metrics.RangeFunc, metrics.RangeFunc, error) {
	switch filter {
	case "today":
		return metrics.Today(now), metrics.Today(now.AddDate(0, 0, -1)), nil
	case "week":
		return metrics.ThisWeek(now), metrics.ThisWeek(now.AddDate(0, 0, -7)), nil
	case "month":
		return metrics.ThisMonth(now), metrics.LastMonth(now), nil
	case "lastmonth":
		return metrics.LastMonth(now), metrics.LastMonth(now.AddDate(0, -1, 0)), nil
	case "custom":
		days := int(end.Sub(start).Hours()/24) + 1
		return metrics.Custom(start, end),
			metrics.Custom(start.AddDate(0, 0, -days), end.AddDate(0, 0, -days)), nil
	case "", "all":
		return metrics.All(), func(time.Time) bool { return false }, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownFilter, filter)
	}
}

func (s *reportService) Summary(filter string, start, end time.Time) (*Summary, error) {
	now := s.now()
	current, previous, err := rangesFor(filter, start, end, now)
	if err != nil {
		return nil, err
	}

	orders, err := s.allOrders()
	if err != nil {
		return nil, err
	}
	customers, err := s.allCustomers()
	if err != nil {
		return nil, err
	}

	revenue := metrics.PaidRevenue(orders, current)
	prevRevenue := metrics.PaidRevenue(orders, previous)
	orderCount := metrics.CountOrders(orders, current)
	prevOrderCount := metrics.CountOrders(orders, previous)

	summary := &Summary{
		Revenue:       revenue,
		Orders:        orderCount,
		RevenueGrowth: metrics.Growth(revenue, prevRevenue),
		OrdersGrowth:  metrics.Growth(int64(orderCount), int64(prevOrderCount)),
		RevenueTrend:  metrics.GrowthOneDecimal(float64(revenue), float64(prevRevenue)),
		Customers:     len(customers),
	}
	for _, c := range customers {
		switch metrics.ClassifyCustomer(c, now) {
		case models.TierNew:
			summary.NewCustomers++
		case models.TierVIP:
			summary.VIPCustomers++
		}
	}
	return summary, nil
}

func (s *reportService) StaffSales(filter string, start, end time.Time, limit int) ([]StaffSalesEntry, error) {
	current, _, err := rangesFor(filter, start, end, s.now())
	if err != nil {
		return nil, err
	}
	orders, err := s.allOrders()
	if err != nil {
		return nil, err
	}
	staff, err := s.allStaff()
	if err != nil {
		return nil, err
	}

	board := metrics.StaffLeaderboard(orders, staff, current, limit)
	var max int64
	for _, row := range board {
		if row.Sales > max {
			max = row.Sales
		}
	}
	entries := make([]StaffSalesEntry, len(board))
	for i, row := range board {
		entries[i] = StaffSalesEntry{StaffSales: row, Percent: metrics.PercentOfMax(row.Sales, max)}
	}
	return entries, nil
}

func (s *reportService) TopItems(filter string, start, end time.Time, limit int) ([]TopItemEntry, error) {
	current, _, err := rangesFor(filter, start, end, s.now())
	if err != nil {
		return nil, err
	}
	orders, err := s.allOrders()
	if err != nil {
		return nil, err
	}

	items := metrics.TopItems(orders, current, limit)
	var max int64
	for _, it := range items {
		if it.Revenue > max {
			max = it.Revenue
		}
	}
	entries := make([]TopItemEntry, len(items))
	for i, it := range items {
		entries[i] = TopItemEntry{ItemSales: it, Percent: metrics.PercentOfMax(it.Revenue, max)}
	}
	return entries, nil
}
