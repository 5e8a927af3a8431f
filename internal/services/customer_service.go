package services

import (
	"errors"
	"time"

	"pos_manager/internal/metrics"
	"pos_manager/internal/models"
	"pos_manager/internal/repository"

	"gorm.io/gorm"
)

// CustomerNotifier broadcasts the customer-change signal after mutations and
// stat syncs so customer views invalidate and refetch.
type CustomerNotifier interface {
	NotifyCustomerUpdated()
}

type CustomerService interface {
	CreateCustomer(customer *models.Customer) error
	GetCustomerByID(id uint) (*models.Customer, error)
	GetAllCustomers() ([]models.Customer, error)
	UpdateCustomer(customer *models.Customer) error
	DeleteCustomer(id uint) error
	SyncStats() error
	ClassifyCustomer(customer models.Customer) models.CustomerTier
}

type customerService struct {
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
	notifier     CustomerNotifier
}

func NewCustomerService(customerRepo repository.CustomerRepository, orderRepo repository.OrderRepository, notifier CustomerNotifier) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		notifier:     notifier,
	}
}

func (s *customerService) CreateCustomer(customer *models.Customer) error {
	if err := s.customerRepo.Create(customer); err != nil {
		return err
	}
	s.notifier.NotifyCustomerUpdated()
	return nil
}

func (s *customerService) GetCustomerByID(id uint) (*models.Customer, error) {
	return s.customerRepo.GetByID(id)
}

func (s *customerService) GetAllCustomers() ([]models.Customer, error) {
	return s.customerRepo.GetAll()
}

func (s *customerService) UpdateCustomer(customer *models.Customer) error {
	if err := s.customerRepo.Update(customer); err != nil {
		return err
	}
	s.notifier.NotifyCustomerUpdated()
	return nil
}

func (s *customerService) DeleteCustomer(id uint) error {
	if err := s.customerRepo.Delete(id); err != nil {
		return err
	}
	s.notifier.NotifyCustomerUpdated()
	return nil
}

// SyncStats recomputes the aggregate counters on every customer from the paid
// orders carrying their phone number, then broadcasts the change. The tier is
// not touched here; it is derived on read, never stored.
func (s *customerService) SyncStats() error {
	customers, err := s.customerRepo.GetAll()
	if err != nil {
		return err
	}
	orders, err := s.orderRepo.GetByStatus(string(models.OrderPaid))
	if err != nil {
		return err
	}

	type agg struct {
		count int
		spent int64
	}
	byPhone := map[string]agg{}
	for _, o := range orders {
		a := byPhone[o.CustomerPhone]
		a.count++
		a.spent += metrics.Revenue(o)
		byPhone[o.CustomerPhone] = a
	}

	for i := range customers {
		a := byPhone[customers[i].Phone]
		if customers[i].TotalOrders == a.count && customers[i].TotalSpent.Int64() == a.spent {
			continue
		}
		customers[i].TotalOrders = a.count
		customers[i].TotalSpent = models.Amount(a.spent)
		if err := s.customerRepo.Update(&customers[i]); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return err
		}
	}

	s.notifier.NotifyCustomerUpdated()
	return nil
}

func (s *customerService) ClassifyCustomer(customer models.Customer) models.CustomerTier {
	return metrics.ClassifyCustomer(customer, time.Now())
}
