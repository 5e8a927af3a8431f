package services

import (
	"errors"
	"testing"
	"time"

	"pos_manager/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type fakeOrderRepo struct {
	orders  []models.Order
	updates int
}

func (f *fakeOrderRepo) Create(o *models.Order) error {
	o.ID = uint(len(f.orders) + 1)
	f.orders = append(f.orders, *o)
	return nil
}

func (f *fakeOrderRepo) GetByID(id uint) (*models.Order, error) {
	for i := range f.orders {
		if f.orders[i].ID == id {
			o := f.orders[i]
			return &o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOrderRepo) GetByStatus(status string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) GetByDateRange(start, end time.Time) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if !o.CreatedAt.Before(start) && !o.CreatedAt.After(end) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) Update(o *models.Order) error {
	for i := range f.orders {
		if f.orders[i].ID == o.ID {
			f.orders[i] = *o
			f.updates++
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeOrderRepo) Delete(id uint) error { return nil }

func (f *fakeOrderRepo) GetAll() ([]models.Order, error) { return f.orders, nil }

type fakeUserRepo struct {
	users []models.User
}

func (f *fakeUserRepo) Create(u *models.User) error {
	u.ID = uint(len(f.users) + 1)
	f.users = append(f.users, *u)
	return nil
}

func (f *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for i := range f.users {
		if f.users[i].Email == email {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetAll() ([]models.User, error) { return f.users, nil }

func (f *fakeUserRepo) Update(u *models.User) error { return nil }

func (f *fakeUserRepo) Delete(id uint) error { return nil }

type fakeHistoryRepo struct {
	records []models.LoginHistory
	closed  []uint
}

func (f *fakeHistoryRepo) Create(r *models.LoginHistory) error {
	r.ID = uint(len(f.records) + 1)
	f.records = append(f.records, *r)
	return nil
}

func (f *fakeHistoryRepo) GetByUserID(userID uint) ([]models.LoginHistory, error) {
	var out []models.LoginHistory
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeHistoryRepo) GetActiveByUserID(userID uint) (*models.LoginHistory, error) {
	for i := len(f.records) - 1; i >= 0; i-- {
		if f.records[i].UserID == userID && f.records[i].Status == string(models.SessionActive) {
			r := f.records[i]
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeHistoryRepo) CloseSession(id uint, logoutAt time.Time) error {
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].Status = string(models.SessionLoggedOut)
			f.records[i].LogoutAt = &logoutAt
			f.closed = append(f.closed, id)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeHistoryRepo) ExpireOlderThan(cutoff time.Time) error { return nil }

type fakeCustomerRepo struct {
	customers []models.Customer
}

func (f *fakeCustomerRepo) Create(c *models.Customer) error {
	c.ID = uint(len(f.customers) + 1)
	f.customers = append(f.customers, *c)
	return nil
}

func (f *fakeCustomerRepo) GetByID(id uint) (*models.Customer, error) {
	for i := range f.customers {
		if f.customers[i].ID == id {
			c := f.customers[i]
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCustomerRepo) GetByPhone(phone string) (*models.Customer, error) {
	for i := range f.customers {
		if f.customers[i].Phone == phone {
			c := f.customers[i]
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCustomerRepo) GetAll() ([]models.Customer, error) { return f.customers, nil }

func (f *fakeCustomerRepo) Update(c *models.Customer) error {
	for i := range f.customers {
		if f.customers[i].ID == c.ID {
			f.customers[i] = *c
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeCustomerRepo) Delete(id uint) error { return nil }

type fakeNotifier struct {
	calls int
}

func (f *fakeNotifier) NotifyCustomerUpdated() { f.calls++ }

func lines(ls ...models.OrderLine) datatypes.JSONSlice[models.OrderLine] {
	return datatypes.NewJSONSlice(ls)
}

func TestCreateOrderComputesBills(t *testing.T) {
	repo := &fakeOrderRepo{}
	svc := NewOrderService(repo)

	order := &models.Order{
		CustomerName: "Asha",
		Items: lines(
			models.OrderLine{Name: "Biryani", Price: 38000, Quantity: 2},
			models.OrderLine{Name: "Masala Chai", Price: 8000, Quantity: 1},
		),
	}
	if err := svc.CreateOrder(order); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.Bills.Subtotal != 84000 {
		t.Fatalf("subtotal = %d, want 84000", order.Bills.Subtotal)
	}
	if order.Bills.Total == nil || *order.Bills.Total != 84000 {
		t.Fatalf("total = %v, want 84000", order.Bills.Total)
	}
	if order.Bills.TotalWithDiscount != nil {
		t.Fatal("totalWithDiscount set without a discount")
	}
	if order.Status != string(models.OrderInProgress) {
		t.Fatalf("status = %q", order.Status)
	}
	if order.OrderNumber == "" {
		t.Fatal("order number not assigned")
	}
}

func TestCreateOrderWithDiscount(t *testing.T) {
	svc := NewOrderService(&fakeOrderRepo{})
	order := &models.Order{
		CustomerName: "Ravi",
		Bills:        models.Bills{Discount: 4000},
		Items:        lines(models.OrderLine{Name: "Dal Makhani", Price: 30000, Quantity: 1}),
	}
	if err := svc.CreateOrder(order); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.Bills.TotalWithDiscount == nil || *order.Bills.TotalWithDiscount != 26000 {
		t.Fatalf("totalWithDiscount = %v, want 26000", order.Bills.TotalWithDiscount)
	}
}

func TestCreateOrderRejectsEmpty(t *testing.T) {
	svc := NewOrderService(&fakeOrderRepo{})
	if err := svc.CreateOrder(&models.Order{CustomerName: "x"}); !errors.Is(err, ErrEmptyOrder) {
		t.Fatalf("err = %v, want ErrEmptyOrder", err)
	}
}

func TestPaidOrderImmutable(t *testing.T) {
	repo := &fakeOrderRepo{}
	svc := NewOrderService(repo)
	order := &models.Order{
		CustomerName: "Asha",
		Items:        lines(models.OrderLine{Name: "Chai", Price: 8000, Quantity: 1}),
	}
	svc.CreateOrder(order)

	if _, err := svc.UpdateOrderStatus(order.ID, string(models.OrderPaid), "", false); err != nil {
		t.Fatalf("advance to Paid: %v", err)
	}
	if _, err := svc.UpdateOrderStatus(order.ID, string(models.OrderReady), "", false); !errors.Is(err, ErrOrderPaid) {
		t.Fatalf("err = %v, want ErrOrderPaid", err)
	}

	// The payment method does not soften the guard.
	if _, err := svc.UpdateOrderStatus(order.ID, string(models.OrderReady), string(models.PaymentOnline), false); !errors.Is(err, ErrOrderPaid) {
		t.Fatalf("err = %v, want ErrOrderPaid", err)
	}

	// Administrative correction is allowed.
	if _, err := svc.UpdateOrderStatus(order.ID, string(models.OrderReady), "", true); err != nil {
		t.Fatalf("admin override: %v", err)
	}
}

func TestStatusUpdatePersistsPaymentMethodOnce(t *testing.T) {
	repo := &fakeOrderRepo{}
	svc := NewOrderService(repo)
	order := &models.Order{
		CustomerName: "Asha",
		Items:        lines(models.OrderLine{Name: "Chai", Price: 8000, Quantity: 1}),
	}
	svc.CreateOrder(order)

	updated, err := svc.UpdateOrderStatus(order.ID, string(models.OrderPaid), string(models.PaymentCash), false)
	if err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}
	if updated.Status != string(models.OrderPaid) || updated.PaymentMethod != string(models.PaymentCash) {
		t.Fatalf("order = %q/%q, want Paid/Cash", updated.Status, updated.PaymentMethod)
	}
	if repo.updates != 1 {
		t.Fatalf("order written %d times, want 1", repo.updates)
	}
	stored, _ := repo.GetByID(order.ID)
	if stored.PaymentMethod != string(models.PaymentCash) {
		t.Fatalf("stored payment method = %q, want Cash", stored.PaymentMethod)
	}
}

func TestUpdateOrderRecomputesBills(t *testing.T) {
	repo := &fakeOrderRepo{}
	svc := NewOrderService(repo)
	order := &models.Order{
		CustomerName: "Asha",
		Items:        lines(models.OrderLine{Name: "Chai", Price: 8000, Quantity: 1}),
	}
	svc.CreateOrder(order)

	order.Items = lines(models.OrderLine{Name: "Biryani", Price: 38000, Quantity: 2})
	order.Bills.Discount = 6000
	if err := svc.UpdateOrder(order, false); err != nil {
		t.Fatalf("UpdateOrder: %v", err)
	}
	if order.Bills.Subtotal != 76000 {
		t.Fatalf("subtotal = %d, want 76000", order.Bills.Subtotal)
	}
	if order.Bills.TotalWithDiscount == nil || *order.Bills.TotalWithDiscount != 70000 {
		t.Fatalf("totalWithDiscount = %v, want 70000", order.Bills.TotalWithDiscount)
	}

	order.Items = nil
	if err := svc.UpdateOrder(order, false); !errors.Is(err, ErrEmptyOrder) {
		t.Fatalf("err = %v, want ErrEmptyOrder", err)
	}
}

func TestUpdateOrderPaidGuard(t *testing.T) {
	repo := &fakeOrderRepo{}
	svc := NewOrderService(repo)
	order := &models.Order{
		CustomerName: "Asha",
		Items:        lines(models.OrderLine{Name: "Chai", Price: 8000, Quantity: 1}),
	}
	svc.CreateOrder(order)
	svc.UpdateOrderStatus(order.ID, string(models.OrderPaid), "", false)

	order.Items = lines(models.OrderLine{Name: "Chai", Price: 8000, Quantity: 3})
	if err := svc.UpdateOrder(order, false); !errors.Is(err, ErrOrderPaid) {
		t.Fatalf("err = %v, want ErrOrderPaid", err)
	}
	if err := svc.UpdateOrder(order, true); err != nil {
		t.Fatalf("admin override: %v", err)
	}
}

func TestUpdateOrderStatusValidation(t *testing.T) {
	svc := NewOrderService(&fakeOrderRepo{})
	if _, err := svc.UpdateOrderStatus(1, "Eaten", "", false); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
}

func newUserService() (UserService, *fakeUserRepo, *fakeHistoryRepo) {
	users := &fakeUserRepo{}
	history := &fakeHistoryRepo{}
	return NewUserService(users, history, "test-secret", time.Hour), users, history
}

func TestLoginRecordsHistoryAndSignsToken(t *testing.T) {
	svc, _, history := newUserService()
	if _, err := svc.Register("Asha", "asha@example.com", "555", "secret", "Cashier"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, user, err := svc.Login("asha@example.com", "secret", SessionInfo{
		IPAddress: "10.0.0.1", UserAgent: "test-agent", DeviceLabel: "counter-1",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if len(history.records) != 1 {
		t.Fatalf("%d history rows, want 1", len(history.records))
	}
	rec := history.records[0]
	if rec.Status != string(models.SessionActive) || rec.Name != "Asha" || rec.Role != "Cashier" || rec.IPAddress != "10.0.0.1" {
		t.Fatalf("history row = %+v", rec)
	}

	id, role, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if id != user.ID || role != "Cashier" {
		t.Fatalf("claims = %d %q, want %d Cashier", id, role, user.ID)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	svc, _, _ := newUserService()
	svc.Register("Asha", "asha@example.com", "555", "secret", "Cashier")

	if _, _, err := svc.Login("asha@example.com", "wrong", SessionInfo{}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login("ghost@example.com", "secret", SessionInfo{}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogoutClosesSession(t *testing.T) {
	svc, _, history := newUserService()
	svc.Register("Asha", "asha@example.com", "555", "secret", "Cashier")
	_, user, _ := svc.Login("asha@example.com", "secret", SessionInfo{})

	if err := svc.Logout(user.ID); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	rec := history.records[0]
	if rec.Status != string(models.SessionLoggedOut) || rec.LogoutAt == nil {
		t.Fatalf("session not closed: %+v", rec)
	}

	// Logout without an active session is a no-op.
	if err := svc.Logout(user.ID); err != nil {
		t.Fatalf("second logout: %v", err)
	}
}

func TestServiceTokenCarriesAdminRole(t *testing.T) {
	svc, _, _ := newUserService()
	token, err := svc.ServiceToken()
	if err != nil {
		t.Fatalf("ServiceToken: %v", err)
	}
	id, role, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if id != 0 || role != string(models.RoleAdmin) {
		t.Fatalf("claims = %d %q, want 0 Admin", id, role)
	}
}

func TestSyncStatsAggregatesAndNotifies(t *testing.T) {
	now := time.Now()
	total := func(v int64) *models.Amount { a := models.Amount(v); return &a }
	orderRepo := &fakeOrderRepo{orders: []models.Order{
		{ID: 1, Status: string(models.OrderPaid), CustomerPhone: "555", CreatedAt: now, Bills: models.Bills{Total: total(10000)}},
		{ID: 2, Status: string(models.OrderPaid), CustomerPhone: "555", CreatedAt: now, Bills: models.Bills{Total: total(10000), TotalWithDiscount: total(8000)}},
		{ID: 3, Status: string(models.OrderInProgress), CustomerPhone: "555", CreatedAt: now, Bills: models.Bills{Total: total(5000)}},
	}}
	customerRepo := &fakeCustomerRepo{customers: []models.Customer{
		{ID: 1, Name: "Asha", Phone: "555"},
	}}
	notifier := &fakeNotifier{}
	svc := NewCustomerService(customerRepo, orderRepo, notifier)

	if err := svc.SyncStats(); err != nil {
		t.Fatalf("SyncStats: %v", err)
	}
	c := customerRepo.customers[0]
	if c.TotalOrders != 2 || c.TotalSpent != 18000 {
		t.Fatalf("counters = %d orders, %d spent; want 2 and 18000", c.TotalOrders, c.TotalSpent)
	}
	if notifier.calls != 1 {
		t.Fatalf("customerUpdated broadcast %d times, want 1", notifier.calls)
	}
}

func TestReportSummaryGrowth(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	total := func(v int64) *models.Amount { a := models.Amount(v); return &a }
	orderRepo := &fakeOrderRepo{orders: []models.Order{
		{ID: 1, Status: string(models.OrderPaid), CreatedAt: now.Add(-time.Hour), Bills: models.Bills{Total: total(10000)}},
		{ID: 2, Status: string(models.OrderPaid), CreatedAt: now.AddDate(0, 0, -1), Bills: models.Bills{Total: total(5000)}},
	}}
	svc := &reportService{
		orderRepo:    orderRepo,
		userRepo:     &fakeUserRepo{},
		customerRepo: &fakeCustomerRepo{},
		now:          func() time.Time { return now },
	}

	summary, err := svc.Summary("today", time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.Revenue != 10000 {
		t.Fatalf("revenue = %d, want 10000", summary.Revenue)
	}
	if summary.RevenueGrowth != 100 {
		t.Fatalf("growth = %d, want 100 (10000 vs 5000)", summary.RevenueGrowth)
	}
	if summary.Orders != 1 || summary.OrdersGrowth != 0 {
		t.Fatalf("orders = %d growth %d, want 1 and 0", summary.Orders, summary.OrdersGrowth)
	}
}

func TestReportStaffSalesBars(t *testing.T) {
	now := time.Now()
	total := func(v int64) *models.Amount { a := models.Amount(v); return &a }
	orderRepo := &fakeOrderRepo{orders: []models.Order{
		{ID: 1, Status: string(models.OrderPaid), CreatedBy: models.UserRef{ID: "1"}, CreatedAt: now, Bills: models.Bills{Total: total(8000)}},
		{ID: 2, Status: string(models.OrderPaid), CreatedBy: models.UserRef{ID: "2"}, CreatedAt: now, Bills: models.Bills{Total: total(4000)}},
	}}
	userRepo := &fakeUserRepo{users: []models.User{
		{ID: 1, Name: "Asha"}, {ID: 2, Name: "Ravi"}, {ID: 3, Name: "Meera"},
	}}
	svc := &reportService{orderRepo: orderRepo, userRepo: userRepo, customerRepo: &fakeCustomerRepo{}, now: time.Now}

	entries, err := svc.StaffSales("all", time.Time{}, time.Time{}, 5)
	if err != nil {
		t.Fatalf("StaffSales: %v", err)
	}
	if entries[0].Percent != 100 || entries[1].Percent != 50 || entries[2].Percent != 0 {
		t.Fatalf("bars = %v %v %v, want 100 50 0", entries[0].Percent, entries[1].Percent, entries[2].Percent)
	}
}

type fakeCollections struct {
	data map[string]interface{}
}

func (f *fakeCollections) Get(name string) (interface{}, bool) {
	v, ok := f.data[name]
	return v, ok
}

func TestReportsPreferCachedCollections(t *testing.T) {
	now := time.Now()
	total := func(v int64) *models.Amount { a := models.Amount(v); return &a }
	// The repository holds nothing; everything must come from the poller.
	cached := &fakeCollections{data: map[string]interface{}{
		CollectionOrders: []models.Order{
			{ID: 1, Status: string(models.OrderPaid), CreatedAt: now, Bills: models.Bills{Total: total(9000)}},
		},
		CollectionCustomers: []models.Customer{
			{ID: 1, Name: "Asha", Phone: "555", TotalOrders: 5},
		},
	}}
	svc := &reportService{
		orderRepo:    &fakeOrderRepo{},
		userRepo:     &fakeUserRepo{},
		customerRepo: &fakeCustomerRepo{},
		collections:  cached,
		now:          time.Now,
	}

	summary, err := svc.Summary("all", time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.Revenue != 9000 || summary.Orders != 1 {
		t.Fatalf("summary from cache = %d revenue, %d orders; want 9000 and 1", summary.Revenue, summary.Orders)
	}
	if summary.Customers != 1 || summary.VIPCustomers != 1 {
		t.Fatalf("customers from cache = %d total, %d VIP; want 1 and 1", summary.Customers, summary.VIPCustomers)
	}
}

func TestReportsFallBackToRepoWithoutCache(t *testing.T) {
	total := func(v int64) *models.Amount { a := models.Amount(v); return &a }
	orderRepo := &fakeOrderRepo{orders: []models.Order{
		{ID: 1, Status: string(models.OrderPaid), CreatedAt: time.Now(), Bills: models.Bills{Total: total(7000)}},
	}}
	svc := &reportService{
		orderRepo:    orderRepo,
		userRepo:     &fakeUserRepo{},
		customerRepo: &fakeCustomerRepo{},
		collections:  &fakeCollections{},
		now:          time.Now,
	}

	summary, err := svc.Summary("all", time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.Revenue != 7000 {
		t.Fatalf("revenue = %d, want 7000 from the repository", summary.Revenue)
	}
}

func TestReportUnknownFilter(t *testing.T) {
	svc := &reportService{orderRepo: &fakeOrderRepo{}, userRepo: &fakeUserRepo{}, customerRepo: &fakeCustomerRepo{}, now: time.Now}
	if _, err := svc.Summary("fortnight", time.Time{}, time.Time{}); !errors.Is(err, ErrUnknownFilter) {
		t.Fatalf("err = %v, want ErrUnknownFilter", err)
	}
}
