package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pos_manager/internal/models"
	"pos_manager/internal/services"
	"pos_manager/internal/shadowstore"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeMenuService struct {
	menu      []models.ShadowMenuItem
	inventory []models.ShadowInventoryItem
	err       error
}

func (f *fakeMenuService) Menu() ([]models.ShadowMenuItem, error) { return f.menu, f.err }
func (f *fakeMenuService) MenuByCategory(categoryID string) ([]models.ShadowMenuItem, error) {
	var out []models.ShadowMenuItem
	for _, it := range f.menu {
		if it.CategoryID == categoryID {
			out = append(out, it)
		}
	}
	return out, f.err
}
func (f *fakeMenuService) AddMenuItem(item models.ShadowMenuItem) (models.ShadowMenuItem, error) {
	if f.err != nil {
		return models.ShadowMenuItem{}, f.err
	}
	f.menu = append(f.menu, item)
	return item, nil
}
func (f *fakeMenuService) UpdateMenuItem(item models.ShadowMenuItem) (models.ShadowMenuItem, error) {
	return item, f.err
}
func (f *fakeMenuService) DeleteMenuItem(id string) error { return f.err }
func (f *fakeMenuService) Inventory() ([]models.ShadowInventoryItem, error) {
	return f.inventory, f.err
}
func (f *fakeMenuService) InventoryByCategory(categoryID string) ([]models.ShadowInventoryItem, error) {
	return f.inventory, f.err
}
func (f *fakeMenuService) SetQuantity(id string, quantity int64) (models.ShadowInventoryItem, error) {
	if f.err != nil {
		return models.ShadowInventoryItem{}, f.err
	}
	return models.ShadowInventoryItem{ID: id, Quantity: models.Amount(quantity)}, nil
}
func (f *fakeMenuService) AdjustQuantity(id string, delta int64) (models.ShadowInventoryItem, error) {
	if f.err != nil {
		return models.ShadowInventoryItem{}, f.err
	}
	return models.ShadowInventoryItem{ID: id, Quantity: models.Amount(delta)}, nil
}

func menuRouter(svc services.MenuService) *gin.Engine {
	router := gin.New()
	h := NewMenuHandler(svc)
	router.GET("/api/menu", h.ListMenu)
	router.POST("/api/menu", h.AddMenuItem)
	router.PUT("/api/inventory/:id/quantity", h.UpdateQuantity)
	return router
}

func TestListMenuFiltersByCategory(t *testing.T) {
	svc := &fakeMenuService{menu: []models.ShadowMenuItem{
		{ID: "m-1", Name: "Paneer Tikka", CategoryID: "1"},
		{ID: "m-2", Name: "Butter Naan", CategoryID: "2"},
	}}
	router := menuRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/menu?category=2", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Data []models.ShadowMenuItem `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Data) != 1 || body.Data[0].ID != "m-2" {
		t.Fatalf("expected only m-2, got %+v", body.Data)
	}
}

func TestAddMenuItemValidationMapsTo400(t *testing.T) {
	svc := &fakeMenuService{err: shadowstore.ErrNameRequired}
	router := menuRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/menu", strings.NewReader(`{"price":1000}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestUpdateQuantityUnknownItemMapsTo404(t *testing.T) {
	svc := &fakeMenuService{err: shadowstore.ErrItemNotFound}
	router := menuRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/inventory/m-9/quantity", strings.NewReader(`{"quantity":5}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestUpdateQuantityRequiresQuantityOrDelta(t *testing.T) {
	router := menuRouter(&fakeMenuService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/inventory/m-1/quantity", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

type fakeReportService struct {
	summary *services.Summary
	err     error
}

func (f *fakeReportService) Summary(filter string, start, end time.Time) (*services.Summary, error) {
	return f.summary, f.err
}
func (f *fakeReportService) StaffSales(filter string, start, end time.Time, limit int) ([]services.StaffSalesEntry, error) {
	return nil, f.err
}
func (f *fakeReportService) TopItems(filter string, start, end time.Time, limit int) ([]services.TopItemEntry, error) {
	return nil, f.err
}

func TestReportSummaryCustomRequiresDates(t *testing.T) {
	router := gin.New()
	h := NewReportHandler(&fakeReportService{summary: &services.Summary{}})
	router.GET("/api/reports/summary", h.Summary)

	cases := []struct {
		query string
		want  int
	}{
		{"filter=custom", http.StatusBadRequest},
		{"filter=custom&start=2024-03-01", http.StatusBadRequest},
		{"filter=custom&start=2024-03-10&end=2024-03-01", http.StatusBadRequest},
		{"filter=custom&start=2024-03-01&end=2024-03-10", http.StatusOK},
		{"filter=today", http.StatusOK},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/reports/summary?"+tc.query, nil)
		router.ServeHTTP(w, req)
		if w.Code != tc.want {
			t.Fatalf("query %q: expected %d, got %d", tc.query, tc.want, w.Code)
		}
	}
}

func TestReportUnknownFilterMapsTo400(t *testing.T) {
	router := gin.New()
	h := NewReportHandler(&fakeReportService{err: services.ErrUnknownFilter})
	router.GET("/api/reports/summary", h.Summary)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reports/summary?filter=fortnight", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
