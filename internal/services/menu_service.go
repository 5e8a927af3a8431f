package services

import (
	"pos_manager/internal/models"
	"pos_manager/internal/shadowstore"
)

// MenuService fronts the shadow store. Menu and inventory data live in the
// shadow slots, not in Postgres, so validation here is the only authority.
type MenuService interface {
	Menu() ([]models.ShadowMenuItem, error)
	MenuByCategory(categoryID string) ([]models.ShadowMenuItem, error)
	AddMenuItem(item models.ShadowMenuItem) (models.ShadowMenuItem, error)
	UpdateMenuItem(item models.ShadowMenuItem) (models.ShadowMenuItem, error)
	DeleteMenuItem(id string) error
	Inventory() ([]models.ShadowInventoryItem, error)
	InventoryByCategory(categoryID string) ([]models.ShadowInventoryItem, error)
	SetQuantity(id string, quantity int64) (models.ShadowInventoryItem, error)
	AdjustQuantity(id string, delta int64) (models.ShadowInventoryItem, error)
}

type menuService struct {
	store *shadowstore.Store
}

func NewMenuService(store *shadowstore.Store) MenuService {
	return &menuService{store: store}
}

func (s *menuService) Menu() ([]models.ShadowMenuItem, error) {
	return s.store.Menu()
}

func (s *menuService) MenuByCategory(categoryID string) ([]models.ShadowMenuItem, error) {
	return s.store.MenuByCategory(categoryID)
}

func (s *menuService) AddMenuItem(item models.ShadowMenuItem) (models.ShadowMenuItem, error) {
	return s.store.AddMenuItem(item)
}

func (s *menuService) UpdateMenuItem(item models.ShadowMenuItem) (models.ShadowMenuItem, error) {
	return s.store.UpdateMenuItem(item)
}

func (s *menuService) DeleteMenuItem(id string) error {
	return s.store.DeleteMenuItem(id)
}

func (s *menuService) Inventory() ([]models.ShadowInventoryItem, error) {
	return s.store.Inventory()
}

func (s *menuService) InventoryByCategory(categoryID string) ([]models.ShadowInventoryItem, error) {
	return s.store.InventoryByCategory(categoryID)
}

func (s *menuService) SetQuantity(id string, quantity int64) (models.ShadowInventoryItem, error) {
	return s.store.SetQuantity(id, quantity)
}

func (s *menuService) AdjustQuantity(id string, delta int64) (models.ShadowInventoryItem, error) {
	return s.store.AdjustQuantity(id, delta)
}
