package shadowstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"pos_manager/internal/models"

	"github.com/google/uuid"
)

// Slot keys and broadcast channels. The two slots hold full JSON arrays; they
// are never partitioned by category on disk, only filtered at read time.
const (
	MenuKey      = "menuData"
	InventoryKey = "inventoryData"

	StorageChannel         = "storage"
	CustomerUpdatedChannel = "customerUpdated"
)

const (
	defaultStockLevel = 10
	defaultUnit       = "portions"
)

var (
	ErrItemNotFound = errors.New("item not found")
	ErrNameRequired = errors.New("item name is required")
	ErrInvalidPrice = errors.New("item price must be positive")
)

// Storage persists the shadow slots.
type Storage interface {
	GetSlot(key string) (string, bool, error)
	SetSlot(key, value string) error
}

// Broadcaster notifies other consumers that a slot changed.
type Broadcaster interface {
	Publish(channel, payload string) error
}

// StorageEvent is the payload published on StorageChannel after every write.
type StorageEvent struct {
	Key      string `json:"key"`
	NewValue string `json:"newValue"`
}

func ParseStorageEvent(payload string) (StorageEvent, error) {
	var ev StorageEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return StorageEvent{}, fmt.Errorf("invalid storage event: %w", err)
	}
	return ev, nil
}

// Store owns the menu and inventory shadow slots. All writes go through one
// Store instance and are serialized by its mutex, so concurrent mutations
// cannot interleave read-modify-write cycles on the same slot.
//
// Every mutation follows the same sequence: update the in-memory list, persist
// the full list to its slot, then broadcast a StorageEvent. Consumers re-read
// and re-derive their views when either broadcast channel fires.
type Store struct {
	mu      sync.Mutex
	storage Storage
	bc      Broadcaster
}

func New(storage Storage, bc Broadcaster) *Store {
	return &Store{storage: storage, bc: bc}
}

// Menu returns the full shadow menu collection, seeding it from fixtures when
// the slot is missing or unreadable.
func (s *Store) Menu() ([]models.ShadowMenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadMenu()
}

// Inventory returns the full shadow inventory collection, seeding it when the
// slot is missing or unreadable.
func (s *Store) Inventory() ([]models.ShadowInventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadInventory()
}

// MenuByCategory filters the persisted collection at read time.
func (s *Store) MenuByCategory(categoryID string) ([]models.ShadowMenuItem, error) {
	items, err := s.Menu()
	if err != nil {
		return nil, err
	}
	filtered := make([]models.ShadowMenuItem, 0, len(items))
	for _, it := range items {
		if it.CategoryID == categoryID {
			filtered = append(filtered, it)
		}
	}
	return filtered, nil
}

// InventoryByCategory filters the persisted collection at read time.
func (s *Store) InventoryByCategory(categoryID string) ([]models.ShadowInventoryItem, error) {
	items, err := s.Inventory()
	if err != nil {
		return nil, err
	}
	filtered := make([]models.ShadowInventoryItem, 0, len(items))
	for _, it := range items {
		if it.CategoryID == categoryID {
			filtered = append(filtered, it)
		}
	}
	return filtered, nil
}

// AddMenuItem inserts a menu item and mirrors it into the inventory slot.
// Repeated adds with the same identifier do not create duplicates in either
// collection.
func (s *Store) AddMenuItem(item models.ShadowMenuItem) (models.ShadowMenuItem, error) {
	if err := validate(item); err != nil {
		return models.ShadowMenuItem{}, err
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	menu, err := s.loadMenu()
	if err != nil {
		return models.ShadowMenuItem{}, err
	}
	if indexOfMenu(menu, item.ID) < 0 {
		menu = append(menu, item)
		if err := s.saveMenu(menu); err != nil {
			return models.ShadowMenuItem{}, err
		}
	}

	if err := s.ensureInventoryMirror(item); err != nil {
		return models.ShadowMenuItem{}, err
	}
	return item, nil
}

// UpdateMenuItem edits a menu item and pushes name, price, category and image
// into the matching inventory record. Quantity is untouched.
func (s *Store) UpdateMenuItem(item models.ShadowMenuItem) (models.ShadowMenuItem, error) {
	if err := validate(item); err != nil {
		return models.ShadowMenuItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	menu, err := s.loadMenu()
	if err != nil {
		return models.ShadowMenuItem{}, err
	}
	idx := indexOfMenu(menu, item.ID)
	if idx < 0 {
		return models.ShadowMenuItem{}, ErrItemNotFound
	}
	menu[idx] = item
	if err := s.saveMenu(menu); err != nil {
		return models.ShadowMenuItem{}, err
	}

	inventory, err := s.loadInventory()
	if err != nil {
		return models.ShadowMenuItem{}, err
	}
	if invIdx := indexOfInventory(inventory, item.ID); invIdx >= 0 {
		inventory[invIdx].Name = item.Name
		inventory[invIdx].Price = item.Price
		inventory[invIdx].CategoryID = item.CategoryID
		inventory[invIdx].CategoryName = item.CategoryName
		inventory[invIdx].Image = item.Image
		if err := s.saveInventory(inventory); err != nil {
			return models.ShadowMenuItem{}, err
		}
	}
	return item, nil
}

// DeleteMenuItem removes a menu item and its inventory mirror. A missing
// mirror is not an error.
func (s *Store) DeleteMenuItem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	menu, err := s.loadMenu()
	if err != nil {
		return err
	}
	idx := indexOfMenu(menu, id)
	if idx < 0 {
		return ErrItemNotFound
	}
	menu = append(menu[:idx], menu[idx+1:]...)
	if err := s.saveMenu(menu); err != nil {
		return err
	}

	inventory, err := s.loadInventory()
	if err != nil {
		return err
	}
	if invIdx := indexOfInventory(inventory, id); invIdx >= 0 {
		inventory = append(inventory[:invIdx], inventory[invIdx+1:]...)
		if err := s.saveInventory(inventory); err != nil {
			return err
		}
	}
	return nil
}

// SetQuantity writes a new quantity, floored at zero, and recomputes stock
// status in the same operation. Quantity changes never propagate back to the
// menu slot.
func (s *Store) SetQuantity(id string, quantity int64) (models.ShadowInventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inventory, err := s.loadInventory()
	if err != nil {
		return models.ShadowInventoryItem{}, err
	}
	idx := indexOfInventory(inventory, id)
	if idx < 0 {
		return models.ShadowInventoryItem{}, ErrItemNotFound
	}
	if quantity < 0 {
		quantity = 0
	}
	inventory[idx].Quantity = models.Amount(quantity)
	inventory[idx].Status = string(models.StockStatusFor(quantity))
	if err := s.saveInventory(inventory); err != nil {
		return models.ShadowInventoryItem{}, err
	}
	return inventory[idx], nil
}

// AdjustQuantity applies a delta on top of the stored quantity, flooring at
// zero and recomputing stock status in the same write.
func (s *Store) AdjustQuantity(id string, delta int64) (models.ShadowInventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inventory, err := s.loadInventory()
	if err != nil {
		return models.ShadowInventoryItem{}, err
	}
	idx := indexOfInventory(inventory, id)
	if idx < 0 {
		return models.ShadowInventoryItem{}, ErrItemNotFound
	}
	quantity := inventory[idx].Quantity.Int64() + delta
	if quantity < 0 {
		quantity = 0
	}
	inventory[idx].Quantity = models.Amount(quantity)
	inventory[idx].Status = string(models.StockStatusFor(quantity))
	if err := s.saveInventory(inventory); err != nil {
		return models.ShadowInventoryItem{}, err
	}
	return inventory[idx], nil
}

// NotifyCustomerUpdated broadcasts the customer-change signal consumed by
// customer views to force an invalidation and refetch.
func (s *Store) NotifyCustomerUpdated() {
	if err := s.bc.Publish(CustomerUpdatedChannel, ""); err != nil {
		log.Printf("customerUpdated broadcast failed: %v", err)
	}
}

func validate(item models.ShadowMenuItem) error {
	if item.Name == "" {
		return ErrNameRequired
	}
	if item.Price <= 0 {
		return ErrInvalidPrice
	}
	return nil
}

func indexOfMenu(items []models.ShadowMenuItem, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func indexOfInventory(items []models.ShadowInventoryItem, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// ensureInventoryMirror inserts the inventory twin of a menu item if absent.
// Callers hold s.mu.
func (s *Store) ensureInventoryMirror(item models.ShadowMenuItem) error {
	inventory, err := s.loadInventory()
	if err != nil {
		return err
	}
	if indexOfInventory(inventory, item.ID) >= 0 {
		return nil
	}
	inventory = append(inventory, models.ShadowInventoryItem{
		ID:           item.ID,
		Name:         item.Name,
		CategoryID:   item.CategoryID,
		CategoryName: item.CategoryName,
		Price:        item.Price,
		Image:        item.Image,
		Quantity:     models.Amount(defaultStockLevel),
		Unit:         defaultUnit,
		Status:       string(models.StockStatusFor(defaultStockLevel)),
	})
	return s.saveInventory(inventory)
}

// loadMenu reads the menu slot, reseeding on missing or corrupt content.
// Callers hold s.mu.
func (s *Store) loadMenu() ([]models.ShadowMenuItem, error) {
	raw, ok, err := s.storage.GetSlot(MenuKey)
	if err != nil {
		return nil, err
	}
	if ok {
		var items []models.ShadowMenuItem
		if err := json.Unmarshal([]byte(raw), &items); err == nil && items != nil {
			return items, nil
		}
		// Unreadable content is treated as absent, not fatal.
	}
	items := seedMenu()
	if err := s.persist(MenuKey, items); err != nil {
		return nil, err
	}
	return items, nil
}

// loadInventory reads the inventory slot, reseeding on missing or corrupt
// content. Callers hold s.mu.
func (s *Store) loadInventory() ([]models.ShadowInventoryItem, error) {
	raw, ok, err := s.storage.GetSlot(InventoryKey)
	if err != nil {
		return nil, err
	}
	if ok {
		var items []models.ShadowInventoryItem
		if err := json.Unmarshal([]byte(raw), &items); err == nil && items != nil {
			return items, nil
		}
	}
	items := seedInventory()
	if err := s.persist(InventoryKey, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) saveMenu(items []models.ShadowMenuItem) error {
	if err := s.persist(MenuKey, items); err != nil {
		return err
	}
	s.broadcast(MenuKey, items)
	return nil
}

func (s *Store) saveInventory(items []models.ShadowInventoryItem) error {
	if err := s.persist(InventoryKey, items); err != nil {
		return err
	}
	s.broadcast(InventoryKey, items)
	return nil
}

func (s *Store) persist(key string, items interface{}) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.storage.SetSlot(key, string(data))
}

// broadcast publishes the storage event after a successful write. Broadcast
// failures do not roll the write back; consumers catch up on the next read.
func (s *Store) broadcast(key string, items interface{}) {
	data, err := json.Marshal(items)
	if err != nil {
		log.Printf("storage broadcast encode failed for %s: %v", key, err)
		return
	}
	payload, err := json.Marshal(StorageEvent{Key: key, NewValue: string(data)})
	if err != nil {
		log.Printf("storage broadcast encode failed for %s: %v", key, err)
		return
	}
	if err := s.bc.Publish(StorageChannel, string(payload)); err != nil {
		log.Printf("storage broadcast failed for %s: %v", key, err)
	}
}
