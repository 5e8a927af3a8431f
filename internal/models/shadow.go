package models

// Shadow records are the locally persisted copies of menu and inventory data.
// They live in two JSON array slots ("menuData", "inventoryData") rather than
// in Postgres, and carry the loose field shapes of that storage.

type ShadowMenuItem struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	Price        Amount `json:"price"`
	Image        string `json:"image"`
	Available    bool   `json:"available"`
}

type ShadowInventoryItem struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	Price        Amount `json:"price"`
	Image        string `json:"image"`
	Quantity     Amount `json:"quantity"`
	Unit         string `json:"unit"`
	Status       string `json:"status"`
}

type StockStatus string

const (
	StockOut StockStatus = "Out of Stock"
	StockLow StockStatus = "Low Stock"
	StockIn  StockStatus = "In Stock"
)

const lowStockThreshold = 15

// StockStatusFor derives stock status from quantity. Every write path that
// changes a quantity must store the result of this function in the same
// operation; status is never updated independently.
func StockStatusFor(quantity int64) StockStatus {
	switch {
	case quantity <= 0:
		return StockOut
	case quantity < lowStockThreshold:
		return StockLow
	default:
		return StockIn
	}
}
