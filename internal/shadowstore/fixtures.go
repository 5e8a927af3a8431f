package shadowstore

import (
	"math/rand"
	"strconv"

	"pos_manager/internal/models"
)

// Fixture data used to seed the shadow slots when a slot is missing or holds
// unreadable content. Seeding never touches a slot that already decodes.
type fixtureItem struct {
	name     string
	category string
	price    int64
	image    string
}

var fixtureMenu = []fixtureItem{
	{"Paneer Tikka", "Starters", 28000, "/images/paneer-tikka.jpg"},
	{"Chicken 65", "Starters", 32000, "/images/chicken-65.jpg"},
	{"Veg Spring Rolls", "Starters", 22000, "/images/spring-rolls.jpg"},
	{"Butter Chicken", "Main Course", 42000, "/images/butter-chicken.jpg"},
	{"Paneer Butter Masala", "Main Course", 36000, "/images/paneer-butter-masala.jpg"},
	{"Dal Makhani", "Main Course", 30000, "/images/dal-makhani.jpg"},
	{"Hyderabadi Biryani", "Main Course", 38000, "/images/biryani.jpg"},
	{"Masala Chai", "Beverages", 8000, "/images/masala-chai.jpg"},
	{"Fresh Lime Soda", "Beverages", 10000, "/images/lime-soda.jpg"},
	{"Mango Lassi", "Beverages", 14000, "/images/mango-lassi.jpg"},
	{"Gulab Jamun", "Desserts", 12000, "/images/gulab-jamun.jpg"},
	{"Rasmalai", "Desserts", 15000, "/images/rasmalai.jpg"},
}

// seedMenu maps the fixture list into the shadow shape, assigning sequential
// category metadata and default availability.
func seedMenu() []models.ShadowMenuItem {
	categoryIDs := map[string]string{}
	items := make([]models.ShadowMenuItem, 0, len(fixtureMenu))
	for i, f := range fixtureMenu {
		id, ok := categoryIDs[f.category]
		if !ok {
			id = strconv.Itoa(len(categoryIDs) + 1)
			categoryIDs[f.category] = id
		}
		items = append(items, models.ShadowMenuItem{
			ID:           "m-" + strconv.Itoa(i+1),
			Name:         f.name,
			CategoryID:   id,
			CategoryName: f.category,
			Price:        models.Amount(f.price),
			Image:        f.image,
			Available:    true,
		})
	}
	return items
}

// seedInventory mirrors the fixture menu with a pseudo-random starting
// quantity and the stock status derived from it.
func seedInventory() []models.ShadowInventoryItem {
	menu := seedMenu()
	items := make([]models.ShadowInventoryItem, 0, len(menu))
	for _, m := range menu {
		quantity := int64(rand.Intn(50))
		items = append(items, models.ShadowInventoryItem{
			ID:           m.ID,
			Name:         m.Name,
			CategoryID:   m.CategoryID,
			CategoryName: m.CategoryName,
			Price:        m.Price,
			Image:        m.Image,
			Quantity:     models.Amount(quantity),
			Unit:         defaultUnit,
			Status:       string(models.StockStatusFor(quantity)),
		})
	}
	return items
}
