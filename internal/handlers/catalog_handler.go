package handlers

import (
	"net/http"
	"strconv"

	"pos_manager/internal/models"
	"pos_manager/internal/repository"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the table, category and dish resources. These are
// plain backend-owned records; the shadow menu in the menu handler is a
// separate, locally persisted copy.
type CatalogHandler struct {
	tableRepo    repository.TableRepository
	categoryRepo repository.CategoryRepository
	dishRepo     repository.DishRepository
}

func NewCatalogHandler(tableRepo repository.TableRepository, categoryRepo repository.CategoryRepository, dishRepo repository.DishRepository) *CatalogHandler {
	return &CatalogHandler{tableRepo: tableRepo, categoryRepo: categoryRepo, dishRepo: dishRepo}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return 0, false
	}
	return uint(id), true
}

// Tables

func (h *CatalogHandler) ListTables(c *gin.Context) {
	tables, err := h.tableRepo.GetAll()
	if err != nil {
		sendErrorResponse(c, http.StatusInternalServerError, "failed to load tables")
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"data": tables})
}

func (h *CatalogHandler) CreateTable(c *gin.Context) {
	var table models.Table
	if err := c.ShouldBindJSON(&table); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if table.Status == "" {
		table.Status = "Available"
	}
	if err := h.tableRepo.Create(&table); err != nil {
		sendErrorResponse(c, http.StatusInternalServerError, "failed to create table")
		return
	}
	sendJSONResponse(c, http.StatusCreated, gin.H{"data": table})
}

func (h *CatalogHandler) UpdateTable(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	table, err := h.tableRepo.GetByID(id)
	if err != nil {
		sendErrorResponse(c, http.StatusNotFound, msgNotFound)
		return
	}
	var req struct {
		Seats   *int    `json:"seats"`
		Status  *string `json:"status"`
		OrderID *uint   `json:"order_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if req.Seats != nil {
		table.Seats = *req.Seats
	}
	if req.Status != nil {
		table.Status = *req.Status
		if *req.Status == "Available" {
			table.OrderID = nil
		}
	}
	if req.OrderID != nil {
		table.OrderID = req.OrderID
	}
	if err := h.tableRepo.Update(table); err != nil {
		sendErrorResponse(c, http.StatusInternalServerError, "failed to update table")
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"data": table})
}

func (h *CatalogHandler) DeleteTable(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.tableRepo.Delete(id); err != nil {
		sendErrorResponse(c, http.StatusInternalServerError, "failed to delete table")
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"message": "table deleted"})
}

// Categories

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryRepo.GetAll()
	if err != nil {
		sendErrorResponse(c, http.StatusInternalServerError, "failed to load categories")
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"data": categories})
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil || category.Name == "" {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if err := h.categoryRepo.Create(&category); err != nil {
		sendErrorResponse(c, http.StatusInternalServerError, "failed to create category")
		return
	}
	sendJSONResponse(c, http.StatusCreated, gin.H{"data": category})
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	category, err := h.categoryRepo.GetByID(id)
	if err != nil {
		sendErrorResponse(c, http.StatusNotFound, msgNotFound)
		return
	}
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	category.Name = req.Name
	if err := h.categoryRepo.Update(category); err != nil {
		sendErrorResponse(c, http.StatusInternalServerError, "failed to update category")
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"data": category})
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.categoryRepo.Delete(id); err != nil {
		sendErrorResponse(c, http.StatusInternalServerError, "failed to delete category")
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"message": "category deleted"})
}

// Dishes

func (h *CatalogHandler) ListDishes(c *gin.Context) {
	if raw := c.Query("category"); raw != "" {
		categoryID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
			return
		}
		dishes, err := h.dishRepo.GetByCategory(uint(categoryID))
		if err != nil {
			sendErrorResponse(c, http.StatusInternalServerError, "failed to load dishes")
			return
		}
		sendJSONResponse(c, http.StatusOK, gin.H{"data": dishes})
		return
	}
	dishes, err := h.dishRepo.GetAll()
	if err != nil {
		sendErrorResponse(c, http.StatusInternalServerError, "failed to load dishes")
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"data": dishes})
}

func (h *CatalogHandler) CreateDish(c *gin.Context) {
	var dish models.Dish
	if err := c.ShouldBindJSON(&dish); err != nil || dish.Name == "" || dish.Price <= 0 {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	dish.Available = true
	if err := h.dishRepo.Create(&dish); err != nil {
		sendErrorResponse(c, http.StatusInternalServerError, "failed to create dish")
		return
	}
	sendJSONResponse(c, http.StatusCreated, gin.H{"data": dish})
}

func (h *CatalogHandler) UpdateDish(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	dish, err := h.dishRepo.GetByID(id)
	if err != nil {
		sendErrorResponse(c, http.StatusNotFound, msgNotFound)
		return
	}
	var req struct {
		Name       *string        `json:"name"`
		CategoryID *uint          `json:"category_id"`
		Price      *models.Amount `json:"price"`
		Image      *string        `json:"image"`
		Available  *bool          `json:"available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if req.Name != nil {
		dish.Name = *req.Name
	}
	if req.CategoryID != nil {
		dish.CategoryID = *req.CategoryID
	}
	if req.Price != nil {
		dish.Price = *req.Price
	}
	if req.Image != nil {
		dish.Image = *req.Image
	}
	if req.Available != nil {
		dish.Available = *req.Available
	}
	if err := h.dishRepo.Update(dish); err != nil {
		sendErrorResponse(c, http.StatusInternalServerError, "failed to update dish")
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"data": dish})
}

func (h *CatalogHandler) DeleteDish(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.dishRepo.Delete(id); err != nil {
		sendErrorResponse(c, http.StatusInternalServerError, "failed to delete dish")
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"message": "dish deleted"})
}
