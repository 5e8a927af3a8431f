package handlers

import (
	"errors"
	"net/http"

	"pos_manager/internal/models"
	"pos_manager/internal/services"
	"pos_manager/internal/shadowstore"

	"github.com/gin-gonic/gin"
)

// MenuHandler exposes the shadow menu and inventory slots. Item IDs here are
// strings assigned by the store, not database IDs.
type MenuHandler struct {
	menuService services.MenuService
}

func NewMenuHandler(menuService services.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

func shadowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, shadowstore.ErrItemNotFound):
		sendErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, shadowstore.ErrNameRequired), errors.Is(err, shadowstore.ErrInvalidPrice):
		sendErrorResponse(c, http.StatusBadRequest, err.Error())
	default:
		sendErrorResponse(c, http.StatusInternalServerError, msgInternalServerError)
	}
}

func (h *MenuHandler) ListMenu(c *gin.Context) {
	var (
		items []models.ShadowMenuItem
		err   error
	)
	if category := c.Query("category"); category != "" {
		items, err = h.menuService.MenuByCategory(category)
	} else {
		items, err = h.menuService.Menu()
	}
	if err != nil {
		shadowError(c, err)
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"data": items})
}

func (h *MenuHandler) AddMenuItem(c *gin.Context) {
	var item models.ShadowMenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	saved, err := h.menuService.AddMenuItem(item)
	if err != nil {
		shadowError(c, err)
		return
	}
	sendJSONResponse(c, http.StatusCreated, gin.H{"data": saved})
}

func (h *MenuHandler) UpdateMenuItem(c *gin.Context) {
	var item models.ShadowMenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	item.ID = c.Param("id")
	saved, err := h.menuService.UpdateMenuItem(item)
	if err != nil {
		shadowError(c, err)
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"data": saved})
}

func (h *MenuHandler) DeleteMenuItem(c *gin.Context) {
	if err := h.menuService.DeleteMenuItem(c.Param("id")); err != nil {
		shadowError(c, err)
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"message": "menu item deleted"})
}

func (h *MenuHandler) ListInventory(c *gin.Context) {
	var (
		items []models.ShadowInventoryItem
		err   error
	)
	if category := c.Query("category"); category != "" {
		items, err = h.menuService.InventoryByCategory(category)
	} else {
		items, err = h.menuService.Inventory()
	}
	if err != nil {
		shadowError(c, err)
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"data": items})
}

type quantityRequest struct {
	Quantity *int64 `json:"quantity"`
	Delta    *int64 `json:"delta"`
}

// UpdateQuantity accepts either an absolute quantity or a delta. Absolute
// wins when both are present.
func (h *MenuHandler) UpdateQuantity(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.Quantity == nil && req.Delta == nil) {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var (
		item models.ShadowInventoryItem
		err  error
	)
	if req.Quantity != nil {
		item, err = h.menuService.SetQuantity(c.Param("id"), *req.Quantity)
	} else {
		item, err = h.menuService.AdjustQuantity(c.Param("id"), *req.Delta)
	}
	if err != nil {
		shadowError(c, err)
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"data": item})
}
