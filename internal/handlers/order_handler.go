package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"pos_manager/internal/models"
	"pos_manager/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orderService.GetAllOrders()
	if err != nil {
		sendErrorResponse(c, http.StatusInternalServerError, "failed to load orders")
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"data": orders})
}

func (h *OrderHandler) Create(c *gin.Context) {
	var order models.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	// The creator is always the authenticated caller, never client-supplied.
	order.CreatedBy = models.UserRef{ID: fmt.Sprint(currentUserID(c))}
	if err := h.orderService.CreateOrder(&order); err != nil {
		if errors.Is(err, services.ErrEmptyOrder) {
			sendErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		sendErrorResponse(c, http.StatusInternalServerError, "failed to create order")
		return
	}
	sendJSONResponse(c, http.StatusCreated, gin.H{"data": order})
}

type updateOrderRequest struct {
	Status        string             `json:"status"`
	PaymentMethod string             `json:"payment_method"`
	Items         []models.OrderLine `json:"items"`
	Discount      *models.Amount     `json:"discount"`
}

// Update handles both kinds of order mutation: a content edit (items or
// discount, which recomputes the bill) or a status transition. One request
// performs one or the other, never both.
func (h *OrderHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if len(req.Items) > 0 || req.Discount != nil {
		if req.Status != "" {
			sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
			return
		}
		h.updateContent(c, uint(id), req)
		return
	}
	if req.Status == "" {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}

	order, err := h.orderService.UpdateOrderStatus(uint(id), req.Status, req.PaymentMethod, isAdmin(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderPaid):
			sendErrorResponse(c, http.StatusConflict, err.Error())
		case errors.Is(err, services.ErrInvalidStatus):
			sendErrorResponse(c, http.StatusBadRequest, err.Error())
		default:
			sendErrorResponse(c, http.StatusNotFound, msgNotFound)
		}
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"data": order})
}

func (h *OrderHandler) updateContent(c *gin.Context, id uint, req updateOrderRequest) {
	order, err := h.orderService.GetOrderByID(id)
	if err != nil {
		sendErrorResponse(c, http.StatusNotFound, msgNotFound)
		return
	}
	if len(req.Items) > 0 {
		order.Items = datatypes.NewJSONSlice(req.Items)
	}
	if req.Discount != nil {
		order.Bills.Discount = *req.Discount
	}
	if req.PaymentMethod != "" {
		order.PaymentMethod = req.PaymentMethod
	}
	if err := h.orderService.UpdateOrder(order, isAdmin(c)); err != nil {
		switch {
		case errors.Is(err, services.ErrOrderPaid):
			sendErrorResponse(c, http.StatusConflict, err.Error())
		case errors.Is(err, services.ErrEmptyOrder):
			sendErrorResponse(c, http.StatusBadRequest, err.Error())
		default:
			sendErrorResponse(c, http.StatusInternalServerError, "failed to update order")
		}
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"data": order})
}

func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if err := h.orderService.DeleteOrder(uint(id)); err != nil {
		sendErrorResponse(c, http.StatusInternalServerError, "failed to delete order")
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"message": "order deleted"})
}
