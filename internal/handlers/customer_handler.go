package handlers

import (
	"net/http"

	"pos_manager/internal/models"
	"pos_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	customerService services.CustomerService
}

func NewCustomerHandler(customerService services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// customerView is a customer record with its derived tier attached. The tier
// is computed per response and never written back.
type customerView struct {
	models.Customer
	Tier models.CustomerTier `json:"tier"`
}

func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.customerService.GetAllCustomers()
	if err != nil {
		sendErrorResponse(c, http.StatusInternalServerError, "failed to load customers")
		return
	}
	views := make([]customerView, len(customers))
	for i, cust := range customers {
		views[i] = customerView{Customer: cust, Tier: h.customerService.ClassifyCustomer(cust)}
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"data": views})
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil || customer.Name == "" || customer.Phone == "" {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if err := h.customerService.CreateCustomer(&customer); err != nil {
		sendErrorResponse(c, http.StatusInternalServerError, "failed to create customer")
		return
	}
	sendJSONResponse(c, http.StatusCreated, gin.H{"data": customer})
}

func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	customer, err := h.customerService.GetCustomerByID(id)
	if err != nil {
		sendErrorResponse(c, http.StatusNotFound, msgNotFound)
		return
	}
	var req struct {
		Name  *string `json:"name"`
		Phone *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if err := h.customerService.UpdateCustomer(customer); err != nil {
		sendErrorResponse(c, http.StatusInternalServerError, "failed to update customer")
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"data": customer})
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.customerService.DeleteCustomer(id); err != nil {
		sendErrorResponse(c, http.StatusInternalServerError, "failed to delete customer")
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"message": "customer deleted"})
}

func (h *CustomerHandler) SyncStats(c *gin.Context) {
	if err := h.customerService.SyncStats(); err != nil {
		sendErrorResponse(c, http.StatusInternalServerError, "failed to sync customer stats")
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"message": "customer stats synced"})
}
