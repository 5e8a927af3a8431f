package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"pos_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	user, err := h.userService.Register(req.Name, req.Email, req.Phone, req.Password, req.Role)
	if err != nil {
		sendErrorResponse(c, http.StatusInternalServerError, "failed to create user")
		return
	}
	sendJSONResponse(c, http.StatusCreated, gin.H{"data": user})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	token, user, err := h.userService.Login(req.Email, req.Password, services.SessionInfo{
		IPAddress:   c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
		DeviceLabel: c.GetHeader("X-Device-Label"),
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			sendErrorResponse(c, http.StatusUnauthorized, err.Error())
		case errors.Is(err, services.ErrInactiveUser):
			sendErrorResponse(c, http.StatusForbidden, err.Error())
		default:
			sendErrorResponse(c, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"token": token, "user": user})
}

func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.userService.Logout(currentUserID(c)); err != nil {
		sendErrorResponse(c, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"message": "logged out"})
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		sendErrorResponse(c, http.StatusInternalServerError, "failed to load users")
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"data": users})
}

func (h *UserHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	user, err := h.userService.GetUserByID(uint(id))
	if err != nil {
		sendErrorResponse(c, http.StatusNotFound, msgNotFound)
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Email    *string `json:"email"`
		Phone    *string `json:"phone"`
		Role     *string `json:"role"`
		IsActive *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if err := h.userService.UpdateUser(user); err != nil {
		sendErrorResponse(c, http.StatusInternalServerError, "failed to update user")
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"data": user})
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if err := h.userService.DeleteUser(uint(id)); err != nil {
		sendErrorResponse(c, http.StatusInternalServerError, "failed to delete user")
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"message": "user deleted"})
}

func (h *UserHandler) LoginHistory(c *gin.Context) {
	records, err := h.userService.LoginHistory(currentUserID(c))
	if err != nil {
		sendErrorResponse(c, http.StatusInternalServerError, "failed to load login history")
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"data": records})
}
