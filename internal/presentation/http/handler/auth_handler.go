package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ndthang/storepos-api/internal/application/service"
	"github.com/ndthang/storepos-api/internal/presentation/http/dto/request"
	"github.com/ndthang/storepos-api/internal/presentation/http/dto/response"
)

// AuthHandler handles authentication and store-switch HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles staff login
// @Summary Login
// @Description Authenticate a staff member and return tokens plus their stores
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /staff/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Đăng nhập thành công", gin.H{
		"staff": gin.H{
			"id":             output.Staff.ID,
			"username":       output.Staff.Username,
			"fullName":       output.Staff.FullName,
			"role":           output.Staff.Role,
			"currentStoreId": output.Staff.CurrentStoreID,
		},
		"stores":       output.Stores,
		"accessToken":  output.AccessToken,
		"refreshToken": output.RefreshToken,
		"tokenType":    "Bearer",
	})
}

// Refresh handles token refresh
// @Summary Refresh token
// @Description Exchange a refresh token for a new access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /staff/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	accessToken, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Token refreshed", gin.H{
		"accessToken": accessToken,
		"tokenType":   "Bearer",
	})
}

// MyStores lists the stores the staff member can switch to
// @Summary My stores
// @Tags storeswitch
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /storeswitch/my-stores [get]
func (h *AuthHandler) MyStores(c *gin.Context) {
	staffID := GetStaffID(c)
	if staffID == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	stores, err := h.authService.MyStores(c.Request.Context(), *staffID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stores retrieved", stores)
}

// SetCurrentStore switches the staff member's active store
// @Summary Switch store
// @Description Set the active store; returns a token scoped to it
// @Tags storeswitch
// @Accept json
// @Produce json
// @Param request body request.SetCurrentStoreRequest true "Store selection"
// @Success 200 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Router /storeswitch/set-current [post]
func (h *AuthHandler) SetCurrentStore(c *gin.Context) {
	staffID := GetStaffID(c)
	if staffID == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req request.SetCurrentStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	storeID, err := uuid.Parse(req.StoreID)
	if err != nil {
		response.BadRequest(c, "Invalid store ID")
		return
	}

	output, err := h.authService.SetCurrentStore(c.Request.Context(), *staffID, storeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Đã chuyển cửa hàng", gin.H{
		"store":       output.Store,
		"accessToken": output.AccessToken,
		"tokenType":   "Bearer",
	})
}
