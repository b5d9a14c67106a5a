package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/autoconnect-transport/service-admin/internal/application"
	"github.com/autoconnect-transport/service-admin/internal/response"
)

// AuthHandler handles the OTP login endpoints.
type AuthHandler struct {
	service *application.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service *application.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterRoutes registers the auth routes on the given router group. These
// routes are unauthenticated by nature.
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	authRoutes := r.Group("/api/v1/admin/auth")
	{
		authRoutes.POST("/request-otp", h.RequestOTP)
		authRoutes.POST("/verify-otp", h.VerifyOTP)
		authRoutes.POST("/validate-token", h.ValidateToken)
	}
}

type requestOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

type validateTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// RequestOTP handles POST /api/v1/admin/auth/request-otp.
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req requestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "email is required")
		return
	}

	if err := h.service.RequestOTP(c.Request.Context(), req.Email); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "OTP sent successfully"})
}

// VerifyOTP handles POST /api/v1/admin/auth/verify-otp.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "email and OTP are required")
		return
	}

	session, err := h.service.VerifyOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, session)
}

// ValidateToken handles POST /api/v1/admin/auth/validate-token.
func (h *AuthHandler) ValidateToken(c *gin.Context) {
	var req validateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "token is required")
		return
	}

	claims, err := h.service.ValidateToken(req.Token)
	if err != nil {
		response.Unauthorized(c, "invalid token")
		return
	}
	response.OK(c, gin.H{
		"valid": true,
		"user": gin.H{
			"id":   claims.AdminID,
			"name": claims.AdminName,
			"role": claims.AdminRole,
		},
	})
}
