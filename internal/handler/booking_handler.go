package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/autoconnect-transport/service-admin/internal/application"
	"github.com/autoconnect-transport/service-admin/internal/auth"
	bookingDomain "github.com/autoconnect-transport/service-admin/internal/domain/booking"
	"github.com/autoconnect-transport/service-admin/internal/middleware"
	"github.com/autoconnect-transport/service-admin/internal/response"
)

// BookingHandler handles HTTP requests for booking status operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	bookings := r.Group("/api/v1/admin/bookings")
	bookings.Use(authMW)
	{
		bookings.GET("/:id", h.GetBooking)
		bookings.GET("/statistics", h.GetStatistics)
		bookings.PUT("/:id/pending", h.PendingBooking)
		bookings.PUT("/:id/confirm", h.ConfirmBooking)
		bookings.PUT("/:id/finish", h.FinishBooking)
		bookings.PUT("/:id/cancel", h.CancelBooking)
	}
}

// finishRequest carries the optional expenses recorded when finishing.
type finishRequest struct {
	ExpensesCents *int64 `json:"expenses_cents"`
}

// cancelRequest carries the mandatory cancellation reason.
type cancelRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// GetBooking handles GET /api/v1/admin/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	result, err := h.service.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// GetStatistics handles GET /api/v1/admin/bookings/statistics.
func (h *BookingHandler) GetStatistics(c *gin.Context) {
	result, err := h.service.GetBookingStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// PendingBooking handles PUT /api/v1/admin/bookings/:id/pending.
func (h *BookingHandler) PendingBooking(c *gin.Context) {
	bookingID, actor, ok := h.parseTransition(c)
	if !ok {
		return
	}

	result, err := h.service.PendingBooking(c.Request.Context(), bookingID, actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// ConfirmBooking handles PUT /api/v1/admin/bookings/:id/confirm.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	bookingID, actor, ok := h.parseTransition(c)
	if !ok {
		return
	}

	result, err := h.service.ConfirmBooking(c.Request.Context(), bookingID, actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// FinishBooking handles PUT /api/v1/admin/bookings/:id/finish.
func (h *BookingHandler) FinishBooking(c *gin.Context) {
	bookingID, actor, ok := h.parseTransition(c)
	if !ok {
		return
	}

	var req finishRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.FinishBooking(c.Request.Context(), bookingID, actor, req.ExpensesCents)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// CancelBooking handles PUT /api/v1/admin/bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	bookingID, actor, ok := h.parseTransition(c)
	if !ok {
		return
	}

	var req cancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "cancellation reason is required")
		return
	}

	result, err := h.service.CancelBooking(c.Request.Context(), bookingID, actor, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// parseTransition extracts the booking ID and acting admin shared by all
// transition endpoints.
func (h *BookingHandler) parseTransition(c *gin.Context) (uuid.UUID, bookingDomain.Actor, bool) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return uuid.Nil, bookingDomain.Actor{}, false
	}

	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return uuid.Nil, bookingDomain.Actor{}, false
	}

	return bookingID, actor, true
}
