package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/autoconnect-transport/service-admin/internal/application"
	"github.com/autoconnect-transport/service-admin/internal/auth"
	"github.com/autoconnect-transport/service-admin/internal/middleware"
	"github.com/autoconnect-transport/service-admin/internal/response"
)

// FleetHandler handles HTTP requests for the vehicle inventory.
type FleetHandler struct {
	service *application.FleetService
}

// NewFleetHandler creates a new FleetHandler.
func NewFleetHandler(service *application.FleetService) *FleetHandler {
	return &FleetHandler{service: service}
}

// RegisterRoutes registers all fleet routes on the given router group.
func (h *FleetHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	fleet := r.Group("/api/v1/admin/fleet")
	fleet.Use(authMW)
	{
		fleet.POST("/cars", h.AddCar)
		fleet.PUT("/cars/:id", h.UpdateCar)
		fleet.GET("/cars/options", h.ListCarOptions)
	}
}

// AddCar handles POST /api/v1/admin/fleet/cars.
func (h *FleetHandler) AddCar(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req application.CarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AddCar(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// UpdateCar handles PUT /api/v1/admin/fleet/cars/:id.
func (h *FleetHandler) UpdateCar(c *gin.Context) {
	carID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid car ID")
		return
	}

	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req application.CarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateCar(c.Request.Context(), carID, actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// ListCarOptions handles GET /api/v1/admin/fleet/cars/options.
func (h *FleetHandler) ListCarOptions(c *gin.Context) {
	result, err := h.service.ListCarOptions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
