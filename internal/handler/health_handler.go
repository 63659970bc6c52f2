package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Pinger reports connectivity to a backing service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports the status of the API and its backing services.
type HealthHandler struct {
	db    *gorm.DB
	cache Pinger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *gorm.DB, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// HealthResponse is the healthcheck body.
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

// Index godoc
// @Summary API version index
// @Tags meta
// @Produce json
// @Success 200 {object} errors.MessageResponse
// @Router /v1 [get]
func (h *HealthHandler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "You have hit API version 1",
	})
}

// Healthcheck godoc
// @Summary Check the API and its downstream services
// @Tags meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 400 {object} HealthResponse
// @Router /healthcheck [get]
func (h *HealthHandler) Healthcheck(c echo.Context) error {
	ctx := c.Request().Context()
	services := map[string]string{
		"database": "up",
		"redis":    "up",
	}

	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		services["database"] = "down"
	}
	if err := h.cache.Ping(ctx); err != nil {
		services["redis"] = "down"
	}

	status := "up"
	code := http.StatusOK
	for _, s := range services {
		if s == "down" {
			status = "down"
			code = http.StatusBadRequest
		}
	}

	return c.JSON(code, HealthResponse{Status: status, Services: services})
}
