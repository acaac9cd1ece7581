package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	passages  int
	dimension int
}

// NewHealthHandler creates a health handler reporting the number of
// indexed passages and their vector dimension.
func NewHealthHandler(passages, dimension int) *HealthHandler {
	return &HealthHandler{passages: passages, dimension: dimension}
}

// HealthResponse is the response for the health check.
type HealthResponse struct {
	Status    string `json:"status"`
	Passages  int    `json:"passages"`
	Dimension int    `json:"dimension"`
}

// Health handles GET /health.
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Passages:  h.passages,
		Dimension: h.dimension,
	})
}

// RegisterRoutes registers health check routes.
func (h *HealthHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/health", h.Health)
}
