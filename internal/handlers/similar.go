package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"versesim/internal/adapter/index"
	"versesim/internal/domain"
)

// maxCount caps a single response so an oversized count cannot dump the
// whole corpus per request.
const maxCount = 100

// SimilarityService answers similarity queries.
type SimilarityService interface {
	Similar(ref string, count int) ([]domain.ScoredVerse, error)
}

// SimilarHandler handles similarity query endpoints.
type SimilarHandler struct {
	service SimilarityService
}

// NewSimilarHandler creates a new similarity handler.
func NewSimilarHandler(service SimilarityService) *SimilarHandler {
	return &SimilarHandler{service: service}
}

// SimilarRequest is the request body for POST /similar.
type SimilarRequest struct {
	Reference string `json:"reference"`
	Count     int    `json:"count"`
}

// VerseResult is one scored passage in a response.
type VerseResult struct {
	Reference string  `json:"reference"`
	Text      string  `json:"text"`
	Score     float64 `json:"score"`
}

// SimilarResponse is the response for similarity queries.
type SimilarResponse struct {
	Reference string        `json:"reference"`
	Count     int           `json:"count"`
	Results   []VerseResult `json:"results"`
}

// GetSimilar handles GET /similar?reference=...&count=N.
func (h *SimilarHandler) GetSimilar(c echo.Context) error {
	ref := c.QueryParam("reference")
	if ref == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "reference is required")
	}

	count := 0
	if raw := c.QueryParam("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "count must be an integer")
		}
		count = parsed
	}

	return h.respond(c, ref, count)
}

// PostSimilar handles POST /similar.
func (h *SimilarHandler) PostSimilar(c echo.Context) error {
	var req SimilarRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Reference == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "reference is required")
	}

	return h.respond(c, req.Reference, req.Count)
}

func (h *SimilarHandler) respond(c echo.Context, ref string, count int) error {
	if count > maxCount {
		count = maxCount
	}

	scored, err := h.service.Similar(ref, count)
	if err != nil {
		if errors.Is(err, index.ErrUnknownPassage) {
			return echo.NewHTTPError(http.StatusNotFound, "Unknown passage: "+ref)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Query failed: "+err.Error())
	}

	results := make([]VerseResult, len(scored))
	for i, sv := range scored {
		results[i] = VerseResult{
			Reference: sv.Verse.Ref,
			Text:      sv.Verse.Text,
			Score:     sv.Score,
		}
	}

	return c.JSON(http.StatusOK, SimilarResponse{
		Reference: ref,
		Count:     len(results),
		Results:   results,
	})
}

// RegisterRoutes registers similarity routes.
func (h *SimilarHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/similar", h.GetSimilar)
	g.POST("/similar", h.PostSimilar)
}
