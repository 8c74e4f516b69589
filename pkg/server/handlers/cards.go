package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/manaql/manaql-mcp/pkg/cards"
	"github.com/manaql/manaql-mcp/pkg/server/dto"
)

// CardsHandler handles card catalog requests
type CardsHandler struct {
	api    cards.CardAPI
	logger *slog.Logger
}

// NewCardsHandler creates a new cards handler
func NewCardsHandler(api cards.CardAPI, logger *slog.Logger) *CardsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CardsHandler{
		api:    api,
		logger: logger,
	}
}

// Search handles GET /api/v1/cards
func (h *CardsHandler) Search(c *gin.Context) {
	params, err := dto.ParseSearchParams(
		c.Query("q"),
		c.Query("type"),
		c.Query("fields"),
		c.Query("limit"),
		c.Query("offset"),
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error(), Code: http.StatusBadRequest})
		return
	}

	results, err := h.api.SearchCards(c.Request.Context(), params.Filters(), params.Query, params.Limit, params.Offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SearchResponse{
		Count:  len(results),
		Limit:  params.Limit,
		Offset: params.Offset,
		Cards:  results,
	})
}

// Count handles GET /api/v1/cards/count
func (h *CardsHandler) Count(c *gin.Context) {
	total, err := h.api.GetCardCount(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CountResponse{Total: total})
}

// GetByID handles GET /api/v1/cards/:id
func (h *CardsHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "id must be an integer", Code: http.StatusBadRequest})
		return
	}

	card, err := h.api.GetCardByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

// Similar handles GET /api/v1/cards/similar
func (h *CardsHandler) Similar(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "name is required", Code: http.StatusBadRequest})
		return
	}

	limit := cards.DefaultSimilarLimit
	if l := c.Query("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "limit must be a positive integer", Code: http.StatusBadRequest})
			return
		}
		limit = n
	}

	results, err := h.api.FindSimilarCards(c.Request.Context(), name, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SimilarResponse{
		Name:  name,
		Count: len(results),
		Cards: results,
	})
}

// respondError maps domain errors to HTTP status codes: NotFound to 404,
// everything else to 500.
func (h *CardsHandler) respondError(c *gin.Context, err error) {
	if cards.IsNotFound(err) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error(), Code: http.StatusNotFound})
		return
	}

	h.logger.Error("request failed", "path", c.FullPath(), "error", err)
	msg := "internal server error"
	if errors.Is(err, cards.ErrInternal) {
		msg = err.Error()
	}
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: msg, Code: http.StatusInternalServerError})
}
