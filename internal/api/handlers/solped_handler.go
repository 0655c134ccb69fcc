package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jacengineering/inventario/backend-go/internal/domain"
	"github.com/jacengineering/inventario/backend-go/internal/export"
	"github.com/jacengineering/inventario/backend-go/internal/service"
)

type SolpedHandler struct {
	service *service.SolpedService
}

func NewSolpedHandler(service *service.SolpedService) *SolpedHandler {
	return &SolpedHandler{service: service}
}

type generateSolpedRequest struct {
	Items       []domain.CartItem `json:"items" binding:"required"`
	RequestedBy string            `json:"solicitado_por"`
	Notes       string            `json:"notas"`
}

type transitionRequest struct {
	State string `json:"estado" binding:"required"`
}

// Generate turns the posted cart into a numbered purchase request.
func (h *SolpedHandler) Generate(c *gin.Context) {
	var req generateSolpedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	number, lines, err := h.service.Generate(c.Request.Context(), req.Items, strings.TrimSpace(req.RequestedBy), req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart), errors.Is(err, service.ErrMissingRequester):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate solped", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"solped_numero": number,
		"items":         lines,
		"valor_total":   linesTotal(lines),
	})
}

// History lists stored purchase-request lines, optionally filtered.
func (h *SolpedHandler) History(c *gin.Context) {
	filter := domain.SolpedFilter{
		Number: strings.TrimSpace(c.Query("numero")),
		Center: strings.TrimSpace(c.Query("centro")),
	}

	if estado := strings.TrimSpace(c.Query("estado")); estado != "" {
		state, ok := domain.ParseSolpedState(estado)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown estado: " + estado})
			return
		}
		filter.State = string(state)
	}

	lines, err := h.service.History(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch solped history", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": lines,
		"total": len(lines),
	})
}

// GetSummary aggregates the stored purchase-request history.
func (h *SolpedHandler) GetSummary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch solped summary", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Transition moves a purchase request to a new state.
func (h *SolpedHandler) Transition(c *gin.Context) {
	number := c.Param("number")

	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	state, ok := domain.ParseSolpedState(req.State)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown estado: " + req.State})
		return
	}

	if err := h.service.Transition(c.Request.Context(), number, state); err != nil {
		switch {
		case errors.Is(err, service.ErrSolpedNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update solped", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"solped_numero": number, "estado": state})
}

// Export streams one purchase request as a CSV download.
func (h *SolpedHandler) Export(c *gin.Context) {
	number := c.Param("number")

	lines, err := h.service.History(c.Request.Context(), domain.SolpedFilter{Number: number})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch solped", "details": err.Error()})
		return
	}
	if len(lines) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "solped not found: " + number})
		return
	}

	var buf bytes.Buffer
	if err := export.WriteSolpedCSV(&buf, lines); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write csv", "details": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", number))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

func linesTotal(lines []domain.SolpedLine) float64 {
	var total float64
	for _, line := range lines {
		total += line.TotalValue
	}
	return total
}
