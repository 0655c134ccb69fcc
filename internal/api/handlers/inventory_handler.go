package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jacengineering/inventario/backend-go/internal/domain"
	"github.com/jacengineering/inventario/backend-go/internal/export"
	"github.com/jacengineering/inventario/backend-go/internal/service"
)

type InventoryHandler struct {
	service *service.InventoryService
}

func NewInventoryHandler(service *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

func (h *InventoryHandler) parseFilter(c *gin.Context) domain.AnalysisFilter {
	filter := domain.AnalysisFilter{
		Page:     1,
		PageSize: 50,
	}

	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && page > 0 {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("page_size", "50")); err == nil && size > 0 {
		filter.PageSize = size
	}

	if estado := strings.TrimSpace(c.Query("estado")); estado != "" {
		filter.Status = estado
	}
	if centro := strings.TrimSpace(c.Query("centro")); centro != "" {
		filter.Center = centro
	}
	if criticidad := strings.TrimSpace(c.Query("criticidad")); criticidad != "" {
		filter.Criticality = criticidad
	}
	if buscar := strings.TrimSpace(c.Query("buscar")); buscar != "" {
		filter.Search = buscar
	}

	return filter
}

// GetAnalysis returns the requested page of the analyzed table, most urgent
// lines first.
func (h *InventoryHandler) GetAnalysis(c *gin.Context) {
	filter := h.parseFilter(c)

	if filter.Status != "" {
		if _, ok := domain.ParseStatus(filter.Status); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown estado: " + filter.Status})
			return
		}
	}

	result, err := h.service.Analysis(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to analyze inventory", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetSummary returns the aggregate metrics for the dashboard header widgets.
func (h *InventoryHandler) GetSummary(c *gin.Context) {
	filter := h.parseFilter(c)
	metrics, err := h.service.Summary(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute summary", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, metrics)
}

// GetRecommendations returns the lines with a positive purchase quantity.
func (h *InventoryHandler) GetRecommendations(c *gin.Context) {
	recommended, err := h.service.Recommendations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute recommendations", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": recommended,
		"total": len(recommended),
	})
}

// Export streams the full filtered table as a CSV or XLSX download.
func (h *InventoryHandler) Export(c *gin.Context) {
	filter := h.parseFilter(c)
	records, _, err := h.service.FullTable(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build export", "details": err.Error()})
		return
	}

	stamp := time.Now().Format("20060102_150405")
	format := strings.ToLower(c.DefaultQuery("format", "csv"))

	var buf bytes.Buffer
	switch format {
	case "csv":
		if err := export.WriteAnalysisCSV(&buf, records); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write csv", "details": err.Error()})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=analisis_inventario_%s.csv", stamp))
		c.Data(http.StatusOK, "text/csv", buf.Bytes())
	case "xlsx":
		if err := export.WriteAnalysisXLSX(&buf, records); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write xlsx", "details": err.Error()})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=analisis_inventario_%s.xlsx", stamp))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported format: " + format})
	}
}
