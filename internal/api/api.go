// backend-go/internal/api/api.go
package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jacengineering/inventario/backend-go/internal/api/handlers"
	"github.com/jacengineering/inventario/backend-go/internal/api/middleware"
	"github.com/jacengineering/inventario/backend-go/internal/service"
)

type Services struct {
	InventoryService *service.InventoryService
	SolpedService    *service.SolpedService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.InventoryService != nil {
			inventoryHandler := handlers.NewInventoryHandler(services.InventoryService)
			inventoryGroup := apiGroup.Group("/inventario")
			{
				inventoryGroup.GET("/analisis", inventoryHandler.GetAnalysis)
				inventoryGroup.GET("/resumen", inventoryHandler.GetSummary)
				inventoryGroup.GET("/recomendaciones", inventoryHandler.GetRecommendations)
				inventoryGroup.GET("/export", inventoryHandler.Export)
			}
		}

		if services.SolpedService != nil {
			solpedHandler := handlers.NewSolpedHandler(services.SolpedService)
			solpedGroup := apiGroup.Group("/solped")
			{
				solpedGroup.POST("", solpedHandler.Generate)
				solpedGroup.GET("", solpedHandler.History)
				solpedGroup.GET("/resumen", solpedHandler.GetSummary)
				solpedGroup.PATCH("/:number/estado", solpedHandler.Transition)
				solpedGroup.GET("/:number/export", solpedHandler.Export)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
