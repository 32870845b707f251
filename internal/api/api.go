// internal/api/api.go
package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/repleniq/backend-go/internal/api/handlers"
	"github.com/repleniq/backend-go/internal/api/middleware"
	"github.com/repleniq/backend-go/internal/service"
)

func NewRouter(inventory *service.InventoryService, uploadDir string, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
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

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if inventory != nil {
		inventoryHandler := handlers.NewInventoryHandler(inventory, uploadDir)

		inventoryGroup := apiGroup.Group("/inventory")
		{
			inventoryGroup.POST("/upload", inventoryHandler.Upload)
			inventoryGroup.GET("/products", inventoryHandler.GetProducts)
			inventoryGroup.GET("/metrics", inventoryHandler.GetMetrics)
			inventoryGroup.GET("/low_stock", inventoryHandler.GetLowStock)
			inventoryGroup.GET("/overstock", inventoryHandler.GetOverstock)
		}

		apiGroup.GET("/suggestions", inventoryHandler.GetSuggestions)
		apiGroup.GET("/vendors", inventoryHandler.GetVendors)

		forecastGroup := apiGroup.Group("/forecast")
		{
			forecastGroup.GET("", inventoryHandler.GetForecast)
			forecastGroup.GET("/reorders", inventoryHandler.GetReorders)
		}

		apiGroup.POST("/orders/send", inventoryHandler.SendOrder)
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
