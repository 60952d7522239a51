package handlers

import (
	"net/http"
	"time"

	"github.com/devsparksuporte-web/PotencialCameras/config"
	"github.com/devsparksuporte-web/PotencialCameras/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(cfg config.ServerConfig, cameraHandler *CameraHandler, dashboardHandler *DashboardHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())

	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/dashboard", dashboardHandler.GetDashboard)

		cameras := api.Group("/cameras")
		{
			cameras.GET("", cameraHandler.GetCameras)
			cameras.POST("", cameraHandler.CreateCamera)
			cameras.GET("/export", dashboardHandler.ExportCameras)
			cameras.GET("/:id", cameraHandler.GetCamera)
			cameras.PUT("/:id", cameraHandler.UpdateCamera)
			cameras.DELETE("/:id", cameraHandler.DeleteCamera)
		}
	}

	return router
}

func corsConfig(allowed []string) cors.Config {
	origins := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		origins[o] = true
	}

	return cors.Config{
		AllowOriginFunc: func(origin string) bool {
			// requests without an origin (curl, server to server)
			if origin == "" {
				return true
			}
			return origins["*"] || origins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}
