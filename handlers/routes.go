package handlers

import "github.com/gin-gonic/gin"

// Register mounts the API routes on router.
func Register(router *gin.Engine, h *StegoHandler) {
	router.Use(RequestID())

	api := router.Group("/api/v1")
	{
		api.GET("/health", h.HealthCheck)

		stego := api.Group("/stego")
		{
			stego.POST("/encode", h.EncodeSecret)
			stego.POST("/decode", h.DecodeSecret)
			stego.POST("/capacity", h.Capacity)
		}
	}
}
