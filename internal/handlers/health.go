package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"inspection-report/internal/models"
)

// ServiceVersion is reported by every health check.
const ServiceVersion = 4

// HealthHandler godoc
// @Summary     Health check
// @Description Returns the health status and version of the storage service
// @Tags        health
// @Produce     json
// @Success     200 {object} models.HealthResponse
// @Router      /health [get]
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse())
}

func healthResponse() models.HealthResponse {
	return models.HealthResponse{Status: models.StatusOK, Version: ServiceVersion}
}
