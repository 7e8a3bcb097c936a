package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const apiVersion = "2.0.0"

// HandleHealth reports liveness. No auth on purpose: load balancers and
// probes hit this endpoint.
func (h *handlerImpl) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": apiVersion,
	})
}
