package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	*BaseHandler
}

func NewHealthHandler(base *BaseHandler) *HealthHandler {
	return &HealthHandler{BaseHandler: base}
}

func (h *HealthHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
}

// Health reports liveness and database reachability.
func (h *HealthHandler) Health(c *gin.Context) {
	db := h.GetDB(c)

	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "degraded",
			"database": "unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": "ok",
	})
}
