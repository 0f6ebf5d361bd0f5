package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	Service string
	Version string
	Ping    func(ctx context.Context) error
}

func (h *HealthHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/health", h.Health)
}

// Health always answers 200 so it can serve as a liveness probe; the db
// field reports whether the store answered a ping.
func (h *HealthHandler) Health(c *gin.Context) {
	db := "up"
	if h.Ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.Ping(ctx); err != nil {
			db = "down"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   h.Service,
		"version":   h.Version,
		"db":        db,
	})
}
