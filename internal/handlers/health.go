package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) HealthCheck(ctx *gin.Context) {
	status := "ok"
	code := http.StatusOK

	if sqlDB, err := h.store.DB().DB(); err != nil || sqlDB.PingContext(ctx.Request.Context()) != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	ctx.JSON(code, gin.H{
		"status":    status,
		"message":   "Stitchbook is running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
