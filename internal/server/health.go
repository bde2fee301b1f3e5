package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"creator-store-check/internal/model"
)

func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": model.ToolName + " " + model.ToolVersion + " is running",
	})
}
