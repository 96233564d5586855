package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /
func Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index", gin.H{})
}

// GET /health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
