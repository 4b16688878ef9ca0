package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobdeck/jobdeck/internal/dtos"
)

// Every success response uses the same envelope; failures are written by the
// error middleware only.

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

func respondWithMessage(c *gin.Context, data any, message string) {
	body := gin.H{"success": true, "data": data}
	if message != "" {
		body["message"] = message
	}
	c.JSON(http.StatusOK, body)
}

func respondList(c *gin.Context, data any, pagination *dtos.Pagination) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data, "pagination": pagination})
}
