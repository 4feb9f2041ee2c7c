package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Success wraps a payload into the uniform {"data": ...} envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// Error writes the uniform {"error": ...} envelope with the given status.
func Error(c *gin.Context, httpStatus int, msg string) {
	c.JSON(httpStatus, gin.H{"error": msg})
}

// Invalid writes a 400 envelope carrying the structured field errors
// produced by the validation layer.
func Invalid(c *gin.Context, fields FieldErrors) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":  "invalid request",
		"fields": fields,
	})
}
