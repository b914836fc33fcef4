package utils

import (
	"github.com/gin-gonic/gin"

	"clipinsight/internal/apperr"
)

func Success(c *gin.Context, data any) {
	c.JSON(200, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{
		"success": false,
		"error":   msg,
	})
}

// Fail maps a domain error to its HTTP status and writes the standard
// error envelope.
func Fail(c *gin.Context, err error) {
	Error(c, apperr.HTTPStatus(err), err.Error())
}
