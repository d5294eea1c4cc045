package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

const StaffContextKey = "staffID"

// AuthMiddleware requires the staff identity header set by the gateway.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		staffID := c.GetHeader("X-Staff-ID")
		if staffID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}
		c.Set(StaffContextKey, staffID)
		c.Next()
	}
}

func GetStaffID(c *gin.Context) (string, error) {
	if val, ok := c.Get(StaffContextKey); ok {
		if id, ok := val.(string); ok && id != "" {
			return id, nil
		}
	}
	return "", errors.New("staff ID not found in context")
}
