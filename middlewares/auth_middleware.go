package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/littlelemon/reservations/utils"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization header missing"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseToken(tokenString)
		if err != nil || claims == nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid or expired token"))
			c.Abort()
			return
		}
		if claims.EmployeeID == 0 {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid employee id in token"))
			c.Abort()
			return
		}

		c.Set("employeeID", claims.EmployeeID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// OptionalAuth decodes a token when present but lets anonymous requests
// through. Customer-facing booking creation uses it: staff identity changes
// the initial booking status, anonymity does not block the call.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if claims, err := utils.ParseToken(tokenString); err == nil && claims.EmployeeID != 0 {
				c.Set("employeeID", claims.EmployeeID)
				c.Set("role", claims.Role)
			}
		}
		c.Next()
	}
}
