package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"charity-merch-api/internal/dto"
)

func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := IdentityFrom(c)
		if !ok || !ident.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.Response{
				Success: false,
				Message: "admin privileges required",
			})
			return
		}
		c.Next()
	}
}
