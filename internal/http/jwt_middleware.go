package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/petermanchester1987/actor-connect/internal/service"
)

const authUserIDKey = "auth_user_id"

// AuthRequired valida el token de sesión del header x-auth-token y
// guarda la identidad en el contexto. La ausencia del token y un token
// inválido o vencido son rechazos distintos.
func AuthRequired(jwtSvc *service.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if jwtSvc == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
			c.Abort()
			return
		}

		token := strings.TrimSpace(c.GetHeader("x-auth-token"))
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorisation denied"})
			c.Abort()
			return
		}

		claims, err := jwtSvc.Parse(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
			c.Abort()
			return
		}

		c.Set(authUserIDKey, claims.UserID)
		c.Next()
	}
}

// GetAuthUserID obtiene la identidad verificada desde el contexto.
func GetAuthUserID(c *gin.Context) (string, bool) {
	val, ok := c.Get(authUserIDKey)
	if !ok {
		return "", false
	}
	id, ok := val.(string)
	return id, ok
}

// RateLimited corta register y login cuando el cliente excede la
// ventana permitida. Con limiter nil no limita nada.
func RateLimited(limiter service.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter != nil && !limiter.Allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"msg": "Too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
