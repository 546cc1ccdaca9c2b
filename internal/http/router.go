package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/petermanchester1987/actor-connect/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	limiter service.RateLimiter,
	userH *UserHandler,
	profileH *ProfileHandler,
	postH *PostHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	authRequired := AuthRequired(jwtSvc)

	users := r.Group("/api/users")
	users.POST("", RateLimited(limiter), userH.Register)

	auth := r.Group("/api/auth")
	auth.POST("", RateLimited(limiter), userH.Login)
	auth.GET("", authRequired, userH.GetCurrent)

	profile := r.Group("/api/profile")
	profile.GET("", profileH.List)
	profile.GET("/user/:user_id", profileH.GetByUserID)
	profile.GET("/me", authRequired, profileH.Me)
	profile.POST("", authRequired, profileH.Upsert)
	profile.DELETE("", authRequired, profileH.DeleteAccount)
	profile.PUT("/experience", authRequired, profileH.AddExperience)
	profile.DELETE("/experience/:exp_id", authRequired, profileH.RemoveExperience)
	profile.PUT("/education", authRequired, profileH.AddEducation)
	profile.DELETE("/education/:edu_id", authRequired, profileH.RemoveEducation)

	posts := r.Group("/api/posts", authRequired)
	posts.POST("", postH.Create)
	posts.GET("", postH.List)
	posts.GET("/:id", postH.Get)
	posts.DELETE("/:id", postH.Delete)
	posts.PUT("/like/:id", postH.Like)
	posts.PUT("/unlike/:id", postH.Unlike)
	posts.POST("/comment/:id", postH.AddComment)
	posts.DELETE("/comment/:id/:comment_id", postH.RemoveComment)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
