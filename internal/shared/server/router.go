package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "doclearn-backend/internal/auth"
	"doclearn-backend/internal/documents"
	"doclearn-backend/internal/generation"
	"doclearn-backend/internal/quizzes"
	"doclearn-backend/internal/sessions"
	"doclearn-backend/internal/shared/config"
	"doclearn-backend/internal/shared/metrics"
	"doclearn-backend/internal/shared/server/middleware"
	"doclearn-backend/internal/shared/server/respond"
	"doclearn-backend/internal/uploads"
	"doclearn-backend/internal/users"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config            config.Config
	Sessions          *sessions.Service
	DocumentHandler   *documents.Handler
	QuizHandler       *quizzes.Handler
	GenerationHandler *generation.Handler
	UserHandler       *users.Handler
	GoogleAuth        *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Registered before the middleware chain so scrapes need no identity.
	r.GET("/metrics", metrics.Handler())

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Sessions),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"UPLOAD":   {Rate: 5, Burst: 20},
				"GENERATE": {Rate: 1, Burst: 5},
			},
			GroupFor: rateLimitGroup,
		}),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(api)
	}
	if deps.QuizHandler != nil {
		deps.QuizHandler.RegisterRoutes(api)
	}
	if deps.GenerationHandler != nil {
		deps.GenerationHandler.RegisterRoutes(api)
	}
	uploads.RegisterRoutes(api)

	return r
}

// rateLimitGroup buckets the write-heavy endpoints; everything else is
// unlimited.
func rateLimitGroup(c *gin.Context) string {
	if c.Request.Method != http.MethodPost {
		return ""
	}
	path := c.Request.URL.Path
	switch {
	case strings.HasSuffix(path, "/generate"):
		return "GENERATE"
	case path == "/api/v1/documents":
		return "UPLOAD"
	}
	return ""
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
