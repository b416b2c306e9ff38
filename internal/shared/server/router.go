package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mitrahire-backend/internal/shared/config"
	"mitrahire-backend/internal/shared/server/middleware"
	"mitrahire-backend/internal/shared/server/respond"
)

// RouteRegistrar attaches a handler's routes to the API group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps carries the handlers wired by bootstrap.
type RouterDeps struct {
	Config     config.Config
	Registrars []RouteRegistrar
}

// llmRoutes are the model-backed endpoints, throttled harder than CRUD.
var llmRoutes = map[string]struct{}{
	"/api/generatemockquestions": {},
	"/api/interviewfeedback":     {},
	"/api/resumeshortlist":       {},
	"/api/generate-summary":      {},
	"/api/chat":                  {},
	"/api/speech":                {},
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"default": {Rate: 20, Burst: 40},
				"llm":     {Rate: 1, Burst: 5},
			},
			DefaultGroup: "default",
			GroupFor: func(c *gin.Context) string {
				if _, ok := llmRoutes[strings.TrimSuffix(c.Request.URL.Path, "/")]; ok {
					return "llm"
				}
				return ""
			},
		}),
		middleware.Auth(),
	)

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	for _, registrar := range deps.Registrars {
		if registrar != nil {
			registrar.RegisterRoutes(api)
		}
	}

	return r
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
