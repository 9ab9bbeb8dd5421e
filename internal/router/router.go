package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/synapsehq/synapse-api/internal/handler"
	"github.com/synapsehq/synapse-api/internal/middleware"
	"github.com/synapsehq/synapse-api/pkg/logger"
	"github.com/synapsehq/synapse-api/pkg/metrics"
)

// Handler registers a group of routes under the API prefix.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	Mode      string
	RateLimit rate.Limit
	RateBurst int
	CORS      middleware.CORSConfig

	// RequireAuth protects every route except /health, /metrics, and
	// the auth endpoints.
	RequireAuth bool
}

type Router struct {
	engine *gin.Engine
}

func New(
	cfg Config,
	log *logger.Logger,
	m *metrics.Metrics,
	auth *middleware.AuthMiddleware,
	health *handler.HealthHandler,
	authH Handler,
	protected []Handler,
) *Router {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(log),
	)
	if m != nil {
		engine.Use(middleware.Metrics(m))
	}
	engine.Use(middleware.CORS(cfg.CORS))
	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  cfg.RateLimit,
			Burst: cfg.RateBurst,
		})
		engine.Use(limiter.RateLimit())
	}

	engine.GET("/health", health.Health)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api")
	authH.RegisterRoutes(api)

	group := api
	if cfg.RequireAuth {
		group = api.Group("")
		group.Use(auth.Authenticate())
	}
	for _, h := range protected {
		h.RegisterRoutes(group)
	}

	return &Router{engine: engine}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
