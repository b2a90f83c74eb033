package router

import (
	"github.com/gin-gonic/gin"

	"repono/internal/config"
	"repono/internal/handler"
	"repono/internal/middleware"
	"repono/internal/port"
	"repono/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	accounts port.AccountRepository,
	authSvc service.AuthService,
	collectionH *handler.CollectionHandler,
	workH *handler.WorkHandler,
	sessionH *handler.SessionHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// All API routes are tenant-scoped; identity is optional and fails
	// closed to anonymous, so retrieval endpoints work without a session.
	tenant := r.Group("/api/v1/tenant/:tenant_id")
	tenant.Use(middleware.Tenant(accounts))
	tenant.Use(middleware.Identity(authSvc))

	tenant.GET("/collection", collectionH.Index)
	tenant.GET("/collection/:id", collectionH.Show)

	tenant.GET("/work", workH.Index)
	tenant.GET("/work/:id", workH.Show)

	users := tenant.Group("/users")
	users.POST("/login", sessionH.Login)
	users.POST("/refresh", sessionH.Refresh)
	users.POST("/current", sessionH.Current)
	users.DELETE("/log_out", sessionH.Logout)

	return r
}
