package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/SscSPs/ledger_engine/cmd/docs"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
)

// Option customizes route registration.
type Option func(*routeOptions)

type routeOptions struct {
	today       func() dto.Date
	middlewares []gin.HandlerFunc
}

// WithToday overrides the date used when a report is requested without asOf.
func WithToday(today func() time.Time) Option {
	return func(o *routeOptions) {
		o.today = func() dto.Date { return dto.NewDate(today()) }
	}
}

// WithAPIMiddleware appends middleware to the /api/v1 group, after authentication.
func WithAPIMiddleware(mw ...gin.HandlerFunc) Option {
	return func(o *routeOptions) {
		o.middlewares = append(o.middlewares, mw...)
	}
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	opts ...Option,
) {
	RegisterValidators()

	o := routeOptions{today: func() dto.Date { return dto.NewDate(time.Now().UTC()) }}
	for _, opt := range opts {
		opt(&o)
	}

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, o)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	o routeOptions,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))
	v1.Use(o.middlewares...)

	registerCurrencyRoutes(v1, services.Currency)
	registerAccountRoutes(v1, services, o.today)
	registerFiscalRoutes(v1, services.Fiscal)
	registerReferenceRoutes(v1, services.Reference, services.Reporting)
	registerLedgerRoutes(v1, services.Ledger)
	registerInvoiceRoutes(v1, services.Reconciliation)
	registerReportingRoutes(v1, services, o.today)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
