package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/tracking-aggregator/docs"
	"github.com/99minutos/tracking-aggregator/internal/api/handler"
	"github.com/99minutos/tracking-aggregator/internal/api/middleware"
	"github.com/99minutos/tracking-aggregator/internal/core/ports"
)

const metricsSubsystem = "tracking_http"

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Tracking   ports.TrackingService
	Couriers   ports.CourierService
	Lookups    ports.LookupRepository
	Dispatcher handler.RefreshDispatcher
	Checks     map[string]handler.DependencyCheck

	// JWTSecret enables the operator routes when non-empty.
	JWTSecret string
	// Registry receives the HTTP metrics; nil means the default registry.
	Registry *prometheus.Registry
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
//
// @title                       Tracking Aggregator API
// @version                     1.0
// @description                 Unified shipment tracking over the TrackingMore provider.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  metricsSubsystem,
		Registerer: registerer,
	}))

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(deps.Checks).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Public API ---
	trackingHandler := handler.NewTrackingHandler(deps.Tracking)
	courierHandler := handler.NewCourierHandler(deps.Couriers)

	v1 := e.Group("/v1")
	v1.POST("/track", trackingHandler.Track)
	v1.GET("/track/:tracking_number", trackingHandler.Get)
	v1.GET("/couriers", courierHandler.List)
	if deps.Lookups != nil {
		v1.GET("/lookups/:tracking_number", handler.NewLookupHandler(deps.Lookups).Latest)
	}

	// --- Operator API ---
	if deps.JWTSecret == "" {
		deps.Log.Warn().Msg("JWT_SECRET not set, operator routes disabled")
		return e
	}

	ops := v1.Group("", middleware.Auth(deps.JWTSecret), middleware.RBAC(middleware.RoleOperator))
	ops.DELETE("/couriers/cache", courierHandler.InvalidateCache)
	if deps.Dispatcher != nil {
		ops.POST("/tracking/refresh", handler.NewRefreshHandler(deps.Dispatcher, deps.Log).Refresh)
	}

	return e
}
