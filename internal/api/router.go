package api

import (
	"io/fs"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/piracy-detector/docs"
	"github.com/99minutos/piracy-detector/internal/api/handler"
	"github.com/99minutos/piracy-detector/internal/api/middleware"
	"github.com/99minutos/piracy-detector/internal/core/ports"
	"github.com/99minutos/piracy-detector/internal/infrastructure/http/handlers"
)

// Dependencies groups everything the router wires into handlers.
type Dependencies struct {
	AuthService ports.AuthService
	Tokens      ports.SessionTokens
	ScanService ports.ScanService
	// Readiness lists the external dependencies probed by /health/ready.
	Readiness    map[string]handlers.Checker
	Assets       fs.FS
	Log          zerolog.Logger
	CookieSecure bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// HTTP metrics live in a router-scoped registry; /metrics serves it
	// together with the default registry holding the domain metrics.
	httpMetrics := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "piracy",
		Registerer: httpMetrics,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(middleware.LoadSession(deps.Tokens, deps.AuthService))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.AuthService, deps.Tokens, deps.CookieSecure)
	scanHandler := handler.NewScanHandler(deps.ScanService)

	// --- Homepage ---
	if deps.Assets != nil {
		homeHandler := handler.NewHomeHandler(deps.Assets)
		e.GET("/", homeHandler.Index)
		e.StaticFS("/static", echo.MustSubFS(deps.Assets, "static"))
	}

	// --- Auth routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)
	e.GET("/check-session", authHandler.CheckSession)

	// --- Scan (session required) ---
	e.POST("/search", scanHandler.Search, middleware.RequireSession())

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewReadinessHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, httpMetrics},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
