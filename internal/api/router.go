package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/tenderhub/portal-client/internal/api/docs"
	"github.com/tenderhub/portal-client/internal/api/handler"
	"github.com/tenderhub/portal-client/internal/api/middleware"
	"github.com/tenderhub/portal-client/internal/core/domain"
	"github.com/tenderhub/portal-client/internal/core/ports"
)

// Deps are the collaborators of the sandbox HTTP API.
type Deps struct {
	Accounts  ports.AccountService
	Catalog   ports.CatalogService
	Profiles  ports.ProfileRepository
	Ready     map[string]handler.Pinger
	JWTSecret string
	Logger    zerolog.Logger
	// Registry receives the HTTP metrics. A fresh one is used when nil.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)
	e.Validator = handler.NewValidator()

	reg := d.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "sandbox",
		Registerer: reg,
	}))

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{reg, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(d.Ready).Readiness)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Accounts)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	authMiddleware := middleware.Auth(d.JWTSecret)

	// --- Proposal catalog ---
	proposalHandler := handler.NewProposalHandler(d.Catalog)
	proposals := e.Group("/proposal", authMiddleware)
	proposals.POST("/list", proposalHandler.List)
	proposals.POST("/create", proposalHandler.Create, middleware.RBAC(domain.RoleAdmin, domain.RoleContractor))

	// --- Dashboard ---
	dashboardHandler := handler.NewDashboardHandler(d.Profiles)
	dashboard := e.Group("/dashboard", authMiddleware)
	dashboard.POST("/admin/createProfile", dashboardHandler.CreateAdminProfile, middleware.RBAC(domain.RoleAdmin))
	dashboard.POST("/contractor/createProfile", dashboardHandler.CreateContractorProfile, middleware.RBAC(domain.RoleContractor))

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
