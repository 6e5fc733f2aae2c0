package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/offerhub/offers-api/docs"
	"github.com/offerhub/offers-api/internal/api/handler"
	"github.com/offerhub/offers-api/internal/api/middleware"
	"github.com/offerhub/offers-api/internal/core/ports"
)

// RouterConfig carries everything NewRouter wires into the routes.
type RouterConfig struct {
	Auth     ports.AuthService
	Verifier ports.TokenVerifier
	Offers   ports.OfferService

	Mongo handler.MongoPinger
	Redis handler.RedisPinger // nil when the offer cache is disabled

	CORSOrigin string
	Logger     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// HTTP metrics go to a registry owned by this router so that several
	// routers (tests) can coexist in one process.
	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{cfg.CORSOrigin},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.RequestLogger(cfg.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: reg,
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(cfg.Auth)
	offerHandler := handler.NewOfferHandler(cfg.Offers, cfg.Logger)
	healthHandler := handler.NewHealthHandler(cfg.Mongo, cfg.Redis)
	authenticate := middleware.Authenticate(cfg.Verifier)

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/admin/login", authHandler.AdminLogin)

	// --- Admin routes ---
	admin := api.Group("/admin", authenticate, middleware.RequireAdmin())
	admin.GET("/offers", offerHandler.List)
	admin.POST("/addOffers", offerHandler.Create)
	admin.PUT("/updateOffers/:id", offerHandler.Update)
	admin.DELETE("/deleteOffers/:id", offerHandler.Delete)

	// --- User routes ---
	user := api.Group("/user", authenticate)
	user.GET("/getOffers", offerHandler.List)
	user.POST("/buyOffers", offerHandler.Buy)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	// --- Operational ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, reg},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
