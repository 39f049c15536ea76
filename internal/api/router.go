package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/reyvanevan/saas-admin-gateway/docs"
	"github.com/reyvanevan/saas-admin-gateway/internal/api/handler"
	"github.com/reyvanevan/saas-admin-gateway/internal/api/middleware"
	"github.com/reyvanevan/saas-admin-gateway/internal/core/ports"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	manager ports.SessionManager,
	db *mongo.Database,
	rdb *redis.Client,
	sessionCookie string,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("admin_gateway"))

	// --- Dependencies ---
	sessionMW := middleware.Session(manager, sessionCookie)
	guard := middleware.Guard("/sign-in")
	authHandler := handler.NewAuthHandler()
	navHandler := handler.NewNavigationHandler()
	shellHandler := handler.NewShellHandler()

	// --- Shell entry points ---
	e.GET("/", shellHandler.Root, sessionMW)
	e.GET("/sign-in", shellHandler.SignIn, sessionMW, middleware.RedirectAuthenticated("/"))

	// --- Auth routes (session-bound, no guard: login must be reachable) ---
	auth := e.Group("/auth", sessionMW)
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.POST("/refresh", authHandler.Refresh)

	// --- Protected subtree ---
	app := e.Group("", sessionMW, guard)
	app.GET("/dashboard", shellHandler.Dashboard)
	app.GET("/navigation", navHandler.Navigation)
	app.GET("/auth/me", authHandler.Me)
	app.POST("/auth/change-password", authHandler.ChangePassword)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
