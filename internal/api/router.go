package api

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/goodsru/user-panel/internal/api/handler"
	apimw "github.com/goodsru/user-panel/internal/api/middleware"
	"github.com/goodsru/user-panel/internal/core/domain"
	"github.com/goodsru/user-panel/internal/core/service"
	"github.com/goodsru/user-panel/internal/infrastructure/config"
	"github.com/goodsru/user-panel/internal/infrastructure/db/postgres"
	redisdb "github.com/goodsru/user-panel/internal/infrastructure/db/redis"
	"github.com/goodsru/user-panel/internal/infrastructure/queue"
)

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the audit dispatcher, which the caller must Start.
func NewRouter(cfg *config.Config, db *sqlx.DB, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := handler.NewRenderer("web/templates/*.html")
	if err != nil {
		return nil, nil, fmt.Errorf("router: %w", err)
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("userpanel"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(db)
	auditRepo := postgres.NewAuditRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb)

	userService := service.NewUserService(userRepo, log)
	sessionService := service.NewSessionService(userService, sessionStore, cfg.SessionSecret, cfg.SessionTTL, log)
	auditService := service.NewAuditService(auditRepo, log)
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditService, log)

	e.Use(apimw.Session(sessionService))

	pageHandler := handler.NewPageHandler()
	authHandler := handler.NewAuthHandler(userService, sessionService, dispatcher, cfg.RegistrationOpen, !cfg.IsDevelopment())
	userHandler := handler.NewUserHandler(userService, dispatcher)
	auditHandler := handler.NewAuditHandler(auditService)

	admin := apimw.RequireRoles(domain.RoleAdmin)
	listing := apimw.RequireRoles(domain.RoleAdmin, domain.RoleMerchantManager, domain.RoleCategoryManager)

	// --- Pages ---
	e.GET("/", pageHandler.Home)
	e.GET("/not_found", pageHandler.NotFound)

	// --- Users ---
	e.GET("/users", userHandler.List, listing)
	e.GET("/users/:id", userHandler.EditForm, admin)
	e.GET("/users/:id/password", userHandler.PasswordForm, admin)
	e.GET("/users/:id/username", userHandler.UsernameForm, admin)
	e.POST("/users/update", userHandler.Update, admin)
	e.POST("/password/change", userHandler.ChangePassword, admin)
	e.POST("/username/change", userHandler.ChangeUsername, admin)

	// --- Audit trail ---
	e.GET("/audit", auditHandler.Trail, admin)

	// --- Auth ---
	if cfg.RegistrationOpen {
		e.GET("/auth/register", authHandler.RegisterForm)
		e.POST("/auth/register", authHandler.Register)
	} else {
		e.GET("/auth/register", authHandler.RegisterForm, admin)
		e.POST("/auth/register", authHandler.Register, admin)
	}
	e.GET("/auth/login", authHandler.LoginForm)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/logout", authHandler.Logout)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, dispatcher, nil
}
