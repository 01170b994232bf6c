package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"collabhub_backend/internal/auth"
	"collabhub_backend/internal/config"
	"collabhub_backend/internal/database"
	"collabhub_backend/internal/email"
	"collabhub_backend/internal/handlers"
	"collabhub_backend/internal/logger"
	"collabhub_backend/internal/middleware"
	"collabhub_backend/internal/models"
	"collabhub_backend/internal/routes"
	"collabhub_backend/internal/services"
	"collabhub_backend/internal/validator"
	"collabhub_backend/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Application - собранное приложение: роутер, сервисы и websocket-хаб
type Application struct {
	Router   *gin.Engine
	Services *services.ServiceContainer
	Hub      *ws.WebSocketManager
	Tokens   *auth.TokenManager
}

func Run() {
	if err := config.LoadConfig(); err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	cfg := config.GetConfig()
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := database.Connect(cfg.Database, cfg.Server.Env)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	defer sqlDB.Close()
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(gormDB); err != nil {
			logger.Fatal("Failed to migrate database", "error", err)
		}
		logger.Info("Database schema migrated")
	}

	provider, err := NewEmailProvider(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize email provider", "error", err)
	}
	defer provider.Close()

	application := New(cfg, gormDB, provider)

	if err := seedFirstAdmin(gormDB, application.Services.AuthService, cfg.Admin); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go application.Hub.Run(ctx)

	server := &http.Server{
		Addr:    cfg.Addr(),
		Handler: application.Router,
	}

	go func() {
		logger.Info("Server starting", "addr", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	application.Services.NotificationService.Wait()
	logger.Info("Server stopped")
}

// New собирает сервисы, хэндлеры и роутер. Хаб не запускается:
// вызывающий отвечает за Hub.Run.
func New(cfg *config.Config, db *gorm.DB, provider email.Provider) *Application {
	v := validator.New()
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.TokenTTL())
	hub := ws.NewWebSocketManager()

	container := services.NewServiceContainer(services.Dependencies{
		Config:        cfg,
		Tokens:        tokens,
		EmailProvider: provider,
		Publisher:     hub,
		Validator:     v,
	})

	appHandlers := handlers.NewAppHandlers(container, v)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	mw := handlers.RouteMiddleware{
		Auth:      middleware.AuthMiddleware(tokens),
		AdminOnly: middleware.RequireRoles(models.UserRoleAdmin),
		RateLimit: limiter.Middleware(),
	}

	router := initializeGinRouter(cfg, db)
	routes.RegisterRoutes(router, appHandlers, ws.NewWebSocketHandler(hub), mw)
	if cfg.Server.Swagger {
		routes.RegisterSwagger(router)
	}

	return &Application{
		Router:   router,
		Services: container,
		Hub:      hub,
		Tokens:   tokens,
	}
}

// NewEmailProvider - SMTP при email.enabled, иначе письма только логируются
func NewEmailProvider(cfg *config.Config) (email.Provider, error) {
	templates, err := email.NewDefaultTemplateManager()
	if err != nil {
		return nil, err
	}

	if !cfg.Email.Enabled {
		logger.Warn("Email delivery disabled, notifications will be logged only")
		return email.NewLogProvider(logger.GetLogger(), templates), nil
	}

	provider := email.NewSMTPProvider(email.FromAppConfig(cfg.Email), templates)
	if err := provider.Validate(); err != nil {
		return nil, err
	}
	return provider, nil
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}

// seedFirstAdmin создает администратора из конфигурации, если в базе нет ни одного
func seedFirstAdmin(db *gorm.DB, authService services.AuthService, cfg config.AdminConfig) error {
	if cfg.Email == "" || cfg.Password == "" {
		logger.Warn("ADMIN_EMAIL or ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	var created bool
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		created, err = authService.SeedAdmin(tx, cfg)
		return err
	})
	if err != nil {
		return err
	}

	if created {
		logger.Info("Created first admin user", "email", cfg.Email)
	} else {
		logger.Info("Admin user already exists. Skipping creation.")
	}
	return nil
}
