package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	identityapp "github.com/orderdesk/backend/internal/application/identity"
	orderapp "github.com/orderdesk/backend/internal/application/order"
	"github.com/orderdesk/backend/internal/infrastructure/auth"
	"github.com/orderdesk/backend/internal/infrastructure/commerce"
	"github.com/orderdesk/backend/internal/infrastructure/config"
	"github.com/orderdesk/backend/internal/infrastructure/extraction"
	"github.com/orderdesk/backend/internal/infrastructure/logger"
	"github.com/orderdesk/backend/internal/infrastructure/persistence"
	"github.com/orderdesk/backend/internal/infrastructure/storage"
	"github.com/orderdesk/backend/internal/interfaces/http/handler"
	"github.com/orderdesk/backend/internal/interfaces/http/middleware"
	"github.com/orderdesk/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting order intake backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	// Infrastructure services
	jwtService := auth.NewJWTService(cfg.JWT)

	uploads, err := storage.NewLocalUploadStore(cfg.Upload.Dir, log)
	if err != nil {
		log.Fatal("Failed to initialize upload store", zap.Error(err))
	}

	extractorClient := extraction.NewClient(extraction.Config{
		BaseURL: cfg.Extractor.BaseURL,
		APIKey:  cfg.Extractor.APIKey,
		Model:   cfg.Extractor.Model,
		Timeout: cfg.Extractor.Timeout,
	}, log)

	commerceClient := commerce.NewClient(0, log)

	// Application services
	authService := identityapp.NewAuthService(userRepo, jwtService, identityapp.AuthServiceConfig{
		MaxLoginAttempts: cfg.Auth.MaxLoginAttempts,
		LockDuration:     cfg.Auth.LockDuration,
	}, log)

	orderService := orderapp.NewService(orderRepo, userRepo, companyRepo, extractorClient, commerceClient, uploads, log)

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	orderHandler := handler.NewOrderHandler(orderService, cfg.Upload.MaxSize)
	customerHandler := handler.NewCustomerHandler(orderService)
	systemHandler := handler.NewSystemHandler(db)

	// Gin engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Liveness endpoints outside API versioning
	engine.GET("/", systemHandler.Root)
	engine.GET("/health", systemHandler.Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/health",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
		Logger: log,
	}))

	loginLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)

	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/login", middleware.RateLimit(loginLimiter), authHandler.Login)
	authRoutes.POST("/refresh", authHandler.RefreshToken)
	authRoutes.GET("/me", authHandler.Me)

	orderRoutes := router.NewDomainGroup("orders", "/orders")
	orderRoutes.POST("/extract", orderHandler.Extract)
	orderRoutes.GET("", orderHandler.List)
	orderRoutes.GET("/:id", orderHandler.Get)
	orderRoutes.POST("/:id/verify", orderHandler.Verify)

	customerRoutes := router.NewDomainGroup("customers", "/customers")
	customerRoutes.GET("", customerHandler.List)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/health", systemHandler.Health)
	systemRoutes.POST("/uploads/cleanup", orderHandler.CleanupUploads)

	r.Register(authRoutes).
		Register(orderRoutes).
		Register(customerRoutes).
		Register(systemRoutes)

	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
