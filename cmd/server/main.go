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

	engagementapp "github.com/circlepe/backend/internal/application/engagement"
	identityapp "github.com/circlepe/backend/internal/application/identity"
	portfolioapp "github.com/circlepe/backend/internal/application/portfolio"
	reportapp "github.com/circlepe/backend/internal/application/report"
	"github.com/circlepe/backend/internal/infrastructure/auth"
	"github.com/circlepe/backend/internal/infrastructure/cache"
	"github.com/circlepe/backend/internal/infrastructure/config"
	"github.com/circlepe/backend/internal/infrastructure/logger"
	"github.com/circlepe/backend/internal/infrastructure/persistence"
	"github.com/circlepe/backend/internal/infrastructure/storage"
	"github.com/circlepe/backend/internal/interfaces/http/handler"
	"github.com/circlepe/backend/internal/interfaces/http/middleware"
	"github.com/circlepe/backend/internal/interfaces/http/router"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting accounts dashboard backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Initialize repositories
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	residentRepo := persistence.NewGormResidentRepository(db.DB)
	disbursementRepo := persistence.NewGormDisbursementRepository(db.DB)
	repaymentRepo := persistence.NewGormRepaymentRepository(db.DB)
	ticketRepo := persistence.NewGormTicketRepository(db.DB)
	noteRepo := persistence.NewGormNoteRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Query cache and token revocation back onto Redis when it is
	// reachable; otherwise fall back to in-process implementations.
	var queryCache cache.QueryCache
	var revocation auth.TokenRevocationList
	readyChecks := []handler.ReadyCheck{
		{Name: "database", Check: func(context.Context) error { return db.Ping() }},
	}

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		if cfg.IsProduction() {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		log.Warn("Redis unavailable, using in-memory cache and revocation list", zap.Error(err))
		queryCache = cache.NewInMemoryQueryCache()
		revocation = auth.NewInMemoryRevocationList()
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		queryCache = cache.NewRedisQueryCache(redisClient)
		revocation = auth.NewRedisRevocationList(redisClient)
		readyChecks = append(readyChecks, handler.ReadyCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}

	// Document storage: S3 when credentials or a custom endpoint are
	// configured, in-memory otherwise. Production always uses S3.
	var docStorage portfolioapp.DocumentStorage
	if cfg.IsProduction() || cfg.Storage.AccessKeyID != "" || cfg.Storage.Endpoint != "" {
		s3Storage, err := storage.NewS3DocumentStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize S3 document storage", zap.Error(err))
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			log.Warn("Could not verify document bucket", zap.String("bucket", s3Storage.Bucket()), zap.Error(err))
		}
		cancel()
		docStorage = s3Storage
		log.Info("S3 document storage initialized", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		log.Warn("Using in-memory document storage, uploads will not survive restarts")
		docStorage = storage.NewMemoryDocumentStorage(cfg.Storage.MaxUploadSize)
	}

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, revocation, identityapp.AuthServiceConfig{
		MaxLoginAttempts: cfg.JWT.MaxLoginAttempts,
		LockDuration:     cfg.JWT.LockDuration,
	}, log)
	userService := identityapp.NewUserService(userRepo, log)
	propertyService := portfolioapp.NewPropertyService(propertyRepo, residentRepo, queryCache, log)
	residentService := portfolioapp.NewResidentService(residentRepo, propertyRepo, queryCache, log)
	disbursementService := portfolioapp.NewDisbursementService(disbursementRepo, residentRepo, queryCache, log)
	repaymentService := portfolioapp.NewRepaymentService(repaymentRepo, residentRepo, queryCache, log)
	documentService := portfolioapp.NewDocumentService(docStorage, residentRepo, log)
	ticketService := engagementapp.NewTicketService(ticketRepo, residentRepo, log)
	noteService := engagementapp.NewNoteService(noteRepo, residentRepo, log)
	dashboardService := reportapp.NewDashboardService(residentRepo, repaymentRepo, queryCache, log)

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Report json/form tag names in validation errors
	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, order matters: request ID first so every later
	// stage can log it, recovery before request logging, CORS and body
	// limit before authentication.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		RevocationList: revocation,
		SkipPaths: []string{
			"/api/v1/health",
			"/api/v1/ready",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
		Logger: log,
	}))

	// Register routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewSystemHandler(version, readyChecks...)).
		Register(handler.NewAuthHandler(authService)).
		Register(handler.NewUserHandler(userService)).
		Register(handler.NewPropertyHandler(propertyService)).
		Register(handler.NewResidentHandler(residentService)).
		Register(handler.NewDisbursementHandler(disbursementService)).
		Register(handler.NewRepaymentHandler(repaymentService)).
		Register(handler.NewTicketHandler(ticketService)).
		Register(handler.NewNoteHandler(noteService)).
		Register(handler.NewDashboardHandler(dashboardService)).
		Register(handler.NewDocumentHandler(documentService, cfg.Storage.MaxUploadSize))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
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
