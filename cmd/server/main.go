package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	bootstrapapp "github.com/qrmenu/backend/internal/application/bootstrap"
	identityapp "github.com/qrmenu/backend/internal/application/identity"
	menuapp "github.com/qrmenu/backend/internal/application/menu"
	"github.com/qrmenu/backend/internal/infrastructure/auth"
	"github.com/qrmenu/backend/internal/infrastructure/config"
	"github.com/qrmenu/backend/internal/infrastructure/logger"
	"github.com/qrmenu/backend/internal/infrastructure/persistence"
	"github.com/qrmenu/backend/internal/infrastructure/printing"
	"github.com/qrmenu/backend/internal/infrastructure/qrcode"
	"github.com/qrmenu/backend/internal/infrastructure/storage"
	"github.com/qrmenu/backend/internal/infrastructure/telemetry"
	"github.com/qrmenu/backend/internal/interfaces/http/handler"
	"github.com/qrmenu/backend/internal/interfaces/http/middleware"
	"github.com/qrmenu/backend/internal/interfaces/http/router"
	"go.uber.org/zap"

	_ "github.com/qrmenu/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			QR Menu API
//	@version		1.0
//	@description	Multi-tenant restaurant menu service: admin CRUD for categories and items, public menus and QR codes.

//	@BasePath	/api

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// A missing .env file is normal outside local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	baseLog, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	// Telemetry: profiler first so span profiles can attach to it
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfigFrom(cfg.Profiling, cfg.Telemetry.ServiceName), baseLog)
	if err != nil {
		baseLog.Warn("Failed to start profiler, continuing without profiling", zap.Error(err))
	}

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.ConfigFrom(cfg.Telemetry), baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	if profiler != nil && profiler.IsEnabled() {
		if err := tracerProvider.EnableSpanProfiles(); err != nil {
			baseLog.Warn("Failed to enable span profiles", zap.Error(err))
		}
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfigFrom(cfg.Telemetry), baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize meter provider", zap.Error(err))
	}

	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfigFrom(cfg.Telemetry), baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log := telemetry.Bridge(baseLog, loggerProvider, cfg.Telemetry.ServiceName, baseLog.Level())
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting QR menu backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", db.Driver()))

	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfigFrom(cfg.Telemetry, db.Driver()), log)
	if err := dbTracing.Register(db.DB); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(log); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
		log.Info("Database migrations applied")
	}

	// Repositories
	businessRepo := persistence.NewGormBusinessRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	menuItemRepo := persistence.NewGormMenuItemRepository(db.DB)

	// Default business, admin account and demo data
	defaultSlug := cfg.Bootstrap.BusinessSlug
	if cfg.Bootstrap.Enabled {
		seeder := bootstrapapp.NewService(businessRepo, userRepo, categoryRepo, menuItemRepo, log)
		result, err := seeder.EnsureDefaultBusiness(ctx, bootstrapapp.Config{
			BusinessName:  cfg.Bootstrap.BusinessName,
			BusinessSlug:  cfg.Bootstrap.BusinessSlug,
			AdminUsername: cfg.Bootstrap.AdminUsername,
			AdminPassword: cfg.Bootstrap.AdminPassword,
		})
		if err != nil {
			log.Fatal("Failed to bootstrap default business", zap.Error(err))
		}
		defaultSlug = result.Business.Slug
		if cfg.Bootstrap.DemoData {
			if _, err := seeder.SeedDemoData(ctx, result.Business.ID); err != nil {
				log.Error("Failed to seed demo data", zap.Error(err))
			}
		}
	}

	// Image storage
	images, err := storage.New(ctx, &cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize image storage", zap.Error(err))
	}

	// Token revocation: Redis when configured, otherwise process memory
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Host != "" {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			_ = redisBlacklist.Close()
		}()
		blacklist = redisBlacklist
		log.Info("Token blacklist backed by Redis")
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		log.Info("Token blacklist kept in memory; revocations are lost on restart")
	}

	// Poster printing
	var posters menuapp.PosterRenderer
	if cfg.Printing.Enabled {
		pdf, err := printing.NewChromedpRenderer(&printing.ChromedpConfig{
			DefaultTimeout: cfg.Printing.Timeout,
			RemoteURL:      cfg.Printing.RemoteURL,
			NoSandbox:      cfg.Printing.NoSandbox,
			Logger:         log,
		})
		if err != nil {
			log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
		}
		posterRenderer := printing.NewPosterRenderer(pdf)
		defer func() {
			_ = posterRenderer.Close()
		}()
		posters = posterRenderer
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, businessRepo, jwtService, blacklist, log)
	categoryService := menuapp.NewCategoryService(categoryRepo, images, menuapp.CategoryImagePolicy(cfg.Storage.CategoryMaxSize), log)
	menuItemService := menuapp.NewMenuItemService(menuItemRepo, categoryRepo, images, menuapp.MenuItemImagePolicy(cfg.Storage.ItemMaxSize), log)
	publicMenuService := menuapp.NewPublicMenuService(businessRepo, categoryRepo, menuItemRepo, images, defaultSlug, log)
	qrService := menuapp.NewQRService(qrcode.NewGenerator(cfg.QR.Size), cfg.QR.PublicMenuURL, posters, businessRepo, log)

	if meterProvider.IsEnabled() {
		menuMetrics, err := telemetry.NewMenuMetrics(meterProvider.Meter("qrmenu"))
		if err != nil {
			log.Warn("Menu metrics disabled", zap.Error(err))
		} else {
			categoryService.SetMetrics(menuMetrics)
			menuItemService.SetMetrics(menuMetrics)
			publicMenuService.SetMetrics(menuMetrics)
			qrService.SetMetrics(menuMetrics)
		}

		poolMetrics, err := telemetry.RegisterPoolMetrics(meterProvider.Meter("qrmenu"), func() (telemetry.PoolStats, error) {
			s, err := db.Stats()
			return telemetry.PoolStats{MaxOpen: s.MaxOpenConnections, InUse: s.InUse, Idle: s.Idle, WaitCount: s.WaitCount}, err
		}, log)
		if err != nil {
			log.Warn("Database pool metrics disabled", zap.Error(err))
		} else {
			defer func() { _ = poolMetrics.Unregister() }()
		}
	}

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order:
	// 1. RequestID - generate/propagate request ID
	// 2. Recovery - catch panics
	// 3. Logger - request log with request_id
	// 4. Tracing - otelgin span, then request attributes
	// 5. Metrics - HTTP RED metrics
	// 6. Security headers, CORS, body limit
	tracingCfg := middleware.DefaultTracingConfig()
	tracingCfg.ServiceName = cfg.Telemetry.ServiceName
	tracingCfg.Enabled = tracerProvider.IsEnabled()

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.TracingWithConfig(tracingCfg))
	engine.Use(middleware.TraceAttributes())
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{MeterProvider: meterProvider, Logger: log}))
	engine.Use(middleware.Secure())

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	healthHandler := handler.NewHealthHandler(db, version)
	engine.GET("/health", healthHandler.Check)

	if local, ok := images.(*storage.LocalImageStore); ok {
		engine.Static(local.URLPrefix(), local.Root())
	}

	swaggerCfg := middleware.SwaggerConfig{Enabled: cfg.Swagger.Enabled, AllowedIPs: cfg.Swagger.AllowedIPs}
	engine.GET("/swagger/*any", middleware.SwaggerProtection(swaggerCfg), ginSwagger.WrapHandler(swaggerFiles.Handler))

	profilingCfg := middleware.DefaultProfilingConfig()
	profilingCfg.Enabled = profiler != nil && profiler.IsEnabled()

	guards := router.Guards{
		Authenticated: []gin.HandlerFunc{
			middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
				JWTService:     jwtService,
				TokenBlacklist: blacklist,
				Logger:         log,
			}),
			middleware.ProfilingWithConfig(profilingCfg),
		},
	}
	if cfg.HTTP.AuthRateLimitEnabled {
		loginLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		defer loginLimiter.Stop()
		guards.LoginLimiter = middleware.RateLimit(loginLimiter)
		log.Info("Login rate limiting enabled",
			zap.Int("requests", cfg.HTTP.AuthRateLimitRequests),
			zap.Duration("window", cfg.HTTP.AuthRateLimitWindow),
		)
	}

	routes := router.MenuRoutes(router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Category: handler.NewCategoryHandler(categoryService, cfg.HTTP.PublicBaseURL),
		MenuItem: handler.NewMenuItemHandler(menuItemService, cfg.HTTP.PublicBaseURL),
		Public:   handler.NewPublicHandler(publicMenuService, cfg.HTTP.PublicBaseURL),
		QR:       handler.NewQRHandler(qrService),
		Health:   healthHandler,
	}, guards)
	router.NewRouter(engine).Register(routes...).Setup()

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	shutdownTelemetry(shutdownCtx, log, tracerProvider, meterProvider, loggerProvider, profiler)
	log.Info("Server exited gracefully")
}

// shutdownTelemetry flushes exporters; the logger provider goes last so the
// preceding log lines are still exported
func shutdownTelemetry(
	ctx context.Context,
	log *zap.Logger,
	tp *telemetry.TracerProvider,
	mp *telemetry.MeterProvider,
	lp *telemetry.LoggerProvider,
	profiler *telemetry.Profiler,
) {
	if err := tp.Shutdown(ctx); err != nil {
		log.Warn("Tracer provider shutdown failed", zap.Error(err))
	}
	if err := mp.Shutdown(ctx); err != nil {
		log.Warn("Meter provider shutdown failed", zap.Error(err))
	}
	if profiler != nil {
		if err := profiler.Stop(); err != nil {
			log.Warn("Profiler shutdown failed", zap.Error(err))
		}
	}
	if err := lp.Shutdown(ctx); err != nil {
		log.Warn("Logger provider shutdown failed", zap.Error(err))
	}
}
