package app

import (
	"context"
	"log"
	"medblueprint_backend/internal/config"
	"medblueprint_backend/internal/controller"
	"medblueprint_backend/internal/repository"
	"medblueprint_backend/internal/service"
	"medblueprint_backend/pkg/configwatcher"
	"medblueprint_backend/pkg/database"
	"medblueprint_backend/pkg/logger"
	"medblueprint_backend/pkg/monitoring"
	"medblueprint_backend/pkg/security"
	"medblueprint_backend/pkg/tracing"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	tracerProvider *sdktrace.TracerProvider
}

type services struct {
	ai        *service.AIService
	blueprint *service.BlueprintService
}

type controllers struct {
	session   *controller.SessionController
	blueprint *controller.BlueprintController
	health    *controller.HealthController
}

func (a *App) initServices(repo *repository.BlueprintRepository, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}
	s.ai = service.NewAIService(cfg.AI)
	s.blueprint = service.NewBlueprintService(s.ai, repo, rdb)
	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		session:   controller.NewSessionController(a.Config),
		blueprint: controller.NewBlueprintController(s.blueprint),
		health:    controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 300
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(serverMode(cfg))

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repo := repository.NewBlueprintRepository(db)
	services := app.initServices(repo, cfg, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("medblueprint", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.registerRoutes(router, controllers, cfg)

	// Nạp lại cấu hình AI khi file config thay đổi, không cần restart
	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		services.ai.UpdateConfig(newCfg.AI)
		logger.Log.Info("AI config reloaded",
			zap.String("base_url", newCfg.AI.BaseURL),
			zap.String("model", newCfg.AI.Model))
	})

	return app
}

func serverMode(cfg *config.Config) string {
	switch cfg.Server.Mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
