package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"smartenglish_backend/internal/config"
	"smartenglish_backend/internal/controller"
	"smartenglish_backend/internal/repository"
	"smartenglish_backend/internal/service"
	"smartenglish_backend/internal/util"
	"smartenglish_backend/pkg/configwatcher"
	"smartenglish_backend/pkg/database"
	"smartenglish_backend/pkg/logger"
	"smartenglish_backend/pkg/monitoring"
	"smartenglish_backend/pkg/security"
	"smartenglish_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config     *config.Config
	ConfigFile string
	Router     *gin.Engine
	DB         *gorm.DB
	Redis      *redis.Client

	services        *services
	limiter         *security.RateLimiter
	tracer          *sdktrace.TracerProvider
	stop            chan struct{}
	mu              sync.Mutex
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user      *repository.UserRepository
	progress  *repository.ProgressRepository
	report    *repository.ReportRepository
	recording *repository.RecordingRepository
	cache     service.SummaryCache
}

type services struct {
	auth      *service.AuthService
	user      *service.UserService
	storage   *service.StorageService
	xp        *service.XPService
	progress  *service.ProgressService
	report    *service.ReportService
	analytics *service.AnalyticsService
	recording *service.RecordingService
}

type controllers struct {
	auth      *controller.AuthController
	progress  *controller.ProgressController
	analytics *controller.AnalyticsController
	recording *controller.RecordingController
	admin     *controller.AdminController
	files     *controller.FileController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	a.mu.Lock()
	callbacks := append([]func(*config.Config){}, a.configCallbacks...)
	a.mu.Unlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	repos := &repositories{
		user:      repository.NewUserRepository(db),
		progress:  repository.NewProgressRepository(db),
		report:    repository.NewReportRepository(db),
		recording: repository.NewRecordingRepository(db),
	}
	// Redis 不可用时不缓存汇总
	if rdb != nil {
		repos.cache = repository.NewSummaryCache(rdb)
	}
	return repos
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.xp = service.NewXPService(repos.user, repos.progress, repos.cache)
	s.progress = service.NewProgressService(repos.progress, s.xp, repos.cache)
	s.report = service.NewReportService(repos.report, s.xp)
	s.analytics = service.NewAnalyticsService(repos.progress, repos.report, repos.user, repos.cache, cfg.Analytics.CacheTTL())
	s.recording = service.NewRecordingService(repos.recording, s.storage, cfg.Storage.MaxAudioMB)

	a.RegisterConfigCallback(func(c *config.Config) {
		s.storage.SetExpiry(c.Storage.SignedURLExpiry())
	})

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth, s.user),
		progress:  controller.NewProgressController(s.progress, s.report),
		analytics: controller.NewAnalyticsController(s.analytics),
		recording: controller.NewRecordingController(s.recording),
		admin:     controller.NewAdminController(s.analytics, s.progress, s.report, s.recording),
		files:     controller.NewFileController(s.storage.Local()),
		health:    controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	a.limiter = security.NewRateLimiter(cfg.RateLimit.MaxRequests, window)
	go a.limiter.Cleanup(a.stop)
	router.Use(a.limiter.Middleware())
	a.RegisterConfigCallback(func(c *config.Config) {
		a.limiter.Update(c.RateLimit.MaxRequests, time.Duration(c.RateLimit.WindowMinutes)*time.Minute)
	})

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks 定期补齐提交时未能计入的经验
func (a *App) startBackgroundTasks(s *services, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-a.stop:
				return
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), interval)
				// 只处理创建超过一个周期的记录，避免与正在进行的提交重叠
				if _, err := s.xp.RetryPending(ctx, time.Now().Add(-interval)); err != nil {
					logger.Log.Error("retry pending xp failed", zap.Error(err))
				}
				cancel()
			}
		}
	}()
}

func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected validator engine")
	}
	return util.RegisterValidators(v)
}

func NewApp(cfg *config.Config, configFile string) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode != gin.ReleaseMode)
	if err != nil {
		return nil, err
	}

	if cfg.Server.Mode != gin.ReleaseMode || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			return nil, err
		}
		if err := database.EnsureAdmin(db, &cfg.Admin); err != nil {
			return nil, err
		}
	}

	app := &App{
		Config:     cfg,
		ConfigFile: configFile,
		DB:         db,
		stop:       make(chan struct{}),
	}
	if cfg.MigrateOnly {
		return app, nil
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, summary cache disabled", zap.Error(err))
		rdb = nil
	}
	app.Redis = rdb

	if err := registerValidators(); err != nil {
		return nil, err
	}

	repos := app.initRepositories(db, rdb)
	svcs := app.initServices(repos, cfg)
	app.services = svcs
	ctrls := app.initControllers(svcs, db, rdb)

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("smartenglish", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, err
		}
		app.tracer = tp
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Server.Mode != gin.ReleaseMode {
		router.Use(gin.Logger())
	}
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, ctrls, repos, cfg)

	app.startBackgroundTasks(svcs, cfg.Analytics.XPRetryInterval())

	return app, nil
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	watchCtx, stopWatch := context.WithCancel(context.Background())
	if a.ConfigFile != "" {
		go func() {
			if err := configwatcher.WatchConfig(watchCtx, a.ConfigFile, a.applyConfig); err != nil {
				logger.Log.Error("config watcher stopped", zap.Error(err))
			}
		}()
	}

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	stopWatch()
	a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Log.Info("Server exiting")
}

// Close 停止后台任务，可重复调用
func (a *App) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	select {
	case <-a.stop:
	default:
		close(a.stop)
	}
}
