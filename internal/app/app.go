package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lms_backend/internal/config"
	"lms_backend/internal/controller"
	"lms_backend/internal/repository"
	"lms_backend/internal/service"
	"lms_backend/pkg/database"
	"lms_backend/pkg/logger"
	"lms_backend/pkg/monitoring"
	"lms_backend/pkg/security"
	"lms_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user         *repository.UserRepository
	course       *repository.CourseRepository
	module       *repository.ModuleRepository
	chapter      *repository.ChapterRepository
	assignment   *repository.AssignmentRepository
	submission   *repository.SubmissionRepository
	enrollment   *repository.EnrollmentRepository
	progress     *repository.ProgressRepository
	wishlist     *repository.WishlistRepository
	notification *repository.NotificationRepository
	helpTopic    *repository.HelpTopicRepository
}

type services struct {
	storage    *service.StorageService
	auth       *service.AuthService
	course     *service.CourseService
	module     *service.ModuleService
	chapter    *service.ChapterService
	assignment *service.AssignmentService
	enrollment *service.EnrollmentService
	progress   *service.ProgressService
	media      *service.MediaService
	dashboard  *service.DashboardService
	menu       *service.MenuService
}

type controllers struct {
	auth       *controller.AuthController
	course     *controller.CourseController
	module     *controller.ModuleController
	chapter    *controller.ChapterController
	assignment *controller.AssignmentController
	enrollment *controller.EnrollmentController
	progress   *controller.ProgressController
	media      *controller.MediaController
	dashboard  *controller.DashboardController
	menu       *controller.MenuController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		course:       repository.NewCourseRepository(db),
		module:       repository.NewModuleRepository(db),
		chapter:      repository.NewChapterRepository(db),
		assignment:   repository.NewAssignmentRepository(db),
		submission:   repository.NewSubmissionRepository(db),
		enrollment:   repository.NewEnrollmentRepository(db),
		progress:     repository.NewProgressRepository(db),
		wishlist:     repository.NewWishlistRepository(db),
		notification: repository.NewNotificationRepository(db),
		helpTopic:    repository.NewHelpTopicRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.course = service.NewCourseService(repos.course, repos.enrollment, s.storage, db, rdb)
	s.enrollment = service.NewEnrollmentService(repos.enrollment, repos.course, repos.notification)
	s.module = service.NewModuleService(repos.module, repos.course, s.enrollment)
	s.chapter = service.NewChapterService(repos.chapter, repos.module, s.storage, db)
	s.assignment = service.NewAssignmentService(repos.assignment, repos.submission, repos.module, repos.course, s.storage)
	s.progress = service.NewProgressService(repos.progress, repos.module, s.enrollment)
	s.media = service.NewMediaService(s.storage)
	s.dashboard = service.NewDashboardService(repos.user, repos.course, repos.enrollment)
	s.menu = service.NewMenuService(repos.wishlist, repos.notification, repos.helpTopic, repos.course)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		course:     controller.NewCourseController(s.course),
		module:     controller.NewModuleController(s.module),
		chapter:    controller.NewChapterController(s.chapter),
		assignment: controller.NewAssignmentController(s.assignment),
		enrollment: controller.NewEnrollmentController(s.enrollment),
		progress:   controller.NewProgressController(s.progress),
		media:      controller.NewMediaController(s.media),
		dashboard:  controller.NewDashboardController(s.dashboard),
		menu:       controller.NewMenuController(s.menu),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
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

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.MigrateOnly {
		logger.Log.Info("Migration completed, exiting")
		os.Exit(0)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, catalog caching disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("lms-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
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

	log.Println("Server exiting")
}
