package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/yunshan-music/lesson-api/api/swagger"
	"github.com/yunshan-music/lesson-api/internal/handler"
	"github.com/yunshan-music/lesson-api/internal/middleware"
	"github.com/yunshan-music/lesson-api/internal/models"
	"github.com/yunshan-music/lesson-api/internal/repository"
	"github.com/yunshan-music/lesson-api/internal/service"
	"github.com/yunshan-music/lesson-api/pkg/cache"
	"github.com/yunshan-music/lesson-api/pkg/config"
	"github.com/yunshan-music/lesson-api/pkg/database"
	"github.com/yunshan-music/lesson-api/pkg/logger"
	corsmiddleware "github.com/yunshan-music/lesson-api/pkg/middleware/cors"
	reqidmiddleware "github.com/yunshan-music/lesson-api/pkg/middleware/requestid"
)

// @title Lesson Scheduling API
// @version 0.1.0
// @description Conservatory lesson scheduling, conflict checking and workload reporting
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	// Redis backs the read-side snapshot cache only. The service degrades to
	// uncached reads when it is unreachable.
	var cacheRepo service.CacheRepository
	if redisClient, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Sugar().Warnw("redis unavailable, snapshot cache disabled", "error", err)
	} else {
		defer redisClient.Close() //nolint:errcheck
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}

	validate := validator.New()

	sessionRepo := repository.NewSessionRepository(db)
	blackoutRepo := repository.NewBlackoutRepository(db)
	largeClassRepo := repository.NewLargeClassRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	roomRepo := repository.NewRoomRepository(db)

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Snapshot.TTL, logr, cfg.Snapshot.Enabled)
	authSvc := service.NewAuthService(cfg.JWT, logr)
	conflictSvc := service.NewConflictService(logr)
	groupSvc := service.NewGroupService(logr)
	allocatorSvc := service.NewAllocatorService(cfg.Term.TotalWeeks, logr)
	blackoutSvc := service.NewBlackoutService(blackoutRepo, largeClassRepo, validate, logr)
	largeClassSvc := service.NewLargeClassService(largeClassRepo, validate, logr)
	workloadSvc := service.NewWorkloadService(sessionRepo, teacherRepo, courseRepo, cacheSvc, logr)
	schedulingSvc := service.NewSchedulingService(
		sessionRepo,
		studentRepo,
		courseRepo,
		teacherRepo,
		roomRepo,
		blackoutRepo,
		largeClassRepo,
		conflictSvc,
		groupSvc,
		allocatorSvc,
		cacheSvc,
		cfg.Term.TotalWeeks,
		validate,
		logr,
	)

	scheduleHandler := handler.NewScheduleHandler(schedulingSvc, metricsSvc)
	groupHandler := handler.NewGroupHandler(schedulingSvc)
	blackoutHandler := handler.NewBlackoutHandler(blackoutSvc)
	largeClassHandler := handler.NewLargeClassHandler(largeClassSvc)
	workloadHandler := handler.NewWorkloadHandler(workloadSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	auth := middleware.JWT(authSvc)
	schedulers := middleware.RequireRoles(models.RoleAdmin, models.RoleScheduler)

	api.GET("/schedules", scheduleHandler.List)
	api.POST("/schedules/commit", auth, schedulers, scheduleHandler.Commit)
	api.POST("/schedules/allocate-weeks", scheduleHandler.AllocateWeeks)
	api.POST("/schedules/availability", scheduleHandler.Availability)
	api.DELETE("/schedules/:id", auth, schedulers, scheduleHandler.Delete)
	api.DELETE("/schedule-groups/:id", auth, schedulers, scheduleHandler.DeleteGroup)

	api.POST("/groups/validate", groupHandler.Validate)

	api.GET("/blackouts", blackoutHandler.List)
	api.POST("/blackouts", auth, schedulers, blackoutHandler.Create)
	api.DELETE("/blackouts/:id", auth, schedulers, blackoutHandler.Delete)
	api.GET("/blackouts/evaluate", blackoutHandler.EvaluateSlot)

	api.GET("/large-classes", largeClassHandler.List)
	api.POST("/large-classes/import", auth, schedulers, largeClassHandler.Import)
	api.DELETE("/large-classes/:id", auth, schedulers, largeClassHandler.Delete)
	api.DELETE("/large-class-batches/:batch", auth, schedulers, largeClassHandler.DeleteBatch)

	api.GET("/teachers/:id/workload", workloadHandler.TeacherReport)
	api.GET("/students/:id/progress", workloadHandler.StudentProgress)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
