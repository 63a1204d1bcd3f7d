package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/timetable-api/api/swagger"
	"github.com/noah-isme/timetable-api/internal/handler"
	"github.com/noah-isme/timetable-api/internal/middleware"
	"github.com/noah-isme/timetable-api/internal/repository"
	"github.com/noah-isme/timetable-api/internal/service"
	"github.com/noah-isme/timetable-api/internal/timetable"
	"github.com/noah-isme/timetable-api/pkg/cache"
	"github.com/noah-isme/timetable-api/pkg/config"
	"github.com/noah-isme/timetable-api/pkg/database"
	"github.com/noah-isme/timetable-api/pkg/logger"
)

// @title Timetable API
// @version 1.0.0
// @description Timetable conflict and capacity validation engine
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			logr.Fatal("failed to apply schema", zap.Error(err))
		}
		logr.Info("schema applied")
	}

	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, timetable views will not be cached", zap.Error(err))
			redisClient = nil
		}
	}

	cal, err := timetable.NewCalendar(cfg.Calendar)
	if err != nil {
		logr.Fatal("invalid calendar configuration", zap.Error(err))
	}

	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, cfg.Cache.Enabled && redisClient != nil)
	if err := cacheSvc.Invalidate(ctx, service.TimetableCachePattern); err != nil {
		logr.Warn("failed to drop cached timetables", zap.Error(err))
	}

	router := newRouter(cfg, db, cacheRepo, cacheSvc, metricsSvc, cal, logr)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

func newRouter(cfg *config.Config, db *sqlx.DB, cacheRepo *repository.CacheRepository, cacheSvc *service.CacheService, metricsSvc *service.MetricsService, cal timetable.Calendar, logr *zap.Logger) *gin.Engine {
	validate := validator.New()

	moduleRepo := repository.NewModuleRepository(db)
	occupancyRepo := repository.NewOccupancyRepository(db)
	rangeRepo := repository.NewScheduleRangeRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	availabilityRepo := repository.NewTeacherAvailabilityRepository(db)

	occupancySvc := service.NewOccupancyService(occupancyRepo, logr)
	workloadSvc := service.NewWorkloadService(teacherRepo, moduleRepo, cal, logr)
	teacherSvc := service.NewTeacherService(teacherRepo, availabilityRepo, cacheSvc, cal, validate, logr)
	assignmentSvc := service.NewAssignmentService(moduleRepo, rangeRepo, roomRepo, occupancySvc, workloadSvc, cacheSvc, metricsSvc, cal, validate, logr)
	gridSvc := service.NewGridService(moduleRepo, occupancySvc, teacherSvc, cal, validate, logr)
	roomSvc := service.NewRoomService(roomRepo, cacheSvc, logr)
	timetableSvc := service.NewTimetableViewService(teacherRepo, roomRepo, occupancySvc, cacheSvc, cal, cfg.Cache.TTL, logr)

	scheduleHandler := handler.NewScheduleHandler(assignmentSvc, gridSvc)
	teacherHandler := handler.NewTeacherHandler(teacherSvc, workloadSvc, timetableSvc)
	roomHandler := handler.NewRoomHandler(roomSvc, timetableSvc)
	calendarHandler := handler.NewCalendarHandler(cal)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, map[string]handler.Pinger{
		"postgres": handler.PingerFunc(db.PingContext),
		"redis":    cacheRepo,
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(logr))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	modules := api.Group("/modules/:id/schedule")
	modules.POST("", scheduleHandler.Submit)
	modules.GET("", scheduleHandler.Get)
	modules.POST("/grid", scheduleHandler.Grid)
	modules.POST("/grid/cell", scheduleHandler.Cell)

	teachers := api.Group("/teachers/:id")
	teachers.DELETE("", teacherHandler.Delete)
	teachers.GET("/workload", teacherHandler.Workload)
	teachers.GET("/availability", teacherHandler.GetAvailability)
	teachers.PUT("/availability", teacherHandler.ReplaceAvailability)
	teachers.GET("/timetable", teacherHandler.Timetable)

	rooms := api.Group("/rooms/:id")
	rooms.DELETE("", roomHandler.Delete)
	rooms.GET("/timetable", roomHandler.Timetable)

	api.GET("/calendar", calendarHandler.Get)
	api.GET("/system/metrics", metricsHandler.Summary)

	return r
}
