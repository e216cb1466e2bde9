package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/akademika-id/siap-smp-api/api/swagger"
	"github.com/akademika-id/siap-smp-api/internal/handler"
	"github.com/akademika-id/siap-smp-api/internal/middleware"
	"github.com/akademika-id/siap-smp-api/internal/repository"
	"github.com/akademika-id/siap-smp-api/internal/service"
	"github.com/akademika-id/siap-smp-api/pkg/cache"
	"github.com/akademika-id/siap-smp-api/pkg/config"
	"github.com/akademika-id/siap-smp-api/pkg/database"
	"github.com/akademika-id/siap-smp-api/pkg/export"
	"github.com/akademika-id/siap-smp-api/pkg/logger"
	corsmiddleware "github.com/akademika-id/siap-smp-api/pkg/middleware/cors"
	reqidmiddleware "github.com/akademika-id/siap-smp-api/pkg/middleware/requestid"
)

// @title SIAP SMP API
// @version 0.1.0
// @description Academic year planning backend for junior high schools
// @BasePath /api/v1
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
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Scheduler.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, schedule caching disabled", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Scheduler.CacheTTL, logr, true)
		}
	}

	// Repositories.
	schoolRepo := repository.NewSchoolRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	yearRepo := repository.NewAcademicYearRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	classRepo := repository.NewClassRepository(db)
	taskRepo := repository.NewAdditionalTaskRepository(db)
	jtmRepo := repository.NewJtmAssignmentRepository(db)
	taskAssignmentRepo := repository.NewTaskAssignmentRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	skRepo := repository.NewSkDocumentRepository(db)

	// Services.
	pdfExporter := export.NewPDFExporter()
	csvExporter := export.NewCSVExporter()

	schoolSvc := service.NewSchoolService(schoolRepo, nil, logr)
	teacherSvc := service.NewTeacherService(teacherRepo, nil, logr)
	yearSvc := service.NewAcademicYearService(yearRepo, nil, logr)
	subjectSvc := service.NewSubjectService(subjectRepo, nil, logr)
	classSvc := service.NewClassService(classRepo, yearRepo, nil, logr)
	taskSvc := service.NewAdditionalTaskService(taskRepo, nil, logr)
	taskAssignmentSvc := service.NewTaskAssignmentService(yearRepo, teacherRepo, taskRepo, taskAssignmentRepo, nil, logr)
	jtmSvc := service.NewJtmAssignmentService(yearRepo, teacherRepo, subjectRepo, classRepo, jtmRepo, cacheSvc, metricsSvc, nil, logr)
	workloadSvc := service.NewWorkloadService(teacherRepo, jtmRepo, taskAssignmentRepo, cfg.Workload.MinimumHours, cfg.Workload.MaximumHours, logr)
	allocationSvc := service.NewAllocationReportService(yearRepo, classRepo, jtmRepo, subjectRepo, logr)
	scheduleSvc := service.NewScheduleService(yearRepo, classRepo, classRepo, jtmRepo, scheduleRepo, cacheSvc, service.ScheduleConfig{
		PeriodsPerDay: cfg.Scheduler.PeriodsPerDay,
		SchoolDays:    cfg.Scheduler.SchoolDays,
		CacheTTL:      cfg.Scheduler.CacheTTL,
	}, logr)
	skSvc := service.NewSkService(skRepo, schoolRepo, teacherRepo, yearRepo, workloadSvc, pdfExporter, cfg.Documents.NumberPrefix, nil, logr)
	reportSvc := service.NewReportService(yearRepo, workloadSvc, csvExporter, pdfExporter, logr)

	// Handlers.
	schoolHandler := handler.NewSchoolHandler(schoolSvc)
	teacherHandler := handler.NewTeacherHandler(teacherSvc)
	yearHandler := handler.NewAcademicYearHandler(yearSvc)
	subjectHandler := handler.NewSubjectHandler(subjectSvc)
	classHandler := handler.NewClassHandler(classSvc)
	taskHandler := handler.NewAdditionalTaskHandler(taskSvc)
	taskAssignmentHandler := handler.NewTaskAssignmentHandler(taskAssignmentSvc)
	jtmHandler := handler.NewJtmAssignmentHandler(jtmSvc)
	workloadHandler := handler.NewWorkloadHandler(workloadSvc)
	allocationHandler := handler.NewAllocationReportHandler(allocationSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)
	skHandler := handler.NewSkDocumentHandler(skSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
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
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	{
		v1.GET("/school", schoolHandler.Get)
		v1.PUT("/school", schoolHandler.Upsert)

		v1.GET("/teachers", teacherHandler.List)
		v1.POST("/teachers", teacherHandler.Create)
		v1.GET("/teachers/:id", teacherHandler.Get)
		v1.PUT("/teachers/:id", teacherHandler.Update)
		v1.DELETE("/teachers/:id", teacherHandler.Deactivate)

		v1.GET("/academic-years", yearHandler.List)
		v1.POST("/academic-years", yearHandler.Create)
		v1.GET("/academic-years/active", yearHandler.GetActive)
		v1.GET("/academic-years/:id", yearHandler.Get)
		v1.PUT("/academic-years/:id", yearHandler.Update)
		v1.POST("/academic-years/:id/activate", yearHandler.Activate)
		v1.DELETE("/academic-years/:id", yearHandler.Delete)

		v1.GET("/subjects", subjectHandler.List)
		v1.POST("/subjects", subjectHandler.Create)
		v1.GET("/subjects/:id", subjectHandler.Get)
		v1.PUT("/subjects/:id", subjectHandler.Update)
		v1.DELETE("/subjects/:id", subjectHandler.Delete)

		v1.GET("/classes", classHandler.List)
		v1.POST("/classes", classHandler.Create)
		v1.GET("/classes/:id", classHandler.Get)
		v1.PUT("/classes/:id", classHandler.Update)
		v1.DELETE("/classes/:id", classHandler.Delete)

		v1.GET("/additional-tasks", taskHandler.List)
		v1.POST("/additional-tasks", taskHandler.Create)
		v1.GET("/additional-tasks/:id", taskHandler.Get)
		v1.PUT("/additional-tasks/:id", taskHandler.Update)
		v1.DELETE("/additional-tasks/:id", taskHandler.Delete)

		v1.GET("/task-assignments", taskAssignmentHandler.List)
		v1.POST("/task-assignments", taskAssignmentHandler.Create)
		v1.DELETE("/task-assignments/:id", taskAssignmentHandler.Delete)

		v1.GET("/jtm-assignments", jtmHandler.List)
		v1.POST("/jtm-assignments", jtmHandler.Create)
		v1.POST("/jtm-assignments/validate", jtmHandler.Validate)
		v1.DELETE("/jtm-assignments/:id", jtmHandler.Delete)

		v1.GET("/workloads", workloadHandler.List)
		v1.GET("/workloads/summary", workloadHandler.Summary)
		v1.GET("/workloads/:teacherId", workloadHandler.Get)
		v1.GET("/workloads/:teacherId/detail", workloadHandler.Detail)

		v1.GET("/allocation-progress/:yearId", allocationHandler.Progress)

		v1.POST("/schedules/generate/:yearId", scheduleHandler.Generate)
		v1.GET("/schedules/class/:classId", scheduleHandler.GetByClass)

		if cfg.Documents.Enabled {
			v1.POST("/sk-documents/generate", skHandler.Generate)
			v1.GET("/sk-documents/year/:yearId", skHandler.List)
			v1.GET("/sk-documents/:id", skHandler.Get)
			v1.GET("/sk-documents/:id/pdf", skHandler.Download)
		}

		v1.GET("/reports/workloads/:yearId", reportHandler.WorkloadRecap)

		v1.GET("/system/metrics", metricsHandler.Snapshot)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
