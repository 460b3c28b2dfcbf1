package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/horizon-academy/academy-gateway/api/swagger"
	"github.com/horizon-academy/academy-gateway/internal/handler"
	"github.com/horizon-academy/academy-gateway/internal/middleware"
	"github.com/horizon-academy/academy-gateway/internal/models"
	"github.com/horizon-academy/academy-gateway/internal/repository"
	"github.com/horizon-academy/academy-gateway/internal/service"
	"github.com/horizon-academy/academy-gateway/internal/upstream"
	"github.com/horizon-academy/academy-gateway/pkg/cache"
	"github.com/horizon-academy/academy-gateway/pkg/config"
	"github.com/horizon-academy/academy-gateway/pkg/database"
	"github.com/horizon-academy/academy-gateway/pkg/logger"
	corsmiddleware "github.com/horizon-academy/academy-gateway/pkg/middleware/cors"
	reqidmiddleware "github.com/horizon-academy/academy-gateway/pkg/middleware/requestid"
)

// @title Academy Gateway API
// @version 0.1.0
// @description Gateway in front of the legacy academy administration API
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	validate := validator.New()
	metrics := service.NewMetricsService()

	client := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, logr)
	client.SetObserver(metrics.ObserveUpstreamRequest)

	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, reference caching disabled", "error", err)
		} else {
			repo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(repo, metrics, cfg.Cache.ReferenceTTL, logr, true)
		}
	}
	if cacheSvc == nil {
		cacheSvc = service.NewCacheService(nil, metrics, cfg.Cache.ReferenceTTL, logr, false)
	}

	var auditSvc *service.AuditService
	if cfg.Audit.Enabled {
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Sugar().Warnw("database unavailable, audit trail disabled", "error", err)
			auditSvc = service.NewAuditService(nil, false, logr)
		} else {
			defer db.Close() //nolint:errcheck
			auditSvc = service.NewAuditService(repository.NewAuditRepository(db), true, logr)
		}
	} else {
		auditSvc = service.NewAuditService(nil, false, logr)
	}

	sessionSvc := service.NewSessionService(logr)
	academySvc := service.NewAcademyService(client, logr)
	branchSvc := service.NewBranchService(client, validate, logr)
	courseSvc := service.NewCourseService(client, logr)
	studentSvc := service.NewStudentService(client, validate, logr)
	authSvc := service.NewAuthService(client, sessionSvc, validate, logr)
	complaintSvc := service.NewComplaintService(client, cacheSvc, validate, cfg.Complaints, cfg.Cache.ReferenceTTL, logr)
	diagnosticsSvc := service.NewDiagnosticsService(client, cfg.Diagnostics, logr)
	overviewSvc := service.NewOverviewService(academySvc, courseSvc, complaintSvc, logr)
	exportSvc := service.NewExportService(complaintSvc, logr)

	academies := handler.NewAcademyHandler(academySvc)
	branches := handler.NewBranchHandler(branchSvc)
	courses := handler.NewCourseHandler(courseSvc)
	students := handler.NewStudentHandler(studentSvc)
	auth := handler.NewAuthHandler(authSvc)
	complaints := handler.NewComplaintHandler(complaintSvc)
	diagnostics := handler.NewDiagnosticsHandler(diagnosticsSvc, metrics)
	overview := handler.NewOverviewHandler(overviewSvc)
	reports := handler.NewReportHandler(exportSvc)
	audits := handler.NewAuditHandler(auditSvc)
	metricsHandler := handler.NewMetricsHandler(metrics)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.WithResponseMeta())
	r.Use(middleware.Session(sessionSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/auth/login", middleware.Audit(auditSvc, models.AuditActionLogin, "account"), auth.Login)
		api.POST("/auth/register", middleware.Audit(auditSvc, models.AuditActionCreate, "account"), auth.Register)
		api.GET("/auth/me", auth.Me)

		api.GET("/overview", overview.Build)
		api.GET("/academies", academies.List)
		api.GET("/academies/:id", academies.Get)
		api.GET("/academies/:id/branches", branches.ListByAcademy)
		api.GET("/courses", courses.List)

		api.GET("/students", middleware.RequireSession(), students.List)
		api.GET("/students/:id", middleware.RequireSession(), students.Get)

		api.GET("/complaints", middleware.RequireSession(), complaints.List)
		api.GET("/complaints/types", complaints.Types)
		api.GET("/complaints/statuses", complaints.Statuses)
		api.POST("/complaints", middleware.RequireSession(),
			middleware.Audit(auditSvc, models.AuditActionSubmit, "complaint"), complaints.Submit)

		admin := api.Group("", middleware.RequireAdmin())
		{
			admin.POST("/branches", middleware.Audit(auditSvc, models.AuditActionCreate, "branch"), branches.Create)
			admin.PUT("/branches/:id", middleware.Audit(auditSvc, models.AuditActionUpdate, "branch"), branches.Update)
			admin.DELETE("/branches/:id", middleware.Audit(auditSvc, models.AuditActionDelete, "branch"), branches.Delete)

			admin.POST("/students", middleware.Audit(auditSvc, models.AuditActionCreate, "student"), students.Create)
			admin.PUT("/students/:id", middleware.Audit(auditSvc, models.AuditActionUpdate, "student"), students.Update)
			admin.DELETE("/students/:id", middleware.Audit(auditSvc, models.AuditActionDelete, "student"), students.Delete)

			admin.GET("/audit", audits.Trail)

			if cfg.Reports.Enabled {
				admin.GET("/reports/complaints", reports.Complaints)
			}
			if cfg.Diagnostics.Enabled {
				admin.GET("/diagnostics/paths", diagnostics.Paths)
				admin.POST("/diagnostics/probe", diagnostics.Probe)
				admin.GET("/diagnostics/counters", diagnostics.Counters)
			}
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("gateway starting", "addr", addr, "env", cfg.Env, "upstream", client.BaseURL())
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("gateway failed", "error", err)
	}
}
