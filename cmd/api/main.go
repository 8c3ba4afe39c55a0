package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/psgrkcw/faculty-portal-api/api/swagger"
	"github.com/psgrkcw/faculty-portal-api/internal/handler"
	"github.com/psgrkcw/faculty-portal-api/internal/middleware"
	"github.com/psgrkcw/faculty-portal-api/internal/repository"
	"github.com/psgrkcw/faculty-portal-api/internal/service"
	"github.com/psgrkcw/faculty-portal-api/pkg/cache"
	"github.com/psgrkcw/faculty-portal-api/pkg/config"
	"github.com/psgrkcw/faculty-portal-api/pkg/database"
	"github.com/psgrkcw/faculty-portal-api/pkg/logger"
	corsmiddleware "github.com/psgrkcw/faculty-portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/psgrkcw/faculty-portal-api/pkg/middleware/requestid"
)

// @title Faculty Portal API
// @version 1.0.0
// @description Back-office API for the faculty portal
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

	metricsSvc := service.NewMetricsService()

	// Redis is optional: when unreachable the class-list cache is disabled
	// and every read goes to postgres.
	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, cache disabled", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, true)
		}
	}

	userRepo := repository.NewUserRepository(db)
	todoRepo := repository.NewTodoRepository(db)
	leaveRepo := repository.NewLeaveRepository(db)
	classRepo := repository.NewClassRepository(db)
	achievementRepo := repository.NewAchievementRepository(db)
	blobRepo := repository.NewBlobRepository(db, cfg.Uploads.ChunkSize)

	authSvc := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		Secret:          cfg.Auth.Secret,
		TokenExpiration: cfg.Auth.TokenExpiration,
		AllowedDomains:  cfg.Auth.AllowedDomains,
	})
	todoSvc := service.NewTodoService(todoRepo, nil, logr)
	leaveSvc := service.NewLeaveService(leaveRepo, nil, logr)
	classSvc := service.NewClassService(classRepo, cacheSvc, nil, logr)
	exportSvc := service.NewExportService(classRepo, logr)
	syllabusSvc := service.NewSyllabusService(blobRepo, logr)
	achievementSvc := service.NewAchievementService(achievementRepo, blobRepo, nil, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	todoHandler := handler.NewTodoHandler(todoSvc)
	leaveHandler := handler.NewLeaveHandler(leaveSvc)
	classHandler := handler.NewClassHandler(classSvc, exportSvc)
	syllabusHandler := handler.NewSyllabusHandler(syllabusSvc, cfg.Uploads.MaxUploadSize)
	achievementHandler := handler.NewAchievementHandler(achievementSvc, cfg.Uploads.MaxUploadSize)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)
	}

	todo := r.Group("/todo", middleware.JWT(authSvc))
	{
		todo.POST("/add", todoHandler.Add)
		todo.GET("/list", todoHandler.List)
		todo.PUT("/done/:id", todoHandler.Done)
		todo.DELETE("/delete/:id", todoHandler.Delete)
	}

	leave := r.Group("/leave")
	{
		leave.POST("", leaveHandler.Create)
		leave.GET("/:id", leaveHandler.ListByUser)
		leave.PUT("/:id", leaveHandler.Update)
		leave.DELETE("/:id", leaveHandler.Delete)
	}

	class := r.Group("/class")
	{
		class.POST("", classHandler.CreateClass)
		class.GET("", classHandler.ListClasses)
		class.GET("/:id", classHandler.GetClass)
		class.PUT("/:id/columns", classHandler.UpdateColumns)
		class.GET("/:id/export", classHandler.ExportClass)
	}

	r.POST("/student", classHandler.CreateStudent)
	r.GET("/students/:classId", classHandler.ListStudents)
	r.PUT("/student/:id", classHandler.UpdateStudent)
	r.DELETE("/student/:id", classHandler.DeleteStudent)

	syllabus := r.Group("/syllabus")
	{
		syllabus.POST("/upload", syllabusHandler.Upload)
		syllabus.GET("/list", syllabusHandler.List)
		syllabus.GET("/pdf/:id", syllabusHandler.Download)
		// Both methods are accepted on the delete route.
		syllabus.POST("/delete/:id", syllabusHandler.Delete)
		syllabus.DELETE("/delete/:id", syllabusHandler.Delete)
	}

	achievements := r.Group("/achievements")
	{
		achievements.POST("", achievementHandler.Create)
		achievements.GET("", achievementHandler.List)
		achievements.GET("/:id/file", achievementHandler.Download)
		achievements.PUT("/:id", achievementHandler.Update)
		achievements.DELETE("/:id", achievementHandler.Delete)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
