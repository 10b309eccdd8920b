package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "isoko/docs"
	"isoko/internal/config"
	"isoko/internal/handler"
	authHandler "isoko/internal/handler/auth"
	categoryHandler "isoko/internal/handler/category"
	documentHandler "isoko/internal/handler/document"
	reportHandler "isoko/internal/handler/report"
	userHandler "isoko/internal/handler/user"
	"isoko/internal/pkg/cache"
	"isoko/internal/pkg/mongodb"
	"isoko/internal/pkg/ratelimit"
	"isoko/internal/pkg/storagefactory"
	authRepo "isoko/internal/repository/auth"
	categoryRepo "isoko/internal/repository/category"
	documentRepo "isoko/internal/repository/document"
	reportRepo "isoko/internal/repository/report"
	"isoko/internal/server/middleware"
	"isoko/internal/service"
)

// Server HTTP 服务器
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	mongo  *mongodb.Client
	redis  *cache.RedisCache

	authService     *service.AuthService
	userService     *service.UserService
	categoryService *service.CategoryService
	documentService *service.DocumentService
	reportService   *service.ReportService

	limiter *ratelimit.Limiter
}

// New 创建服务器实例
func New(cfg *config.Config) (*Server, error) {
	// 设置 Gin 模式
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// MongoDB是必须的依赖
	mongoClient, err := mongodb.New(&cfg.Mongo)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	if err := mongodb.EnsureIndexes(mongoClient.Database()); err != nil {
		log.Warn().Err(err).Msg("failed to ensure indexes")
	}

	// Redis可选，仅承载限流；未配置时限流直接放行
	var redisCache *cache.RedisCache
	var limiter *ratelimit.Limiter
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without rate limiting")
		} else {
			redisCache = rc
			if cfg.RateLimit.Enabled {
				limiter = ratelimit.New(rc.Client())
			}
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}

	// 文件存储
	store, err := storagefactory.NewStorage(&cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Info().Str("type", store.GetStorageType()).Msg("initialized storage")

	db := mongoClient.Database()
	userRepository := authRepo.NewUserRepo(db)
	refreshTokenRepository := authRepo.NewRefreshTokenRepo(db)
	categoryRepository := categoryRepo.NewCategoryRepo(db)
	documentRepository := documentRepo.NewDocumentRepo(db)
	reportRepository := reportRepo.NewReportRepo(db)

	srv := &Server{
		cfg:    cfg,
		engine: engine,
		mongo:  mongoClient,
		redis:  redisCache,
		authService: service.NewAuthService(
			userRepository,
			refreshTokenRepository,
			cfg.Auth.JWTSecret,
			cfg.Auth.AccessTokenExpiry,
			cfg.Auth.RefreshTokenExpiry,
		),
		userService:     service.NewUserService(userRepository),
		categoryService: service.NewCategoryService(categoryRepository, documentRepository),
		documentService: service.NewDocumentService(documentRepository, categoryRepository, reportRepository, store, &cfg.Upload),
		reportService:   service.NewReportService(reportRepository, documentRepository),
		limiter:         limiter,
	}

	srv.setupRoutes()

	return srv, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// 全局中间件
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.CORS())

	// 健康检查
	healthHandler := handler.NewHealthHandler()
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	// Swagger 文档
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authHdl := authHandler.NewHandler(s.authService)
	userHdl := userHandler.NewHandler(s.userService)
	categoryHdl := categoryHandler.NewHandler(s.categoryService)
	documentHdl := documentHandler.NewHandler(s.documentService)
	reportHdl := reportHandler.NewHandler(s.reportService)

	authRate := middleware.RateLimitByIP(s.limiter, "auth", s.cfg.RateLimit.AuthPerMinute, time.Minute)
	uploadRate := middleware.RateLimitByUser(s.limiter, "upload", s.cfg.RateLimit.UploadPerHour, time.Hour)

	v1 := s.engine.Group("/api/v1")

	// 认证接口（公开，注册/登录按IP限流）
	v1.POST("/auth/register", authRate, authHdl.Register)
	v1.POST("/auth/login", authRate, authHdl.Login)
	v1.POST("/auth/refresh", authHdl.Refresh)

	// 公开读接口（带可选认证：详情/下载对所有者放开可见性）
	public := v1.Group("", middleware.OptionalAuth(s.authService))
	{
		public.GET("/categories", categoryHdl.List)
		public.GET("/categories/:slug", categoryHdl.Get)
		public.GET("/documents", documentHdl.List)
		public.GET("/documents/:slug", documentHdl.Get)
		public.GET("/documents/:slug/download", documentHdl.Download)
	}

	// 需要认证的接口
	authed := v1.Group("", middleware.Auth(s.authService))
	{
		authed.POST("/auth/logout", authHdl.Logout)
		authed.GET("/auth/me", authHdl.GetMe)
		authed.PATCH("/auth/me", authHdl.UpdateMe)

		authed.POST("/documents", uploadRate, documentHdl.Create)
		authed.PATCH("/documents/:slug", documentHdl.Update)
		authed.DELETE("/documents/:slug", documentHdl.Delete)

		authed.POST("/reports", reportHdl.Create)
		authed.GET("/my/documents", documentHdl.My)
		authed.GET("/my/reports", reportHdl.My)
	}

	// 审核员接口
	moderation := v1.Group("", middleware.Auth(s.authService), middleware.RequireModerator())
	{
		moderation.GET("/moderation/documents", documentHdl.Pending)
		moderation.POST("/documents/:slug/approve", documentHdl.Approve)
		moderation.POST("/documents/:slug/reject", documentHdl.Reject)

		moderation.POST("/categories", categoryHdl.Create)
		moderation.PUT("/categories/:slug", categoryHdl.Update)
		moderation.DELETE("/categories/:slug", categoryHdl.Delete)

		moderation.GET("/users", userHdl.List)
		moderation.GET("/users/:id", userHdl.Get)
		moderation.POST("/users/:id/ban", userHdl.Ban)
		moderation.POST("/users/:id/unban", userHdl.Unban)

		moderation.GET("/reports", reportHdl.List)
		moderation.GET("/reports/:id", reportHdl.Get)
		moderation.PATCH("/reports/:id/status", reportHdl.UpdateStatus)
	}
}

// Run 启动服务器
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		if err := s.mongo.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to close MongoDB connection")
		}
		if s.redis != nil {
			if err := s.redis.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close Redis connection")
			}
		}

		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

// Engine 获取 Gin 引擎 (用于测试)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
