package api

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/quizgen_go_server/config"
	"github.com/qs3c/quizgen_go_server/internal/api/handler"
	"github.com/qs3c/quizgen_go_server/internal/api/middleware"
	"github.com/qs3c/quizgen_go_server/internal/service"
)

type Router struct {
	authHandler     *handler.AuthHandler
	quizHandler     *handler.QuizHandler
	generateHandler *handler.GenerateHandler
	usageHandler    *handler.UsageHandler
	usageService    *service.UsageService
	cfg             *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	quizHandler *handler.QuizHandler,
	generateHandler *handler.GenerateHandler,
	usageHandler *handler.UsageHandler,
	usageService *service.UsageService,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:     authHandler,
		quizHandler:     quizHandler,
		generateHandler: generateHandler,
		usageHandler:    usageHandler,
		usageService:    usageService,
		cfg:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLog())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// 公开接口 - 认证
		auth := api.Group("/auth")
		{
			auth.GET("/google", r.authHandler.GoogleAuth)
			auth.GET("/google/callback", r.authHandler.GoogleCallback)
			auth.POST("/logout", r.authHandler.Logout)
		}

		// 需要认证的接口
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			// 用户
			authenticated.GET("/user/usage", r.usageHandler.GetUsage)

			// 测验
			quizzes := authenticated.Group("/quizzes")
			{
				quizzes.POST("", r.quizHandler.Create)
				quizzes.GET("", r.quizHandler.List)
				quizzes.GET("/:id", r.quizHandler.Get)
				quizzes.DELETE("/:id", r.quizHandler.Delete)
				quizzes.POST("/:id/attempts", r.quizHandler.SubmitAttempt)
			}

			// 答题历史
			authenticated.GET("/attempts", r.quizHandler.ListAttempts)

			// AI 生成，限流和月度配额双重把关
			ai := authenticated.Group("/ai")
			ai.Use(middleware.RateLimit(middleware.NewRateLimiter(r.cfg.RateLimit.RPS, r.cfg.RateLimit.Burst)))
			ai.Use(middleware.QuotaCheck(r.usageService))
			{
				ai.POST("/generate", r.generateHandler.Generate)
				ai.POST("/upload", r.generateHandler.Upload)
			}
		}
	}

	return engine
}
