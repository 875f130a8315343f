package main

import (
	"fmt"
	"log"

	"github.com/qs3c/quizgen_go_server/config"
	"github.com/qs3c/quizgen_go_server/internal/api"
	"github.com/qs3c/quizgen_go_server/internal/api/handler"
	"github.com/qs3c/quizgen_go_server/internal/pkg/gemini"
	"github.com/qs3c/quizgen_go_server/internal/repository"
	"github.com/qs3c/quizgen_go_server/internal/service"
	"github.com/qs3c/quizgen_go_server/internal/store"
	"github.com/qs3c/quizgen_go_server/internal/telemetry"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	telemetry.Init(telemetry.Config{
		Level:      cfg.Log.Level,
		JSON:       cfg.Log.JSON,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})

	// 初始化存储
	st, err := store.New(cfg.Storage.DataDir)
	if err != nil {
		log.Fatalf("Failed to open data dir: %v", err)
	}
	log.Printf("Data dir: %s", st.Dir())

	// 初始化 Repository
	userRepo := repository.NewUserRepository(st)
	accountRepo := repository.NewAccountRepository(st)
	sessionRepo := repository.NewSessionRepository(st)
	quizSetRepo := repository.NewQuizSetRepository(st)
	quizAttemptRepo := repository.NewQuizAttemptRepository(st)
	usageLogRepo := repository.NewUsageLogRepository(st)
	monthlyUsageRepo := repository.NewMonthlyUsageRepository(st)

	// 初始化 Service
	authService := service.NewAuthService(userRepo, accountRepo, sessionRepo, monthlyUsageRepo, cfg)
	usageService := service.NewUsageService(usageLogRepo, monthlyUsageRepo)
	quizService := service.NewQuizService(quizSetRepo, quizAttemptRepo, userRepo)
	generator := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model, *telemetry.L())
	generateService := service.NewGenerateService(generator, usageService)

	// 初始化 Handler
	authHandler := handler.NewAuthHandler(authService)
	quizHandler := handler.NewQuizHandler(quizService)
	generateHandler := handler.NewGenerateHandler(generateService, cfg)
	usageHandler := handler.NewUsageHandler(usageService)

	// 初始化 Router
	router := api.NewRouter(
		authHandler,
		quizHandler,
		generateHandler,
		usageHandler,
		usageService,
		cfg,
	)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
