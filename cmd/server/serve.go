package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"crednest-server/internal/assistant"
	"crednest-server/internal/cache"
	"crednest-server/internal/handler"
	"crednest-server/internal/llm"
	"crednest-server/internal/middleware"
	"crednest-server/internal/repository"
	"crednest-server/internal/service"
	"crednest-server/internal/websocket"
	"crednest-server/pkg/jwt"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP / WebSocket 服务",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	// 初始化数据库
	db, err := repository.OpenDatabase(cfg.Database, newGormLogger(cfg, log))
	if err != nil {
		return err
	}
	if err := repository.AutoMigrate(db); err != nil {
		return err
	}
	log.Info().Str("driver", cfg.Database.Driver).Msg("database ready")

	// 初始化 Redis
	redisCache, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		return err
	}
	defer redisCache.Close()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// 初始化生成式模型后端
	generator, err := llm.New(ctx, cfg.AI)
	if err != nil {
		return fmt.Errorf("failed to init ai backend: %w", err)
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpire, cfg.JWT.RefreshExpire)

	// 初始化 Repository 层
	userRepo := repository.NewUserRepository(db)
	chatRepo := repository.NewChatRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	bankRepo := repository.NewBankRepository(db)

	// 初始化 Service 层
	orchestrator := assistant.NewOrchestrator(generator, chatRepo, assistant.Options{
		HistoryWindow: cfg.Chat.HistoryWindow,
		Timeout:       cfg.AI.Timeout,
		Logger:        log.Sub("assistant"),
	})
	authService := service.NewAuthService(userRepo, redisCache, jwtService)
	userService := service.NewUserService(userRepo)
	chatService := service.NewChatService(orchestrator, chatRepo, log.Sub("chat"))
	budgetService := service.NewBudgetService(budgetRepo, expenseRepo)
	financeService := service.NewFinanceService(bankRepo, redisCache, log.Sub("finance"))

	// 初始化 WebSocket Hub
	wsHub := websocket.NewHub(chatService, redisCache, websocket.HubOptions{
		RateLimit:  cfg.Chat.RateLimit,
		RateWindow: cfg.Chat.RateWindow,
		Logger:     log.Sub("websocket"),
	})
	chatService.SetNotifier(wsHub)
	if err := wsHub.Run(ctx); err != nil {
		return fmt.Errorf("failed to subscribe user events: %w", err)
	}

	// 初始化 Handler 层
	handlers := &routeHandlers{
		auth:    handler.NewAuthHandler(authService),
		user:    handler.NewUserHandler(userService),
		chat:    handler.NewChatHandler(chatService),
		budget:  handler.NewBudgetHandler(budgetService),
		finance: handler.NewFinanceHandler(financeService),
		health:  handler.NewHealthHandler(db, redisCache),
		ws:      websocket.NewHandler(wsHub, jwtService, redisCache, cfg.Server.CORS),
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RecoveryMiddleware(log.Sub("http")))
	router.Use(middleware.LoggerMiddleware(log.Sub("http")))
	router.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig(cfg.Server.CORS)))

	registerRoutes(router, jwtService, redisCache, cfg.Chat.RateLimit, cfg.Chat.RateWindow, log, handlers)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:        addr,
		Handler:     router,
		ReadTimeout: 10 * time.Second,
		// 聊天请求要等待模型生成
		WriteTimeout: cfg.AI.Timeout + 10*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	}

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	stop()

	log.Info().Msg("server exited")
	return nil
}
