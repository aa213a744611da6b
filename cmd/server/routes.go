package main

import (
	"time"

	"github.com/gin-gonic/gin"

	"crednest-server/internal/cache"
	"crednest-server/internal/handler"
	"crednest-server/internal/logger"
	"crednest-server/internal/middleware"
	"crednest-server/internal/websocket"
	"crednest-server/pkg/jwt"
)

// routeHandlers 汇总所有 Handler
type routeHandlers struct {
	auth    *handler.AuthHandler
	user    *handler.UserHandler
	chat    *handler.ChatHandler
	budget  *handler.BudgetHandler
	finance *handler.FinanceHandler
	health  *handler.HealthHandler
	ws      *websocket.Handler
}

// registerRoutes 注册所有路由
func registerRoutes(
	router *gin.Engine,
	jwtService *jwt.JWTService,
	redisCache *cache.RedisCache,
	chatRateLimit int,
	chatRateWindow time.Duration,
	log *logger.Logger,
	h *routeHandlers,
) {
	// 健康检查
	router.GET("/health", h.health.Check)

	authMiddleware := middleware.AuthMiddleware(jwtService, redisCache)

	// API v1 路由组
	v1 := router.Group("/api/v1")

	// 认证相关（无需登录）
	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.auth.Register)
		auth.POST("/login", h.auth.Login)
		auth.POST("/refresh", h.auth.RefreshToken)
		auth.POST("/logout", authMiddleware, h.auth.Logout)
	}

	// 用户相关（需要登录）
	users := v1.Group("/users")
	users.Use(authMiddleware)
	{
		users.GET("/profile", h.user.GetProfile)
		users.PUT("/profile", h.user.UpdateProfile)
		users.PUT("/password", h.user.ChangePassword)
	}

	// 聊天助手（需要登录）
	chat := v1.Group("/chat")
	chat.Use(authMiddleware)
	{
		chat.POST("/message", middleware.ChatRateLimitMiddleware(redisCache, chatRateLimit, chatRateWindow, log.Sub("ratelimit")), h.chat.SendMessage)
		chat.GET("/sessions", h.chat.ListSessions)
		chat.GET("/history/:sessionId", h.chat.GetHistory)
		chat.DELETE("/session/:sessionId", h.chat.DeleteSession)
	}

	// 预算（需要登录）
	budgets := v1.Group("/budgets")
	budgets.Use(authMiddleware)
	{
		budgets.GET("", h.budget.ListBudgets)
		budgets.POST("", h.budget.CreateBudget)
		budgets.GET("/summary", h.budget.Summary)
		budgets.PUT("/:id", h.budget.UpdateBudget)
		budgets.DELETE("/:id", h.budget.DeleteBudget)
	}

	// 支出（需要登录）
	expenses := v1.Group("/expenses")
	expenses.Use(authMiddleware)
	{
		expenses.GET("", h.budget.ListExpenses)
		expenses.POST("", h.budget.AddExpense)
		expenses.DELETE("/:id", h.budget.DeleteExpense)
	}

	// 金融工具（公开）
	financial := v1.Group("/financial")
	{
		financial.GET("/banks", h.finance.ListBanks)
		financial.GET("/banks/:id", h.finance.GetBank)
		financial.POST("/calculate-emi", h.finance.CalculateEMI)
		financial.POST("/check-eligibility", h.finance.CheckEligibility)
	}

	// WebSocket 路由
	h.ws.RegisterRoutes(router)
}
