package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"crednest-server/internal/cache"
	"crednest-server/pkg/response"
)

// HealthHandler 健康检查
type HealthHandler struct {
	db    *gorm.DB
	cache *cache.RedisCache
}

// NewHealthHandler 创建 HealthHandler 实例
func NewHealthHandler(db *gorm.DB, cache *cache.RedisCache) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Check 检查数据库与 Redis 连接
// @Router /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		response.ServiceUnavailable(c, "database unavailable")
		return
	}
	if err := h.cache.Ping(ctx); err != nil {
		response.ServiceUnavailable(c, "redis unavailable")
		return
	}

	response.Success(c, gin.H{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}
