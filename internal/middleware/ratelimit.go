package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"crednest-server/internal/cache"
	"crednest-server/internal/logger"
	"crednest-server/pkg/response"
)

// ChatRateLimitMiddleware 按用户限制聊天消息提交频率
// 必须挂在 AuthMiddleware 之后；Redis 不可用时返回 503 拒绝请求
// 参数:
//   - redisCache: Redis 缓存实例
//   - limit: 每个窗口允许的消息数，<=0 表示不限
//   - window: 窗口长度
func ChatRateLimitMiddleware(redisCache *cache.RedisCache, limit int, window time.Duration, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		allowed, err := redisCache.AllowChatMessage(c.Request.Context(), userID, limit, window)
		if err != nil {
			log.Warn().Err(err).Int64("user_id", userID).Msg("rate limiter unavailable")
			response.ServiceUnavailable(c, "服务暂不可用，请稍后再试")
			c.Abort()
			return
		}
		if !allowed {
			response.TooManyRequests(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
