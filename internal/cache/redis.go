// Package cache 提供 Redis 缓存操作的封装
// 处理 JWT 黑名单、银行目录缓存、聊天限流与跨实例消息广播
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"crednest-server/internal/config"
)

// RedisCache 封装 Redis 客户端，提供业务相关的缓存操作
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache 创建 RedisCache 实例并测试连接
// 参数:
//   - cfg: Redis 连接配置
//
// 返回:
//   - *RedisCache: 缓存实例
//   - error: 连接错误
func NewRedisCache(cfg config.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{client: client}, nil
}

// NewFromClient 使用已有客户端创建 RedisCache
func NewFromClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Close 关闭 Redis 连接
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ping 检查 Redis 连接
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// ==================== JWT 黑名单 ====================

// BlacklistToken 将 Token 加入黑名单
// 登出时调用，使当前 Token 失效
// 参数:
//   - ctx: 上下文
//   - tokenHash: Token 的哈希值（不存储原始 Token）
//   - expireAt: Token 的原始过期时间
func (c *RedisCache) BlacklistToken(ctx context.Context, tokenHash string, expireAt time.Time) error {
	ttl := time.Until(expireAt)
	if ttl <= 0 {
		// Token 已过期，无需加入黑名单
		return nil
	}
	return c.client.Set(ctx, "jwt:blacklist:"+tokenHash, "1", ttl).Err()
}

// IsTokenBlacklisted 检查 Token 是否在黑名单中
func (c *RedisCache) IsTokenBlacklisted(ctx context.Context, tokenHash string) bool {
	return c.client.Exists(ctx, "jwt:blacklist:"+tokenHash).Val() > 0
}

// ==================== 银行目录缓存 ====================
// 目录数据只在 seed-banks 时变化，列表结果按 (loanType, limit) 缓存

const bankListPrefix = "banks:list:"

func bankListKey(loanType string, limit int) string {
	if loanType == "" {
		loanType = "all"
	}
	return bankListPrefix + loanType + ":" + strconv.Itoa(limit)
}

// GetBankList 读取缓存的银行列表
// 返回:
//   - []byte: JSON 数据
//   - bool: 是否命中
func (c *RedisCache) GetBankList(ctx context.Context, loanType string, limit int) ([]byte, bool) {
	data, err := c.client.Get(ctx, bankListKey(loanType, limit)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetBankList 缓存银行列表
func (c *RedisCache) SetBankList(ctx context.Context, loanType string, limit int, data []byte, ttl time.Duration) error {
	return c.client.Set(ctx, bankListKey(loanType, limit), data, ttl).Err()
}

// InvalidateBankLists 清除所有银行列表缓存
func (c *RedisCache) InvalidateBankLists(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, bankListPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// ==================== 聊天限流 ====================
// 固定窗口计数：窗口内第一次 INCR 时设置过期时间

var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// AllowChatMessage 判断用户在当前窗口内是否还能发送消息
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//   - limit: 每个窗口允许的条数，<=0 表示不限
//   - window: 窗口长度
//
// 返回:
//   - bool: 是否放行；Redis 出错时返回 false
//   - error: Redis 错误
func (c *RedisCache) AllowChatMessage(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error) {
	windowMs := window.Milliseconds()
	if limit <= 0 || windowMs <= 0 {
		return true, nil
	}
	slot := time.Now().UTC().UnixMilli() / windowMs
	key := fmt.Sprintf("ratelimit:chat:%d:%d", userID, slot)

	count, err := fixedWindowScript.Run(ctx, c.client, []string{key}, windowMs).Int64()
	if err != nil {
		return false, err
	}
	return count <= int64(limit), nil
}

// ==================== Pub/Sub ====================
// 多实例部署时，把聊天事件广播给用户在其他实例上的 WebSocket 连接

const userChannelPrefix = "chat:user:"

// PublishUserEvent 向用户频道发布事件（JSON 序列化）
func (c *RedisCache) PublishUserEvent(ctx context.Context, userID int64, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return c.client.Publish(ctx, userChannelPrefix+strconv.FormatInt(userID, 10), data).Err()
}

// SubscribeUserEvents 订阅所有用户频道，调用方负责关闭
func (c *RedisCache) SubscribeUserEvents(ctx context.Context) *redis.PubSub {
	return c.client.PSubscribe(ctx, userChannelPrefix+"*")
}

// UserIDFromChannel 从频道名解析用户ID
func UserIDFromChannel(channel string) (int64, bool) {
	if !strings.HasPrefix(channel, userChannelPrefix) {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(channel, userChannelPrefix), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
