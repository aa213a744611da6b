package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"crednest-server/internal/assistant"
	"crednest-server/internal/cache"
	"crednest-server/internal/logger"
	"crednest-server/internal/service"
	"crednest-server/pkg/response"
)

// Hub 是 WebSocket 连接的中心管理器
// 负责：
// 1. 管理每个用户的所有连接
// 2. 处理聊天消息
// 3. 通过 Redis 把会话更新广播给用户在所有实例上的连接
type Hub struct {
	// userID -> 连接集合，一个用户可能同时打开多个页面
	clients map[int64]map[*Client]struct{}
	mu      sync.RWMutex

	chatService *service.ChatService
	cache       *cache.RedisCache
	rateLimit   int
	rateWindow  time.Duration
	log         *logger.Logger

	// ctx 在 Run 开始后有效，关闭时取消进行中的生成
	ctx context.Context
}

// HubOptions Hub 的限流参数
type HubOptions struct {
	RateLimit  int
	RateWindow time.Duration
	Logger     *logger.Logger
}

// NewHub 创建 Hub 实例
func NewHub(chatService *service.ChatService, cache *cache.RedisCache, opts HubOptions) *Hub {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Hub{
		clients:     make(map[int64]map[*Client]struct{}),
		chatService: chatService,
		cache:       cache,
		rateLimit:   opts.RateLimit,
		rateWindow:  opts.RateWindow,
		log:         opts.Logger,
		ctx:         context.Background(),
	}
}

// Run 订阅用户事件频道并把事件推送给本实例上的连接
// 订阅确认后才返回 nil，之后在后台运行直到 ctx 取消
func (h *Hub) Run(ctx context.Context) error {
	pubsub := h.cache.SubscribeUserEvents(ctx)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return err
	}
	h.ctx = ctx

	go func() {
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				h.closeAll()
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				userID, ok := cache.UserIDFromChannel(msg.Channel)
				if !ok {
					continue
				}
				var ev userEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					h.log.Warn().Err(err).Str("channel", msg.Channel).Msg("invalid user event")
					continue
				}
				h.deliver(userID, ev.Origin, ev.Message)
			}
		}
	}()
	return nil
}

// Register 注册客户端
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[client.userID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[client.userID] = set
	}
	set[client] = struct{}{}
	h.log.Debug().Int64("user_id", client.userID).Str("conn", client.id).Msg("client registered")
}

// Unregister 注销客户端并关闭
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	if set, ok := h.clients[client.userID]; ok {
		delete(set, client)
		if len(set) == 0 {
			delete(h.clients, client.userID)
		}
	}
	h.mu.Unlock()

	client.Close()
	h.log.Debug().Int64("user_id", client.userID).Str("conn", client.id).Msg("client unregistered")
}

// ConnectionCount 返回用户在本实例上的连接数
func (h *Hub) ConnectionCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// deliver 向用户的所有连接发送消息，跳过 origin
func (h *Hub) deliver(userID int64, origin string, msg *Message) {
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients[userID]))
	for c := range h.clients[userID] {
		if c.id != origin {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range targets {
		c.SendMessage(msg)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, set := range h.clients {
		for c := range set {
			c.Close()
		}
	}
	h.clients = make(map[int64]map[*Client]struct{})
}

// NotifySessionUpdated 实现 service.ChatNotifier
// 事件经 Redis 发布，所有实例（包括本实例）都会收到
func (h *Hub) NotifySessionUpdated(ctx context.Context, userID int64, origin string, reply *assistant.Reply) error {
	return h.cache.PublishUserEvent(ctx, userID, &userEvent{
		Origin:  origin,
		Message: NewMessage(TypeChatSessionUpdated, reply),
	})
}

// handleChatSend 处理 chat:send 消息
func (h *Hub) handleChatSend(client *Client, msg *inboundMessage) {
	var payload ChatSendPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		client.SendMessage(NewMessageWithID(TypeError, &ErrorPayload{
			Code:    response.CodeBadRequest,
			Message: "消息格式错误",
		}, msg.MessageID))
		return
	}

	allowed, err := h.cache.AllowChatMessage(client.ctx, client.userID, h.rateLimit, h.rateWindow)
	if err != nil {
		h.log.Warn().Err(err).Int64("user_id", client.userID).Msg("rate limiter unavailable")
		client.SendMessage(NewMessageWithID(TypeError, &ErrorPayload{
			Code:    response.CodeUnavailable,
			Message: "服务暂不可用，请稍后再试",
		}, msg.MessageID))
		return
	}
	if !allowed {
		client.SendMessage(NewMessageWithID(TypeError, &ErrorPayload{
			Code:    response.CodeTooManyRequests,
			Message: "请求过于频繁，请稍后再试",
		}, msg.MessageID))
		return
	}

	// 连接关闭时取消进行中的生成
	reply, err := h.chatService.SendMessage(client.ctx, client.userID, client.id, &service.SendMessageRequest{
		Message:   payload.Message,
		SessionID: payload.SessionID,
	})
	if err != nil {
		client.SendMessage(NewMessageWithID(TypeError, chatErrorPayload(err), msg.MessageID))
		return
	}

	client.SendMessage(NewMessageWithID(TypeChatReply, reply, msg.MessageID))
}

// chatErrorPayload 与 HTTP 接口使用相同的业务码
func chatErrorPayload(err error) *ErrorPayload {
	switch {
	case errors.Is(err, assistant.ErrEmptyMessage):
		return &ErrorPayload{Code: response.CodeBadRequest, Message: "Message is required"}
	case errors.Is(err, service.ErrInvalidSessionID):
		return &ErrorPayload{Code: response.CodeBadRequest, Message: err.Error()}
	case errors.Is(err, assistant.ErrBackendFailed):
		return &ErrorPayload{Code: response.CodeAIFailed, Message: "failed to process message"}
	default:
		return &ErrorPayload{Code: response.CodeInternalError, Message: "failed to process message"}
	}
}
