package service

import (
	"context"
	"errors"

	"crednest-server/internal/assistant"
	"crednest-server/internal/logger"
	"crednest-server/internal/model"
	"crednest-server/internal/repository"
)

// 聊天服务相关错误
var (
	ErrInvalidSessionID = errors.New("会话标识过长")
)

// maxSessionIDLength 与 chat_turns.session_id 列宽一致
const maxSessionIDLength = 64

// ChatNotifier 聊天事件通知接口
// 一轮对话完成后，把结果推送到该用户的其他 WebSocket 连接
type ChatNotifier interface {
	// NotifySessionUpdated origin 为发起请求的连接标识，HTTP 请求为空
	NotifySessionUpdated(ctx context.Context, userID int64, origin string, reply *assistant.Reply) error
}

// ChatService 聊天服务
// 对话编排由 assistant.Orchestrator 完成，这里负责会话查询、删除和事件通知
type ChatService struct {
	orchestrator *assistant.Orchestrator
	chatRepo     *repository.ChatRepository
	notifier     ChatNotifier
	log          *logger.Logger
}

// NewChatService 创建 ChatService 实例
func NewChatService(orchestrator *assistant.Orchestrator, chatRepo *repository.ChatRepository, log *logger.Logger) *ChatService {
	return &ChatService{
		orchestrator: orchestrator,
		chatRepo:     chatRepo,
		log:          log,
	}
}

// SetNotifier 设置通知器
func (s *ChatService) SetNotifier(n ChatNotifier) {
	s.notifier = n
}

// SendMessageRequest 发送消息请求
type SendMessageRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"sessionId"`
}

// SendMessage 提交一条用户消息并返回助手回复
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//   - origin: 发起请求的连接标识，HTTP 请求传空串
//   - req: 消息内容与可选的会话标识
//
// 返回:
//   - *assistant.Reply: 助手回复
//   - error: assistant.ErrEmptyMessage / assistant.ErrBackendFailed / ErrInvalidSessionID
func (s *ChatService) SendMessage(ctx context.Context, userID int64, origin string, req *SendMessageRequest) (*assistant.Reply, error) {
	if len(req.SessionID) > maxSessionIDLength {
		return nil, ErrInvalidSessionID
	}

	reply, err := s.orchestrator.SubmitMessage(ctx, userID, req.SessionID, req.Message)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.NotifySessionUpdated(ctx, userID, origin, reply); err != nil {
			// 通知失败不影响本次回复
			s.log.Warn().Err(err).Int64("user_id", userID).Msg("notify session update failed")
		}
	}
	return reply, nil
}

// ListSessions 列出用户的会话摘要，最近活动的在前
func (s *ChatService) ListSessions(ctx context.Context, userID int64) ([]model.SessionSummary, error) {
	return s.chatRepo.ListSessionSummaries(ctx, userID)
}

// GetHistory 获取会话的全部对话记录
// 会话不存在时返回空列表
func (s *ChatService) GetHistory(ctx context.Context, userID int64, sessionID string) ([]model.ChatTurn, error) {
	turns, err := s.chatRepo.GetSessionTurns(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if turns == nil {
		turns = []model.ChatTurn{}
	}
	return turns, nil
}

// DeleteSession 删除会话的全部记录
// 返回:
//   - int64: 删除的条数，重复删除返回 0
func (s *ChatService) DeleteSession(ctx context.Context, userID int64, sessionID string) (int64, error) {
	return s.chatRepo.DeleteAllTurns(ctx, userID, sessionID)
}
