package assistant

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"crednest-server/internal/logger"
	"crednest-server/internal/model"
)

var (
	ErrEmptyMessage  = errors.New("消息内容不能为空")
	ErrBackendFailed = errors.New("failed to process message")
)

// Generator 生成式文本后端
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TurnStore 对话记录存储
type TurnStore interface {
	// FindRecentTurns 返回会话最近 limit 条记录，按时间倒序
	FindRecentTurns(ctx context.Context, userID int64, sessionID string, limit int) ([]model.ChatTurn, error)
	// AppendTurn 追加一条记录，回填 ID 与创建时间
	AppendTurn(ctx context.Context, turn *model.ChatTurn) error
}

// BackendError 生成式后端调用失败
// errors.Is(err, ErrBackendFailed) 为真，Unwrap 返回原始错误
type BackendError struct {
	Err error
}

func (e *BackendError) Error() string {
	return ErrBackendFailed.Error() + ": " + e.Err.Error()
}

func (e *BackendError) Unwrap() error { return e.Err }

func (e *BackendError) Is(target error) bool { return target == ErrBackendFailed }

// Options 编排器参数
type Options struct {
	HistoryWindow int           // 拼入提示词的历史轮数，默认 5
	Timeout       time.Duration // 单次生成超时，默认 30s
	Logger        *logger.Logger
}

// Reply 一轮对话的结果
type Reply struct {
	SessionID string    `json:"sessionId"`
	Response  string    `json:"response"`
	ToolUsed  *string   `json:"toolUsed,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Orchestrator 对话编排器
// 每条消息: 路由 -> (工具执行 | 带历史的普通对话) -> 调用一次后端 -> 写入一条记录
type Orchestrator struct {
	router        *Router
	toolbox       Toolbox
	generator     Generator
	store         TurnStore
	historyWindow int
	timeout       time.Duration
	log           *logger.Logger
}

// NewOrchestrator 创建编排器实例
func NewOrchestrator(generator Generator, store TurnStore, opts Options) *Orchestrator {
	if opts.HistoryWindow <= 0 {
		opts.HistoryWindow = 5
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Orchestrator{
		router:        NewRouter(),
		toolbox:       NewToolbox(),
		generator:     generator,
		store:         store,
		historyWindow: opts.HistoryWindow,
		timeout:       opts.Timeout,
		log:           opts.Logger,
	}
}

// SubmitMessage 处理一条用户消息
// 参数:
//   - userID: 当前用户
//   - sessionID: 会话标识，为空时分配新的 UUID
//   - text: 用户消息
//
// 返回:
//   - *Reply: 助手回复
//   - error: ErrEmptyMessage / 包含 ErrBackendFailed 的 BackendError / 存储错误
func (o *Orchestrator) SubmitMessage(ctx context.Context, userID int64, sessionID, text string) (*Reply, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	sel := o.router.Route(text)

	var (
		prompt   string
		toolUsed *string
	)
	switch sel.(type) {
	case NoTool:
		recent, err := o.store.FindRecentTurns(ctx, userID, sessionID, o.historyWindow)
		if err != nil {
			return nil, errors.Wrap(err, "load chat history")
		}
		prompt = BuildChatPrompt(oldestFirst(recent), text)
	default:
		name := sel.ToolName()
		result, err := o.toolbox.Run(ctx, sel)
		if err != nil {
			return nil, errors.Wrapf(err, "run tool %s", name)
		}
		prompt = BuildToolPrompt(text, name, result)
		toolUsed = &name
	}

	response, err := o.generate(ctx, prompt)
	if err != nil {
		o.log.Warn().Err(err).Int64("user_id", userID).Str("session_id", sessionID).Msg("generation failed")
		return nil, err
	}

	turn := &model.ChatTurn{
		UserID:    userID,
		SessionID: sessionID,
		Message:   text,
		Response:  response,
		ToolUsed:  toolUsed,
		CreatedAt: time.Now(),
	}
	if err := o.store.AppendTurn(ctx, turn); err != nil {
		return nil, errors.Wrap(err, "save chat turn")
	}

	ev := o.log.Debug().Int64("user_id", userID).Str("session_id", sessionID)
	if toolUsed != nil {
		ev = ev.Str("tool", *toolUsed)
	}
	ev.Msg("chat turn completed")

	return &Reply{
		SessionID: sessionID,
		Response:  response,
		ToolUsed:  toolUsed,
		Timestamp: turn.CreatedAt,
	}, nil
}

// generate 在超时控制下调用后端
func (o *Orchestrator) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	out, err := o.generator.Generate(ctx, prompt)
	if err != nil {
		return "", &BackendError{Err: errors.WithStack(err)}
	}
	return out, nil
}

// oldestFirst 将倒序的历史记录翻转为正序
func oldestFirst(turns []model.ChatTurn) []model.ChatTurn {
	out := make([]model.ChatTurn, len(turns))
	for i, t := range turns {
		out[len(turns)-1-i] = t
	}
	return out
}
