package repository

import (
	"context"

	"gorm.io/gorm"

	"crednest-server/internal/model"
)

// previewLength 会话预览截取的字符数
const previewLength = 100

// ChatRepository 对话记录数据访问层
// 会话不单独建表，所有查询都基于 (user_id, session_id) 分组
type ChatRepository struct {
	db *gorm.DB
}

// NewChatRepository 创建 ChatRepository 实例
func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// AppendTurn 追加一条对话记录
// 参数:
//   - ctx: 上下文
//   - turn: 对话记录，ID 与 CreatedAt 会被自动填充
func (r *ChatRepository) AppendTurn(ctx context.Context, turn *model.ChatTurn) error {
	return r.db.WithContext(ctx).Create(turn).Error
}

// FindRecentTurns 获取会话最近的 N 条记录
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//   - sessionID: 会话标识
//   - limit: 最多返回的条数
//
// 返回:
//   - []model.ChatTurn: 按时间倒序（最新的在前）
//   - error: 数据库错误
func (r *ChatRepository) FindRecentTurns(ctx context.Context, userID int64, sessionID string, limit int) ([]model.ChatTurn, error) {
	var turns []model.ChatTurn
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		Order("id DESC").
		Limit(limit).
		Find(&turns).Error
	return turns, err
}

// GetSessionTurns 获取会话的全部记录
// 按时间正序排列，方便展示对话
func (r *ChatRepository) GetSessionTurns(ctx context.Context, userID int64, sessionID string) ([]model.ChatTurn, error) {
	var turns []model.ChatTurn
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		Order("id ASC").
		Find(&turns).Error
	return turns, err
}

// DeleteAllTurns 删除会话的全部记录
// 没有匹配的记录不算错误，重复删除同一会话是安全的
// 返回:
//   - int64: 删除的条数
//   - error: 数据库错误
func (r *ChatRepository) DeleteAllTurns(ctx context.Context, userID int64, sessionID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		Delete(&model.ChatTurn{})
	return result.RowsAffected, result.Error
}

// sessionGroup 会话分组查询的扫描目标
type sessionGroup struct {
	SessionID    string
	LastID       int64
	MessageCount int64
}

// ListSessionSummaries 列出用户的所有会话摘要
// 先按 session_id 分组取最后一条记录的 ID 与条数，再按 ID 取回最后一轮的内容，
// 结果按最后活动时间倒序
func (r *ChatRepository) ListSessionSummaries(ctx context.Context, userID int64) ([]model.SessionSummary, error) {
	var groups []sessionGroup
	err := r.db.WithContext(ctx).
		Model(&model.ChatTurn{}).
		Select("session_id, MAX(id) AS last_id, COUNT(*) AS message_count").
		Where("user_id = ?", userID).
		Group("session_id").
		Order("last_id DESC").
		Scan(&groups).Error
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return []model.SessionSummary{}, nil
	}

	ids := make([]int64, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.LastID)
	}

	var lastTurns []model.ChatTurn
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&lastTurns).Error; err != nil {
		return nil, err
	}
	byID := make(map[int64]model.ChatTurn, len(lastTurns))
	for _, t := range lastTurns {
		byID[t.ID] = t
	}

	summaries := make([]model.SessionSummary, 0, len(groups))
	for _, g := range groups {
		last, ok := byID[g.LastID]
		if !ok {
			// 两次查询之间会话被删除
			continue
		}
		summaries = append(summaries, model.SessionSummary{
			SessionID:    g.SessionID,
			LastMessage:  last.Message,
			LastResponse: last.Response,
			Preview:      truncateRunes(last.Message, previewLength),
			MessageCount: g.MessageCount,
			LastActivity: last.CreatedAt,
		})
	}
	return summaries, nil
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
