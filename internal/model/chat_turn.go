package model

import (
	"time"
)

// ChatTurn 一轮对话记录
// 对应数据库表 chat_turns
// 一条记录 = 用户消息 + 助手回复，写入后不再修改。
// 会话没有独立的表，所有 SessionID 相同的记录构成一个会话。
type ChatTurn struct {
	// ID 自增主键，同时作为会话内的顺序依据
	ID int64 `gorm:"primaryKey" json:"id"`

	// UserID 所属用户
	UserID int64 `gorm:"index:idx_chat_user_session,priority:1;not null" json:"user_id"`

	// SessionID 会话标识，由客户端提供或服务端生成的 UUID
	SessionID string `gorm:"size:64;index:idx_chat_user_session,priority:2;not null" json:"session_id"`

	// Message 用户消息
	Message string `gorm:"type:text;not null" json:"message"`

	// Response 助手回复
	Response string `gorm:"type:text;not null" json:"response"`

	// ToolUsed 本轮使用的工具名，普通对话为 NULL
	ToolUsed *string `gorm:"size:50" json:"tool_used,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName 指定表名
func (ChatTurn) TableName() string {
	return "chat_turns"
}

// SessionSummary 会话摘要，由 chat_turns 聚合得到
type SessionSummary struct {
	SessionID    string    `json:"session_id"`
	LastMessage  string    `json:"last_message"`
	LastResponse string    `json:"last_response"`
	Preview      string    `json:"preview"`
	MessageCount int64     `json:"message_count"`
	LastActivity time.Time `json:"last_activity"`
}
