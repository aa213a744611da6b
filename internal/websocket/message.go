// Package websocket 提供 WebSocket 通信功能
// 聊天助手的实时通道：客户端发送消息，服务端返回回复，
// 并把会话更新推送到同一用户的其他连接
package websocket

import (
	"encoding/json"
	"time"
)

// MessageType 消息类型常量
const (
	// 客户端 → 服务端
	TypeChatSend  = "chat:send" // 发送聊天消息
	TypeHeartbeat = "heartbeat" // 心跳

	// 服务端 → 客户端
	TypeChatReply          = "chat:reply"           // 本连接发出的消息的回复
	TypeChatSessionUpdated = "chat:session_updated" // 同一用户在其他连接上产生的新回复

	// 通用
	TypeError = "error" // 错误消息
	TypePong  = "pong"  // 心跳响应
)

// Message WebSocket 消息结构
// 所有出站消息都使用这个统一的结构
type Message struct {
	Type      string      `json:"type"`                 // 消息类型
	Payload   interface{} `json:"payload"`              // 消息内容
	Timestamp int64       `json:"timestamp"`            // 时间戳（毫秒）
	MessageID string      `json:"message_id,omitempty"` // 消息ID，回复时原样带回
}

// inboundMessage 入站消息，Payload 延迟到确定类型后再解析
type inboundMessage struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	MessageID string          `json:"message_id,omitempty"`
}

// NewMessage 创建新消息
func NewMessage(msgType string, payload interface{}) *Message {
	return &Message{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now().UnixMilli(),
	}
}

// NewMessageWithID 创建带消息ID的新消息
func NewMessageWithID(msgType string, payload interface{}, messageID string) *Message {
	return &Message{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now().UnixMilli(),
		MessageID: messageID,
	}
}

// ==================== Payload 类型定义 ====================

// ChatSendPayload 发送聊天消息
type ChatSendPayload struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"` // 为空时服务端分配新会话
}

// ErrorPayload 错误消息 Payload
type ErrorPayload struct {
	Code    int    `json:"code"`    // 错误码，与 HTTP 接口的业务码一致
	Message string `json:"message"` // 错误信息
}

// userEvent 经 Redis 广播的用户事件
type userEvent struct {
	Origin  string   `json:"origin"` // 发起连接的标识，推送时跳过该连接
	Message *Message `json:"message"`
}
