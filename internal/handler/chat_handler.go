package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"crednest-server/internal/assistant"
	"crednest-server/internal/middleware"
	"crednest-server/internal/service"
	"crednest-server/pkg/response"
)

// ChatHandler 聊天助手请求处理器
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler 创建 ChatHandler 实例
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// SendMessage 发送消息
// @Summary 发送聊天消息
// @Description 消息命中 EMI / 贷款资格 / 理财建议规则时先执行本地计算，再交给模型生成回复
// @Tags 聊天
// @Security Bearer
// @Accept json
// @Produce json
// @Param body body service.SendMessageRequest true "消息"
// @Success 200 {object} response.Response{data=assistant.Reply}
// @Router /api/v1/chat/message [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req service.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Message is required")
		return
	}

	reply, err := h.chatService.SendMessage(c.Request.Context(), middleware.GetUserID(c), "", &req)
	if err != nil {
		writeChatError(c, err)
		return
	}

	response.Success(c, reply)
}

// writeChatError 把聊天错误映射为响应
func writeChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, assistant.ErrEmptyMessage):
		response.BadRequest(c, "Message is required")
	case errors.Is(err, service.ErrInvalidSessionID):
		response.BadRequest(c, err.Error())
	case errors.Is(err, assistant.ErrBackendFailed):
		response.AIFailed(c)
	default:
		_ = c.Error(err)
		response.InternalError(c, "failed to process message")
	}
}

// ListSessions 获取会话列表
// @Summary 获取会话列表
// @Tags 聊天
// @Security Bearer
// @Produce json
// @Success 200 {object} response.Response{data=[]model.SessionSummary}
// @Router /api/v1/chat/sessions [get]
func (h *ChatHandler) ListSessions(c *gin.Context) {
	sessions, err := h.chatService.ListSessions(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.InternalError(c, "获取会话列表失败")
		return
	}

	response.Success(c, sessions)
}

// GetHistory 获取会话历史
// @Summary 获取会话历史
// @Description 按时间正序返回会话的全部对话
// @Tags 聊天
// @Security Bearer
// @Produce json
// @Param sessionId path string true "会话标识"
// @Success 200 {object} response.Response{data=[]model.ChatTurn}
// @Router /api/v1/chat/history/{sessionId} [get]
func (h *ChatHandler) GetHistory(c *gin.Context) {
	turns, err := h.chatService.GetHistory(c.Request.Context(), middleware.GetUserID(c), c.Param("sessionId"))
	if err != nil {
		response.InternalError(c, "获取会话历史失败")
		return
	}

	response.Success(c, turns)
}

// DeleteSession 删除会话
// @Summary 删除会话
// @Description 删除会话的全部记录，重复删除返回成功
// @Tags 聊天
// @Security Bearer
// @Produce json
// @Param sessionId path string true "会话标识"
// @Success 200 {object} response.Response
// @Router /api/v1/chat/session/{sessionId} [delete]
func (h *ChatHandler) DeleteSession(c *gin.Context) {
	deleted, err := h.chatService.DeleteSession(c.Request.Context(), middleware.GetUserID(c), c.Param("sessionId"))
	if err != nil {
		response.InternalError(c, "删除会话失败")
		return
	}

	response.SuccessWithMessage(c, "会话已删除", gin.H{"deleted": deleted})
}
