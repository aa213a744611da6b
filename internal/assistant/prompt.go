package assistant

import (
	"fmt"
	"strings"

	"crednest-server/internal/model"
)

const personaPrompt = `You are CredNest AI, an expert financial advisor specializing in Indian finance.
You help users with budgeting, loans, investments, insurance, and savings.
You have access to tools for EMI calculation, loan eligibility checking, and financial tips.
Always provide accurate, helpful advice in a friendly and professional manner.
Use Indian currency (₹) and context when discussing finances.`

const toolPromptHeader = `Based on the tool result, provide a helpful, conversational response to the user.
Include the key numbers and explain them clearly. Use Indian currency format (₹).`

// BuildChatPrompt 拼装普通对话提示词
// 参数:
//   - history: 历史对话，按时间正序
//   - message: 当前用户消息
func BuildChatPrompt(history []model.ChatTurn, message string) string {
	var b strings.Builder
	b.WriteString(personaPrompt)
	b.WriteString("\n\n")

	if len(history) > 0 {
		pairs := make([]string, 0, len(history))
		for _, turn := range history {
			pairs = append(pairs, fmt.Sprintf("User: %s\nAssistant: %s", turn.Message, turn.Response))
		}
		b.WriteString(strings.Join(pairs, "\n\n"))
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "User: %s\n\nAssistant:", message)
	return b.String()
}

// BuildToolPrompt 拼装工具结果解释提示词
func BuildToolPrompt(message, toolName, resultJSON string) string {
	return fmt.Sprintf("%s\n\nUser asked: \"%s\"\n\nTool used: %s\nTool result: %s\n\nProvide a natural, helpful response:",
		toolPromptHeader, message, toolName, resultJSON)
}
