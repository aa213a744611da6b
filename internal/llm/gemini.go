package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// GeminiClient 基于 langchaingo 的 Gemini 客户端
type GeminiClient struct {
	model llms.Model
}

// NewGeminiClient 创建 Gemini 客户端
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("AI service not configured (missing Gemini API Key)")
	}
	m, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, err
	}
	return &GeminiClient{model: m}, nil
}

// NewGeminiClientWithModel 使用任意 langchaingo 模型创建客户端
func NewGeminiClientWithModel(model llms.Model) *GeminiClient {
	return &GeminiClient{model: model}
}

// Generate 发送单条提示词并返回文本
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
