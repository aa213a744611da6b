// Package llm 封装生成式文本后端
// 支持 Gemini（通过 langchaingo）与通义千问（DashScope HTTP 接口），
// 对外只暴露单次同步生成接口
package llm

import (
	"context"
	"fmt"

	"crednest-server/internal/config"
)

// Generator 单次提示词生成
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// 默认模型
const (
	DefaultGeminiModel = "gemini-1.5-flash"
	DefaultQwenModel   = "qwen-turbo"
)

// New 按配置创建后端
// 参数:
//   - ctx: 上下文，Gemini 客户端初始化时使用
//   - cfg: AI 配置
func New(ctx context.Context, cfg config.AIConfig) (Generator, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		model := cfg.Model
		if model == "" {
			model = DefaultGeminiModel
		}
		return NewGeminiClient(ctx, cfg.GeminiAPIKey, model)
	case config.ProviderQwen:
		model := cfg.Model
		if model == "" {
			model = DefaultQwenModel
		}
		return NewQwenClient(cfg.QwenAPIKey, model, cfg.BaseURL, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported ai provider %q", cfg.Provider)
	}
}
