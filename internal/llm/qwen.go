package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// QwenClient 通义千问 DashScope 客户端
type QwenClient struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewQwenClient 创建 QwenClient 实例
// 参数:
//   - apiKey: DashScope API Key
//   - model: 模型名称，如 qwen-turbo
//   - endpoint: 文本生成接口地址
//   - timeout: HTTP 超时
func NewQwenClient(apiKey, model, endpoint string, timeout time.Duration) *QwenClient {
	return &QwenClient{
		apiKey:   apiKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// dashScopeRequest DashScope 请求结构
type dashScopeRequest struct {
	Model string `json:"model"`
	Input struct {
		Messages []dashScopeMessage `json:"messages"`
	} `json:"input"`
	Parameters struct {
		ResultFormat string `json:"result_format"`
	} `json:"parameters"`
}

type dashScopeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// dashScopeResponse DashScope 响应结构
type dashScopeResponse struct {
	Output struct {
		Choices []struct {
			Message dashScopeMessage `json:"message"`
		} `json:"choices"`
	} `json:"output"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Generate 发送单条提示词并返回文本
func (c *QwenClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("AI service not configured (missing API Key)")
	}

	var body dashScopeRequest
	body.Model = c.model
	body.Input.Messages = []dashScopeMessage{{Role: "user", Content: prompt}}
	body.Parameters.ResultFormat = "message"

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call AI service: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read AI response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI service returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var out dashScopeResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("failed to parse AI response: %w", err)
	}
	if out.Code != "" {
		return "", fmt.Errorf("AI service error: %s - %s", out.Code, out.Message)
	}
	if len(out.Output.Choices) == 0 {
		return "", errors.New("AI returned no content")
	}

	return strings.TrimSpace(out.Output.Choices[0].Message.Content), nil
}
