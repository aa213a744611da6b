package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"crednest-server/internal/config"
)

func TestQwenClient_Generate(t *testing.T) {
	var got dashScopeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"output":{"choices":[{"message":{"role":"assistant","content":"  Your EMI is ₹10,258.  "}}]}}`))
	}))
	defer srv.Close()

	c := NewQwenClient("sk-test", "qwen-turbo", srv.URL, 5*time.Second)
	out, err := c.Generate(context.Background(), "hello")
	require.NoError(t, err)

	assert.Equal(t, "Your EMI is ₹10,258.", out)
	assert.Equal(t, "qwen-turbo", got.Model)
	require.Len(t, got.Input.Messages, 1)
	assert.Equal(t, "hello", got.Input.Messages[0].Content)
	assert.Equal(t, "message", got.Parameters.ResultFormat)
}

func TestQwenClient_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"http status", http.StatusInternalServerError, `oops`},
		{"api error code", http.StatusOK, `{"code":"InvalidApiKey","message":"bad key"}`},
		{"no choices", http.StatusOK, `{"output":{"choices":[]}}`},
		{"bad json", http.StatusOK, `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewQwenClient("k", "m", srv.URL, time.Second).Generate(context.Background(), "p")
			assert.Error(t, err)
		})
	}
}

func TestQwenClient_MissingKey(t *testing.T) {
	_, err := NewQwenClient("", "m", "http://127.0.0.1:1", time.Second).Generate(context.Background(), "p")
	assert.Error(t, err)
}

func TestQwenClient_ContextTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewQwenClient("k", "m", srv.URL, 10*time.Second).Generate(ctx, "p")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

// stubModel 实现 llms.Model，记录收到的提示词
type stubModel struct {
	reply  string
	err    error
	prompt string
}

func (m *stubModel) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				m.prompt += text.Text
			}
		}
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: m.reply}}}, nil
}

func (m *stubModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func TestGeminiClient_Generate(t *testing.T) {
	m := &stubModel{reply: "\nNamaste!\n"}
	out, err := NewGeminiClientWithModel(m).Generate(context.Background(), "User: hi\n\nAssistant:")
	require.NoError(t, err)
	assert.Equal(t, "Namaste!", out)
	assert.Equal(t, "User: hi\n\nAssistant:", m.prompt)
}

func TestGeminiClient_Error(t *testing.T) {
	_, err := NewGeminiClientWithModel(&stubModel{err: errors.New("quota")}).Generate(context.Background(), "p")
	assert.EqualError(t, err, "quota")
}

func TestNew(t *testing.T) {
	g, err := New(context.Background(), config.AIConfig{Provider: config.ProviderQwen, QwenAPIKey: "k", Timeout: time.Second})
	require.NoError(t, err)
	q, ok := g.(*QwenClient)
	require.True(t, ok)
	assert.Equal(t, DefaultQwenModel, q.model)

	_, err = New(context.Background(), config.AIConfig{Provider: config.ProviderGemini})
	assert.Error(t, err, "gemini requires an api key")

	_, err = New(context.Background(), config.AIConfig{Provider: "other"})
	assert.Error(t, err)
}
