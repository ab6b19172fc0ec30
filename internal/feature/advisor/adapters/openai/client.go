// Package openai はOpenAI Chat Completions APIを使った投資アドバイザーのモデルを提供します。
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"market_backend/internal/feature/advisor/domain/entity"
	"market_backend/internal/feature/advisor/usecase"
)

const (
	// DefaultModel はOpenAIのデフォルトモデルです。
	DefaultModel = "gpt-4o"

	maxTokens   = 1024
	temperature = 0.7
)

// LLMClient はChat Completions APIを抽象化します（テストで差し替え可能）。
type LLMClient interface {
	CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

// ChatModel はOpenAIを使って会話の応答を生成します。
type ChatModel struct {
	llm   LLMClient
	model string
}

// ChatModelがusecase.ChatModelを実装していることをコンパイル時に検証します。
var _ usecase.ChatModel = (*ChatModel)(nil)

// NewChatModel は ChatModel を生成します。model が空なら DefaultModel を使います。
func NewChatModel(llm LLMClient, model string) *ChatModel {
	if model == "" {
		model = DefaultModel
	}
	return &ChatModel{llm: llm, model: model}
}

// Provider implements usecase.ChatModel.
func (m *ChatModel) Provider() string { return "openai" }

// Complete はシステムプロンプトと会話履歴を送り、最初の候補の本文を返します。
func (m *ChatModel) Complete(ctx context.Context, system string, msgs []entity.Message) (string, error) {
	completion, err := m.llm.CreateChatCompletion(ctx, openai.ChatCompletionNewParams{
		Model:       m.model,
		Messages:    buildMessages(system, msgs),
		MaxTokens:   openai.Int(maxTokens),
		Temperature: openai.Float(temperature),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			return "", fmt.Errorf("%w: %w", usecase.ErrInvalidAPIKey, err)
		}
		return "", fmt.Errorf("openai API request failed: %w", err)
	}
	if completion == nil || len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", usecase.ErrInvalidResponse
	}
	return completion.Choices[0].Message.Content, nil
}

func buildMessages(system string, msgs []entity.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs)+1)
	out = append(out, openai.SystemMessage(system))
	for _, msg := range msgs {
		switch msg.Role {
		case entity.RoleAssistant:
			out = append(out, openai.AssistantMessage(msg.Text))
		default:
			out = append(out, openai.UserMessage(msg.Text))
		}
	}
	return out
}

// sdkClient は公式SDKのChat Completionsサービスをラップします。
type sdkClient struct {
	client openai.Client
}

// NewLLMClient はAPIキーでSDKクライアントを生成します。opts はテストでのベースURL差し替え等に使います。
func NewLLMClient(apiKey string, opts ...option.RequestOption) LLMClient {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &sdkClient{client: openai.NewClient(opts...)}
}

func (c *sdkClient) CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	return c.client.Chat.Completions.New(ctx, params)
}
