// Package gemini はGoogle Gemini APIを使った投資アドバイザーのモデルを提供します。
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"market_backend/internal/feature/advisor/domain/entity"
	"market_backend/internal/feature/advisor/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"

	maxOutputTokens = 1024
	temperature     = 0.7
)

// ChatModel はGeminiを使って会話の応答を生成します。
type ChatModel struct {
	client *genai.Client
	model  string
}

// ChatModelがusecase.ChatModelを実装していることをコンパイル時に検証します。
var _ usecase.ChatModel = (*ChatModel)(nil)

// NewChatModel はAPIキー認証のGeminiクライアントを生成します。
// baseURL は空なら公式エンドポイントを使います（テストで差し替え）。
func NewChatModel(ctx context.Context, apiKey, model, baseURL string) (*ChatModel, error) {
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &ChatModel{client: client, model: model}, nil
}

// Provider implements usecase.ChatModel.
func (m *ChatModel) Provider() string { return "gemini" }

// Complete はシステム指示と会話履歴を送り、応答テキストを返します。
func (m *ChatModel) Complete(ctx context.Context, system string, msgs []entity.Message) (string, error) {
	contents := make([]*genai.Content, 0, len(msgs))
	for _, msg := range msgs {
		role := genai.Role(genai.RoleUser)
		if msg.Role == entity.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Text, role))
	}

	resp, err := m.client.Models.GenerateContent(ctx, m.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		MaxOutputTokens:   maxOutputTokens,
		Temperature:       genai.Ptr[float32](temperature),
	})
	if err != nil {
		if unauthorized(err) {
			return "", fmt.Errorf("%w: %w", usecase.ErrInvalidAPIKey, err)
		}
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", usecase.ErrInvalidResponse
	}
	return text, nil
}

// unauthorized はキーの拒否（401/403、またはAPI_KEY_INVALID）かを判定します。
func unauthorized(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return isKeyRejected(apiErr)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return isKeyRejected(*apiErrPtr)
	}
	return false
}

func isKeyRejected(e genai.APIError) bool {
	if e.Code == http.StatusUnauthorized || e.Code == http.StatusForbidden {
		return true
	}
	// Gemini は無効なキーを 400 INVALID_ARGUMENT で返す
	return e.Code == http.StatusBadRequest && e.Status == "INVALID_ARGUMENT" && containsKeyReason(e.Message)
}

func containsKeyReason(msg string) bool {
	return strings.Contains(msg, "API key not valid") || strings.Contains(msg, "API_KEY_INVALID")
}
