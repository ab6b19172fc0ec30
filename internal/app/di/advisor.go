package di

import (
	"context"
	"fmt"

	"market_backend/internal/app/config"
	"market_backend/internal/feature/advisor/adapters/gemini"
	"market_backend/internal/feature/advisor/adapters/openai"
	"market_backend/internal/feature/advisor/usecase"
)

// NewChatModel は ADVISOR_PROVIDER に対応するモデルを返します。
// キーが未設定なら nil を返し、アドバイザーは ErrAdvisorNotConfigured で応答します。
func NewChatModel(ctx context.Context, cfg config.AdvisorConfig) (usecase.ChatModel, error) {
	if !cfg.Configured() {
		return nil, nil
	}
	switch cfg.Provider {
	case "gemini":
		m, err := gemini.NewChatModel(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, "")
		if err != nil {
			return nil, err
		}
		return m, nil
	case "openai", "":
		return openai.NewChatModel(openai.NewLLMClient(cfg.OpenAIAPIKey), cfg.OpenAIModel), nil
	default:
		return nil, fmt.Errorf("unsupported advisor provider %q", cfg.Provider)
	}
}
