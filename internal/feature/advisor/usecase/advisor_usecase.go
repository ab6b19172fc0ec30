// Package usecase は投資アドバイザーとの対話のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"market_backend/internal/feature/advisor/domain/entity"
	marketentity "market_backend/internal/feature/market/domain/entity"
	"market_backend/internal/platform/metrics"
)

// MaxHistory はモデルに送る直近の会話件数です。
const MaxHistory = 10

// ChatModel は会話を受け取り応答文を返す言語モデルを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type ChatModel interface {
	// Provider はメトリクスに使う提供元の名前です（"openai", "gemini"）。
	Provider() string
	Complete(ctx context.Context, system string, msgs []entity.Message) (string, error)
}

// QuoteFetcher は銘柄分析のプロンプトに載せる現在値を取得します。
type QuoteFetcher interface {
	FetchQuote(ctx context.Context, symbol string) (marketentity.Quote, error)
}

// AdvisorUsecase は投資アドバイザーとの対話を扱います。会話状態は保持しません。
type AdvisorUsecase struct {
	model  ChatModel
	quotes QuoteFetcher
	tracer trace.Tracer
}

// NewAdvisorUsecase は AdvisorUsecase を生成します。
// model が nil の場合、すべての問い合わせは ErrAdvisorNotConfigured を返します。
// quotes が nil の場合、銘柄分析は現在値なしで行います。
func NewAdvisorUsecase(model ChatModel, quotes QuoteFetcher, tracer trace.Tracer) *AdvisorUsecase {
	if tracer == nil {
		tracer = otel.Tracer("market_backend/advisor")
	}
	return &AdvisorUsecase{model: model, quotes: quotes, tracer: tracer}
}

// Ask は会話履歴を踏まえてユーザーの質問に回答します。
// 入力中表示のメッセージは除外し、直近 MaxHistory 件だけを文脈として送ります。
func (u *AdvisorUsecase) Ask(ctx context.Context, message string, history []entity.Message) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}
	ctx, span := u.tracer.Start(ctx, "advisor.Ask", trace.WithAttributes(attribute.Int("history", len(history))))
	defer span.End()

	msgs := recentHistory(history)
	msgs = append(msgs, entity.Message{Role: entity.RoleUser, Text: message})

	reply, err := u.complete(ctx, msgs)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return reply, nil
}

// AnalyzeStock は銘柄の簡単な分析を求めます。現在値が取得できればプロンプトに含めます。
func (u *AdvisorUsecase) AnalyzeStock(ctx context.Context, symbol string) (string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return "", ErrEmptyMessage
	}
	if u.model == nil {
		return "", ErrAdvisorNotConfigured
	}

	var quote *marketentity.Quote
	if u.quotes != nil {
		q, err := u.quotes.FetchQuote(ctx, symbol)
		if err != nil {
			// 現在値なしでも分析は続ける
			slog.Warn("failed to fetch quote for analysis", "symbol", symbol, "error", err)
		} else {
			quote = &q
		}
	}
	return u.Ask(ctx, stockAnalysisPrompt(symbol, quote), nil)
}

// PortfolioAdvice はポートフォリオの分散について助言を求めます。
func (u *AdvisorUsecase) PortfolioAdvice(ctx context.Context, p entity.Portfolio) (string, error) {
	return u.Ask(ctx, portfolioPrompt(p), nil)
}

func (u *AdvisorUsecase) complete(ctx context.Context, msgs []entity.Message) (string, error) {
	if u.model == nil {
		return "", ErrAdvisorNotConfigured
	}
	provider := u.model.Provider()

	reply, err := u.model.Complete(ctx, SystemPrompt, msgs)
	if err != nil {
		metrics.AdvisorRequests.WithLabelValues(provider, outcome(err)).Inc()
		slog.Error("advisor completion failed", "provider", provider, "error", err)
		return "", fmt.Errorf("advisor %s: %w", provider, err)
	}
	if strings.TrimSpace(reply) == "" {
		metrics.AdvisorRequests.WithLabelValues(provider, "invalid_response").Inc()
		return "", ErrInvalidResponse
	}
	metrics.AdvisorRequests.WithLabelValues(provider, "ok").Inc()
	return reply, nil
}

// recentHistory は入力中表示を除いた直近 MaxHistory 件を返します。
func recentHistory(history []entity.Message) []entity.Message {
	out := make([]entity.Message, 0, MaxHistory+1)
	for _, m := range history {
		if m.IsTyping {
			continue
		}
		out = append(out, m)
	}
	if len(out) > MaxHistory {
		out = append(out[:0], out[len(out)-MaxHistory:]...)
	}
	return out
}

func outcome(err error) string {
	switch {
	case errors.Is(err, ErrInvalidAPIKey):
		return "invalid_api_key"
	case errors.Is(err, ErrInvalidResponse):
		return "invalid_response"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	default:
		return "error"
	}
}
