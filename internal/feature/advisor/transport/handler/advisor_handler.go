// Package handler はadvisorフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"market_backend/internal/feature/advisor/domain/entity"
	"market_backend/internal/feature/advisor/transport/http/dto"
	"market_backend/internal/feature/advisor/usecase"
	"market_backend/internal/platform/http/response"
)

// AdvisorUsecase は投資アドバイザーのユースケースインターフェースです。
type AdvisorUsecase interface {
	Ask(ctx context.Context, message string, history []entity.Message) (string, error)
	AnalyzeStock(ctx context.Context, symbol string) (string, error)
	PortfolioAdvice(ctx context.Context, p entity.Portfolio) (string, error)
}

// AdvisorHandler は投資アドバイザーのHTTPリクエストを処理します。
type AdvisorHandler struct {
	uc AdvisorUsecase
}

// NewAdvisorHandler は AdvisorHandler を生成します。
func NewAdvisorHandler(uc AdvisorUsecase) *AdvisorHandler {
	return &AdvisorHandler{uc: uc}
}

// Chat は会話履歴付きの質問に回答します。
//
// エンドポイント: POST /advisor/chat
func (h *AdvisorHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid request body"})
		return
	}

	history := make([]entity.Message, 0, len(req.History))
	for _, m := range req.History {
		history = append(history, entity.Message{Role: entity.Role(m.Role), Text: m.Text, IsTyping: m.IsTyping})
	}

	reply, err := h.uc.Ask(c.Request.Context(), req.Message, history)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AdviceResponse{Reply: reply})
}

// AnalyzeStock は銘柄の簡単な分析を返します。
//
// エンドポイント: POST /advisor/analysis/:symbol
func (h *AdvisorHandler) AnalyzeStock(c *gin.Context) {
	reply, err := h.uc.AnalyzeStock(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AdviceResponse{Reply: reply})
}

// Portfolio はポートフォリオ分散の助言を返します。
//
// エンドポイント: POST /advisor/portfolio
func (h *AdvisorHandler) Portfolio(c *gin.Context) {
	var req dto.PortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid request body"})
		return
	}

	reply, err := h.uc.PortfolioAdvice(c.Request.Context(), entity.Portfolio{
		RiskTolerance:      req.RiskTolerance,
		TimeHorizon:        req.TimeHorizon,
		CurrentAllocations: req.CurrentAllocations,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AdviceResponse{Reply: reply})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrAdvisorNotConfigured):
		c.JSON(http.StatusServiceUnavailable, response.ErrorResponse{Error: "AI advisor is not configured"})
	case errors.Is(err, usecase.ErrInvalidAPIKey):
		slog.Error("advisor API key rejected", "error", err)
		c.JSON(http.StatusBadGateway, response.ErrorResponse{Error: "Invalid API key"})
	case errors.Is(err, usecase.ErrInvalidResponse):
		c.JSON(http.StatusBadGateway, response.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("advisor request failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusBadGateway, response.ErrorResponse{Error: "failed to get response from AI advisor"})
	}
}
