// Package dto はadvisorフィーチャーのリクエスト/レスポンス型を定義します。
package dto

// ChatMessage は会話履歴の1件です。
type ChatMessage struct {
	Role     string `json:"role" binding:"required,oneof=user assistant"`
	Text     string `json:"text"`
	IsTyping bool   `json:"is_typing,omitempty"`
}

// ChatRequest は POST /advisor/chat のリクエストボディです。
type ChatRequest struct {
	Message string        `json:"message" binding:"required"`
	History []ChatMessage `json:"history" binding:"omitempty,dive"`
}

// PortfolioRequest は POST /advisor/portfolio のリクエストボディです。
type PortfolioRequest struct {
	RiskTolerance      string `json:"risk_tolerance"`
	TimeHorizon        string `json:"time_horizon"`
	CurrentAllocations string `json:"current_allocations"`
}

// AdviceResponse はアドバイザーの応答です。
type AdviceResponse struct {
	Reply string `json:"reply"`
}
