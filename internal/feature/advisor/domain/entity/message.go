// Package entity defines the domain models for the advisor feature.
package entity

// Role は会話メッセージの発言者です。
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message は会話履歴の1件です。IsTyping は入力中表示用の仮メッセージで、モデルには送りません。
type Message struct {
	Role     Role
	Text     string
	IsTyping bool
}

// Portfolio は分散投資の相談に使うユーザーの前提条件です。空の項目はプロンプトに含めません。
type Portfolio struct {
	RiskTolerance      string
	TimeHorizon        string
	CurrentAllocations string
}
