// Package entity defines the domain models for the market feature.
package entity

// Kind は正規化済みレコードの種別です。
type Kind string

const (
	KindStock  Kind = "stock"
	KindIndex  Kind = "index"
	KindCrypto Kind = "crypto"
)

// Tone は変化率の符号から決まる表示上の分類です。
type Tone string

const (
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
	ToneNeutral  Tone = "neutral"
)

// CSSClass はフロントエンドで使う文字色クラスを返します。
func (t Tone) CSSClass() string {
	switch t {
	case TonePositive:
		return "text-green-500"
	case ToneNegative:
		return "text-red-500"
	default:
		return "text-gray-500"
	}
}

// NotAvailable は値が取得できなかった項目に入る表示文字列です。
const NotAvailable = "N/A"

// Quote は株式・指数・暗号資産に共通の正規化済みレコードです。
// 一度生成したら変更せず、更新時は新しい値で置き換えます。
type Quote struct {
	Kind   Kind   `json:"kind"`
	Symbol string `json:"symbol"`
	// Source は上流に問い合わせたシンボルです（指数なら追随ETF）。
	Source string `json:"source,omitempty"`
	Name   string `json:"name"`
	Price  string `json:"price"`
	// Change は符号付きの変化率文字列（例: "+1.23%"）または "N/A" です。
	Change string `json:"change"`
	Tone   Tone   `json:"tone"`
	// Unavailable は上流の応答に必要な項目が無かったことを示します。
	Unavailable bool `json:"unavailable,omitempty"`
	// Error はファンアウト取得でこの枝が失敗したときの理由です。
	Error string `json:"error,omitempty"`
	// Synthetic は Change が上流の実データではないことを示します。
	Synthetic bool `json:"synthetic,omitempty"`
}

// Errored は集計から除外すべきレコードかを返します。
func (q Quote) Errored() bool {
	return q.Error != "" || q.Unavailable
}
