// Package response はフィーチャー間で共通のHTTPレスポンス型を定義します。
package response

// ErrorResponse はエラー時のレスポンスボディです。
type ErrorResponse struct {
	Error string `json:"error"`
}
