package usecase

import "errors"

var (
	// ErrAdvisorNotConfigured はモデルのAPIキーが未設定（またはプレースホルダー）であることを示します。
	ErrAdvisorNotConfigured = errors.New("advisor API key not configured")
	// ErrInvalidAPIKey はモデルの提供元がAPIキーを拒否したことを示します。
	ErrInvalidAPIKey = errors.New("invalid advisor API key")
	// ErrInvalidResponse はモデルの応答に本文が無かったことを示します。
	ErrInvalidResponse = errors.New("invalid response format from advisor model")
	// ErrEmptyMessage は質問文が空であることを示します。
	ErrEmptyMessage = errors.New("message is required")
)
