package usecase

import "errors"

var (
	// ErrConfigMissing は上流APIのキーが設定されていないことを示します。ネットワーク呼び出しの前に返します。
	ErrConfigMissing = errors.New("market data API key is not configured")
	// ErrDataUnavailable は上流からデータを取得できなかったことを示します。原因のエラーをラップします。
	ErrDataUnavailable = errors.New("market data unavailable")
	// ErrInvalidSymbol は銘柄コードが空であることを示します。
	ErrInvalidSymbol = errors.New("symbol is required")
)
