// Package http は外部API呼び出し用のHTTPクライアントを提供します。
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient は上流の市場データAPI呼び出し用に設定されたHTTPクライアントを作成します。
//
// 設定:
//   - Proxy: 環境変数（HTTP_PROXYなど）に従う
//   - Dialer.Timeout: TCP接続タイムアウト
//   - MaxIdleConnsPerHost: 単一ホストへの呼び出しが中心なのでホスト単位で確保
//   - Client.Timeout: リクエスト全体の上限（呼び出し元から渡される）
//
// 注意:
//   - http.DefaultClient はタイムアウトが無いので使わない
//   - 1リクエストごとの期限は呼び出し側の context でも制御する
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   16,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: timeout,
		ForceAttemptHTTP2:     true,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
