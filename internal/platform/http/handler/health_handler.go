// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// CheckFunc は依存先の疎通確認です。nil を返せば正常です。
type CheckFunc func(ctx context.Context) error

// checkTimeout は1つの依存先チェックの上限です。
const checkTimeout = 2 * time.Second

// Health は依存先チェックを含む /healthz ハンドラーを返します。
// GET はチェック結果を返し、1つでも失敗すれば 503 と "degraded" になります。
// HEAD/OPTIONS はチェックせずに応答します。
func Health(checks map[string]CheckFunc) gin.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		switch c.Request.Method {
		case http.MethodHead:
			c.Status(http.StatusOK)
			return
		case http.MethodOptions:
			c.Status(http.StatusNoContent)
			return
		}

		status, code := "ok", http.StatusOK
		results := make(map[string]string, len(names))
		for _, name := range names {
			ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
			err := checks[name](ctx)
			cancel()
			if err != nil {
				results[name] = err.Error()
				status, code = "degraded", http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}

		body := gin.H{"status": status}
		if len(results) > 0 {
			body["checks"] = results
		}
		c.JSON(code, body)
	}
}
