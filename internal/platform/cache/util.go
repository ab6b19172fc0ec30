package cache

import (
	"strings"
	"time"
)

const (
	defaultNamespace = "market"
	defaultTTL       = 5 * time.Minute
)

// storeExpiry はストア側で保持する期間を返します。
// 鮮度判定は ResponseCache が行うため、ストアはTTLより長く保持してメモリ回収だけを担います。
func storeExpiry(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return 2 * ttl
}

// safe はRedisキーで問題となる文字をエスケープします。
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
