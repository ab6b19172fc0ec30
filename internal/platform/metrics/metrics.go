// Package metrics は市場データ層のPrometheusメトリクスを定義します。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequests は上流APIへのリクエスト数です（function, outcome 別）。
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "market_upstream_requests_total",
		Help: "Total number of upstream market data API requests",
	}, []string{"function", "outcome"})

	// UpstreamLatency は上流APIの応答時間です。
	UpstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "market_upstream_request_duration_seconds",
		Help:    "Latency of upstream market data API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"function"})

	// CacheLookups はレスポンスキャッシュの参照結果です（hit, miss, disabled）。
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "market_cache_lookups_total",
		Help: "Total number of response cache lookups",
	}, []string{"result"})

	// ThrottleWait はスロット取得までの待機時間です。
	ThrottleWait = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "market_throttle_wait_seconds",
		Help:    "Time spent waiting for an upstream request slot",
		Buckets: []float64{0, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	})

	// FanoutFailures はファンアウト取得で失敗した枝の数です。
	FanoutFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "market_fanout_failures_total",
		Help: "Total number of failed branches in fan-out fetches",
	}, []string{"operation"})

	// AdvisorRequests はアドバイザーへの問い合わせ数です（provider, outcome 別）。
	AdvisorRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "advisor_requests_total",
		Help: "Total number of investment advisor completions",
	}, []string{"provider", "outcome"})
)
