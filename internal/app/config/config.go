// Package config はアプリケーション全体の設定を環境変数（および .env）から読み込みます。
// 設定は起動時に一度だけ構築され、値渡しで各コンポーネントに配られます。
package config

import (
	"net"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultAlphaVantageBaseURL は Alpha Vantage のクエリエンドポイントです。
const DefaultAlphaVantageBaseURL = "https://www.alphavantage.co/query"

// placeholderAPIKey はサンプル設定に残りがちなダミーキーです。未設定として扱います。
const placeholderAPIKey = "your_api_key_here"

// MarketConfig は市場データ取得層の設定です。
type MarketConfig struct {
	BaseURL               string        // 上流APIのベースURL
	APIKey                string        // 上流APIのキー（空なら未設定）
	CachingEnabled        bool          // レスポンスキャッシュの有効/無効
	CacheExpiration       time.Duration // キャッシュの有効期間（age <= TTL は fresh）
	RequestDelay          time.Duration // 上流への送信間隔の下限
	RequestTimeout        time.Duration // 1リクエストあたりのタイムアウト
	SyntheticCryptoChange bool          // 暗号資産の24h変化率にダミー値を入れるか
}

// HasAPIKey は利用可能なAPIキーが設定されているかを返します。
func (m MarketConfig) HasAPIKey() bool {
	k := strings.TrimSpace(m.APIKey)
	return k != "" && k != placeholderAPIKey
}

// ServerConfig はHTTPサーバーの設定です。
type ServerConfig struct {
	Addr string
}

// RedisConfig はRedis接続設定です。Host が空ならRedisは使いません。
type RedisConfig struct {
	Host      string
	Port      string
	Password  string
	Namespace string
}

// Enabled はRedisが設定されているかを返します。
func (r RedisConfig) Enabled() bool { return r.Host != "" }

// Addr は host:port 形式のアドレスを返します。
func (r RedisConfig) Addr() string { return net.JoinHostPort(r.Host, r.Port) }

// DatabaseConfig は銘柄カタログ用DBの設定です。DSN が空ならDBは使いません。
type DatabaseConfig struct {
	Driver        string // postgres | sqlite
	DSN           string
	RunMigrations bool
}

// Enabled はDBが設定されているかを返します。
func (d DatabaseConfig) Enabled() bool { return d.DSN != "" }

// AdvisorConfig は投資アドバイザー機能の設定です。
type AdvisorConfig struct {
	Provider     string // openai | gemini
	OpenAIAPIKey string
	OpenAIModel  string
	GeminiAPIKey string
	GeminiModel  string
	JWTSecret    string
}

// APIKey は選択中のプロバイダーのキーを返します。
func (a AdvisorConfig) APIKey() string {
	if a.Provider == "gemini" {
		return a.GeminiAPIKey
	}
	return a.OpenAIAPIKey
}

// Configured はアドバイザーが利用可能な状態かを返します。
func (a AdvisorConfig) Configured() bool {
	k := strings.TrimSpace(a.APIKey())
	return k != "" && k != placeholderAPIKey
}

// TracingConfig はOpenTelemetryの設定です。
type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

// LogConfig はslogの設定です。
type LogConfig struct {
	Level  string // debug | info | warn | error
	Format string // json | text
}

// Config はアプリケーション設定のルートです。
type Config struct {
	Market   MarketConfig
	Server   ServerConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Advisor  AdvisorConfig
	Tracing  TracingConfig
	Log      LogConfig
}

// Load は環境変数から設定を読み込みます。
func Load() Config {
	return load(viper.New())
}

func load(v *viper.Viper) Config {
	v.AutomaticEnv()

	v.SetDefault("alpha_vantage_base_url", DefaultAlphaVantageBaseURL)
	v.SetDefault("alpha_vantage_api_key", "")
	v.SetDefault("market_cache_enabled", true)
	v.SetDefault("market_cache_ttl", 5*time.Minute)
	v.SetDefault("market_request_delay", time.Second)
	v.SetDefault("market_request_timeout", 10*time.Second)
	v.SetDefault("market_synthetic_crypto_change", false)

	v.SetDefault("http_addr", ":8080")

	v.SetDefault("redis_host", "")
	v.SetDefault("redis_port", "6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_namespace", "market")

	v.SetDefault("db_driver", "postgres")
	v.SetDefault("database_url", "")
	v.SetDefault("run_migrations", false)

	v.SetDefault("advisor_provider", "openai")
	v.SetDefault("openai_api_key", "")
	v.SetDefault("openai_model", "gpt-4o")
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("gemini_model", "gemini-2.5-flash")
	v.SetDefault("advisor_jwt_secret", "")

	v.SetDefault("tracing_enabled", false)
	v.SetDefault("otel_exporter_otlp_endpoint", "localhost:4317")
	v.SetDefault("otel_service_name", "market-backend")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	return Config{
		Market: MarketConfig{
			BaseURL:               strings.TrimRight(v.GetString("alpha_vantage_base_url"), "/"),
			APIKey:                v.GetString("alpha_vantage_api_key"),
			CachingEnabled:        v.GetBool("market_cache_enabled"),
			CacheExpiration:       v.GetDuration("market_cache_ttl"),
			RequestDelay:          v.GetDuration("market_request_delay"),
			RequestTimeout:        v.GetDuration("market_request_timeout"),
			SyntheticCryptoChange: v.GetBool("market_synthetic_crypto_change"),
		},
		Server: ServerConfig{Addr: v.GetString("http_addr")},
		Redis: RedisConfig{
			Host:      v.GetString("redis_host"),
			Port:      v.GetString("redis_port"),
			Password:  v.GetString("redis_password"),
			Namespace: v.GetString("redis_namespace"),
		},
		Database: DatabaseConfig{
			Driver:        strings.ToLower(v.GetString("db_driver")),
			DSN:           v.GetString("database_url"),
			RunMigrations: v.GetBool("run_migrations"),
		},
		Advisor: AdvisorConfig{
			Provider:     strings.ToLower(v.GetString("advisor_provider")),
			OpenAIAPIKey: v.GetString("openai_api_key"),
			OpenAIModel:  v.GetString("openai_model"),
			GeminiAPIKey: v.GetString("gemini_api_key"),
			GeminiModel:  v.GetString("gemini_model"),
			JWTSecret:    v.GetString("advisor_jwt_secret"),
		},
		Tracing: TracingConfig{
			Enabled:     v.GetBool("tracing_enabled"),
			Endpoint:    v.GetString("otel_exporter_otlp_endpoint"),
			ServiceName: v.GetString("otel_service_name"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("log_level")),
			Format: strings.ToLower(v.GetString("log_format")),
		},
	}
}
