package alphavantage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"market_backend/internal/platform/externalapi/alphavantage/dto"
	"market_backend/internal/platform/metrics"
)

// Upstream function names.
const (
	FunctionGlobalQuote   = "GLOBAL_QUOTE"
	FunctionExchangeRate  = "CURRENCY_EXCHANGE_RATE"
	FunctionNewsSentiment = "NEWS_SENTIMENT"
)

// Client は Alpha Vantage のクエリエンドポイントを呼び出すクライアントです。
// すべての呼び出しは function パラメータで区別される単一URLへのGETです。
type Client struct {
	cfg  Config
	http *resty.Client
}

// NewClient は指定された設定とHTTPクライアントで Client を生成します。
// cfg.Timeout が正ならリクエスト全体のタイムアウトとして httpClient に設定します。
func NewClient(cfg Config, httpClient *http.Client) *Client {
	rc := resty.NewWithClient(httpClient).
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		rc.SetTimeout(cfg.Timeout)
	}
	return &Client{cfg: cfg, http: rc}
}

// GlobalQuote は function=GLOBAL_QUOTE で銘柄の最新クォートを取得します。
func (c *Client) GlobalQuote(ctx context.Context, symbol string) (dto.GlobalQuoteResponse, error) {
	var out dto.GlobalQuoteResponse
	if err := c.query(ctx, FunctionGlobalQuote, map[string]string{"symbol": symbol}, &out); err != nil {
		return dto.GlobalQuoteResponse{}, err
	}
	if out.Quote == nil {
		if msg := out.Message(); msg != "" {
			return dto.GlobalQuoteResponse{}, &APIError{Function: FunctionGlobalQuote, Message: msg}
		}
	}
	return out, nil
}

// ExchangeRate は function=CURRENCY_EXCHANGE_RATE で from→to の為替レートを取得します。
func (c *Client) ExchangeRate(ctx context.Context, from, to string) (dto.ExchangeRateResponse, error) {
	var out dto.ExchangeRateResponse
	params := map[string]string{"from_currency": from, "to_currency": to}
	if err := c.query(ctx, FunctionExchangeRate, params, &out); err != nil {
		return dto.ExchangeRateResponse{}, err
	}
	if out.Rate == nil {
		if msg := out.Message(); msg != "" {
			return dto.ExchangeRateResponse{}, &APIError{Function: FunctionExchangeRate, Message: msg}
		}
	}
	return out, nil
}

// NewsSentiment は function=NEWS_SENTIMENT でトピック別のニュースフィードを取得します。
func (c *Client) NewsSentiment(ctx context.Context, topics string) (dto.NewsSentimentResponse, error) {
	var out dto.NewsSentimentResponse
	if err := c.query(ctx, FunctionNewsSentiment, map[string]string{"topics": topics}, &out); err != nil {
		return dto.NewsSentimentResponse{}, err
	}
	if out.Feed == nil {
		if msg := out.Message(); msg != "" {
			return dto.NewsSentimentResponse{}, &APIError{Function: FunctionNewsSentiment, Message: msg}
		}
	}
	return out, nil
}

// query は共通のGETリクエストを発行し、レスポンスを out にデコードします。
func (c *Client) query(ctx context.Context, function string, params map[string]string, out any) error {
	q := make(map[string]string, len(params)+2)
	for k, v := range params {
		q[k] = v
	}
	q["function"] = function
	q["apikey"] = c.cfg.APIKey

	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(q).
		Get(c.cfg.BaseURL)
	metrics.UpstreamLatency.WithLabelValues(function).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(function, "transport_error").Inc()
		return fmt.Errorf("alphavantage %s: %w", function, err)
	}

	if !resp.IsSuccess() {
		metrics.UpstreamRequests.WithLabelValues(function, "http_error").Inc()
		return &HTTPError{Function: function, StatusCode: resp.StatusCode()}
	}

	body := resp.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		metrics.UpstreamRequests.WithLabelValues(function, "malformed").Inc()
		return fmt.Errorf("%w: %s returned an empty body", ErrMalformedPayload, function)
	}
	// JSONレスポンスをDTOにデコード
	if err := json.Unmarshal(body, out); err != nil {
		metrics.UpstreamRequests.WithLabelValues(function, "malformed").Inc()
		return fmt.Errorf("%w: %s: %v", ErrMalformedPayload, function, err)
	}

	metrics.UpstreamRequests.WithLabelValues(function, "ok").Inc()
	return nil
}
