// Package dto defines data transfer objects for the Alpha Vantage API responses.
// Field tags match the upstream labels exactly, numbered prefixes included.
package dto

// Envelope holds the informational fields Alpha Vantage returns in place of data,
// e.g. when the call frequency limit is hit or the API key is rejected.
type Envelope struct {
	Note         string `json:"Note,omitempty"`
	Information  string `json:"Information,omitempty"`
	ErrorMessage string `json:"Error Message,omitempty"`
}

// Message returns the first non-empty informational message.
func (e Envelope) Message() string {
	switch {
	case e.ErrorMessage != "":
		return e.ErrorMessage
	case e.Note != "":
		return e.Note
	default:
		return e.Information
	}
}

// GlobalQuote is the body of the "Global Quote" envelope.
type GlobalQuote struct {
	Symbol           string `json:"01. symbol"`
	Open             string `json:"02. open"`
	High             string `json:"03. high"`
	Low              string `json:"04. low"`
	Price            string `json:"05. price"`
	Volume           string `json:"06. volume"`
	LatestTradingDay string `json:"07. latest trading day"`
	PreviousClose    string `json:"08. previous close"`
	Change           string `json:"09. change"`
	ChangePercent    string `json:"10. change percent"`
}

// IsEmpty reports whether the quote carries no data, which is how the API answers unknown symbols.
func (q GlobalQuote) IsEmpty() bool {
	return q == GlobalQuote{}
}

// GlobalQuoteResponse represents the JSON response of function=GLOBAL_QUOTE.
type GlobalQuoteResponse struct {
	Quote *GlobalQuote `json:"Global Quote,omitempty"`
	Envelope
}

// ExchangeRate is the body of the "Realtime Currency Exchange Rate" envelope.
type ExchangeRate struct {
	FromCurrencyCode string `json:"1. From_Currency Code"`
	FromCurrencyName string `json:"2. From_Currency Name"`
	ToCurrencyCode   string `json:"3. To_Currency Code"`
	ToCurrencyName   string `json:"4. To_Currency Name"`
	Rate             string `json:"5. Exchange Rate"`
	LastRefreshed    string `json:"6. Last Refreshed"`
	TimeZone         string `json:"7. Time Zone"`
	BidPrice         string `json:"8. Bid Price"`
	AskPrice         string `json:"9. Ask Price"`
}

// ExchangeRateResponse represents the JSON response of function=CURRENCY_EXCHANGE_RATE.
type ExchangeRateResponse struct {
	Rate *ExchangeRate `json:"Realtime Currency Exchange Rate,omitempty"`
	Envelope
}

// NewsArticle is one entry of the NEWS_SENTIMENT feed.
type NewsArticle struct {
	Title                 string `json:"title"`
	URL                   string `json:"url"`
	TimePublished         string `json:"time_published"`
	Summary               string `json:"summary"`
	Source                string `json:"source"`
	OverallSentimentLabel string `json:"overall_sentiment_label"`
}

// NewsSentimentResponse represents the JSON response of function=NEWS_SENTIMENT.
type NewsSentimentResponse struct {
	Items string        `json:"items"`
	Feed  []NewsArticle `json:"feed"`
	Envelope
}
