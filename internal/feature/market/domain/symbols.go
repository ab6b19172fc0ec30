// Package domain holds the static symbol tables of the market feature.
package domain

// IndexInfo は指数と、それに追随するETFの対応です。
type IndexInfo struct {
	ETF    string // 上流に問い合わせるシンボル
	Name   string
	Symbol string
}

// MarketIndices は取得対象の指数（表示順）です。
var MarketIndices = []IndexInfo{
	{ETF: "SPY", Name: "S&P 500", Symbol: "SPX"},
	{ETF: "DIA", Name: "Dow Jones", Symbol: "DJI"},
	{ETF: "QQQ", Name: "Nasdaq", Symbol: "IXIC"},
	{ETF: "IWM", Name: "Russell 2000", Symbol: "RUT"},
}

// CryptoSymbols は取得対象の暗号資産（表示順）です。
var CryptoSymbols = []string{"BTC", "ETH", "BNB", "XRP", "SOL", "ADA", "DOGE", "MATIC", "SHIB", "DOT"}

// DefaultPopularStocks は銘柄指定が無いときに使う人気銘柄です。
var DefaultPopularStocks = []string{"AAPL", "MSFT", "AMZN", "NVDA", "TSLA", "VOO", "VVV", "META"}

// QuoteCurrency は暗号資産の換算先通貨です。
const QuoteCurrency = "USD"

var companyNames = map[string]string{
	"AAPL": "Apple Inc.",
	"MSFT": "Microsoft",
	"AMZN": "Amazon",
	"NVDA": "NVIDIA",
	"TSLA": "Tesla",
	"VOO":  "Vanguard S&P 500 ETF",
	"VVV":  "Vanguard Value ETF",
	"META": "Meta Platforms",
}

var cryptoNames = map[string]string{
	"BTC":   "Bitcoin",
	"ETH":   "Ethereum",
	"BNB":   "Binance Coin",
	"XRP":   "XRP",
	"SOL":   "Solana",
	"ADA":   "Cardano",
	"DOGE":  "Dogecoin",
	"MATIC": "Polygon",
	"SHIB":  "Shiba Inu",
	"DOT":   "Polkadot",
}

// CompanyName は銘柄の表示名を返します。未知の銘柄ならシンボルをそのまま返します。
func CompanyName(symbol string) string {
	if name, ok := companyNames[symbol]; ok {
		return name
	}
	return symbol
}

// CryptoName は暗号資産の表示名を返します。未知ならシンボルをそのまま返します。
func CryptoName(symbol string) string {
	if name, ok := cryptoNames[symbol]; ok {
		return name
	}
	return symbol
}
