// Package formatter は上流APIのレスポンスを表示用の正規化済みレコードに変換します。
//
// すべての関数は純粋かつ全域的で、想定外の形の入力でも panic せず、
// Price / Change を "N/A"、Tone を neutral にした「取得不可」レコードを返します。
package formatter

import (
	"strings"

	"market_backend/internal/feature/market/domain"
	"market_backend/internal/feature/market/domain/entity"
	"market_backend/internal/platform/externalapi/alphavantage/dto"
)

// NotAvailable は取得できなかった値の表示文字列です。
const NotAvailable = entity.NotAvailable

// ChangeGenerator は上流が提供しない24h変化率の代わりに使う値を生成します。
type ChangeGenerator func() (change string, tone entity.Tone)

// quoteFields は GLOBAL_QUOTE から取り出した数値です。
type quoteFields struct {
	price  string // 小数2桁に丸めた価格
	change string // 符号付きの変化率
	tone   entity.Tone
}

// extractQuote は価格・変化量・変化率を取り出します。必要な項目が欠けていれば ok=false です。
func extractQuote(q *dto.GlobalQuote) (quoteFields, bool) {
	if q == nil || q.IsEmpty() {
		return quoteFields{}, false
	}
	price, ok := parseDecimal(q.Price)
	if !ok {
		return quoteFields{}, false
	}
	change, ok := parseDecimal(q.Change)
	if !ok {
		return quoteFields{}, false
	}
	pct := strings.TrimSpace(strings.Replace(q.ChangePercent, "%", "", 1))
	if _, ok := parseDecimal(pct); !ok {
		return quoteFields{}, false
	}

	// 符号は変化量から決め、変化率文字列の符号はそれに揃える
	pct = strings.TrimLeft(pct, "+-")
	if change.Sign() >= 0 {
		return quoteFields{price: price.StringFixed(2), change: "+" + pct + "%", tone: entity.TonePositive}, true
	}
	return quoteFields{price: price.StringFixed(2), change: "-" + pct + "%", tone: entity.ToneNegative}, true
}

// Quote は GLOBAL_QUOTE のレスポンスを株式レコードに変換します。
func Quote(symbol string, res dto.GlobalQuoteResponse) entity.Quote {
	if res.Quote != nil && strings.TrimSpace(res.Quote.Symbol) != "" {
		symbol = strings.TrimSpace(res.Quote.Symbol)
	}
	out := entity.Quote{
		Kind:   entity.KindStock,
		Symbol: symbol,
		Source: symbol,
		Name:   domain.CompanyName(symbol),
	}

	f, ok := extractQuote(res.Quote)
	if !ok {
		return unavailable(out)
	}
	out.Price, out.Change, out.Tone = f.price, f.change, f.tone
	return out
}

// Index は追随ETFの GLOBAL_QUOTE を指数レコードに変換します。価格は3桁区切りで表示します。
func Index(info domain.IndexInfo, res dto.GlobalQuoteResponse) entity.Quote {
	out := entity.Quote{
		Kind:   entity.KindIndex,
		Symbol: info.Symbol,
		Source: info.ETF,
		Name:   info.Name,
	}

	f, ok := extractQuote(res.Quote)
	if !ok {
		return unavailable(out)
	}
	out.Price, out.Change, out.Tone = groupThousands(f.price), f.change, f.tone
	return out
}

// Crypto は CURRENCY_EXCHANGE_RATE のレスポンスを暗号資産レコードに変換します。
//
// 上流は24h変化率を返さないため Change は常に Synthetic として扱います。
// gen が nil なら "N/A"、そうでなければ gen の値を入れます。
func Crypto(symbol string, res dto.ExchangeRateResponse, gen ChangeGenerator) entity.Quote {
	out := entity.Quote{
		Kind:   entity.KindCrypto,
		Symbol: symbol,
		Source: symbol,
		Name:   domain.CryptoName(symbol),
	}

	r := res.Rate
	if r == nil || *r == (dto.ExchangeRate{}) {
		return unavailable(out)
	}
	rate, ok := parseDecimal(r.Rate)
	if !ok {
		return unavailable(out)
	}
	if name := strings.TrimSpace(r.FromCurrencyName); name != "" {
		out.Name = name
	}

	out.Price = CryptoPrice(rate.InexactFloat64())
	out.Synthetic = true
	if gen == nil {
		out.Change, out.Tone = NotAvailable, entity.ToneNeutral
		return out
	}
	out.Change, out.Tone = gen()
	return out
}

func unavailable(q entity.Quote) entity.Quote {
	q.Price = NotAvailable
	q.Change = NotAvailable
	q.Tone = entity.ToneNeutral
	q.Unavailable = true
	return q
}
