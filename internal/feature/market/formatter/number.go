package formatter

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// CryptoPrice は価格の桁に応じて精度を切り替えた表示文字列を返します。
//
//	>= 1000   小数2桁 + 3桁区切り   1500.5     -> "1,500.50"
//	>= 1      小数4桁               2.3456789  -> "2.3457"
//	>= 0.0001 小数6桁               0.00012345 -> "0.000123"
//	それ以外  仮数4桁の指数表記     0.000001   -> "1.0000e-6"
func CryptoPrice(price float64) string {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return NotAvailable
	}
	d := decimal.NewFromFloat(price)
	switch {
	case price >= 1000:
		return groupThousands(d.StringFixed(2))
	case price >= 1:
		return d.StringFixed(4)
	case price >= 0.0001:
		return d.StringFixed(6)
	default:
		return exponential(price, 4)
	}
}

// groupThousands は "1234567.89" のような固定小数点表記の整数部に3桁区切りを入れます。
func groupThousands(fixed string) string {
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	intPart, frac, hasFrac := strings.Cut(fixed, ".")
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return sign + fixed
	}
	out := sign + humanize.Comma(n)
	if hasFrac {
		out += "." + frac
	}
	return out
}

// exponential は仮数 digits 桁の指数表記を返します。指数部はゼロ埋めしません（"1.0000e-6"）。
func exponential(v float64, digits int) string {
	s := strconv.FormatFloat(v, 'e', digits, 64)
	mant, exp, ok := strings.Cut(s, "e")
	if !ok || exp == "" {
		return s
	}
	sign, magnitude := exp[:1], strings.TrimLeft(exp[1:], "0")
	if magnitude == "" {
		magnitude = "0"
	}
	return mant + "e" + sign + magnitude
}

// parseDecimal は上流の数値文字列を読み取ります。
func parseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
