package entity

// Overall は市場全体のムードの分類です。
type Overall string

const (
	OverallBullish         Overall = "Bullish"
	OverallSlightlyBullish Overall = "Slightly Bullish"
	OverallNeutral         Overall = "Neutral"
	OverallSlightlyBearish Overall = "Slightly Bearish"
	OverallBearish         Overall = "Bearish"
)

// Volatility は変化率の平均的な大きさの分類です。
type Volatility string

const (
	VolatilityLow      Volatility = "Low"
	VolatilityModerate Volatility = "Moderate"
	VolatilityHigh     Volatility = "High"
)

// Trend は上昇銘柄の比率から決まる方向です。Stable は算出できなかった場合のみ使います。
type Trend string

const (
	TrendUpward   Trend = "Upward"
	TrendDownward Trend = "Downward"
	TrendStable   Trend = "Stable"
)

// Sentiment は正規化済みレコード群から導いた市場ムードの要約です。保存はしません。
type Sentiment struct {
	Overall        Overall    `json:"overall"`
	FearGreedIndex int        `json:"fear_greed_index"`
	Volatility     Volatility `json:"volatility"`
	Trend          Trend      `json:"trend"`
}

// DefaultSentiment は算出できないときに返す中立の値です。
func DefaultSentiment() Sentiment {
	return Sentiment{
		Overall:        OverallNeutral,
		FearGreedIndex: 50,
		Volatility:     VolatilityModerate,
		Trend:          TrendStable,
	}
}
