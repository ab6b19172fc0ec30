package formatter

import (
	"math/rand/v2"
	"strconv"

	"market_backend/internal/feature/market/domain/entity"
)

// SyntheticChange はダミーの24h変化率を生成する ChangeGenerator を返します。
// 70% の確率で 0〜5% の上昇、それ以外は 0〜3% の下落になります。
// float64Fn が nil なら math/rand/v2 のグローバル乱数を使います。
func SyntheticChange(float64Fn func() float64) ChangeGenerator {
	if float64Fn == nil {
		float64Fn = rand.Float64
	}
	return func() (string, entity.Tone) {
		positive := float64Fn() > 0.3
		limit := 3.0
		if positive {
			limit = 5.0
		}
		v := strconv.FormatFloat(float64Fn()*limit, 'f', 2, 64)
		if positive {
			return "+" + v + "%", entity.TonePositive
		}
		return "-" + v + "%", entity.ToneNegative
	}
}
