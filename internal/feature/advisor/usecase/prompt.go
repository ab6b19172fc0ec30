package usecase

import (
	"fmt"
	"strings"

	"market_backend/internal/feature/advisor/domain/entity"
	marketentity "market_backend/internal/feature/market/domain/entity"
)

// SystemPrompt はすべての会話の先頭に置く指示文です。
const SystemPrompt = `You are an expert AI investment advisor with deep knowledge of stock markets, investment strategies, portfolio management, and financial analysis. Your role is to:

1. Provide educational information about investing and financial markets
2. Analyze market trends and economic indicators
3. Suggest diversification strategies and risk management approaches
4. Explain investment concepts in clear, accessible language
5. Help users understand different asset classes and investment vehicles

Important guidelines:
- Always emphasize that you provide educational information, not personalized financial advice
- Remind users to consult with licensed financial advisors before making investment decisions
- Discuss both risks and potential rewards of investment strategies
- Base your analysis on fundamental and technical analysis principles
- Stay current with market trends and economic conditions
- Be objective and avoid promoting specific stocks or financial products
- Acknowledge uncertainty and market volatility
- Use disclaimers when discussing specific investments

Your responses should be informative, balanced, and help users make more informed investment decisions while understanding the risks involved.`

// stockAnalysisPrompt は銘柄分析の質問文を作ります。q が nil または値が "N/A" の項目は省略します。
func stockAnalysisPrompt(symbol string, q *marketentity.Quote) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Please provide a brief analysis of %s stock. ", symbol)
	if q != nil {
		if available(q.Price) {
			fmt.Fprintf(&b, "Current price: $%s. ", q.Price)
		}
		if available(q.Change) {
			fmt.Fprintf(&b, "Today's change: %s. ", q.Change)
		}
	}
	b.WriteString("Include key factors investors should consider, potential risks, and general market sentiment.")
	return b.String()
}

// portfolioPrompt は分散投資の相談文を作ります。
func portfolioPrompt(p entity.Portfolio) string {
	var b strings.Builder
	b.WriteString("I'd like advice on diversifying my investment portfolio. ")
	if v := strings.TrimSpace(p.RiskTolerance); v != "" {
		fmt.Fprintf(&b, "My risk tolerance is %s. ", v)
	}
	if v := strings.TrimSpace(p.TimeHorizon); v != "" {
		fmt.Fprintf(&b, "Investment time horizon: %s. ", v)
	}
	if v := strings.TrimSpace(p.CurrentAllocations); v != "" {
		fmt.Fprintf(&b, "Current allocations: %s. ", v)
	}
	b.WriteString("What diversification strategies would you recommend?")
	return b.String()
}

func available(v string) bool {
	return v != "" && v != marketentity.NotAvailable
}
