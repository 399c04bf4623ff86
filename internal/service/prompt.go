package service

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/hardikparikh99/Stock-Analysis/internal/model"
)

const promptTemplate = `
Analyze the following stock data for %s:
%s

Provide a comprehensive analysis including:
1. Price trends
2. Volatility analysis
3. Key support and resistance levels
4. Trading volume analysis
5. Investment recommendations
`

// BuildPrompt embeds bars as a plain-text table in the fixed analysis prompt.
func BuildPrompt(symbol string, bars []model.DailyBar) string {
	return fmt.Sprintf(promptTemplate, symbol, FormatBars(bars))
}

// FormatBars renders bars as an aligned table, one row per day, in the order given.
func FormatBars(bars []model.DailyBar) string {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "date\topen\thigh\tlow\tclose\tvolume\t")
	for _, b := range bars {
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%.4f\t%.4f\t%d\t\n",
			b.Date.Format("2006-01-02"), b.Open, b.High, b.Low, b.Close, b.Volume)
	}
	_ = tw.Flush()
	return strings.TrimRight(sb.String(), "\n")
}
