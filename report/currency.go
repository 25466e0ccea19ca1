package report

import "github.com/shopspring/decimal"

// FormatCurrency renders a PnL or equity figure to two decimal places
// using decimal.Decimal rather than float64 formatting, so a report never
// shows a binary-float rounding artifact (e.g. "99.99999999999999") in a
// number a user reads as money. Core backtest/PSO math stays on float64
// throughout; this conversion happens only at the rendering boundary.
func FormatCurrency(amount float64) string {
	return decimal.NewFromFloat(amount).Round(2).StringFixed(2)
}
