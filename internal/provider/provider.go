// Package provider supplies OHLCV bar series to a backtest or training
// run, from either a live Alpaca market-data feed or a local CSV file.
package provider

import (
	"context"
	"time"

	"github.com/zigfinance/fuzzytrader/market"
)

// BarProvider fetches bars for a symbol over [start, end) at the given
// timeframe.
type BarProvider interface {
	GetBars(ctx context.Context, symbol string, interval market.Interval, start, end time.Time) ([]market.Bar, error)
}
