package backtesting

import (
	"sort"
	"time"
)

// MaximumDrawdown is the largest peak-to-trough decline observed in the
// cumulative return series over the backtest window.
type MaximumDrawdown struct {
	Amount  float64
	Percent float64
}

// Trades summarizes a bucket of realized trades (all, profit-only, or
// loss-only).
type Trades struct {
	PnL        float64
	PnLPercent float64
	Count      int64
}

// CumulativeReturn is one point on the cumulative-return curve.
type CumulativeReturn struct {
	Time  time.Time
	Value float64
}

// Result is the full backtest report: drawdown, profit/loss trade
// buckets, totals, and the cumulative-return series.
type Result struct {
	MaximumDrawdown  MaximumDrawdown
	ProfitTrades     Trades
	LossTrades       Trades
	Total            Trades
	CumulativeReturn []CumulativeReturn
}

func toPercent(x, y float64) float64 {
	if y == 0 {
		return 0
	}
	return x / y * 100
}

// GenerateReport builds a Result from a set of positions (open or
// closed), seeding the cumulative-return series with (startTime,
// initialCapital) and folding in each realized pnl in exit-time order.
func GenerateReport(positions []*Position, initialCapital float64, startTime time.Time) Result {
	points := map[int64]float64{startTime.Unix(): initialCapital}
	order := []int64{startTime.Unix()}

	cumulative := initialCapital
	type exit struct {
		t   int64
		pnl float64
	}
	exits := make([]exit, 0, len(positions))
	for _, p := range positions {
		if p.Realized != nil {
			exits = append(exits, exit{t: p.Realized.ExitTime.Unix(), pnl: p.Realized.PnL})
		}
	}
	sort.Slice(exits, func(i, j int) bool { return exits[i].t < exits[j].t })

	for _, e := range exits {
		cumulative += e.pnl
		if _, ok := points[e.t]; !ok {
			order = append(order, e.t)
		}
		points[e.t] = cumulative
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	curve := make([]CumulativeReturn, len(order))
	for i, t := range order {
		curve[i] = CumulativeReturn{Time: time.Unix(t, 0).UTC(), Value: points[t]}
	}

	var maxDrawdown, drawdownPeak float64
	for r := 0; r < len(curve); r++ {
		for t := 0; t < r; t++ {
			dd := curve[t].Value - curve[r].Value
			if dd > 0 && dd > maxDrawdown {
				maxDrawdown = dd
				drawdownPeak = curve[t].Value
			}
		}
	}

	var profitPnL, lossPnL float64
	var profitCount, lossCount int64
	for _, p := range positions {
		if p.Realized == nil {
			continue
		}
		if p.Realized.PnL >= 0 {
			profitPnL += p.Realized.PnL
			profitCount++
		} else {
			lossPnL += p.Realized.PnL
			lossCount++
		}
	}

	return Result{
		MaximumDrawdown: MaximumDrawdown{
			Amount:  maxDrawdown,
			Percent: toPercent(maxDrawdown, drawdownPeak),
		},
		ProfitTrades: Trades{PnL: profitPnL, PnLPercent: toPercent(profitPnL, initialCapital), Count: profitCount},
		LossTrades:   Trades{PnL: lossPnL, PnLPercent: toPercent(lossPnL, initialCapital), Count: lossCount},
		Total: Trades{
			PnL:        profitPnL + lossPnL,
			PnLPercent: toPercent(profitPnL+lossPnL, initialCapital),
			Count:      profitCount + lossCount,
		},
		CumulativeReturn: curve,
	}
}
