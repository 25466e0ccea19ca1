package backtesting

import (
	"math/rand"

	"github.com/zigfinance/fuzzytrader/market"
)

// randomBaselineRounds is the number of independent coin-flip runs
// RandomBaseline averages over.
const randomBaselineRounds = 5

// RandomBaseline estimates what a condition's sizing rule would have
// returned if entries were decided by a coin flip instead of the fuzzy
// signal, averaged over several independent rounds. It gives a backtest a
// reference point that isn't itself a fuzzy-tuned strategy; the optimizer's
// Objective does not use it and scores against the un-tuned starting
// preset instead.
func RandomBaseline(bars []market.Bar, initialCapital float64, condition SignalCondition, rng *rand.Rand) (MaximumDrawdown, Trades, error) {
	if len(bars) == 0 {
		return MaximumDrawdown{}, Trades{}, ErrEmptyRange
	}

	var ddSum, ddPctSum, pnlSum, pnlPctSum float64
	var tradesSum int64

	for round := 0; round < randomBaselineRounds; round++ {
		workingCapital := initialCapital
		var positions []*Position

		for i, bar := range bars {
			last := i == len(bars)-1
			realizePositions(positions, &workingCapital, bar, last)

			if rng.Intn(2) == 0 || workingCapital <= 0 {
				continue
			}

			entry := condition.CapitalManagement.randomEntrySize(workingCapital)
			workingCapital -= entry
			positions = append(positions, &Position{
				EnterPrice:     bar.Close,
				EnterTime:      bar.Time,
				Amount:         entry,
				TakeProfitWhen: condition.TakeProfitWhen,
				StopLossWhen:   condition.StopLossWhen,
				PosType:        condition.Do,
			})
		}

		result := GenerateReport(positions, initialCapital, bars[0].Time)
		ddSum += result.MaximumDrawdown.Amount
		ddPctSum += result.MaximumDrawdown.Percent
		pnlSum += result.Total.PnL
		pnlPctSum += result.Total.PnLPercent
		tradesSum += result.Total.Count
	}

	n := float64(randomBaselineRounds)
	return MaximumDrawdown{Amount: ddSum / n, Percent: ddPctSum / n},
		Trades{PnL: pnlSum / n, PnLPercent: pnlPctSum / n, Count: tradesSum / randomBaselineRounds},
		nil
}
