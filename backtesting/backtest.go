package backtesting

import (
	"log"

	"github.com/zigfinance/fuzzytrader/market"
)

// SignalCondition is one entry-trigger rule evaluated against a fuzzy
// engine's output vector: when output[SignalIndex] exceeds
// SignalThreshold, open a new position in direction Do.
type SignalCondition struct {
	SignalIndex       int               `json:"signal_index"`
	SignalThreshold   float64           `json:"signal_threshold"`
	Do                PosType           `json:"signal_do_command"`
	TakeProfitWhen    float64           `json:"take_profit_when"` // percent
	StopLossWhen      float64           `json:"stop_loss_when"`   // percent
	CapitalManagement CapitalManagement `json:"capital_management"`
}

// outputMax is the fuzzy output scale's upper bound used by LiquidF
// sizing; every signal in this system is defuzzified onto [0, 100].
const outputMax = 100.0

// Runner executes backtests over aligned bar/fuzzy-output series. It holds
// no state across runs beyond its logger, so a single Runner can be
// reused concurrently across walk-forward folds.
type Runner struct {
	Logger *log.Logger
}

// NewRunner builds a Runner with the conventional component-tagged
// logger.
func NewRunner() *Runner {
	return &Runner{Logger: log.New(log.Writer(), "[BACKTEST] ", log.LstdFlags)}
}

// Run simulates position entry/exit over bars and their aligned
// fuzzy-engine output vectors, following the realize-then-enter ordering:
// each bar first closes any position that has hit its take-profit or
// stop-loss, then (capital permitting) opens new positions for any
// signal condition whose output crossed its threshold. All open positions
// are force-closed at the final bar.
func (r *Runner) Run(bars []market.Bar, fuzzyOutput [][]float64, conditions []SignalCondition, initialCapital float64) ([]*Position, error) {
	if len(conditions) == 0 {
		return nil, ErrNoSignalConditions
	}
	if len(bars) == 0 {
		return nil, ErrEmptyRange
	}
	if len(bars) != len(fuzzyOutput) {
		return nil, ErrLengthMismatch
	}

	workingCapital := initialCapital
	var positions []*Position

	for i, bar := range bars {
		last := i == len(bars)-1
		realizePositions(positions, &workingCapital, bar, last)

		if workingCapital <= 0 {
			continue
		}

		for _, cond := range conditions {
			if cond.SignalIndex >= len(fuzzyOutput[i]) {
				continue
			}
			signalValue := fuzzyOutput[i][cond.SignalIndex]
			if signalValue <= cond.SignalThreshold {
				continue
			}
			entry := cond.CapitalManagement.entrySize(positions, workingCapital, signalValue, cond.SignalThreshold, outputMax)
			workingCapital -= entry
			positions = append(positions, &Position{
				EnterPrice:     bar.Close,
				EnterTime:      bar.Time,
				Amount:         entry,
				TakeProfitWhen: cond.TakeProfitWhen,
				StopLossWhen:   cond.StopLossWhen,
				PosType:        cond.Do,
			})
		}
	}

	return positions, nil
}

// realizePositions closes any still-open position whose take-profit or
// stop-loss has been crossed by bar's close, or unconditionally when last
// is true.
func realizePositions(positions []*Position, workingCapital *float64, bar market.Bar, last bool) {
	for _, p := range positions {
		if !p.IsOpen() {
			continue
		}
		pDiff := (bar.Close - p.EnterPrice) / p.EnterPrice * 100

		var shouldClose bool
		switch p.PosType {
		case Long:
			shouldClose = pDiff >= p.TakeProfitWhen || pDiff <= -p.StopLossWhen
		case Short:
			shouldClose = -pDiff >= p.TakeProfitWhen || -pDiff <= -p.StopLossWhen
		}
		if !shouldClose && !last {
			continue
		}

		realizedAmount := p.Amount / p.EnterPrice * bar.Close
		var pnl float64
		switch p.PosType {
		case Long:
			pnl = realizedAmount - p.Amount
		case Short:
			pnl = p.Amount - realizedAmount
		}
		*workingCapital += p.Amount + pnl
		p.Realized = &realizedInfo{PnL: pnl, ExitPrice: bar.Close, ExitTime: bar.Time}
	}
}
