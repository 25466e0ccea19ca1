package report

import (
	"encoding/json"

	"github.com/zigfinance/fuzzytrader/backtesting"
)

// MaximumDrawdown is the wire form of backtesting.MaximumDrawdown.
type MaximumDrawdown struct {
	Amount  float64 `json:"amount"`
	Percent float64 `json:"percent"`
}

// Trades is the wire form of backtesting.Trades.
type Trades struct {
	PnL        float64 `json:"pnl"`
	PnLPercent float64 `json:"pnl_percent"`
	Count      int64   `json:"trades"`
}

// CumulativeReturn is one point on the wire form of the cumulative-return
// curve, with Time encoded as a Unix millisecond timestamp.
type CumulativeReturn struct {
	Time  int64   `json:"time"`
	Value float64 `json:"value"`
}

// BacktestRequestDTO is the wire form of a plain backtest run's
// parameters, recorded on its report so the run can be reproduced.
type BacktestRequestDTO struct {
	Capital          float64                       `json:"capital"`
	StartTime        int64                         `json:"start_time"`
	EndTime          int64                         `json:"end_time"`
	SignalConditions []backtesting.SignalCondition `json:"signal_conditions"`
}

// StrategyDTO is the wire form of the tuned strategy a PSO training fold
// validated: the number of epochs each fold trained for plus the
// parameters the validation backtest ran with.
type StrategyDTO struct {
	Epoch            int                           `json:"epoch"`
	Capital          float64                       `json:"capital"`
	SignalConditions []backtesting.SignalCondition `json:"signal_conditions"`
}

// BacktestMetadata distinguishes a backtest_result produced by a plain,
// user-requested backtest from one produced as the validation fold of a
// PSO training run, matching the two-variant tagged union the persisted
// format encodes with an internal "tag" field alongside the variant's
// own fields.
type BacktestMetadata struct {
	Tag    string
	Normal *BacktestRequestDTO
	Pso    *StrategyDTO
}

// NormalBacktestMetadata tags a backtest_result as a plain backtest run.
func NormalBacktestMetadata(req BacktestRequestDTO) BacktestMetadata {
	return BacktestMetadata{Tag: "NormalBackTest", Normal: &req}
}

// PsoBacktestMetadata tags a backtest_result as a PSO validation fold.
func PsoBacktestMetadata(strategy StrategyDTO) BacktestMetadata {
	return BacktestMetadata{Tag: "PsoBackTest", Pso: &strategy}
}

// MarshalJSON flattens the active variant's fields alongside the tag.
func (m BacktestMetadata) MarshalJSON() ([]byte, error) {
	switch m.Tag {
	case "NormalBackTest":
		return json.Marshal(struct {
			Tag string `json:"tag"`
			BacktestRequestDTO
		}{Tag: m.Tag, BacktestRequestDTO: *m.Normal})
	case "PsoBackTest":
		return json.Marshal(struct {
			Tag string `json:"tag"`
			StrategyDTO
		}{Tag: m.Tag, StrategyDTO: *m.Pso})
	default:
		// Zero-value BacktestMetadata (no variant set yet) marshals as just
		// the tag, rather than failing report encoding outright.
		return json.Marshal(struct {
			Tag string `json:"tag"`
		}{Tag: m.Tag})
	}
}

// UnmarshalJSON reads the tag first to know which variant's fields to
// decode the rest of the object into.
func (m *BacktestMetadata) UnmarshalJSON(data []byte) error {
	var probe struct {
		Tag string `json:"tag"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	switch probe.Tag {
	case "NormalBackTest":
		var req BacktestRequestDTO
		if err := json.Unmarshal(data, &req); err != nil {
			return err
		}
		m.Tag, m.Normal = probe.Tag, &req
	case "PsoBackTest":
		var s StrategyDTO
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		m.Tag, m.Pso = probe.Tag, &s
	default:
		m.Tag = probe.Tag
	}
	return nil
}

// BacktestResult is the wire form of backtesting.Result.
type BacktestResult struct {
	Metadata         BacktestMetadata   `json:"metadata"`
	MaximumDrawdown  MaximumDrawdown    `json:"maximum_drawdown"`
	ProfitTrades     Trades             `json:"profit_trades"`
	LossTrades       Trades             `json:"loss_trades"`
	Total            Trades             `json:"total"`
	CumulativeReturn []CumulativeReturn `json:"cumalative_return"`
}

// BacktestReport is a fully persisted backtest run: who ran it, against
// which symbol/interval/preset, and its result.
type BacktestReport struct {
	Username       string         `json:"username"`
	Ticker         string         `json:"ticker"`
	Interval       string         `json:"interval"`
	FuzzyPreset    string         `json:"fuzzy_preset"`
	BacktestResult BacktestResult `json:"backtest_result"`
	RunAt          int64          `json:"run_at"`
}

// FromResult converts a backtesting.Result into its wire form, tagged
// with the metadata describing which kind of run produced it.
func FromResult(r backtesting.Result, metadata BacktestMetadata) BacktestResult {
	curve := make([]CumulativeReturn, len(r.CumulativeReturn))
	for i, c := range r.CumulativeReturn {
		curve[i] = CumulativeReturn{Time: c.Time.UnixMilli(), Value: c.Value}
	}
	return BacktestResult{
		Metadata:         metadata,
		MaximumDrawdown:  MaximumDrawdown{Amount: r.MaximumDrawdown.Amount, Percent: r.MaximumDrawdown.Percent},
		ProfitTrades:     Trades{PnL: r.ProfitTrades.PnL, PnLPercent: r.ProfitTrades.PnLPercent, Count: r.ProfitTrades.Count},
		LossTrades:       Trades{PnL: r.LossTrades.PnL, PnLPercent: r.LossTrades.PnLPercent, Count: r.LossTrades.Count},
		Total:            Trades{PnL: r.Total.PnL, PnLPercent: r.Total.PnLPercent, Count: r.Total.Count},
		CumulativeReturn: curve,
	}
}
