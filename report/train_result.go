package report

import "github.com/zigfinance/fuzzytrader/optimize"

// FoldProgress is the wire form of optimize.FoldProgress.
type FoldProgress struct {
	Epoch int     `json:"epoch"`
	Group int     `json:"group"`
	F     float64 `json:"f"`
}

// TrainResult is a fully persisted PSO training run, naming the
// newly-promoted preset and the backtest report that validated it.
type TrainResult struct {
	Username      string         `json:"username"`
	Preset        string         `json:"preset"`
	BacktestID    string         `json:"backtest_id"`
	TrainProgress []FoldProgress `json:"train_progress"`
	ValidationF   float64        `json:"validation_f"`
	RunAt         int64          `json:"run_at"`
}

// FromTrainProgress converts the optimizer's internal progress log into
// its wire form.
func FromTrainProgress(progress []optimize.FoldProgress) []FoldProgress {
	out := make([]FoldProgress, len(progress))
	for i, p := range progress {
		out[i] = FoldProgress{Epoch: p.Epoch, Group: p.Group, F: p.F}
	}
	return out
}
