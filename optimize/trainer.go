package optimize

import (
	"context"
	"errors"

	"golang.org/x/exp/rand"

	"github.com/zigfinance/fuzzytrader/backtesting"
	"github.com/zigfinance/fuzzytrader/fuzzy"
	"github.com/zigfinance/fuzzytrader/market"
	"github.com/zigfinance/fuzzytrader/signal"
)

// Config describes one PSO training run: the preset being tuned, the data
// it trains against, and the backtest it is scored on.
type Config struct {
	// Presets lists every linguistic variable in engine order: the first
	// NumInputs entries are inputs, the rest outputs.
	Presets   []fuzzy.VariablePreset
	NumInputs int
	Rules     []fuzzy.Rule

	Bars []market.Bar
	// Inputs holds the full-length, per-variable input series for
	// Presets[:NumInputs], in the same order — normally signal.Assemble's
	// output for those variable names.
	Inputs [][]market.OptFloat

	Conditions []backtesting.SignalCondition
	Capital    float64

	Epochs    int
	Folds     int // k-fold count, default 5 if zero
	GroupSize int // particles per group, default 5 if zero
}

// FoldProgress records one particle evaluation during training, for
// reporting convergence back to the caller.
type FoldProgress struct {
	Epoch int
	Group int
	F     float64
}

// Result is the best preset PSO found across all folds, along with the
// validation-set backtest that selected it.
type Result struct {
	Preset        []fuzzy.VariablePreset
	ValidationF   float64
	TrainProgress []FoldProgress
	Validation    backtesting.Result
}

// Objective scores a candidate backtest result against a reference
// (typically the un-tuned starting preset run over the same range): lower
// is better. A candidate with zero trades is penalized outright, since an
// empty strategy trivially has no drawdown.
func Objective(result, reference backtesting.Result) float64 {
	if result.Total.Count == 0 {
		return 100.0
	}
	profitChange := result.Total.PnLPercent - reference.Total.PnLPercent
	mddChange := reference.MaximumDrawdown.Percent - result.MaximumDrawdown.Percent
	return -1.0 * (profitChange + mddChange)
}

func usePosition(cfg Config, position []float64, start, end int) (backtesting.Result, error) {
	presets := Unflatten(cfg.Presets, position)
	engine, err := BuildEngine(presets, cfg.NumInputs, cfg.Rules)
	if err != nil {
		return backtesting.Result{}, err
	}

	fuzzyOutput, err := signal.ComputeFuzzyOutput(engine, cfg.Inputs)
	if err != nil {
		return backtesting.Result{}, err
	}

	bars := cfg.Bars[start:end]
	output := fuzzyOutput[start:end]

	runner := backtesting.NewRunner()
	positions, err := runner.Run(bars, output, cfg.Conditions, cfg.Capital)
	if err != nil {
		return backtesting.Result{}, err
	}
	return backtesting.GenerateReport(positions, cfg.Capital, bars[0].Time), nil
}

// Run performs k-fold walk-forward PSO training: each fold trains a swarm
// on its first 75% (scored against the un-tuned starting preset run on the
// same window) and validates the winning particle's preset on the
// remaining 25%. The fold whose validation score is lowest is returned.
// A position whose decoded shapes fail fuzzy.Shape.Validate is scored like
// a run with no trades rather than ending training.
// ctx is checked between folds, between epochs and before each particle is
// scored; if it is
// canceled, training stops, the interrupted fold is discarded, and
// whatever best result has already been validated is returned.
func Run(ctx context.Context, cfg Config, src rand.Source) (Result, error) {
	if len(cfg.Conditions) == 0 {
		return Result{}, backtesting.ErrNoSignalConditions
	}

	k := cfg.Folds
	if k == 0 {
		k = 5
	}
	groupSize := cfg.GroupSize
	if groupSize == 0 {
		groupSize = 5
	}

	n := len(cfg.Bars)
	offset := n / k
	type foldRange struct{ start, end int }
	folds := make([]foldRange, 0, k)
	for i := 0; i < k-1; i++ {
		folds = append(folds, foldRange{i * offset, (i + 1) * offset})
	}
	folds = append(folds, foldRange{(k - 1) * offset, n})

	startPos := Flatten(cfg.Presets)

	bestValidationF := maxFloat
	var best Result
	haveResult := false
	aborted := false

	for _, f := range folds {
		if ctx.Err() != nil {
			aborted = true
			break
		}

		trainEnd := f.start + int(float64(f.end-f.start)*0.75)

		firstRunTrain, err := usePosition(cfg, startPos, f.start, trainEnd)
		if err != nil {
			return Result{}, err
		}

		groups := NewGroups(startPos, 1, groupSize, src)
		var progress []FoldProgress

	epochs:
		for epoch := 0; epoch < cfg.Epochs; epoch++ {
			if ctx.Err() != nil {
				aborted = true
				break epochs
			}
			for gi, g := range groups {
				for _, particle := range g.Particles {
					if ctx.Err() != nil {
						aborted = true
						break epochs
					}
					r, err := usePosition(cfg, particle.Position, f.start, trainEnd)
					if err != nil && !errors.Is(err, fuzzy.ErrInvalidShape) {
						return Result{}, err
					}
					fVal := Objective(r, firstRunTrain)
					if fVal < particle.BestF {
						particle.BestF = fVal
						particle.BestPos = append([]float64(nil), particle.Position...)
					}
					if fVal < g.LBestF {
						g.LBestF = fVal
						g.LBestPos = append([]float64(nil), particle.Position...)
					}
					particle.UpdateVelocity(g.LBestPos, Rho(1.0, src), Rho(1.5, src), nil)
					particle.Move()
					progress = append(progress, FoldProgress{Epoch: epoch, Group: gi, F: fVal})
				}
			}
		}
		if aborted {
			break
		}

		bestGroup := groups[0]
		for _, g := range groups[1:] {
			if g.LBestF < bestGroup.LBestF {
				bestGroup = g
			}
		}

		firstRunValidation, err := usePosition(cfg, startPos, trainEnd, f.end)
		if err != nil {
			return Result{}, err
		}
		validationResult, err := usePosition(cfg, bestGroup.LBestPos, trainEnd, f.end)
		if err != nil && !errors.Is(err, fuzzy.ErrInvalidShape) {
			return Result{}, err
		}
		validationF := Objective(validationResult, firstRunValidation)

		if validationF < bestValidationF {
			bestValidationF = validationF
			best = Result{
				Preset:        Unflatten(cfg.Presets, bestGroup.LBestPos),
				ValidationF:   validationF,
				TrainProgress: progress,
				Validation:    validationResult,
			}
			haveResult = true
		}
	}

	if !haveResult {
		return Result{}, ErrAbortedBeforeAnyFold
	}
	if aborted {
		return best, ErrAborted
	}
	return best, nil
}
