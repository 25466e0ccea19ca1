// Command train runs k-fold walk-forward PSO training against a saved
// fuzzy preset and promotes the winning fold's tuned preset under a new
// name, writing both the training result and the promoted preset through
// a report.Sink.
//
// Flags mirror cmd/backtest for data sourcing; -epochs and -group-size
// tune the PSO run itself.
//
// Example:
//
//	go run ./cmd/train -preset preset.json -rules rules.json \
//	  -conditions conditions.json -csv spy.csv -interval 1d -epochs 30
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"golang.org/x/exp/rand"

	"github.com/zigfinance/fuzzytrader/backtesting"
	"github.com/zigfinance/fuzzytrader/internal/provider"
	"github.com/zigfinance/fuzzytrader/market"
	"github.com/zigfinance/fuzzytrader/optimize"
	"github.com/zigfinance/fuzzytrader/report"
	"github.com/zigfinance/fuzzytrader/signal"
)

func main() {
	var presetPath, rulesPath, conditionsPath, csvPath, symbol, intervalFlag, startFlag, endFlag, outDir, username string
	var capital float64
	var epochs, groupSize, folds int
	var seed int64
	flag.StringVar(&presetPath, "preset", "", "path to saved fuzzy preset JSON")
	flag.StringVar(&rulesPath, "rules", "", "path to saved fuzzy rule set JSON")
	flag.StringVar(&conditionsPath, "conditions", "", "path to signal conditions JSON")
	flag.StringVar(&csvPath, "csv", "", "path to a CSV bar file (omit to fetch from Alpaca)")
	flag.StringVar(&symbol, "symbol", "", "symbol to fetch from Alpaca")
	flag.StringVar(&intervalFlag, "interval", "1d", "bar timeframe: 1h, 4h, or 1d")
	flag.StringVar(&startFlag, "start", "", "RFC3339 range start")
	flag.StringVar(&endFlag, "end", "", "RFC3339 range end")
	flag.Float64Var(&capital, "capital", 10000, "starting capital")
	flag.IntVar(&epochs, "epochs", 20, "PSO epochs per fold")
	flag.IntVar(&groupSize, "group-size", 5, "particles per PSO group")
	flag.IntVar(&folds, "folds", 5, "walk-forward fold count")
	flag.Int64Var(&seed, "seed", 1, "PSO random seed")
	flag.StringVar(&outDir, "out", "./train-reports", "directory reports are written under")
	flag.StringVar(&username, "username", "cli", "username recorded on the report")
	flag.Parse()

	if err := run(presetPath, rulesPath, conditionsPath, csvPath, symbol, intervalFlag, startFlag, endFlag, outDir, username, capital, epochs, groupSize, folds, seed); err != nil {
		log.Fatalf("[PSO] %v", err)
	}
}

func run(presetPath, rulesPath, conditionsPath, csvPath, symbol, intervalFlag, startFlag, endFlag, outDir, username string, capital float64, epochs, groupSize, folds int, seed int64) error {
	presetDTO, err := loadPresetDTO(presetPath)
	if err != nil {
		return fmt.Errorf("load preset: %w", err)
	}
	presets, numInputs, err := report.ToPresets(presetDTO)
	if err != nil {
		return fmt.Errorf("decode preset: %w", err)
	}

	var ruleDTOs []report.FuzzyRuleDTO
	if err := loadJSON(rulesPath, &ruleDTOs); err != nil {
		return fmt.Errorf("load rules: %w", err)
	}
	rules := report.ToRules(ruleDTOs)

	var conditions []backtesting.SignalCondition
	if err := loadJSON(conditionsPath, &conditions); err != nil {
		return fmt.Errorf("load conditions: %w", err)
	}

	interval := market.Interval(intervalFlag)
	start, err := time.Parse(time.RFC3339, startFlag)
	if err != nil {
		return fmt.Errorf("parse -start: %w", err)
	}
	end, err := time.Parse(time.RFC3339, endFlag)
	if err != nil {
		return fmt.Errorf("parse -end: %w", err)
	}

	var barProvider provider.BarProvider
	if csvPath != "" {
		barProvider = provider.NewCSVProvider(csvPath)
	} else {
		barProvider = provider.NewAlpacaProvider(os.Getenv("APCA_API_KEY_ID"), os.Getenv("APCA_API_SECRET_KEY"))
	}

	bars, err := barProvider.GetBars(context.Background(), symbol, interval, start, end)
	if err != nil {
		return fmt.Errorf("fetch bars: %w", err)
	}
	if len(bars) == 0 {
		return fmt.Errorf("no bars returned for range %s..%s", start, end)
	}

	inputNames := make([]string, numInputs)
	for i, vp := range presets[:numInputs] {
		inputNames[i] = vp.Name
	}
	inputs, err := signal.NewAssembler(signal.DefaultParams()).Assemble(bars, inputNames)
	if err != nil {
		return fmt.Errorf("assemble inputs: %w", err)
	}

	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.New(log.Writer(), "[PSO] ", log.LstdFlags)
	cfg := optimize.Config{
		Presets:    presets,
		NumInputs:  numInputs,
		Rules:      rules,
		Bars:       bars,
		Inputs:     inputs,
		Conditions: conditions,
		Capital:    capital,
		Epochs:     epochs,
		Folds:      folds,
		GroupSize:  groupSize,
	}

	result, err := optimize.Run(ctx, cfg, rand.NewSource(uint64(seed)))
	if err != nil && result.Preset == nil {
		return fmt.Errorf("train: %w", err)
	}
	if err != nil {
		logger.Printf("training stopped early: %v", err)
	}

	logger.Printf("best validation score %.4f across %d progress samples", result.ValidationF, len(result.TrainProgress))

	promoted := fmt.Sprintf("%s-pso-%d", presetDTO.Preset, time.Now().Unix())
	promotedDTO := report.FromPresets(username, promoted, result.Preset, numInputs)
	promotedRules := report.FromRules(username, promoted, rules)

	sink, err := report.NewFileSink(outDir)
	if err != nil {
		return fmt.Errorf("open sink: %w", err)
	}
	if err := sink.SavePreset(promotedDTO); err != nil {
		return fmt.Errorf("save promoted preset: %w", err)
	}
	if err := sink.SaveFuzzyRules(promotedRules); err != nil {
		return fmt.Errorf("save promoted rules: %w", err)
	}

	strategy := report.StrategyDTO{
		Epoch:            epochs,
		Capital:          capital,
		SignalConditions: conditions,
	}
	backtestID, err := sink.SaveBacktestReport(report.BacktestReport{
		Username:       username,
		Ticker:         symbol,
		Interval:       intervalFlag,
		FuzzyPreset:    promoted,
		BacktestResult: report.FromResult(result.Validation, report.PsoBacktestMetadata(strategy)),
		RunAt:          time.Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("save validation backtest: %w", err)
	}

	trainResult := report.TrainResult{
		Username:      username,
		Preset:        promoted,
		BacktestID:    backtestID,
		TrainProgress: report.FromTrainProgress(result.TrainProgress),
		ValidationF:   result.ValidationF,
		RunAt:         time.Now().Unix(),
	}
	if _, err := sink.SaveTrainResult(trainResult); err != nil {
		return fmt.Errorf("save train result: %w", err)
	}

	logger.Printf("promoted preset %q", promoted)
	return nil
}

func loadPresetDTO(path string) (report.PresetDTO, error) {
	var dto report.PresetDTO
	err := loadJSON(path, &dto)
	return dto, err
}

func loadJSON(path string, v any) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
