// Command backtest runs a single fuzzy-strategy backtest over a CSV or
// Alpaca-sourced bar series and writes the result through a report.Sink.
//
// Flags:
//
//	-preset <file>      Path to a saved fuzzy preset (report.PresetDTO JSON)
//	-rules <file>       Path to that preset's rule set ([]report.FuzzyRuleDTO JSON)
//	-conditions <file>  Path to the signal conditions driving entries/exits
//	-csv <file>         Run against a local CSV file instead of Alpaca
//	-symbol <sym>       Symbol to fetch from Alpaca (ignored with -csv)
//	-interval <1h|4h|1d> Bar timeframe
//	-start, -end <date> RFC3339 date range
//	-capital <amount>   Starting capital
//	-baseline random     Also compute the coin-flip baseline for comparison
//	-out <dir>          Directory the report is written under
//
// Example:
//
//	go run ./cmd/backtest -preset preset.json -rules rules.json \
//	  -conditions conditions.json -csv spy.csv -interval 1d -capital 10000
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/zigfinance/fuzzytrader/backtesting"
	"github.com/zigfinance/fuzzytrader/internal/provider"
	"github.com/zigfinance/fuzzytrader/market"
	"github.com/zigfinance/fuzzytrader/optimize"
	"github.com/zigfinance/fuzzytrader/report"
	"github.com/zigfinance/fuzzytrader/signal"
)

func main() {
	var presetPath, rulesPath, conditionsPath, csvPath, symbol, intervalFlag, startFlag, endFlag, outDir, baseline, username string
	var capital float64
	flag.StringVar(&presetPath, "preset", "", "path to saved fuzzy preset JSON")
	flag.StringVar(&rulesPath, "rules", "", "path to saved fuzzy rule set JSON")
	flag.StringVar(&conditionsPath, "conditions", "", "path to signal conditions JSON")
	flag.StringVar(&csvPath, "csv", "", "path to a CSV bar file (omit to fetch from Alpaca)")
	flag.StringVar(&symbol, "symbol", "", "symbol to fetch from Alpaca")
	flag.StringVar(&intervalFlag, "interval", "1d", "bar timeframe: 1h, 4h, or 1d")
	flag.StringVar(&startFlag, "start", "", "RFC3339 range start")
	flag.StringVar(&endFlag, "end", "", "RFC3339 range end")
	flag.Float64Var(&capital, "capital", 10000, "starting capital")
	flag.StringVar(&baseline, "baseline", "", "set to \"random\" to also compute the coin-flip baseline")
	flag.StringVar(&outDir, "out", "./backtest-reports", "directory reports are written under")
	flag.StringVar(&username, "username", "cli", "username recorded on the report")
	flag.Parse()

	if err := run(presetPath, rulesPath, conditionsPath, csvPath, symbol, intervalFlag, startFlag, endFlag, outDir, baseline, username, capital); err != nil {
		log.Fatalf("[BACKTEST] %v", err)
	}
}

func run(presetPath, rulesPath, conditionsPath, csvPath, symbol, intervalFlag, startFlag, endFlag, outDir, baseline, username string, capital float64) error {
	preset, err := loadPresetDTO(presetPath)
	if err != nil {
		return fmt.Errorf("load preset: %w", err)
	}
	presets, numInputs, err := report.ToPresets(preset)
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

	engine, err := optimize.BuildEngine(presets, numInputs, rules)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
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
	fuzzyOutput, err := signal.ComputeFuzzyOutput(engine, inputs)
	if err != nil {
		return fmt.Errorf("compute fuzzy output: %w", err)
	}

	runner := backtesting.NewRunner()
	positions, err := runner.Run(bars, fuzzyOutput, conditions, capital)
	if err != nil {
		return fmt.Errorf("run backtest: %w", err)
	}
	result := backtesting.GenerateReport(positions, capital, bars[0].Time)

	runner.Logger.Printf("%s %s: %d trades, %.2f%% pnl, %.2f%% max drawdown",
		symbol, interval, result.Total.Count, result.Total.PnLPercent, result.MaximumDrawdown.Percent)

	if baseline == "random" && len(conditions) > 0 {
		dd, trades, err := backtesting.RandomBaseline(bars, capital, conditions[0], rand.New(rand.NewSource(time.Now().UnixNano())))
		if err != nil {
			return fmt.Errorf("random baseline: %w", err)
		}
		runner.Logger.Printf("random baseline: %d trades, %.2f%% pnl, %.2f%% max drawdown",
			trades.Count, trades.PnLPercent, dd.Percent)
	}

	metadata := report.NormalBacktestMetadata(report.BacktestRequestDTO{
		Capital:          capital,
		StartTime:        start.UnixMilli(),
		EndTime:          end.UnixMilli(),
		SignalConditions: conditions,
	})

	sink, err := report.NewFileSink(outDir)
	if err != nil {
		return fmt.Errorf("open sink: %w", err)
	}
	id, err := sink.SaveBacktestReport(report.BacktestReport{
		Username:       username,
		Ticker:         symbol,
		Interval:       intervalFlag,
		FuzzyPreset:    preset.Preset,
		BacktestResult: report.FromResult(result, metadata),
		RunAt:          time.Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	runner.Logger.Printf("saved report %s", id)
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
