package report

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/zigfinance/fuzzytrader/backtesting"
	"github.com/zigfinance/fuzzytrader/fuzzy"
)

func TestFormatCurrencyRounds(t *testing.T) {
	got := FormatCurrency(99.999999999)
	if got != "100.00" {
		t.Fatalf("FormatCurrency = %q, want 100.00", got)
	}
}

func TestFromResultConvertsCumulativeReturnTimes(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	result := backtesting.Result{
		Total:           backtesting.Trades{PnL: 10, PnLPercent: 1, Count: 2},
		CumulativeReturn: []backtesting.CumulativeReturn{{Time: start, Value: 1000}},
	}
	dto := FromResult(result, NormalBacktestMetadata(BacktestRequestDTO{Capital: 1000}))
	if dto.Total.Count != 2 {
		t.Fatalf("total count = %d, want 2", dto.Total.Count)
	}
	if dto.CumulativeReturn[0].Time != start.UnixMilli() {
		t.Fatalf("cumulative return time = %d, want %d", dto.CumulativeReturn[0].Time, start.UnixMilli())
	}
}

func TestFromPresetsAssignsInputOutputKind(t *testing.T) {
	presets := []fuzzy.VariablePreset{
		{Name: "rsi", Lo: 0, Hi: 100, Terms: []fuzzy.TermPreset{{Name: "low", Shape: fuzzy.Triangle(20, 1, 20)}}},
		{Name: "sig", Lo: 0, Hi: 100, Terms: []fuzzy.TermPreset{{Name: "on", Shape: fuzzy.Triangle(50, 1, 50)}}},
	}
	dto := FromPresets("alice", "default", presets, 1)
	if dto.LinguisticVariables["rsi"].Kind != "input" {
		t.Fatalf("rsi kind = %q, want input", dto.LinguisticVariables["rsi"].Kind)
	}
	if dto.LinguisticVariables["sig"].Kind != "output" {
		t.Fatalf("sig kind = %q, want output", dto.LinguisticVariables["sig"].Kind)
	}
	shape := dto.LinguisticVariables["rsi"].Shapes["low"]
	if shape.ShapeType != "triangle" || shape.Parameters["center"] != 20 {
		t.Fatalf("shape dto = %+v", shape)
	}
}

func TestFromRulesPreservesWildcards(t *testing.T) {
	rules := []fuzzy.Rule{
		{Antecedent: map[string]string{}, Consequent: map[string]string{"signal": "on"}, Valid: true},
	}
	dto := FromRules("alice", "default", rules)
	if _, ok := dto[0].Input["rsi"]; ok {
		t.Fatal("wildcard variable should have no entry in the input map")
	}
	if dto[0].Output["signal"] != "on" {
		t.Fatalf("expected output term %q, got %q", "on", dto[0].Output["signal"])
	}
}

func TestToRulesRoundTripsNameKeyedMaps(t *testing.T) {
	dtos := []FuzzyRuleDTO{
		{Input: map[string]string{"rsi": "low"}, Output: map[string]string{"signal": "buy"}, Valid: true},
	}
	rules := ToRules(dtos)
	if rules[0].Antecedent["rsi"] != "low" {
		t.Fatalf("antecedent = %v, want rsi=low", rules[0].Antecedent)
	}
	if rules[0].Consequent["signal"] != "buy" {
		t.Fatalf("consequent = %v, want signal=buy", rules[0].Consequent)
	}
}

func TestFileSinkRoundTripsBacktestReport(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewFileSink(dir)
	if err != nil {
		t.Fatal(err)
	}
	id, err := sink.SaveBacktestReport(BacktestReport{Username: "alice", FuzzyPreset: "default"})
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, id+".backtest.json"))
	if err != nil {
		t.Fatal(err)
	}
	var got BacktestReport
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Username != "alice" {
		t.Fatalf("round-tripped username = %q, want alice", got.Username)
	}
}

func TestFileSinkListGetDeleteBacktestReports(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewFileSink(dir)
	if err != nil {
		t.Fatal(err)
	}

	aliceID, err := sink.SaveBacktestReport(BacktestReport{Username: "alice", FuzzyPreset: "default", RunAt: 1})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sink.SaveBacktestReport(BacktestReport{Username: "bob", FuzzyPreset: "default", RunAt: 2}); err != nil {
		t.Fatal(err)
	}

	got, err := sink.ListBacktestReports("alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Username != "alice" {
		t.Fatalf("ListBacktestReports(alice) = %+v, want exactly alice's report", got)
	}

	fetched, err := sink.GetBacktestReport(aliceID)
	if err != nil {
		t.Fatal(err)
	}
	if fetched.Username != "alice" {
		t.Fatalf("GetBacktestReport username = %q, want alice", fetched.Username)
	}

	if err := sink.DeleteBacktestReport(aliceID); err != nil {
		t.Fatal(err)
	}
	if _, err := sink.GetBacktestReport(aliceID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetBacktestReport after delete = %v, want ErrNotFound", err)
	}
}

func TestFileSinkRoundTripsBacktestMetadata(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewFileSink(dir)
	if err != nil {
		t.Fatal(err)
	}

	metadata := PsoBacktestMetadata(StrategyDTO{Epoch: 7, Capital: 5000})
	id, err := sink.SaveBacktestReport(BacktestReport{
		Username:       "alice",
		FuzzyPreset:    "default",
		BacktestResult: BacktestResult{Metadata: metadata},
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := sink.GetBacktestReport(id)
	if err != nil {
		t.Fatal(err)
	}
	if got.BacktestResult.Metadata.Tag != "PsoBackTest" {
		t.Fatalf("metadata tag = %q, want PsoBackTest", got.BacktestResult.Metadata.Tag)
	}
	if got.BacktestResult.Metadata.Pso == nil || got.BacktestResult.Metadata.Pso.Epoch != 7 {
		t.Fatalf("metadata pso = %+v, want epoch 7", got.BacktestResult.Metadata.Pso)
	}
}
