package backtesting

import (
	"testing"
	"time"

	"github.com/zigfinance/fuzzytrader/market"
)

func makeBars(closes []float64, start time.Time) []market.Bar {
	bars := make([]market.Bar, len(closes))
	for i, c := range closes {
		bars[i] = market.Bar{Time: start.Add(time.Duration(i) * time.Hour), Open: c, High: c, Low: c, Close: c, Volume: 100}
	}
	return bars
}

func TestRunRejectsEmptyConditions(t *testing.T) {
	r := NewRunner()
	bars := makeBars([]float64{1, 2}, time.Now())
	_, err := r.Run(bars, [][]float64{{0}, {0}}, nil, 1000)
	if err != ErrNoSignalConditions {
		t.Fatalf("expected ErrNoSignalConditions, got %v", err)
	}
}

func TestRunOpensAndClosesOnTakeProfit(t *testing.T) {
	r := NewRunner()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	// bar 0: price 100, signal fires -> open long; bar 1: price 110 (+10%) -> take profit
	bars := makeBars([]float64{100, 110, 110}, start)
	fuzzyOutput := [][]float64{{80}, {0}, {0}}

	cond := SignalCondition{
		SignalIndex: 0, SignalThreshold: 50, Do: Long,
		TakeProfitWhen: 5, StopLossWhen: 5,
		CapitalManagement: CapitalManagement{Kind: Normal, EntrySizePercent: 10, MinEntrySize: 1},
	}

	positions, err := r.Run(bars, fuzzyOutput, []SignalCondition{cond}, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if len(positions) != 1 {
		t.Fatalf("expected 1 position, got %d", len(positions))
	}
	p := positions[0]
	if p.IsOpen() {
		t.Fatal("expected position to be realized by take-profit")
	}
	if p.Realized.PnL <= 0 {
		t.Fatalf("expected positive pnl, got %v", p.Realized.PnL)
	}
}

func TestRunForceClosesOnLastBar(t *testing.T) {
	r := NewRunner()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := makeBars([]float64{100, 101}, start)
	fuzzyOutput := [][]float64{{80}, {0}}
	cond := SignalCondition{
		SignalIndex: 0, SignalThreshold: 50, Do: Long,
		TakeProfitWhen: 50, StopLossWhen: 50,
		CapitalManagement: CapitalManagement{Kind: Normal, EntrySizePercent: 10, MinEntrySize: 1},
	}
	positions, err := r.Run(bars, fuzzyOutput, []SignalCondition{cond}, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if len(positions) != 1 || positions[0].IsOpen() {
		t.Fatal("expected the open position to be force-closed on the final bar")
	}
}

func TestLiquidFFallsBackToMinEntrySizeWithNoHistory(t *testing.T) {
	cm := CapitalManagement{Kind: LiquidF, MinEntrySize: 25}
	got := cm.entrySize(nil, 1000, 80, 50, 100)
	if got != 25 {
		t.Fatalf("entrySize = %v, want 25 (min_entry_size fallback)", got)
	}
}

func TestLiquidFFallsBackToMinEntrySizeWhenAllRealizedPnLsAreProfitable(t *testing.T) {
	positions := []*Position{
		{EnterPrice: 100, Amount: 100, PosType: Long, Realized: &realizedInfo{PnL: 20}},
		{EnterPrice: 100, Amount: 100, PosType: Long, Realized: &realizedInfo{PnL: 5}},
	}
	cm := CapitalManagement{Kind: LiquidF, MinEntrySize: 25}
	got := cm.entrySize(positions, 1000, 80, 50, 100)
	if got != 25 {
		t.Fatalf("entrySize = %v, want 25 (min_entry_size fallback, worst realized pnl is a gain)", got)
	}
}

func TestGenerateReportDrawdownAndBuckets(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	positions := []*Position{
		{EnterPrice: 100, Amount: 100, PosType: Long, Realized: &realizedInfo{PnL: 20, ExitTime: start.Add(time.Hour)}},
		{EnterPrice: 100, Amount: 100, PosType: Long, Realized: &realizedInfo{PnL: -30, ExitTime: start.Add(2 * time.Hour)}},
	}
	result := GenerateReport(positions, 1000, start)
	if result.ProfitTrades.Count != 1 || result.ProfitTrades.PnL != 20 {
		t.Fatalf("profit bucket = %+v", result.ProfitTrades)
	}
	if result.LossTrades.Count != 1 || result.LossTrades.PnL != -30 {
		t.Fatalf("loss bucket = %+v", result.LossTrades)
	}
	if result.Total.Count != 2 {
		t.Fatalf("total count = %d, want 2", result.Total.Count)
	}
	if result.MaximumDrawdown.Amount <= 0 {
		t.Fatalf("expected positive drawdown after the losing trade, got %v", result.MaximumDrawdown.Amount)
	}
}
