package backtesting

import (
	"encoding/json"
	"fmt"
	"math"
)

// CapitalManagementKind selects the position-sizing rule a signal
// condition uses.
type CapitalManagementKind int

const (
	// Normal sizes entries at a fixed percentage of working capital.
	Normal CapitalManagementKind = iota
	// LiquidF sizes entries using a TWR-maximizing fractional-Kelly-style
	// search over the realized pnl history.
	LiquidF
)

// CapitalManagement is the tagged position-sizing configuration for a
// SignalCondition, mirroring the two variants the rule base supports.
type CapitalManagement struct {
	Kind              CapitalManagementKind
	EntrySizePercent  float64 // Normal only
	MinEntrySize      float64 // both
}

// capitalManagementWire is the tagged wire form of CapitalManagement,
// mirroring the type field the persisted SignalCondition format uses to
// distinguish the Normal and LiquidF variants.
type capitalManagementWire struct {
	Type             string  `json:"type"`
	EntrySizePercent float64 `json:"entry_size_percent,omitempty"`
	MinEntrySize     float64 `json:"min_entry_size"`
}

// MarshalJSON encodes CapitalManagement as its tagged wire form.
func (cm CapitalManagement) MarshalJSON() ([]byte, error) {
	w := capitalManagementWire{MinEntrySize: cm.MinEntrySize}
	switch cm.Kind {
	case LiquidF:
		w.Type = "LiquidF"
	default:
		w.Type = "Normal"
		w.EntrySizePercent = cm.EntrySizePercent
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes CapitalManagement from its tagged wire form.
func (cm *CapitalManagement) UnmarshalJSON(data []byte) error {
	var w capitalManagementWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Type {
	case "Normal":
		cm.Kind = Normal
	case "LiquidF":
		cm.Kind = LiquidF
	default:
		return fmt.Errorf("backtesting: unknown capital management type %q", w.Type)
	}
	cm.EntrySizePercent = w.EntrySizePercent
	cm.MinEntrySize = w.MinEntrySize
	return nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// entrySize computes the capital to commit to a new position. signalValue
// and threshold are only used by LiquidF sizing; outputMax is the fuzzy
// output scale's upper bound (100, per spec).
func (cm CapitalManagement) entrySize(positions []*Position, workingCapital, signalValue, threshold, outputMax float64) float64 {
	switch cm.Kind {
	case LiquidF:
		return liquidFEntrySize(positions, cm.MinEntrySize, workingCapital, signalValue, outputMax, threshold)
	default:
		return clamp(cm.EntrySizePercent/100*workingCapital, cm.MinEntrySize, workingCapital)
	}
}

// randomEntrySize sizes an entry for RandomBaseline: Normal sizing is
// identical to the signal-driven path, but LiquidF uses min_entry_size
// directly rather than running its TWR search — the random baseline has
// no fuzzy signal strength to interpolate against.
func (cm CapitalManagement) randomEntrySize(workingCapital float64) float64 {
	if cm.Kind == LiquidF {
		return cm.MinEntrySize
	}
	return clamp(cm.EntrySizePercent/100*workingCapital, cm.MinEntrySize, workingCapital)
}

// liquidFEntrySize searches f in {0.01, ..., 0.98} for the value
// maximizing the terminal wealth relative (TWR) over the already-realized
// pnl history, scaled down to a tenth of that optimum ("liquid f"), then
// interpolates position size between the liquid-f floor and the
// max-f ceiling based on how far above threshold the current signal is.
// With no realized trades yet, there is no pnl history to search over, so
// entries fall back to min_entry_size. The search is likewise meaningless
// when the worst realized pnl isn't a loss (riskFactor >= 0): the TWR
// product would divide by a non-negative denominator instead of sizing
// against risk, so that case also falls back to min_entry_size.
func liquidFEntrySize(positions []*Position, minEntrySize, workingCapital, output, outputMax, threshold float64) float64 {
	pnls := make([]float64, 0, len(positions))
	for _, p := range positions {
		if p.Realized != nil {
			pnls = append(pnls, p.Realized.PnL)
		}
	}
	if len(pnls) == 0 {
		return minEntrySize
	}

	riskFactor := pnls[0]
	for _, p := range pnls[1:] {
		if p < riskFactor {
			riskFactor = p
		}
	}
	if riskFactor >= 0 {
		return minEntrySize
	}

	maxTWR := -math.MaxFloat64
	maxF := 0.0
	for i := 1; i < 99; i++ {
		f := float64(i) / 100
		twr := 1.0
		for _, pnl := range pnls {
			twr *= 1 + (f*pnl)/riskFactor
		}
		if twr > maxTWR {
			maxTWR = twr
			maxF = f
		}
	}

	liquidF := 0.1 * maxF
	size := liquidF + ((output-threshold)*(maxF-liquidF))/(outputMax-threshold)
	return clamp(size*workingCapital, minEntrySize, workingCapital)
}
