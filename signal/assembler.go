// Package signal binds a fuzzy preset's declared input variables to the
// concrete indicator series that feed them, producing the per-bar input
// vector an inference engine expects.
package signal

import (
	"errors"
	"fmt"
	"math"

	"github.com/zigfinance/fuzzytrader/indicators"
	"github.com/zigfinance/fuzzytrader/market"
)

// ErrUnknownVariable is returned when a preset declares an input variable
// name this assembler has no indicator series for.
var ErrUnknownVariable = errors.New("signal: unknown input variable")

// Params carries the per-indicator window lengths a preset's variables
// are computed with. Fields are read only for the variables actually
// present in a preset, so a preset that doesn't use "stoch" never
// touches StochK/StochD/StochLength.
type Params struct {
	RSILength     int
	BBLength      int
	BBStdev       float64
	ADXLength     int
	MACDFast      int
	MACDSlow      int
	MACDSmooth    int
	StochK        int
	StochD        int
	StochLength   int
	AroonLength   int
	FlowChangeLen int // normalized-change window for obv/accumdist, default 14
}

// DefaultParams returns the conventional indicator window defaults used
// across the example presets.
func DefaultParams() Params {
	return Params{
		RSILength: 14, BBLength: 20, BBStdev: 2, ADXLength: 14,
		MACDFast: 12, MACDSlow: 26, MACDSmooth: 9,
		StochK: 14, StochD: 3, StochLength: 14,
		AroonLength: 14, FlowChangeLen: 14,
	}
}

// Assembler computes the named input series a fuzzy.Engine's input
// variables draw from, given a symbol's bars.
type Assembler struct {
	params Params
}

// NewAssembler builds an Assembler with the given indicator parameters.
func NewAssembler(params Params) *Assembler {
	return &Assembler{params: params}
}

// Assemble computes, for each requested variable name (in the caller's
// declaration order — normally an engine's Inputs() name order), the
// aligned per-bar series of OptFloat values that variable should be fed.
// An unrecognized variable name is an error: the mapping table is closed,
// not extensible at runtime.
func (a *Assembler) Assemble(bars []market.Bar, variables []string) ([][]market.OptFloat, error) {
	closes := make([]float64, len(bars))
	highs := make([]float64, len(bars))
	lows := make([]float64, len(bars))
	volumes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
		highs[i] = b.High
		lows[i] = b.Low
		volumes[i] = b.Volume
	}

	out := make([][]market.OptFloat, len(variables))
	for i, name := range variables {
		series, err := a.series(name, closes, highs, lows, volumes)
		if err != nil {
			return nil, err
		}
		out[i] = series
	}
	return out, nil
}

func (a *Assembler) series(name string, closes, highs, lows, volumes []float64) ([]market.OptFloat, error) {
	switch name {
	case "rsi":
		return toOpt(indicators.RSI(closes, a.params.RSILength)), nil
	case "bb":
		bb := indicators.Bollinger(closes, a.params.BBLength, a.params.BBStdev)
		return toOpt(bb.PercentB(closes)), nil
	case "adx":
		return toOpt(indicators.ADX(highs, lows, closes, a.params.ADXLength).ADX), nil
	case "macd":
		m := indicators.ComputeMACD(closes, a.params.MACDFast, a.params.MACDSlow, a.params.MACDSmooth)
		return toOpt(m.Transformed()), nil
	case "stoch":
		st := indicators.ComputeStochastic(highs, lows, closes, a.params.StochK, a.params.StochD)
		return toOpt(st.PercentK), nil
	case "aroonup":
		ar := indicators.Aroon(highs, lows, a.params.AroonLength)
		return toOpt(ar.Up), nil
	case "aroondown":
		ar := indicators.Aroon(highs, lows, a.params.AroonLength)
		return toOpt(ar.Down), nil
	case "obv":
		obv := indicators.OBV(closes, volumes)
		return toOpt(indicators.NormalizedChange(obv, a.params.FlowChangeLen)), nil
	case "accumdist":
		ad := indicators.AccumDist(highs, lows, closes, volumes)
		return toOpt(indicators.NormalizedChange(ad, a.params.FlowChangeLen)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariable, name)
	}
}

func toOpt(values []float64) []market.OptFloat {
	out := make([]market.OptFloat, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			out[i] = market.None
			continue
		}
		out[i] = market.Some(v)
	}
	return out
}
