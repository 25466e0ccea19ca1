// Package backtesting simulates position entry and exit over a fuzzy
// engine's per-bar output, producing a performance report.
package backtesting

import (
	"encoding/json"
	"fmt"
	"time"
)

// PosType is the direction a position was opened in.
type PosType int

const (
	Long PosType = iota
	Short
)

func (p PosType) String() string {
	if p == Short {
		return "short"
	}
	return "long"
}

// MarshalJSON encodes PosType as the wire strings "long"/"short".
func (p PosType) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes PosType from the wire strings "long"/"short".
func (p *PosType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "long":
		*p = Long
	case "short":
		*p = Short
	default:
		return fmt.Errorf("backtesting: unknown position type %q", s)
	}
	return nil
}

// realizedInfo is filled in once a position has been closed.
type realizedInfo struct {
	PnL       float64
	ExitPrice float64
	ExitTime  time.Time
}

// Position is an open or closed position. Realized is nil while the
// position is still open.
type Position struct {
	EnterPrice     float64
	EnterTime      time.Time
	Amount         float64
	TakeProfitWhen float64
	StopLossWhen   float64
	PosType        PosType

	Realized *realizedInfo
}

// IsOpen reports whether this position has not yet been closed.
func (p *Position) IsOpen() bool {
	return p.Realized == nil
}
