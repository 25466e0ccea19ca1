// Package market holds the shared value types that flow between the
// indicator, fuzzy, signal, backtesting and optimize packages: price bars,
// optional-typed series values, and dated values.
package market

import (
	"fmt"
	"time"
)

// Interval identifies the bar timeframe a series was computed against.
type Interval string

const (
	OneHour  Interval = "1h"
	FourHour Interval = "4h"
	OneDay   Interval = "1d"
)

// Bar is a single OHLCV price bar.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// DTValue pairs a value with the bar time it was computed for. The
// indicator, signal and backtesting packages do not use it: their series
// are plain slices aligned to the bar series by index.
type DTValue[T any] struct {
	Time  time.Time
	Value T
}

// OptFloat is an explicit tri-state float: Valid is false while an
// indicator is still inside its warm-up window. Fuzzy-engine inputs use
// OptFloat rather than NaN so that "rule skipped, input not ready" is a
// checked condition instead of an accident of NaN comparisons always
// evaluating false.
type OptFloat struct {
	Value float64
	Valid bool
}

// Some wraps a ready value.
func Some(v float64) OptFloat { return OptFloat{Value: v, Valid: true} }

// None is the absent/not-yet-warmed-up value.
var None = OptFloat{}

func (o OptFloat) String() string {
	if !o.Valid {
		return "none"
	}
	return fmt.Sprintf("%g", o.Value)
}

// AggregateBars merges consecutive bars that share the same bucket under
// `to`, producing native-timeframe-accurate OHLCV bars. Alpaca has no
// native 4h or 1d-from-1h timeframe for every asset class this module
// targets, so 4h and 1d series are built by rolling up 1h bars.
func AggregateBars(bars []Bar, from, to Interval) ([]Bar, error) {
	if from == to {
		out := make([]Bar, len(bars))
		copy(out, bars)
		return out, nil
	}
	if from != OneHour {
		return nil, fmt.Errorf("market: aggregation only supports from=1h, got %q", from)
	}

	var bucketOf func(time.Time) time.Time
	switch to {
	case FourHour:
		bucketOf = func(t time.Time) time.Time {
			h := (t.Hour() / 4) * 4
			return time.Date(t.Year(), t.Month(), t.Day(), h, 0, 0, 0, t.Location())
		}
	case OneDay:
		bucketOf = func(t time.Time) time.Time {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		}
	default:
		return nil, fmt.Errorf("market: unsupported aggregation target %q", to)
	}

	out := make([]Bar, 0, len(bars))
	var cur *Bar
	var curBucket time.Time
	for _, b := range bars {
		bucket := bucketOf(b.Time)
		if cur == nil || !bucket.Equal(curBucket) {
			if cur != nil {
				out = append(out, *cur)
			}
			nb := b
			nb.Time = bucket
			cur = &nb
			curBucket = bucket
			continue
		}
		if b.High > cur.High {
			cur.High = b.High
		}
		if b.Low < cur.Low {
			cur.Low = b.Low
		}
		cur.Close = b.Close
		cur.Volume += b.Volume
	}
	if cur != nil {
		out = append(out, *cur)
	}
	return out, nil
}
