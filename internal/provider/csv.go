package provider

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/zigfinance/fuzzytrader/market"
)

// CSVProvider serves bars from a local file instead of a live feed, for
// backtests run against recorded data. The symbol and interval arguments to
// GetBars are ignored beyond filtering by [start, end) — one file holds one
// symbol at one timeframe.
type CSVProvider struct {
	Path string
}

// NewCSVProvider builds a provider reading from path.
func NewCSVProvider(path string) *CSVProvider {
	return &CSVProvider{Path: path}
}

// GetBars implements BarProvider. The file is a generic candle CSV with a
// header row naming time|timestamp, open, high, low, close, volume columns
// in any order; unknown columns are ignored and header names are
// case-insensitive. The time column accepts RFC3339 or UNIX seconds.
func (p *CSVProvider) GetBars(_ context.Context, _ string, _ market.Interval, start, end time.Time) ([]market.Bar, error) {
	f, err := os.Open(p.Path)
	if err != nil {
		return nil, fmt.Errorf("provider: open %s: %w", p.Path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var out []market.Bar
	var headers []string
	rowIdx := 0

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("provider: read %s: %w", p.Path, err)
		}
		if rowIdx == 0 {
			headers = rec
			rowIdx++
			continue
		}
		row := map[string]string{}
		for j, h := range headers {
			k := strings.ToLower(strings.TrimSpace(h))
			if j < len(rec) {
				row[k] = strings.TrimSpace(rec[j])
			}
		}
		ts := firstOf(row, "time", "timestamp")
		op := firstOf(row, "open")
		cp := firstOf(row, "close")
		if ts == "" || op == "" || cp == "" {
			continue
		}
		t, err := parseTimeFlexible(ts)
		if err != nil {
			continue
		}
		if t.Before(start) || !t.Before(end) {
			rowIdx++
			continue
		}

		o, _ := strconv.ParseFloat(op, 64)
		h, _ := strconv.ParseFloat(firstOf(row, "high"), 64)
		l, _ := strconv.ParseFloat(firstOf(row, "low"), 64)
		c, _ := strconv.ParseFloat(cp, 64)
		v, _ := strconv.ParseFloat(firstOf(row, "volume", "vol"), 64)

		out = append(out, market.Bar{Time: t, Open: o, High: h, Low: l, Close: c, Volume: v})
		rowIdx++
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out, nil
}

func firstOf(row map[string]string, keys ...string) string {
	for _, k := range keys {
		if v, ok := row[k]; ok && v != "" {
			return v
		}
	}
	return ""
}

func parseTimeFlexible(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(sec, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("bad time: %s", s)
}
