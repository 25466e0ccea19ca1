package provider

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTestCSV(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "bars.csv")
	content := "time,open,high,low,close,volume\n" +
		"2024-01-01T00:00:00Z,100,101,99,100.5,1000\n" +
		"2024-01-02T00:00:00Z,100.5,102,100,101.5,1200\n" +
		"2024-01-03T00:00:00Z,101.5,103,101,102.5,900\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCSVProviderParsesAndFiltersByRange(t *testing.T) {
	path := writeTestCSV(t, t.TempDir())
	p := NewCSVProvider(path)

	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	bars, err := p.GetBars(context.Background(), "IGNORED", "1d", start, end)
	if err != nil {
		t.Fatal(err)
	}
	if len(bars) != 1 {
		t.Fatalf("got %d bars, want 1", len(bars))
	}
	if bars[0].Close != 101.5 {
		t.Fatalf("close = %v, want 101.5", bars[0].Close)
	}
}

func TestCSVProviderSkipsUnparseableRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bars.csv")
	content := "time,open,high,low,close,volume\n" +
		"not-a-time,100,101,99,100.5,1000\n" +
		"2024-01-02T00:00:00Z,100.5,102,100,101.5,1200\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	p := NewCSVProvider(path)

	bars, err := p.GetBars(context.Background(), "IGNORED", "1d",
		time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if len(bars) != 1 {
		t.Fatalf("got %d bars, want 1", len(bars))
	}
}
