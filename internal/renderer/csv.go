package renderer

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"EquityPulse/internal/model"
)

var csvHeader = []string{
	"date", "open", "high", "low", "close", "volume", "rsi", "matched", "headlines",
}

// WriteCSV writes one dataset to <dir>/<ticker>.csv and returns the path.
// A NaN RSI renders as an empty cell. The matched column distinguishes
// "no headline day within tolerance" from "matched a day with no headline
// text": both render an empty headlines cell.
func WriteCSV(dir string, ds *model.Dataset) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(dir, ds.Ticker+".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}

	for _, row := range ds.Rows {
		rsi := ""
		if !math.IsNaN(row.RSI) {
			rsi = fmt.Sprintf("%.4f", row.RSI)
		}
		headlines := ""
		if row.Headlines != nil {
			headlines = *row.Headlines
		}
		record := []string{
			row.Time.UTC().Format(time.DateOnly),
			fmt.Sprintf("%.4f", row.Open),
			fmt.Sprintf("%.4f", row.High),
			fmt.Sprintf("%.4f", row.Low),
			fmt.Sprintf("%.4f", row.Close),
			fmt.Sprintf("%.0f", row.Volume),
			rsi,
			fmt.Sprintf("%t", row.Matched()),
			headlines,
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return path, nil
}
