package renderer

import (
	"encoding/csv"
	"math"
	"os"
	"strings"
	"testing"
	"time"

	"EquityPulse/internal/model"
)

func sampleDataset() *model.Dataset {
	matched := "Chip news || Guidance raised"
	empty := ""
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &model.Dataset{
		Ticker:  "NVDA",
		BuiltAt: time.Now().UTC(),
		Rows: []model.EnrichedBar{
			{PriceBar: model.PriceBar{Time: start, Close: 500, Volume: 1e6}, RSI: math.NaN(), Headlines: &matched},
			{PriceBar: model.PriceBar{Time: start.AddDate(0, 0, 1), Close: 510, Volume: 1e6}, RSI: 100, Headlines: nil},
			{PriceBar: model.PriceBar{Time: start.AddDate(0, 0, 2), Close: 505, Volume: 1e6}, RSI: 66.6667, Headlines: &empty},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteCSV(dir, sampleDataset())
	if err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if !strings.HasSuffix(path, "NVDA.csv") {
		t.Errorf("unexpected path %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header + 3 rows, got %d records", len(records))
	}
	if records[0][0] != "date" || records[0][6] != "rsi" || records[0][8] != "headlines" {
		t.Errorf("unexpected header: %v", records[0])
	}

	// NaN RSI renders as an empty cell
	if records[1][6] != "" {
		t.Errorf("expected empty rsi cell, got %q", records[1][6])
	}
	// unmatched and matched-empty rows both have empty headline cells but
	// differ in the matched column
	if records[2][7] != "false" || records[2][8] != "" {
		t.Errorf("unmatched row rendered wrong: %v", records[2])
	}
	if records[3][7] != "true" || records[3][8] != "" {
		t.Errorf("matched-empty row rendered wrong: %v", records[3])
	}
	if records[1][7] != "true" || records[1][8] != "Chip news || Guidance raised" {
		t.Errorf("matched row rendered wrong: %v", records[1])
	}
}

func TestFormatBuildReport(t *testing.T) {
	report := FormatBuildReport(sampleDataset())
	if !strings.Contains(report, "NVDA") {
		t.Errorf("report missing ticker: %s", report)
	}
	if !strings.Contains(report, "headline coverage: 2/3") {
		t.Errorf("report missing coverage: %s", report)
	}
}

func TestFormatBuildReportEmpty(t *testing.T) {
	report := FormatBuildReport(&model.Dataset{Ticker: "AAPL", BuiltAt: time.Now()})
	if !strings.Contains(report, "degraded") {
		t.Errorf("empty dataset report should flag degraded run: %s", report)
	}
}
