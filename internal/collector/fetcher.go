package collector

import (
	"time"

	"EquityPulse/internal/model"
)

// Fetcher defines the interface for fetching daily price history.
type Fetcher interface {
	// FetchDailyBars returns daily bars for [start, end], sorted ascending
	// by time, with no duplicate dates.
	FetchDailyBars(symbol string, start, end time.Time) ([]model.PriceBar, error)
	Name() string
}
