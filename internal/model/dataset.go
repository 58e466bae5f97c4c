package model

import "time"

// EnrichedBar is a price bar with the derived RSI value and the headlines
// matched to its date. Headlines is nil when no bucket fell inside the
// tolerance window; a non-nil empty string means a day matched but carried
// no headline text.
type EnrichedBar struct {
	PriceBar
	RSI       float64
	Headlines *string
}

// Matched reports whether any headline day was joined to this bar.
func (e EnrichedBar) Matched() bool { return e.Headlines != nil }

// Dataset is the terminal output for one ticker build.
type Dataset struct {
	Ticker          string
	Rows            []EnrichedBar
	ArticleCount    int
	DroppedArticles int
	BuiltAt         time.Time
}
