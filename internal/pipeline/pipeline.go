package pipeline

import (
	"fmt"
	"log"
	"sort"
	"time"

	"EquityPulse/internal/calculator"
	"EquityPulse/internal/collector"
	"EquityPulse/internal/model"
	"EquityPulse/internal/news"
	"EquityPulse/internal/timeline"
)

// Builder assembles the enriched dataset for one ticker: price bars, RSI,
// and nearest-date-matched headlines.
type Builder struct {
	Fetcher       collector.Fetcher
	News          news.Provider
	RSIPeriod     int
	ToleranceDays int
}

// NewBuilder creates a Builder. Parameter validation happens in Build, at
// the boundary of the computation.
func NewBuilder(fetcher collector.Fetcher, provider news.Provider, rsiPeriod, toleranceDays int) *Builder {
	return &Builder{
		Fetcher:       fetcher,
		News:          provider,
		RSIPeriod:     rsiPeriod,
		ToleranceDays: toleranceDays,
	}
}

// Build fetches prices and news for [start, end] and produces the merged
// dataset. Source failures degrade to empty inputs rather than aborting:
// no price data yields an empty dataset, no news yields bars with unmatched
// headline columns. Both conditions are logged so a run never looks
// misleadingly complete.
func (b *Builder) Build(ticker string, start, end time.Time) (*model.Dataset, error) {
	if b.RSIPeriod <= 0 {
		return nil, fmt.Errorf("rsi period must be positive, got %d", b.RSIPeriod)
	}
	if b.ToleranceDays < 0 {
		return nil, fmt.Errorf("tolerance days must not be negative, got %d", b.ToleranceDays)
	}

	ds := &model.Dataset{Ticker: ticker, BuiltAt: time.Now().UTC()}

	bars, err := b.Fetcher.FetchDailyBars(ticker, start, end)
	if err != nil {
		log.Printf("[WARN] %s: price fetch failed, continuing with empty series: %v", ticker, err)
		bars = nil
	}
	if len(bars) == 0 {
		log.Printf("[WARN] %s: no price data, dataset will be empty", ticker)
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })

	rsi, err := calculator.Series(bars, b.RSIPeriod)
	if err != nil {
		return nil, fmt.Errorf("compute rsi: %w", err)
	}

	var raw []model.RawArticle
	if b.News != nil {
		raw, err = b.News.FetchArticles(ticker, start, end)
		if err != nil {
			log.Printf("[WARN] %s: news fetch failed, continuing without headlines: %v", ticker, err)
			raw = nil
		}
	}

	articles, dropped := timeline.Normalize(raw)
	if dropped > 0 {
		log.Printf("[WARN] %s: dropped %d article(s) with unparsable timestamps", ticker, dropped)
	}
	buckets := timeline.AggregateDaily(articles)

	rows, err := timeline.MergeNearest(bars, buckets, b.ToleranceDays)
	if err != nil {
		return nil, fmt.Errorf("merge headlines: %w", err)
	}
	// MergeNearest emits one row per bar in the same sorted order, so the
	// RSI series aligns index-for-index.
	for i := range rows {
		rows[i].RSI = rsi[i]
	}

	ds.Rows = rows
	ds.ArticleCount = len(articles)
	ds.DroppedArticles = dropped
	return ds, nil
}
