package news

import (
	"time"

	"EquityPulse/internal/model"
)

// Provider defines the interface for fetching raw article records for a
// ticker over a date range. Results may be partial, malformed, or empty;
// the normalizer downstream is responsible for making sense of them.
type Provider interface {
	FetchArticles(symbol string, from, to time.Time) ([]model.RawArticle, error)
	Name() string
}
