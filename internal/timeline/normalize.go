// Package timeline aligns irregular news timestamps with a regular daily
// price series: normalization, per-day aggregation, and the tolerance-bounded
// nearest-date merge.
package timeline

import (
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"EquityPulse/internal/model"
)

// Normalize parses each raw article's publish timestamp and returns the
// records that parsed, sorted ascending by time, plus the number of records
// dropped. A record with a missing or unparsable timestamp is dropped on its
// own; one bad record never aborts the batch.
//
// News sources report offsets inconsistently, so every parsed instant is
// converted to its UTC equivalent. The absolute moment is preserved.
func Normalize(raw []model.RawArticle) ([]model.NormalizedArticle, int) {
	articles := make([]model.NormalizedArticle, 0, len(raw))
	dropped := 0

	for _, a := range raw {
		published := strings.TrimSpace(a.Published)
		if published == "" {
			dropped++
			continue
		}
		t, err := dateparse.ParseAny(published)
		if err != nil {
			dropped++
			continue
		}
		articles = append(articles, model.NormalizedArticle{
			Time:     t.UTC(),
			Headline: a.Headline,
			Summary:  a.Summary,
			Source:   a.Source,
			URL:      a.URL,
		})
	}

	sort.Slice(articles, func(i, j int) bool {
		return articles[i].Time.Before(articles[j].Time)
	})
	return articles, dropped
}

// dayOf truncates an instant to its UTC calendar day.
func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
