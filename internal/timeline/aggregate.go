package timeline

import (
	"sort"

	"EquityPulse/internal/model"
)

// Separator joins same-day headlines into a single string.
const Separator = " || "

// AggregateDaily groups normalized articles by calendar day and joins their
// headlines, in chronological order, into one string per day. Every day with
// at least one article yields a bucket, even when all its headlines are
// empty. The input is not mutated.
func AggregateDaily(articles []model.NormalizedArticle) []model.DailyHeadlines {
	if len(articles) == 0 {
		return nil
	}

	sorted := make([]model.NormalizedArticle, len(articles))
	copy(sorted, articles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})

	var buckets []model.DailyHeadlines
	for _, a := range sorted {
		day := dayOf(a.Time)
		if len(buckets) == 0 || !buckets[len(buckets)-1].Day.Equal(day) {
			buckets = append(buckets, model.DailyHeadlines{Day: day})
		}
		b := &buckets[len(buckets)-1]
		if b.Count > 0 {
			b.Joined += Separator
		}
		b.Joined += a.Headline
		b.Count++
	}
	return buckets
}
