package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EquityPulse/internal/model"
)

func article(ts string, headline string) model.NormalizedArticle {
	t, err := time.Parse("2006-01-02T15:04", ts)
	if err != nil {
		panic(err)
	}
	return model.NormalizedArticle{Time: t.UTC(), Headline: headline}
}

func TestAggregateDailyEmpty(t *testing.T) {
	assert.Empty(t, AggregateDaily(nil))
}

func TestAggregateDailyJoinsSameDay(t *testing.T) {
	articles := []model.NormalizedArticle{
		article("2024-01-01T09:00", "A"),
		article("2024-01-01T15:00", "B"),
		article("2024-01-03T10:00", "C"),
	}
	buckets := AggregateDaily(articles)
	require.Len(t, buckets, 2)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), buckets[0].Day)
	assert.Equal(t, "A || B", buckets[0].Joined)
	assert.Equal(t, 2, buckets[0].Count)

	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), buckets[1].Day)
	assert.Equal(t, "C", buckets[1].Joined)
	assert.Equal(t, 1, buckets[1].Count)
}

func TestAggregateDailyOneBucketPerDistinctDay(t *testing.T) {
	articles := []model.NormalizedArticle{
		article("2024-01-01T09:00", "a"),
		article("2024-01-02T09:00", "b"),
		article("2024-01-02T10:00", "c"),
		article("2024-01-05T09:00", "d"),
	}
	buckets := AggregateDaily(articles)
	require.Len(t, buckets, 3)

	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	assert.Equal(t, len(articles), total)
}

func TestAggregateDailyEmptyHeadlinesStillBucket(t *testing.T) {
	articles := []model.NormalizedArticle{
		article("2024-01-01T09:00", ""),
		article("2024-01-01T11:00", ""),
	}
	buckets := AggregateDaily(articles)
	require.Len(t, buckets, 1)
	assert.Equal(t, " || ", buckets[0].Joined)
	assert.Equal(t, 2, buckets[0].Count)
}

func TestAggregateDailyChronologicalWithinDay(t *testing.T) {
	// deliberately out of order; aggregation sorts a copy
	articles := []model.NormalizedArticle{
		article("2024-01-01T15:00", "later"),
		article("2024-01-01T09:00", "earlier"),
	}
	buckets := AggregateDaily(articles)
	require.Len(t, buckets, 1)
	assert.Equal(t, "earlier || later", buckets[0].Joined)

	// input untouched
	assert.Equal(t, "later", articles[0].Headline)
}
