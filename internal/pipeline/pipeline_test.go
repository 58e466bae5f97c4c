package pipeline

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EquityPulse/internal/collector"
	"EquityPulse/internal/model"
	"EquityPulse/internal/news"
)

func fiveBars() []model.PriceBar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	closes := []float64{100, 102, 101, 105, 103}
	bars := make([]model.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = model.PriceBar{Time: start.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 1000}
	}
	return bars
}

func sampleArticles() []model.RawArticle {
	return []model.RawArticle{
		{Published: "2024-01-01T09:00:00Z", Headline: "A"},
		{Published: "2024-01-01T15:00:00Z", Headline: "B"},
		{Published: "2024-01-03T10:00:00Z", Headline: "C"},
		{Published: "garbage", Headline: "dropped"},
	}
}

func TestBuildHappyPath(t *testing.T) {
	b := NewBuilder(
		&collector.MockFetcher{Bars: fiveBars()},
		&news.MockProvider{Articles: sampleArticles()},
		14, 1,
	)
	ds, err := b.Build("TEST", time.Now().AddDate(0, 0, -30), time.Now())
	require.NoError(t, err)
	require.Len(t, ds.Rows, 5)

	assert.Equal(t, "TEST", ds.Ticker)
	assert.Equal(t, 3, ds.ArticleCount)
	assert.Equal(t, 1, ds.DroppedArticles)

	// headline alignment: Jan 2 ties between Jan 1 and Jan 3, earlier wins;
	// Jan 5 is two days past the last bucket and stays unmatched.
	wantHeadlines := []*string{ptr("A || B"), ptr("A || B"), ptr("C"), ptr("C"), nil}
	for i, want := range wantHeadlines {
		if want == nil {
			assert.Nil(t, ds.Rows[i].Headlines, "row %d", i)
		} else {
			require.NotNil(t, ds.Rows[i].Headlines, "row %d", i)
			assert.Equal(t, *want, *ds.Rows[i].Headlines, "row %d", i)
		}
	}

	// RSI aligned with bars: row 0 is a zero-delta window, row 1 gains only.
	assert.True(t, math.IsNaN(ds.Rows[0].RSI))
	assert.InDelta(t, 100.0, ds.Rows[1].RSI, 1e-9)
}

func TestBuildPriceFailureDegrades(t *testing.T) {
	b := NewBuilder(
		&collector.MockFetcher{Err: errors.New("network down")},
		&news.MockProvider{Articles: sampleArticles()},
		14, 1,
	)
	ds, err := b.Build("TEST", time.Now().AddDate(0, 0, -7), time.Now())
	require.NoError(t, err, "source failure must degrade, not abort")
	assert.Empty(t, ds.Rows)
}

func TestBuildNewsFailureDegrades(t *testing.T) {
	b := NewBuilder(
		&collector.MockFetcher{Bars: fiveBars()},
		&news.MockProvider{Err: errors.New("scrape blocked")},
		14, 1,
	)
	ds, err := b.Build("TEST", time.Now().AddDate(0, 0, -7), time.Now())
	require.NoError(t, err)
	require.Len(t, ds.Rows, 5)
	for i, row := range ds.Rows {
		assert.Nil(t, row.Headlines, "row %d", i)
	}
}

func TestBuildWithoutNewsProvider(t *testing.T) {
	b := NewBuilder(&collector.MockFetcher{Bars: fiveBars()}, nil, 14, 1)
	ds, err := b.Build("TEST", time.Now().AddDate(0, 0, -7), time.Now())
	require.NoError(t, err)
	assert.Len(t, ds.Rows, 5)
	assert.Zero(t, ds.ArticleCount)
}

func TestBuildRejectsBadParameters(t *testing.T) {
	b := NewBuilder(&collector.MockFetcher{}, &news.MockProvider{}, 0, 1)
	_, err := b.Build("TEST", time.Now().AddDate(0, 0, -7), time.Now())
	require.Error(t, err)

	b = NewBuilder(&collector.MockFetcher{}, &news.MockProvider{}, 14, -1)
	_, err = b.Build("TEST", time.Now().AddDate(0, 0, -7), time.Now())
	require.Error(t, err)
}

func ptr(s string) *string { return &s }
