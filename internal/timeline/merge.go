package timeline

import (
	"errors"
	"math"
	"sort"
	"time"

	"EquityPulse/internal/model"
)

// MergeNearest joins daily headline buckets onto a price series. For each
// bar it picks the bucket day closest to the bar's day, as long as the gap
// is at most toleranceDays; when two bucket days are equidistant the earlier
// one wins. Bars with no qualifying bucket keep a nil Headlines pointer,
// which is distinct from matching a day whose joined string is empty.
//
// The price side is authoritative: the output has exactly one row per input
// bar, never more, never fewer. RSI is left NaN for the caller to fill in.
// Neither input slice is mutated; both are re-sorted defensively on copies.
//
// Cost is O(N log N + M log M): one sort per side plus a binary search per
// bar. A linear scan per bar would be quadratic and is deliberately avoided.
func MergeNearest(bars []model.PriceBar, buckets []model.DailyHeadlines, toleranceDays int) ([]model.EnrichedBar, error) {
	if toleranceDays < 0 {
		return nil, errors.New("tolerance days must not be negative")
	}

	sortedBars := make([]model.PriceBar, len(bars))
	copy(sortedBars, bars)
	sort.Slice(sortedBars, func(i, j int) bool {
		return sortedBars[i].Time.Before(sortedBars[j].Time)
	})

	days := make([]model.DailyHeadlines, len(buckets))
	copy(days, buckets)
	sort.Slice(days, func(i, j int) bool {
		return days[i].Day.Before(days[j].Day)
	})

	rows := make([]model.EnrichedBar, len(sortedBars))
	for i, bar := range sortedBars {
		rows[i] = model.EnrichedBar{PriceBar: bar, RSI: math.NaN()}

		d := bar.Day()
		// First bucket day not before d; candidates are it and its predecessor.
		j := sort.Search(len(days), func(k int) bool {
			return !days[k].Day.Before(d)
		})

		best := -1
		bestDist := 0
		if j > 0 {
			best = j - 1
			bestDist = daysApart(d, days[j-1].Day)
		}
		if j < len(days) {
			if next := daysApart(d, days[j].Day); best < 0 || next < bestDist {
				best = j
				bestDist = next
			}
			// On a tie the earlier day (j-1) already won.
		}

		if best >= 0 && bestDist <= toleranceDays {
			joined := days[best].Joined
			rows[i].Headlines = &joined
		}
	}
	return rows, nil
}

// daysApart returns the absolute whole-day distance between two UTC
// midnights.
func daysApart(a, b time.Time) int {
	d := int(a.Sub(b).Hours() / 24)
	if d < 0 {
		d = -d
	}
	return d
}
