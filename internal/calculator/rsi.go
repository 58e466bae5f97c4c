package calculator

import (
	"errors"
	"math"

	"EquityPulse/internal/model"
)

// Series computes an RSI value for every bar, aligned index-for-index with
// the input. Early rows use a shrinking window (row i averages over
// min(i+1, period) observations), so the output has no leading gap.
//
// Edge cases: a window with gains but zero losses saturates at 100; a flat
// window (no gains, no losses) has no defined relative strength and yields
// NaN. Callers must tolerate NaN rows.
func Series(bars []model.PriceBar, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}

	closes := extractCloses(bars)
	n := len(closes)
	rsi := make([]float64, n)

	// Per-row gains and losses. The first row has no prior close, which
	// counts as a zero delta, same as an unparsable close.
	gains := make([]float64, n)
	losses := make([]float64, n)
	for i := 1; i < n; i++ {
		delta := closes[i] - closes[i-1]
		switch {
		case math.IsNaN(delta):
			// leave 0
		case delta > 0:
			gains[i] = delta
		default:
			losses[i] = -delta
		}
	}

	var gainSum, lossSum float64
	for i := 0; i < n; i++ {
		gainSum += gains[i]
		lossSum += losses[i]
		if i >= period {
			gainSum -= gains[i-period]
			lossSum -= losses[i-period]
		}
		window := float64(min(i+1, period))
		avgGain := gainSum / window
		avgLoss := lossSum / window

		switch {
		case avgLoss == 0 && avgGain == 0:
			rsi[i] = math.NaN()
		case avgLoss == 0:
			rsi[i] = 100.0
		default:
			rs := avgGain / avgLoss
			rsi[i] = 100.0 - 100.0/(1.0+rs)
		}
	}
	return rsi, nil
}

func extractCloses(bars []model.PriceBar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
