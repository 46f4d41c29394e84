package features

import "math"

// RSI computes the relative strength index over a time-ordered price series.
// Per-step deltas are split into gains and losses and averaged over a
// trailing window of `period` deltas. The output is aligned to the input:
// positions without a full window of deltas carry NaN, the explicit
// "no value yet" marker. When the average loss is zero the RSI saturates
// at exactly 100.
func RSI(prices []float64, period int) []float64 {
	out := make([]float64, len(prices))
	for i := range out {
		out[i] = math.NaN()
	}
	if period <= 0 || len(prices) <= period {
		return out
	}

	for i := period; i < len(prices); i++ {
		var sumGain, sumLoss float64
		for j := i - period + 1; j <= i; j++ {
			delta := prices[j] - prices[j-1]
			if delta > 0 {
				sumGain += delta
			} else {
				sumLoss -= delta
			}
		}
		avgGain := sumGain / float64(period)
		avgLoss := sumLoss / float64(period)

		if avgLoss == 0 {
			out[i] = 100.0
			continue
		}
		rs := avgGain / avgLoss
		out[i] = 100.0 - 100.0/(1.0+rs)
	}

	return out
}

// Drawdown computes the percentage distance of each price from the running
// maximum observed so far. Always <= 0; the first point is 0 by construction.
func Drawdown(prices []float64) []float64 {
	out := make([]float64, len(prices))
	if len(prices) == 0 {
		return out
	}

	runningMax := prices[0]
	for i, p := range prices {
		if p > runningMax {
			runningMax = p
		}
		if runningMax == 0 {
			out[i] = 0
			continue
		}
		out[i] = (p - runningMax) / runningMax * 100
	}

	return out
}
