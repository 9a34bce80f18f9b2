// Package solving searches for plans under a wall-clock budget: candidate
// plans come from a learned pheromone matrix or from mutating the incumbent,
// are scored by deterministic rollout, and feed their quantile-normalised
// scores back into the learners.
package solving

import "sort"

const (
	initialQuantile          = 0.5
	initialQuantileDecayBase = 0.75
	quantileSampleLimit      = 32
)

// QuantileEstimator streams scores into a sorted bounded sample and reports
// the empirical rank of new scores. The rank is squashed toward 0.5 while
// few samples have been seen, so early scores don't over-steer learning.
type QuantileEstimator struct {
	samples     []float64
	sampleLimit int
	reapOffset  int
}

func NewQuantileEstimator() *QuantileEstimator {
	return &QuantileEstimator{sampleLimit: quantileSampleLimit}
}

func (e *QuantileEstimator) NumSamples() int {
	return len(e.samples)
}

// Insert adds score, keeping the sample sorted and bounded.
func (e *QuantileEstimator) Insert(score float64) {
	index := sort.SearchFloat64s(e.samples, score)
	e.samples = append(e.samples, 0)
	copy(e.samples[index+1:], e.samples[index:])
	e.samples[index] = score
	e.reap()
}

// Quantile returns the squashed empirical rank of score in [0, 1].
func (e *QuantileEstimator) Quantile(score float64) float64 {
	n := len(e.samples)
	if n <= 1 {
		return initialQuantile
	}

	index := sort.SearchFloat64s(e.samples, score)
	var sampleQuantile float64
	switch {
	case index < n && e.samples[index] == score:
		// Rank an exact match at the midpoint of its run of equals, so a
		// constant stream reports the prior rather than the left edge.
		end := index
		for end < n && e.samples[end] == score {
			end++
		}
		sampleQuantile = (float64(index) + float64(end)) / 2 / float64(n)
	case index <= 0:
		sampleQuantile = 0 // below the lowest value
	case index >= n:
		sampleQuantile = 1 // above the highest value
	default:
		below, above := index-1, index
		low, high := e.samples[below], e.samples[above]
		if low == high {
			sampleQuantile = float64(index) / float64(n)
		} else {
			// Linearly interpolate where this score sits between its bounds.
			subindex := (score - low) / (high - low)
			sampleQuantile = (float64(below) + subindex) / float64(n)
		}
	}

	// With 2 samples the rank is squashed into 0.25..0.75; the squash
	// relaxes toward the raw rank as the sample grows.
	confidence := 1 - 1/float64(n)
	return 0.5 + (sampleQuantile-0.5)*confidence
}

// reap halves the sample when it outgrows its cap, keeping every other
// element. The parity alternates between reaps so the surviving sample is
// not biased toward either tail.
func (e *QuantileEstimator) reap() {
	if len(e.samples) <= e.sampleLimit {
		return
	}

	const divisor = 2
	offset := e.reapOffset % divisor
	e.reapOffset++

	kept := e.samples[:0]
	for index, sample := range e.samples {
		if index%divisor == offset {
			kept = append(kept, sample)
		}
	}
	e.samples = kept
}
