package correlator

import (
	"fmt"
	"math"
)

// Correlator accumulates the time correlation <a(t)b(t+t')> of one scalar
// pair on the fly. Samples are fed one at a time through Update; lag times
// grow exponentially with the block hierarchy, so memory stays
// O(blocks*points) no matter how long the stream runs.
type Correlator struct {
	blocks    int
	points    int
	averaging int

	// minDist is the smallest lag computed on blocks above level 0; shorter
	// lags are already covered at finer resolution by the level below.
	minDist      int
	maxBlockUsed int

	levels []level
}

// level holds the per-block state: a circular shift register of recent
// samples, the running average handed to the next block, and the
// correlation accumulators indexed by lag.
type level struct {
	shiftA []float64
	shiftB []float64
	valid  []bool
	index  int

	accumA     float64
	accumB     float64
	accumCount int

	correlation []float64
	counts      []int
}

// NewCorrelator returns an empty correlator. blocks is the number of
// hierarchy levels, points the shift register capacity per level, and
// averaging the downsampling window between levels.
func NewCorrelator(blocks, points, averaging int) (*Correlator, error) {
	switch {
	case blocks <= 0:
		return nil, fmt.Errorf("correlator: blocks must be positive, got %d", blocks)
	case points <= 0:
		return nil, fmt.Errorf("correlator: points must be positive, got %d", points)
	case averaging <= 0:
		return nil, fmt.Errorf("correlator: averaging must be positive, got %d", averaging)
	}

	c := &Correlator{
		blocks:    blocks,
		points:    points,
		averaging: averaging,
		minDist:   points / averaging,
		levels:    make([]level, blocks),
	}
	for k := range c.levels {
		c.levels[k] = level{
			shiftA:      make([]float64, points),
			shiftB:      make([]float64, points),
			valid:       make([]bool, points),
			correlation: make([]float64, points),
			counts:      make([]int, points),
		}
	}
	return c, nil
}

// Update records one new observation pair at raw sampling resolution.
func (c *Correlator) Update(a, b float64) {
	c.propagate(a, b, 0)
}

// propagate writes (a, b) into the given block, hands a coarsened average
// to the block above once every averaging samples, and correlates the new
// sample against the block's shift register.
func (c *Correlator) propagate(a, b float64, block int) {
	if block == c.blocks {
		return
	}
	lv := &c.levels[block]

	i := lv.index
	lv.shiftA[i] = a
	lv.shiftB[i] = b
	lv.valid[i] = true
	if block > c.maxBlockUsed {
		c.maxBlockUsed = block
	}

	lv.accumA += a
	lv.accumB += b
	lv.accumCount++
	if lv.accumCount == c.averaging {
		avg := float64(c.averaging)
		c.propagate(lv.accumA/avg, lv.accumB/avg, block+1)
		lv.accumA = 0
		lv.accumB = 0
		lv.accumCount = 0
	}

	start := 0
	if block > 0 {
		start = c.minDist
	}
	for lag := start; lag < c.points; lag++ {
		j := i - lag
		if j < 0 {
			j += c.points
		}
		if lv.valid[i] && lv.valid[j] {
			lv.correlation[lag] += lv.shiftA[i] * lv.shiftB[j]
			lv.counts[lag]++
		}
	}

	lv.index = (lv.index + 1) % c.points
}

// Lags returns the correlation lag times in raw sampling intervals: level 0
// contributes lags 0..points-1, block k contributes lag*averaging^k. Cells
// that have not yet received data are omitted.
func (c *Correlator) Lags() []float64 {
	lags := make([]float64, 0, c.points*c.blocks)
	for i, n := range c.levels[0].counts {
		if n > 0 {
			lags = append(lags, float64(i))
		}
	}
	for k := 1; k < c.maxBlockUsed; k++ {
		scale := math.Pow(float64(c.averaging), float64(k))
		for i := c.minDist; i < c.points; i++ {
			if c.levels[k].counts[i] > 0 {
				lags = append(lags, float64(i)*scale)
			}
		}
	}
	return lags
}

// Values returns the correlation values aligned with Lags: the running mean
// of the accumulated products at each reported (block, lag) cell.
func (c *Correlator) Values() []float64 {
	values := make([]float64, 0, c.points*c.blocks)
	for i, n := range c.levels[0].counts {
		if n > 0 {
			values = append(values, c.levels[0].correlation[i]/float64(n))
		}
	}
	for k := 1; k < c.maxBlockUsed; k++ {
		for i := c.minDist; i < c.points; i++ {
			if n := c.levels[k].counts[i]; n > 0 {
				values = append(values, c.levels[k].correlation[i]/float64(n))
			}
		}
	}
	return values
}
