package series

import "math"

// Welford accumulates running mean and variance in one pass.
type Welford struct {
	count int64
	mean  float64
	m2    float64
}

// Update folds one value into the accumulator.
func (w *Welford) Update(x float64) {
	w.count++
	delta := x - w.mean
	w.mean += delta / float64(w.count)
	w.m2 += delta * (x - w.mean)
}

// Count returns the number of values seen.
func (w *Welford) Count() int64 { return w.count }

// Mean returns the running mean, zero before any update.
func (w *Welford) Mean() float64 { return w.mean }

// Variance returns the sample variance, zero until two values are seen.
func (w *Welford) Variance() float64 {
	if w.count < 2 {
		return 0
	}
	return w.m2 / float64(w.count-1)
}

// Stddev returns the sample standard deviation.
func (w *Welford) Stddev() float64 { return math.Sqrt(w.Variance()) }

// Summarize runs a Welford pass over every column of a table, in column
// order.
func Summarize(t *Table) []Welford {
	out := make([]Welford, t.Columns())
	for _, row := range t.rows {
		for i, v := range row {
			out[i].Update(v)
		}
	}
	return out
}
