package correlator

import "fmt"

// Correlation binds a named pair of observables to one Correlator per
// vector component. Components fan out lazily on the first Update, once the
// observable output length is known, and Get averages across them.
type Correlation struct {
	name      string
	a, b      Observable
	blocks    int
	points    int
	averaging int

	updateFrequency int
	correlators     []*Correlator
}

// NewCorrelation validates the correlator parameters up front so a
// misconfigured correlation fails before any samples flow.
func NewCorrelation(name string, a, b Observable, blocks, points, averaging, updateFrequency int) (*Correlation, error) {
	if _, err := NewCorrelator(blocks, points, averaging); err != nil {
		return nil, fmt.Errorf("correlation %q: %w", name, err)
	}
	if updateFrequency <= 0 {
		return nil, fmt.Errorf("correlation %q: update frequency must be positive, got %d", name, updateFrequency)
	}
	return &Correlation{
		name:            name,
		a:               a,
		b:               b,
		blocks:          blocks,
		points:          points,
		averaging:       averaging,
		updateFrequency: updateFrequency,
	}, nil
}

// Name returns the display name of the correlation.
func (c *Correlation) Name() string { return c.name }

func (c *Correlation) String() string { return c.name }

// UpdateFrequency is the cadence, in driver steps, at which the owning loop
// should call Update.
func (c *Correlation) UpdateFrequency() int { return c.updateFrequency }

// Components returns how many correlators the observables fanned out to,
// zero before the first Update.
func (c *Correlation) Components() int { return len(c.correlators) }

// Update evaluates both observables against the frame and forwards each
// component pair to its correlator. The component count is fixed by the
// first call; a later change is a caller bug and is rejected.
func (c *Correlation) Update(f Frame) error {
	va := c.a(f)
	vb := c.b(f)
	if len(va) != len(vb) {
		return fmt.Errorf("correlation %q: observable lengths differ, a=%d b=%d", c.name, len(va), len(vb))
	}

	if c.correlators == nil {
		c.correlators = make([]*Correlator, len(va))
		for i := range c.correlators {
			cor, err := NewCorrelator(c.blocks, c.points, c.averaging)
			if err != nil {
				return fmt.Errorf("correlation %q: %w", c.name, err)
			}
			c.correlators[i] = cor
		}
	}
	if len(va) != len(c.correlators) {
		return fmt.Errorf("correlation %q: observable length changed from %d to %d", c.name, len(c.correlators), len(va))
	}

	for i, cor := range c.correlators {
		cor.Update(va[i], vb[i])
	}
	return nil
}

// Get returns the lag axis and the correlation values averaged over all
// components. Before the first Update both slices are empty. All components
// share one update sequence and identical parameters, so their lag axes are
// structurally identical; a mismatch means the invariant was broken and is
// reported rather than silently misaligning the average.
func (c *Correlation) Get() (lags, values []float64, err error) {
	if len(c.correlators) == 0 {
		return []float64{}, []float64{}, nil
	}

	lags = c.correlators[0].Lags()
	values = make([]float64, len(lags))
	for i, cor := range c.correlators {
		v := cor.Values()
		if len(v) != len(lags) {
			return nil, nil, fmt.Errorf("correlation %q: component %d reports %d values against %d lags", c.name, i, len(v), len(lags))
		}
		for j, x := range v {
			values[j] += x
		}
	}
	for j := range values {
		values[j] /= float64(len(c.correlators))
	}
	return lags, values, nil
}
