package correlator

// Frame is one sampling step of the stream: named scalar channels observed
// at the same instant.
type Frame map[string]float64

// Observable extracts an ordered vector of scalars from a frame. The output
// length must stay fixed for the lifetime of the owning Correlation.
type Observable func(f Frame) []float64

// Columns builds an observable selecting the named channels in order.
// Missing channels read as zero; the session layer validates channel names
// against the input table up front.
func Columns(names ...string) Observable {
	return func(f Frame) []float64 {
		out := make([]float64, len(names))
		for i, name := range names {
			out[i] = f[name]
		}
		return out
	}
}
