package pricing

import "errors"

// Point is one (spot, value) sample of a swept metric, ordered by spot.
type Point struct {
	Spot  float64 `json:"spot"`
	Value float64 `json:"value"`
}

// Metric evaluates one pricing function at the given parameters. Functions
// that take an option type are adapted with a closure.
type Metric func(Params) (float64, error)

// Sweep evaluates fn at each spot in order, holding the remaining
// parameters fixed. Spots the model rejects with a *DomainError (e.g. a
// zero spot at the start of a chart range) are skipped so the series simply
// has a gap there; any other error aborts the sweep.
func Sweep(fn Metric, p Params, spots []float64) ([]Point, error) {
	out := make([]Point, 0, len(spots))
	for _, s := range spots {
		q := p
		q.Spot = s
		v, err := fn(q)
		if err != nil {
			var de *DomainError
			if errors.As(err, &de) {
				continue
			}
			return nil, err
		}
		out = append(out, Point{Spot: s, Value: v})
	}
	return out, nil
}

// SpotRange returns the spot values from lo to hi inclusive at the given
// step. A non-positive step yields nil.
func SpotRange(lo, hi, step float64) []float64 {
	if step <= 0 || hi < lo {
		return nil
	}
	out := make([]float64, 0, int((hi-lo)/step)+1)
	// tiny epsilon so accumulated float error cannot drop the endpoint
	for s := lo; s <= hi+step*1e-9; s += step {
		out = append(out, s)
	}
	return out
}
