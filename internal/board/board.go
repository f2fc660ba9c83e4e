// Package board assembles one dashboard render: the scalar metric row and
// the per-metric chart series the presentation layer displays.
package board

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/contactkeval/option-greeks/internal/logger"
	"github.com/contactkeval/option-greeks/internal/pricing"
)

// sweepPad extends the charted spot range 50 units past the current spot,
// so each series spans spots 0..spot+50 inclusive at step 1.
const sweepPad = 50

// invalidNotice is shown in place of a metric the engine rejects.
const invalidNotice = "invalid parameters"

// Inputs are the raw fields collected from the user, before day-count
// conversion. Ranges mirror the input widgets: rate and vol within [0, 1],
// spot and strike at least one unit, maturity as whole days.
type Inputs struct {
	Rate   float64            `json:"rate"`
	Spot   float64            `json:"spot"`
	Strike float64            `json:"strike"`
	Days   int                `json:"days"`
	Vol    float64            `json:"vol"`
	Type   pricing.OptionType `json:"type"`
}

// InputError reports an input field outside its widget range.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("board: invalid %s: %s", e.Field, e.Reason)
}

// Validate checks each field against its allowed range.
func (in Inputs) Validate() error {
	switch {
	case in.Rate < 0 || in.Rate > 1 || math.IsNaN(in.Rate):
		return &InputError{Field: "rate", Reason: fmt.Sprintf("must be within [0, 1], got %g", in.Rate)}
	case in.Spot < 1 || math.IsNaN(in.Spot):
		return &InputError{Field: "spot", Reason: fmt.Sprintf("must be at least 1, got %g", in.Spot)}
	case in.Strike < 1 || math.IsNaN(in.Strike):
		return &InputError{Field: "strike", Reason: fmt.Sprintf("must be at least 1, got %g", in.Strike)}
	case in.Days < 1:
		return &InputError{Field: "days", Reason: fmt.Sprintf("must be at least 1, got %d", in.Days)}
	case in.Vol < 0 || in.Vol > 1 || math.IsNaN(in.Vol):
		return &InputError{Field: "vol", Reason: fmt.Sprintf("must be within [0, 1], got %g", in.Vol)}
	}
	if in.Type != pricing.Call && in.Type != pricing.Put {
		return &InputError{Field: "type", Reason: fmt.Sprintf("must be call or put, got %q", in.Type)}
	}
	return nil
}

// Params converts the day-count inputs into engine parameters, dividing the
// whole-day maturity by 365.
func (in Inputs) Params() pricing.Params {
	return pricing.Params{
		Spot:     in.Spot,
		Strike:   in.Strike,
		Rate:     in.Rate,
		Maturity: float64(in.Days) / 365,
		Vol:      in.Vol,
	}
}

// Metric is one scalar cell of the board: a value rounded to three decimal
// places, or a notice when the engine rejects the inputs for that output.
type Metric struct {
	Name   string   `json:"name"`
	Value  *float64 `json:"value,omitempty"`
	Notice string   `json:"notice,omitempty"`
}

// Display renders the cell for terminal output.
func (m Metric) Display() string {
	if m.Value == nil {
		return m.Notice
	}
	return strconv.FormatFloat(*m.Value, 'f', 3, 64)
}

// Series is one metric charted across the swept spot range.
type Series struct {
	Name   string          `json:"name"`
	Points []pricing.Point `json:"points"`
}

// Snapshot is one complete board render: the inputs it was built from, the
// metric row (call price, put price, and the five Greeks for the selected
// type) and the six chart series for the selected type.
type Snapshot struct {
	Inputs  Inputs   `json:"inputs"`
	Metrics []Metric `json:"metrics"`
	Series  []Series `json:"series"`
}

type evaluation struct {
	name string
	fn   pricing.Metric
}

// Build evaluates the full board for the given inputs.
//
// Each metric is computed independently: a *pricing.DomainError on one
// output yields an "invalid parameters" notice for that cell only, while
// any other error aborts the build. Chart series skip spots the model
// rejects, so the leading zero spot simply leaves a gap.
func Build(in Inputs) (*Snapshot, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p := in.Params()
	logger.Debugf("board: building snapshot for %s S=%g K=%g r=%g days=%d vol=%g",
		in.Type, in.Spot, in.Strike, in.Rate, in.Days, in.Vol)

	cells := []evaluation{
		{"Call Price", price(pricing.Call)},
		{"Put Price", price(pricing.Put)},
		{"Delta", delta(in.Type)},
		{"Gamma", pricing.Gamma},
		{"Theta", theta(in.Type)},
		{"Vega", pricing.Vega},
		{"Rho", rho(in.Type)},
	}
	snap := &Snapshot{Inputs: in, Metrics: make([]Metric, 0, len(cells))}
	for _, c := range cells {
		cell, err := buildCell(c.name, c.fn, p)
		if err != nil {
			return nil, err
		}
		snap.Metrics = append(snap.Metrics, cell)
	}

	spots := pricing.SpotRange(0, in.Spot+sweepPad, 1)
	charts := []evaluation{
		{"price", price(in.Type)},
		{"delta", delta(in.Type)},
		{"gamma", pricing.Gamma},
		{"theta", theta(in.Type)},
		{"vega", pricing.Vega},
		{"rho", rho(in.Type)},
	}
	snap.Series = make([]Series, 0, len(charts))
	for _, c := range charts {
		pts, err := pricing.Sweep(c.fn, p, spots)
		if err != nil {
			return nil, fmt.Errorf("board: sweeping %s: %w", c.name, err)
		}
		snap.Series = append(snap.Series, Series{Name: c.name, Points: pts})
	}
	return snap, nil
}

func buildCell(name string, fn pricing.Metric, p pricing.Params) (Metric, error) {
	v, err := fn(p)
	if err != nil {
		var de *pricing.DomainError
		if errors.As(err, &de) {
			logger.Debugf("board: %s: %v", name, err)
			return Metric{Name: name, Notice: invalidNotice}, nil
		}
		return Metric{}, fmt.Errorf("board: computing %s: %w", name, err)
	}
	rounded := round3(v)
	return Metric{Name: name, Value: &rounded}, nil
}

// round3 matches the dashboard's three-decimal metric display.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func price(typ pricing.OptionType) pricing.Metric {
	return func(p pricing.Params) (float64, error) { return pricing.Price(p, typ) }
}

func delta(typ pricing.OptionType) pricing.Metric {
	return func(p pricing.Params) (float64, error) { return pricing.Delta(p, typ) }
}

func theta(typ pricing.OptionType) pricing.Metric {
	return func(p pricing.Params) (float64, error) { return pricing.Theta(p, typ) }
}

func rho(typ pricing.OptionType) pricing.Metric {
	return func(p pricing.Params) (float64, error) { return pricing.Rho(p, typ) }
}
