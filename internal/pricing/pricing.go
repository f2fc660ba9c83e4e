// Package pricing implements the closed-form Black-Scholes price and
// first/second-order sensitivities (Greeks) for European options.
//
// All functions are pure and stateless: they take an explicit Params value,
// never touch global state, and either return a finite result or a
// *DomainError describing which input left the model's domain.
package pricing

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"
)

// stdNormal supplies Φ (CDF) and φ (PDF) for the standard normal
// distribution used throughout the formula family.
var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

const (
	// daysPerYear converts the annualized theta into a per-calendar-day
	// decay rate. Domain convention, not an arbitrary constant.
	daysPerYear = 365

	// pointScale expresses vega and rho per one-percentage-point change
	// in volatility and rate respectively.
	pointScale = 0.01
)

// OptionType selects the call or put branch of each formula.
type OptionType string

const (
	Call OptionType = "call"
	Put  OptionType = "put"
)

// ParseOptionType normalizes a user-supplied option type string.
// Accepts "call"/"c" and "put"/"p" in any case.
func ParseOptionType(s string) (OptionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "c":
		return Call, nil
	case "put", "p":
		return Put, nil
	}
	return "", fmt.Errorf("pricing: unknown option type %q", s)
}

// Params holds the five Black-Scholes inputs.
//
// Spot, Strike, Maturity and Vol must be strictly positive; Rate may be any
// real value (zero and negative rates are accepted by the model).
type Params struct {
	Spot     float64 `json:"spot"`     // S, current price of the underlying
	Strike   float64 `json:"strike"`   // K, strike price of the option
	Rate     float64 `json:"rate"`     // r, annual risk-free rate
	Maturity float64 `json:"maturity"` // T, time to expiry in years
	Vol      float64 `json:"vol"`      // sigma, annualized volatility
}

// DomainError reports a parameter for which the Black-Scholes formulas are
// undefined: a non-positive value where positivity is required, which would
// otherwise surface as a NaN or infinity (the sigma*sqrt(T) denominator).
//
// Callers match it with errors.As.
type DomainError struct {
	Field string
	Value float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("pricing: invalid parameters: %s = %g", e.Field, e.Value)
}

// Validate checks the positivity invariants. It returns a *DomainError for
// the first violating field, nil otherwise.
func (p Params) Validate() error {
	switch {
	case p.Spot <= 0 || math.IsNaN(p.Spot):
		return &DomainError{Field: "spot", Value: p.Spot}
	case p.Strike <= 0 || math.IsNaN(p.Strike):
		return &DomainError{Field: "strike", Value: p.Strike}
	case math.IsNaN(p.Rate):
		return &DomainError{Field: "rate", Value: p.Rate}
	case p.Maturity <= 0 || math.IsNaN(p.Maturity):
		return &DomainError{Field: "maturity", Value: p.Maturity}
	case p.Vol <= 0 || math.IsNaN(p.Vol):
		return &DomainError{Field: "vol", Value: p.Vol}
	}
	return nil
}

// d1d2 computes the shared standardized distance terms:
//
//	d1 = (ln(S/K) + (r + sigma^2/2)*T) / (sigma*sqrt(T))
//	d2 = d1 - sigma*sqrt(T)
//
// Callers must have validated p first; the denominator is nonzero for any
// Params that passes Validate.
func d1d2(p Params) (d1, d2 float64) {
	volSqrtT := p.Vol * math.Sqrt(p.Maturity)
	d1 = (math.Log(p.Spot/p.Strike) + (p.Rate+0.5*p.Vol*p.Vol)*p.Maturity) / volSqrtT
	d2 = d1 - volSqrtT
	return d1, d2
}

// Price calculates the Black-Scholes price of a European option.
//
// Call:  S*Φ(d1) - K*e^(-rT)*Φ(d2)
// Put:   K*e^(-rT)*Φ(-d2) - S*Φ(-d1)
func Price(p Params, typ OptionType) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	d1, d2 := d1d2(p)
	disc := math.Exp(-p.Rate * p.Maturity)
	switch typ {
	case Call:
		return p.Spot*stdNormal.CDF(d1) - p.Strike*disc*stdNormal.CDF(d2), nil
	case Put:
		return p.Strike*disc*stdNormal.CDF(-d2) - p.Spot*stdNormal.CDF(-d1), nil
	}
	return 0, fmt.Errorf("pricing: unknown option type %q", typ)
}

// Delta calculates the sensitivity of the option price to the spot price.
// Call delta lies in (0, 1), put delta in (-1, 0).
func Delta(p Params, typ OptionType) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	d1, _ := d1d2(p)
	switch typ {
	case Call:
		return stdNormal.CDF(d1), nil
	case Put:
		return -stdNormal.CDF(-d1), nil
	}
	return 0, fmt.Errorf("pricing: unknown option type %q", typ)
}

// Gamma calculates the sensitivity of delta to the spot price. It is
// identical for calls and puts and takes no option type.
func Gamma(p Params) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	d1, _ := d1d2(p)
	return stdNormal.Prob(d1) / (p.Spot * p.Vol * math.Sqrt(p.Maturity)), nil
}

// Theta calculates the option's time decay, expressed per calendar day
// (the annualized value divided by 365).
func Theta(p Params, typ OptionType) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	d1, d2 := d1d2(p)
	decay := -(p.Spot * stdNormal.Prob(d1) * p.Vol) / (2 * math.Sqrt(p.Maturity))
	carry := p.Rate * p.Strike * math.Exp(-p.Rate*p.Maturity)
	switch typ {
	case Call:
		return (decay - carry*stdNormal.CDF(d2)) / daysPerYear, nil
	case Put:
		return (decay + carry*stdNormal.CDF(-d2)) / daysPerYear, nil
	}
	return 0, fmt.Errorf("pricing: unknown option type %q", typ)
}

// Vega calculates the sensitivity of the option price to volatility,
// expressed per one-percentage-point change. Identical for calls and puts.
func Vega(p Params) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	d1, _ := d1d2(p)
	return p.Spot * math.Sqrt(p.Maturity) * stdNormal.Prob(d1) * pointScale, nil
}

// Rho calculates the sensitivity of the option price to the risk-free rate,
// expressed per one-percentage-point change.
func Rho(p Params, typ OptionType) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	_, d2 := d1d2(p)
	disc := pointScale * p.Strike * p.Maturity * math.Exp(-p.Rate*p.Maturity)
	switch typ {
	case Call:
		return disc * stdNormal.CDF(d2), nil
	case Put:
		return -disc * stdNormal.CDF(-d2), nil
	}
	return 0, fmt.Errorf("pricing: unknown option type %q", typ)
}

// Greeks bundles the price and the five standard sensitivities for one
// Params/OptionType pair.
type Greeks struct {
	Price float64 `json:"price"`
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	Rho   float64 `json:"rho"`
}

// Compute evaluates the price and all five Greeks from a single shared
// d1/d2 computation. The results are identical to calling the individual
// functions with the same inputs.
func Compute(p Params, typ OptionType) (Greeks, error) {
	if err := p.Validate(); err != nil {
		return Greeks{}, err
	}
	if typ != Call && typ != Put {
		return Greeks{}, fmt.Errorf("pricing: unknown option type %q", typ)
	}

	d1, d2 := d1d2(p)
	sqrtT := math.Sqrt(p.Maturity)
	disc := math.Exp(-p.Rate * p.Maturity)
	pdfD1 := stdNormal.Prob(d1)

	g := Greeks{
		Gamma: pdfD1 / (p.Spot * p.Vol * sqrtT),
		Vega:  p.Spot * sqrtT * pdfD1 * pointScale,
	}
	decay := -(p.Spot * pdfD1 * p.Vol) / (2 * sqrtT)
	if typ == Call {
		g.Price = p.Spot*stdNormal.CDF(d1) - p.Strike*disc*stdNormal.CDF(d2)
		g.Delta = stdNormal.CDF(d1)
		g.Theta = (decay - p.Rate*p.Strike*disc*stdNormal.CDF(d2)) / daysPerYear
		g.Rho = pointScale * p.Strike * p.Maturity * disc * stdNormal.CDF(d2)
	} else {
		g.Price = p.Strike*disc*stdNormal.CDF(-d2) - p.Spot*stdNormal.CDF(-d1)
		g.Delta = -stdNormal.CDF(-d1)
		g.Theta = (decay + p.Rate*p.Strike*disc*stdNormal.CDF(-d2)) / daysPerYear
		g.Rho = -pointScale * p.Strike * p.Maturity * disc * stdNormal.CDF(-d2)
	}
	return g, nil
}
