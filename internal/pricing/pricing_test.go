package pricing_test

import (
	"errors"
	"math"
	"testing"

	"github.com/contactkeval/option-greeks/internal/pricing"
	"github.com/contactkeval/option-greeks/internal/testutil"
)

// the dashboard's default inputs: 250 days to expiry, deep OTM call
var defaultParams = pricing.Params{
	Spot:     30,
	Strike:   50,
	Rate:     0.03,
	Maturity: 250.0 / 365.0,
	Vol:      0.30,
}

var validParams = []pricing.Params{
	defaultParams,
	{Spot: 100, Strike: 100, Rate: 0.05, Maturity: 30.0 / 365.0, Vol: 0.20},
	{Spot: 100, Strike: 100, Rate: 0.03, Maturity: 45.0 / 365.0, Vol: 0.25},
	{Spot: 581.39, Strike: 600, Rate: 0.045, Maturity: 1.0, Vol: 0.18},
	{Spot: 25, Strike: 75, Rate: 0, Maturity: 2.0, Vol: 0.60},
	{Spot: 75, Strike: 25, Rate: 0.10, Maturity: 0.5, Vol: 0.05},
}

// Known values reproduced from the closed-form formulas at the default
// dashboard inputs.
func TestKnownValues(t *testing.T) {
	g, err := pricing.Compute(defaultParams, pricing.Call)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	testutil.CheckClose(t, "price", g.Price, 0.0859403323338136, 1e-9)
	testutil.CheckClose(t, "delta", g.Delta, 0.0321177572890836, 1e-9)
	testutil.CheckClose(t, "gamma", g.Gamma, 0.0096654542101649, 1e-9)
	testutil.CheckClose(t, "theta", g.Theta, -0.0011445990879502, 1e-9)
	testutil.CheckClose(t, "vega", g.Vega, 0.0178744701146885, 1e-9)
	testutil.CheckClose(t, "rho", g.Rho, 0.0060109067557445, 1e-9)

	put, err := pricing.Price(defaultParams, pricing.Put)
	if err != nil {
		t.Fatalf("put price failed: %v", err)
	}
	testutil.CheckClose(t, "put price", put, 19.069026595623132, 1e-9)
}

func TestPutCallParity(t *testing.T) {
	for _, p := range validParams {
		call, err := pricing.Price(p, pricing.Call)
		if err != nil {
			t.Fatalf("call price failed: %v", err)
		}
		put, err := pricing.Price(p, pricing.Put)
		if err != nil {
			t.Fatalf("put price failed: %v", err)
		}
		lhs := call - put
		rhs := p.Spot - p.Strike*math.Exp(-p.Rate*p.Maturity)
		testutil.CheckClose(t, "parity", lhs, rhs, 1e-6)
	}
}

func TestDeltaBounds(t *testing.T) {
	for _, p := range validParams {
		callDelta, err := pricing.Delta(p, pricing.Call)
		if err != nil {
			t.Fatalf("call delta failed: %v", err)
		}
		putDelta, err := pricing.Delta(p, pricing.Put)
		if err != nil {
			t.Fatalf("put delta failed: %v", err)
		}
		testutil.CheckWithin(t, "call delta", callDelta, 0, 1)
		testutil.CheckWithin(t, "put delta", putDelta, -1, 0)
	}
}

func TestGammaVegaPositive(t *testing.T) {
	for _, p := range validParams {
		gamma, err := pricing.Gamma(p)
		if err != nil {
			t.Fatalf("gamma failed: %v", err)
		}
		vega, err := pricing.Vega(p)
		if err != nil {
			t.Fatalf("vega failed: %v", err)
		}
		if gamma <= 0 {
			t.Fatalf("expected gamma > 0, got %v", gamma)
		}
		if vega <= 0 {
			t.Fatalf("expected vega > 0, got %v", vega)
		}
	}
}

// At the money with a zero rate, call and put are worth the same.
func TestATMSymmetryZeroRate(t *testing.T) {
	p := pricing.Params{Spot: 100, Strike: 100, Rate: 0, Maturity: 0.5, Vol: 0.25}
	call, err := pricing.Price(p, pricing.Call)
	if err != nil {
		t.Fatalf("call price failed: %v", err)
	}
	put, err := pricing.Price(p, pricing.Put)
	if err != nil {
		t.Fatalf("put price failed: %v", err)
	}
	testutil.CheckClose(t, "ATM symmetry", call, put, 1e-6)
}

// A zero denominator must surface a typed DomainError, never NaN.
func TestDomainErrors(t *testing.T) {
	cases := []struct {
		name  string
		p     pricing.Params
		field string
	}{
		{"zero maturity", pricing.Params{Spot: 30, Strike: 50, Rate: 0.03, Maturity: 0, Vol: 0.3}, "maturity"},
		{"zero vol", pricing.Params{Spot: 30, Strike: 50, Rate: 0.03, Maturity: 1, Vol: 0}, "vol"},
		{"negative spot", pricing.Params{Spot: -1, Strike: 50, Rate: 0.03, Maturity: 1, Vol: 0.3}, "spot"},
		{"zero strike", pricing.Params{Spot: 30, Strike: 0, Rate: 0.03, Maturity: 1, Vol: 0.3}, "strike"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := pricing.Price(tc.p, pricing.Call)
			if err == nil {
				t.Fatalf("expected a domain error, got value %v", v)
			}
			var de *pricing.DomainError
			if !errors.As(err, &de) {
				t.Fatalf("expected *DomainError, got %T: %v", err, err)
			}
			if de.Field != tc.field {
				t.Fatalf("expected error on %q, got %q", tc.field, de.Field)
			}
			testutil.CheckFinite(t, "zero value on error", v)
		})
	}
}

func TestUnknownOptionType(t *testing.T) {
	if _, err := pricing.Price(defaultParams, "straddle"); err == nil {
		t.Fatal("expected an error for an unknown option type")
	}
	var de *pricing.DomainError
	_, err := pricing.Price(defaultParams, "straddle")
	if errors.As(err, &de) {
		t.Fatalf("unknown type must not be a DomainError: %v", err)
	}
}

// erfCDF is an independent Φ used to cross-check the rho formulations
// without going through the engine's own normal distribution.
func erfCDF(x float64) float64 {
	return 0.5 * (1.0 + math.Erf(x/math.Sqrt2))
}

// The d2 derived via (r - sigma^2/2) and via d1 - sigma*sqrt(T) are the
// same quantity; rho computed from either must agree.
func TestRhoFormulationEquivalence(t *testing.T) {
	for _, p := range validParams {
		rho, err := pricing.Rho(p, pricing.Call)
		if err != nil {
			t.Fatalf("rho failed: %v", err)
		}
		d2 := (math.Log(p.Spot/p.Strike) + (p.Rate-0.5*p.Vol*p.Vol)*p.Maturity) / (p.Vol * math.Sqrt(p.Maturity))
		alt := 0.01 * p.Strike * p.Maturity * math.Exp(-p.Rate*p.Maturity) * erfCDF(d2)
		testutil.CheckClose(t, "rho formulations", rho, alt, 1e-9)

		putRho, err := pricing.Rho(p, pricing.Put)
		if err != nil {
			t.Fatalf("put rho failed: %v", err)
		}
		putAlt := -0.01 * p.Strike * p.Maturity * math.Exp(-p.Rate*p.Maturity) * erfCDF(-d2)
		testutil.CheckClose(t, "put rho formulations", putRho, putAlt, 1e-9)
	}
}

// Compute must match the individual functions exactly: same inputs, same
// shared intermediates.
func TestComputeMatchesSingles(t *testing.T) {
	for _, p := range validParams {
		for _, typ := range []pricing.OptionType{pricing.Call, pricing.Put} {
			g, err := pricing.Compute(p, typ)
			if err != nil {
				t.Fatalf("Compute failed: %v", err)
			}
			price, _ := pricing.Price(p, typ)
			delta, _ := pricing.Delta(p, typ)
			gamma, _ := pricing.Gamma(p)
			theta, _ := pricing.Theta(p, typ)
			vega, _ := pricing.Vega(p)
			rho, _ := pricing.Rho(p, typ)

			testutil.CheckClose(t, "price", g.Price, price, 1e-12)
			testutil.CheckClose(t, "delta", g.Delta, delta, 1e-12)
			testutil.CheckClose(t, "gamma", g.Gamma, gamma, 1e-12)
			testutil.CheckClose(t, "theta", g.Theta, theta, 1e-12)
			testutil.CheckClose(t, "vega", g.Vega, vega, 1e-12)
			testutil.CheckClose(t, "rho", g.Rho, rho, 1e-12)
		}
	}
}

func TestParseOptionType(t *testing.T) {
	cases := []struct {
		in   string
		want pricing.OptionType
		ok   bool
	}{
		{"call", pricing.Call, true},
		{"Call", pricing.Call, true},
		{"C", pricing.Call, true},
		{"put", pricing.Put, true},
		{"p", pricing.Put, true},
		{" PUT ", pricing.Put, true},
		{"straddle", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := pricing.ParseOptionType(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("ParseOptionType(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseOptionType(%q) should fail", tc.in)
		}
	}
}
