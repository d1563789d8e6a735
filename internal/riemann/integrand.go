package riemann

import (
	"fmt"
	"math"
	"sort"

	apperrors "github.com/agbru/riemann/internal/errors"
)

// Integrand is a scalar function of one real variable. Implementations must
// be safe to call from several goroutines at once.
type Integrand interface {
	Evaluate(x float64) float64
}

// IntegrandFunc adapts an ordinary function to the Integrand interface.
type IntegrandFunc func(x float64) float64

// Evaluate calls f(x).
func (f IntegrandFunc) Evaluate(x float64) float64 { return f(x) }

// NamedIntegrand is an integrand registered under a command-line name.
type NamedIntegrand struct {
	Name    string
	Formula string
	Integrand
}

const degToRad = math.Pi / 180

var (
	// Square is x².
	Square = IntegrandFunc(func(x float64) float64 { return x * x })
	// SineDegrees is sin(x) with x in degrees.
	SineDegrees = IntegrandFunc(func(x float64) float64 { return math.Sin(x * degToRad) })
	// TwoPlusSineDegrees is 2 + sin(x) with x in degrees.
	TwoPlusSineDegrees = IntegrandFunc(func(x float64) float64 { return 2 + math.Sin(x*degToRad) })
	// Quartic is x⁴ - 2x² + 2.
	Quartic = IntegrandFunc(func(x float64) float64 {
		x2 := x * x
		return x2*x2 - 2*x2 + 2
	})
)

var integrands = map[string]NamedIntegrand{
	"square":       {Name: "square", Formula: "x^2", Integrand: Square},
	"sin":          {Name: "sin", Formula: "sin(x°)", Integrand: SineDegrees},
	"two-plus-sin": {Name: "two-plus-sin", Formula: "2 + sin(x°)", Integrand: TwoPlusSineDegrees},
	"quartic":      {Name: "quartic", Formula: "x^4 - 2x^2 + 2", Integrand: Quartic},
}

// LookupIntegrand returns the integrand registered under name.
func LookupIntegrand(name string) (NamedIntegrand, error) {
	if ni, ok := integrands[name]; ok {
		return ni, nil
	}
	return NamedIntegrand{}, apperrors.ValidationError{
		Field:   "func",
		Message: fmt.Sprintf("unknown integrand %q (available: %v)", name, IntegrandNames()),
	}
}

// IntegrandNames returns the registered integrand names in sorted order.
func IntegrandNames() []string {
	names := make([]string, 0, len(integrands))
	for name := range integrands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
