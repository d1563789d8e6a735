package orchestration

import (
	"github.com/agbru/riemann/internal/riemann"
)

// GetCalculatorsToRun determines which calculators should be executed for the
// given selection. "all" returns every registered calculator in sorted name
// order, so the parallel run precedes the serial one.
//
// Parameters:
//   - algo: The calculator name, or "all".
//   - factory: The calculator factory to retrieve implementations from.
//
// Returns:
//   - []riemann.Calculator: The calculators to execute, nil if algo is unknown.
func GetCalculatorsToRun(algo string, factory riemann.CalculatorFactory) []riemann.Calculator {
	if algo == "all" {
		keys := factory.List()
		calculators := make([]riemann.Calculator, 0, len(keys))
		for _, k := range keys {
			if calc, err := factory.Get(k); err == nil {
				calculators = append(calculators, calc)
			}
		}
		return calculators
	}

	if calc, err := factory.Get(algo); err == nil {
		return []riemann.Calculator{calc}
	}
	return nil
}
