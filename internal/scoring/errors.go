package scoring

import "fmt"

// InvalidWeightsError indicates scoring weights that do not sum to 1.0
// within floating-point tolerance. Weights come from configuration, so
// this is surfaced to the caller immediately rather than silently
// renormalized.
type InvalidWeightsError struct {
	Sum float64
}

func (e *InvalidWeightsError) Error() string {
	return fmt.Sprintf("scoring weights must sum to 1.0, got %.6f", e.Sum)
}
