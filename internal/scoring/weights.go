package scoring

import (
	"math"

	"github.com/go-playground/validator/v10"
)

// weightTolerance is the floating-point tolerance for the sum-to-one check.
const weightTolerance = 1e-6

// Weights are the relative contributions of each sub-score to the overall
// score. They must sum to 1.0.
type Weights struct {
	Skills      float64 `json:"skills" validate:"gte=0,lte=1"`
	Experience  float64 `json:"experience" validate:"gte=0,lte=1"`
	Location    float64 `json:"location" validate:"gte=0,lte=1"`
	Qualitative float64 `json:"qualitative" validate:"gte=0,lte=1"`
}

// DefaultWeights mirror the classic preset: skills dominate, the
// qualitative adjustment refines.
func DefaultWeights() Weights {
	return Weights{
		Skills:      0.45,
		Experience:  0.2,
		Location:    0.15,
		Qualitative: 0.2,
	}
}

// Validate checks the per-component [0,1] ranges and the sum-to-one
// invariant. Both must hold for the weighted sum to stay within the
// 0-100 overall score range.
func (w Weights) Validate() error {
	validate := validator.New()
	if err := validate.Struct(w); err != nil {
		return err
	}

	sum := w.Skills + w.Experience + w.Location + w.Qualitative
	if math.Abs(sum-1.0) > weightTolerance {
		return &InvalidWeightsError{Sum: sum}
	}
	return nil
}

// WithoutQualitative redistributes the qualitative weight proportionally
// across the remaining three terms, used when the provider chain degrades.
// Dropping the term this way avoids penalizing every candidate equally
// when the provider is down.
func (w Weights) WithoutQualitative() Weights {
	remaining := w.Skills + w.Experience + w.Location
	if remaining <= 0 {
		// Degenerate all-qualitative preset; fall back to skills only.
		return Weights{Skills: 1}
	}
	scale := 1.0 / remaining
	return Weights{
		Skills:     w.Skills * scale,
		Experience: w.Experience * scale,
		Location:   w.Location * scale,
	}
}
