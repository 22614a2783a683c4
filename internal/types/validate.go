package types

import (
	"github.com/go-playground/validator/v10"
)

// Validate validates the profile's structural constraints using the
// validator tags.
func (p *Profile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// Validate validates the job posting's structural constraints using the
// validator tags.
func (j *JobPosting) Validate() error {
	validate := validator.New()
	return validate.Struct(j)
}
