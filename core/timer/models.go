package timer

import "github.com/go-playground/validator/v10"

// ProgressReport reports the seconds elapsed since the last report.
type ProgressReport struct {
	Seconds *int64 `json:"seconds" validate:"required,gte=0,lte=86400"`
}

func (pr *ProgressReport) Validate(validate *validator.Validate) error {
	return validate.Struct(pr)
}
