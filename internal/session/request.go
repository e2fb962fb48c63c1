package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/leadgen/internal/engine"
)

// RunRequest holds the user inputs of one analysis run.
// Zero retry and delay values take the engine defaults, each delay bound
// independently.
type RunRequest struct {
	Company    string           `json:"company" validate:"required"`
	MaxRetries int              `json:"max_retries" validate:"min=1,max=5"`
	DelayMin   float64          `json:"delay_min" validate:"gte=0.5,lte=5"`
	DelayMax   float64          `json:"delay_max" validate:"gte=0.5,lte=5,gtefield=DelayMin"`
	OnProgress ProgressCallback `json:"-"`
}

// NewRunRequest returns a request for company with default settings.
func NewRunRequest(company string) RunRequest {
	return RunRequest{
		Company:    company,
		MaxRetries: engine.DefaultRetries,
		DelayMin:   engine.DefaultDelayRange.Min,
		DelayMax:   engine.DefaultDelayRange.Max,
	}
}

// DelayRange returns the request's pause window.
func (r RunRequest) DelayRange() engine.DelayRange {
	return engine.DelayRange{Min: r.DelayMin, Max: r.DelayMax}
}

// normalize trims the company name and fills unset settings.
func (r RunRequest) normalize() RunRequest {
	r.Company = strings.TrimSpace(r.Company)
	if r.MaxRetries == 0 {
		r.MaxRetries = engine.DefaultRetries
	}
	delay := r.DelayRange().WithDefaults(engine.DefaultDelayRange)
	r.DelayMin, r.DelayMax = delay.Min, delay.Max
	return r
}

var validate = validator.New()

// Validate checks the normalized request.
func (r RunRequest) Validate() error {
	err := validate.Struct(r.normalize())
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Fields: []string{err.Error()}}
	}
	out := &ValidationError{}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, describeField(fe))
	}
	return out
}

func describeField(fe validator.FieldError) string {
	switch fe.Field() {
	case "Company":
		return "please enter a company name"
	case "MaxRetries":
		return fmt.Sprintf("max retries must be between %d and %d", engine.MinRetries, engine.MaxRetries)
	case "DelayMin", "DelayMax":
		if fe.Tag() == "gtefield" {
			return "delay range minimum must not exceed its maximum"
		}
		return fmt.Sprintf("delay range must be within %.1fs and %.1fs", engine.MinDelay, engine.MaxDelay)
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
