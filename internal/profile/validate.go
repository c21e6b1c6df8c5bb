package profile

import (
	"fmt"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

// ValidationResult accumulates problems instead of stopping at the first
// one. The contract is: IsValid() implies Errors is empty.
type ValidationResult struct {
	Errors   []string `yaml:"errors,omitempty"`
	Warnings []string `yaml:"warnings,omitempty"`
}

// IsValid reports whether the document passed validation.
func (r ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// AddError records a fatal problem.
func (r *ValidationResult) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// AddWarning records a non-fatal problem.
func (r *ValidationResult) AddWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Merge appends another result's findings.
func (r *ValidationResult) Merge(other ValidationResult) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// raceGracePeriodDays allows generating a package up to a week after the
// race for late manual regenerations.
const raceGracePeriodDays = 7

//nolint:gochecknoglobals // the validator instance is read-only after construction.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field-level constraints and cross-field invariants.
// now is injected so tests are reproducible.
func (p *Profile) Validate(now time.Time) ValidationResult {
	var result ValidationResult

	if err := validate.Struct(p); err != nil {
		var fieldErrors validator.ValidationErrors
		if ok := asValidationErrors(err, &fieldErrors); ok {
			for _, fe := range fieldErrors {
				result.AddError("field %s fails constraint %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
			}
		} else {
			result.AddError("profile validation: %v", err)
		}
	}

	if !slugPattern.MatchString(p.AthleteID) {
		result.AddError("athlete_id %q must be a lowercase slug (letters, digits, hyphen, underscore)", p.AthleteID)
	}

	if !p.Race.Date.IsZero() {
		earliest := now.AddDate(0, 0, -raceGracePeriodDays)
		if p.Race.Date.Before(earliest) {
			result.AddError("race date %s is more than %d days in the past",
				p.Race.Date.Format(time.DateOnly), raceGracePeriodDays)
		} else if p.Race.Date.Before(now) {
			result.AddWarning("race date %s has already passed", p.Race.Date.Format(time.DateOnly))
		}
	}

	keyOK := false
	for i, day := range p.Week {
		if !ValidAvailabilities[day.Status] {
			result.AddError("%s has unknown availability %q", Weekdays[i], day.Status)
		}
		if day.Status == Available && day.MaxMinutes == 0 {
			result.AddWarning("%s is available but has no training minutes", Weekdays[i])
		}
		if day.KeyOK && day.Status != Unavailable && day.Status != RestDay {
			keyOK = true
		}
	}
	if !keyOK {
		result.AddError("no day is flagged as eligible for key sessions")
	}

	for _, event := range p.BEvents {
		if !event.Date.IsZero() && !p.Race.Date.IsZero() && event.Date.After(p.Race.Date) {
			result.AddWarning("B event %s on %s is after the A race", event.Name, event.Date.Format(time.DateOnly))
		}
	}

	if p.Health.SleepHours > 0 && p.Health.SleepHours < 6 {
		result.AddWarning("reported sleep of %.1f hours is very low", p.Health.SleepHours)
	}

	return result
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	ve, ok := err.(validator.ValidationErrors) //nolint:errorlint // validator returns the slice directly
	if ok {
		*target = ve
	}
	return ok
}
