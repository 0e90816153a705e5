// Package validate checks submitted user fields against an ordered rule table.
package validate

import (
	"strings"

	"github.com/celerix-dev/celerix-users/pkg/schema"
	"github.com/go-playground/validator/v10"
)

const (
	alphaErr  = "must only contain letters."
	lengthErr = "must be between 1 and 10 characters."
)

// FieldError is a single failed rule, tied to the form field it came from.
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// Rule pairs a form field with a validator tag and the message reported when
// the tag fails. Every rule is evaluated on its own, so one value can fail
// several rules.
type Rule struct {
	Field   string
	Tag     string
	Message string
}

// UserRules are applied to both name fields of every create and update.
var UserRules = []Rule{
	{Field: "firstName", Tag: "alpha", Message: "First name " + alphaErr},
	{Field: "firstName", Tag: "min=1,max=10", Message: "First name " + lengthErr},
	{Field: "lastName", Tag: "alpha", Message: "Last name " + alphaErr},
	{Field: "lastName", Tag: "min=1,max=10", Message: "Last name " + lengthErr},
}

// Validator evaluates a rule table.
type Validator struct {
	validate *validator.Validate
	rules    []Rule
}

// New returns a Validator for rules. Rule order is preserved in the results.
func New(rules []Rule) *Validator {
	return &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		rules:    rules,
	}
}

// Check runs every rule against values, keyed by field name. A field missing
// from values is checked as the empty string.
func (v *Validator) Check(values map[string]string) []FieldError {
	var errs []FieldError
	for _, r := range v.rules {
		if err := v.validate.Var(values[r.Field], r.Tag); err != nil {
			errs = append(errs, FieldError{Field: r.Field, Msg: r.Message})
		}
	}
	return errs
}

// User trims the name fields and validates them. The trimmed fields are
// returned so callers store what was validated. Email, age and bio pass
// through untouched.
func (v *Validator) User(f schema.UserFields) (schema.UserFields, []FieldError) {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)

	errs := v.Check(map[string]string{
		"firstName": f.FirstName,
		"lastName":  f.LastName,
	})
	return f, errs
}
