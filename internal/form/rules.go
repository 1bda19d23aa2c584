package form

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"moneymaven/internal/core"
)

// Custom validation tags
const (
	TagFilled      = "filled"      // non-empty after trimming
	TagLooseEmail  = "looseemail"  // something@something.something
	TagISODate     = "isodate"     // YYYY-MM-DD, shape only
	TagPhone       = "phone"       // optional +, then 8-15 digits, spaces or dashes
	TagNumber      = "number"      // parses as a finite amount
	TagPositive    = "positive"    // amount > 0
	TagNonNegative = "nonnegative" // amount >= 0
)

var (
	looseEmailRegex = regexp.MustCompile(`\S+@\S+\.\S+`)
	isoDateRegex    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	phoneRegex      = regexp.MustCompile(`^\+?[0-9\s-]{8,15}$`)
)

// Check is one validator tag and the message shown when it fails.
// When Other is set the tag is evaluated against that field's value
// (eqfield and friends).
type Check struct {
	Tag     string
	Message string
	Other   string
}

// Rule lists the checks for one field. Checks run in order and the first
// failure wins.
type Rule struct {
	Field  string
	Checks []Check
}

// Rules validates a set of string form values.
type Rules struct {
	validate *validator.Validate
	rules    []Rule
}

// NewRules builds a rule set over a validator with the custom tags registered.
func NewRules(rules ...Rule) *Rules {
	return &Rules{validate: newValidate(), rules: rules}
}

func newValidate() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation(TagFilled, validateFilled)
	_ = v.RegisterValidation(TagLooseEmail, validateLooseEmail)
	_ = v.RegisterValidation(TagISODate, validateISODate)
	_ = v.RegisterValidation(TagPhone, validatePhone)
	_ = v.RegisterValidation(TagNumber, validateNumber)
	_ = v.RegisterValidation(TagPositive, validatePositive)
	_ = v.RegisterValidation(TagNonNegative, validateNonNegative)
	return v
}

// Fields returns the validated field names in rule order.
func (r *Rules) Fields() []string {
	out := make([]string, len(r.rules))
	for i, rule := range r.rules {
		out[i] = rule.Field
	}
	return out
}

// Validate returns one message per failing field. It reads values only.
func (r *Rules) Validate(values map[string]string) Errors {
	errs := Errors{}
	if r == nil {
		return errs
	}
	for _, rule := range r.rules {
		value := values[rule.Field]
		for _, check := range rule.Checks {
			var err error
			if check.Other != "" {
				err = r.validate.VarWithValue(value, values[check.Other], check.Tag)
			} else {
				err = r.validate.Var(value, check.Tag)
			}
			if err != nil {
				errs[rule.Field] = check.Message
				break
			}
		}
	}
	return errs
}

func validateFilled(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateLooseEmail(fl validator.FieldLevel) bool {
	return looseEmailRegex.MatchString(fl.Field().String())
}

func validateISODate(fl validator.FieldLevel) bool {
	return isoDateRegex.MatchString(fl.Field().String())
}

func validatePhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

func validateNumber(fl validator.FieldLevel) bool {
	_, err := core.ParseAmount(fl.Field().String())
	return err == nil
}

func validatePositive(fl validator.FieldLevel) bool {
	v, err := core.ParseAmount(fl.Field().String())
	return err == nil && v > 0
}

func validateNonNegative(fl validator.FieldLevel) bool {
	v, err := core.ParseAmount(fl.Field().String())
	return err == nil && v >= 0
}

// OneOf builds an oneof tag for a set of enum values.
func OneOf[T ~string](allowed []T) string {
	return "oneof=" + core.OneOfTag(allowed)
}
