package validators

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Check reports whether a single body value is acceptable.
type Check func(validate *validator.Validate, value any) bool

// Rule is a format constraint on one body field. Rules only run for fields
// present in the body.
type Rule struct {
	Field   string
	Check   Check
	Message string

	// SkipEmpty lets null and "" through, mirroring optional fields whose
	// format only matters once they carry a value.
	SkipEmpty bool
}

// Tag validates string values with a validator tag, e.g. "datetime=2006-01-02".
// Non-string values always fail.
func Tag(tag string) Check {
	return func(validate *validator.Validate, value any) bool {
		s, ok := value.(string)
		if !ok {
			return false
		}
		return validate.Var(s, tag) == nil
	}
}

// OneOf accepts one of the given strings exactly.
func OneOf(values ...string) Check {
	return Tag("oneof=" + strings.Join(values, " "))
}

// Array accepts JSON arrays, optionally requiring at least one element.
func Array(nonEmpty bool) Check {
	return func(_ *validator.Validate, value any) bool {
		arr, ok := value.([]any)
		if !ok {
			return false
		}
		return !nonEmpty || len(arr) > 0
	}
}

// IsBlank is the presence test for required fields: absent, null or "".
func IsBlank(value any, present bool) bool {
	if !present || value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && s == ""
}

// MissingFields lists every blank required field, keeping declaration order.
func MissingFields(body map[string]any, required []string) []string {
	var missing []string
	for _, field := range required {
		val, ok := body[field]
		if IsBlank(val, ok) {
			missing = append(missing, field)
		}
	}
	return missing
}

// FirstViolation runs rules in order and returns the first one that fails.
func FirstViolation(validate *validator.Validate, body map[string]any, rules []Rule) (*Rule, bool) {
	for i := range rules {
		rule := &rules[i]
		val, ok := body[rule.Field]
		if !ok {
			continue
		}

		if rule.SkipEmpty && IsBlank(val, ok) {
			continue
		}

		if !rule.Check(validate, val) {
			return rule, true
		}
	}
	return nil, false
}
