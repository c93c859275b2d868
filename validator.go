package lux

import (
	"fmt"
	"regexp"
	"slices"
)

// Validator checks a single configuration value.
type Validator interface {
	Validate(value any) error
}

type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field %s: %s (value: %v)", e.Field, e.Message, e.Value)
}

// Schema holds ordered validation rules keyed by field name.
type Schema struct {
	fields []string
	rules  map[string][]Validator
}

func NewSchema() *Schema {
	return &Schema{
		rules: make(map[string][]Validator),
	}
}

func (s *Schema) AddRule(field string, validators ...Validator) *Schema {
	if _, ok := s.rules[field]; !ok {
		s.fields = append(s.fields, field)
	}
	s.rules[field] = append(s.rules[field], validators...)
	return s
}

// Validate checks values field by field in rule order and returns every
// failure as a *MultiError of *ValidationError.
func (s *Schema) Validate(values map[string]any) error {
	var errors MultiError
	for _, field := range s.fields {
		value := values[field]
		for _, v := range s.rules[field] {
			if err := v.Validate(value); err != nil {
				errors.Add(&ValidationError{Field: field, Value: value, Message: err.Error()})
			}
		}
	}
	if errors.HasErrors() {
		return &errors
	}
	return nil
}

// RangeValidator ensures an integer lies within bounds.
type RangeValidator struct {
	Min *int
	Max *int
}

func (v RangeValidator) Validate(value any) error {
	n, ok := value.(int)
	if !ok {
		return fmt.Errorf("value must be an integer for range validation")
	}
	if v.Min != nil && n < *v.Min {
		return fmt.Errorf("value %d is less than minimum %d", n, *v.Min)
	}
	if v.Max != nil && n > *v.Max {
		return fmt.Errorf("value %d is greater than maximum %d", n, *v.Max)
	}
	return nil
}

// PatternValidator ensures a string matches a regex pattern
type PatternValidator struct {
	Pattern *regexp.Regexp
}

func (v PatternValidator) Validate(value any) error {
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("pattern validation only applies to strings")
	}
	if !v.Pattern.MatchString(str) {
		return fmt.Errorf("value does not match pattern %s", v.Pattern.String())
	}
	return nil
}

// EnumValidator ensures a string is one of the allowed values.
type EnumValidator struct {
	Values []string
}

func (v EnumValidator) Validate(value any) error {
	str, _ := value.(string)
	if slices.Contains(v.Values, str) {
		return nil
	}
	return fmt.Errorf("value %v is not in allowed values: %v", value, v.Values)
}

func Min(min int) Validator {
	return RangeValidator{Min: &min}
}

func Range(min, max int) Validator {
	return RangeValidator{Min: &min, Max: &max}
}

func Enum(values ...string) Validator {
	return EnumValidator{Values: values}
}

// Pattern panics on an invalid expression; patterns are compile-time constants.
func Pattern(pattern string) Validator {
	return PatternValidator{Pattern: regexp.MustCompile(pattern)}
}
