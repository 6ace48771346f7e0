package restkit

import (
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// SelfValidator is implemented by request types that validate themselves.
// It runs after constraint-tag validation.
type SelfValidator interface {
	Validate() error
}

// Validator validates any bound request. Installed with WithValidator, it
// runs last, after constraint and self validation.
type Validator interface {
	Validate(req any) error
}

// constraintRule checks one constraint tag against a field value. A nil
// return means the constraint holds (or does not apply to this kind).
type constraintRule struct {
	tag   string
	check func(tag string, fv reflect.Value) *FieldError
}

// constraintRules are evaluated in order, so violation lists are stable.
var constraintRules = []constraintRule{
	{"required", checkRequired},
	{"minLength", checkMinLength},
	{"maxLength", checkMaxLength},
	{"pattern", checkPattern},
	{"enum", checkEnum},
	{"minimum", checkMinimum},
	{"maximum", checkMaximum},
	{"minItems", checkMinItems},
	{"maxItems", checkMaxItems},
}

// validateConstraints walks the constraint tags of a bound request and
// aggregates every violation into a single 400 problem response.
func validateConstraints(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	var errs []FieldError
	walkConstraints(rv, "", &errs)

	if len(errs) == 0 {
		return nil
	}
	return &Problem{
		Type:   "about:blank",
		Title:  "Validation Failed",
		Status: http.StatusBadRequest,
		Detail: fmt.Sprintf("%d constraint violation(s)", len(errs)),
		Errors: errs,
	}
}

func walkConstraints(rv reflect.Value, prefix string, errs *[]FieldError) {
	t := rv.Type()

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		name := jsonFieldName(f)
		if name == "-" {
			continue
		}

		fv := rv.Field(i)

		// The Body field recurses under the "body" prefix.
		if f.Name == "Body" && f.Type.Kind() == reflect.Struct {
			walkConstraints(fv, "body", errs)
			continue
		}

		path := name
		if prefix != "" {
			path = prefix + "." + name
		}

		for _, rule := range constraintRules {
			tag := f.Tag.Get(rule.tag)
			if tag == "" {
				continue
			}
			// Constraints other than required only apply to populated
			// fields; presence is the required rule's job.
			if rule.tag != "required" && fv.IsZero() {
				continue
			}
			if fe := rule.check(tag, fv); fe != nil {
				fe.Field = path
				*errs = append(*errs, *fe)
			}
		}

		// Nested structs carry their own constraints.
		if fv.Kind() == reflect.Struct && !isParamField(f) {
			walkConstraints(fv, path, errs)
		}
	}
}

func checkRequired(tag string, fv reflect.Value) *FieldError {
	if tag != "true" || !fv.IsZero() || fv.Kind() == reflect.Struct {
		return nil
	}
	return &FieldError{Message: "is required"}
}

func checkMinLength(tag string, fv reflect.Value) *FieldError {
	if fv.Kind() != reflect.String {
		return nil
	}
	if n, err := strconv.Atoi(tag); err == nil && len(fv.String()) < n {
		return &FieldError{
			Message: fmt.Sprintf("must be at least %d characters", n),
			Value:   fv.String(),
		}
	}
	return nil
}

func checkMaxLength(tag string, fv reflect.Value) *FieldError {
	if fv.Kind() != reflect.String {
		return nil
	}
	if n, err := strconv.Atoi(tag); err == nil && len(fv.String()) > n {
		return &FieldError{
			Message: fmt.Sprintf("must be at most %d characters", n),
			Value:   fv.String(),
		}
	}
	return nil
}

func checkPattern(tag string, fv reflect.Value) *FieldError {
	if fv.Kind() != reflect.String {
		return nil
	}
	if matched, err := regexp.MatchString(tag, fv.String()); err == nil && !matched {
		return &FieldError{
			Message: fmt.Sprintf("must match pattern %s", tag),
			Value:   fv.String(),
		}
	}
	return nil
}

func checkEnum(tag string, fv reflect.Value) *FieldError {
	if fv.Kind() != reflect.String {
		return nil
	}
	val := fv.String()
	for _, allowed := range strings.Split(tag, ",") {
		if allowed == val {
			return nil
		}
	}
	return &FieldError{
		Message: fmt.Sprintf("must be one of [%s]", tag),
		Value:   val,
	}
}

func checkMinimum(tag string, fv reflect.Value) *FieldError {
	val, ok := numericValue(fv)
	if !ok {
		return nil
	}
	if lower, err := strconv.ParseFloat(tag, 64); err == nil && val < lower {
		return &FieldError{
			Message: fmt.Sprintf("must be at least %s", tag),
			Value:   val,
		}
	}
	return nil
}

func checkMaximum(tag string, fv reflect.Value) *FieldError {
	val, ok := numericValue(fv)
	if !ok {
		return nil
	}
	if upper, err := strconv.ParseFloat(tag, 64); err == nil && val > upper {
		return &FieldError{
			Message: fmt.Sprintf("must be at most %s", tag),
			Value:   val,
		}
	}
	return nil
}

func checkMinItems(tag string, fv reflect.Value) *FieldError {
	if fv.Kind() != reflect.Slice {
		return nil
	}
	if n, err := strconv.Atoi(tag); err == nil && fv.Len() < n {
		return &FieldError{
			Message: fmt.Sprintf("must have at least %d items", n),
			Value:   fv.Len(),
		}
	}
	return nil
}

func checkMaxItems(tag string, fv reflect.Value) *FieldError {
	if fv.Kind() != reflect.Slice {
		return nil
	}
	if n, err := strconv.Atoi(tag); err == nil && fv.Len() > n {
		return &FieldError{
			Message: fmt.Sprintf("must have at most %d items", n),
			Value:   fv.Len(),
		}
	}
	return nil
}

// numericValue converts ints, uints, and floats to float64 for range
// comparison.
func numericValue(v reflect.Value) (float64, bool) {
	//exhaustive:ignore
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	default:
		return 0, false
	}
}
