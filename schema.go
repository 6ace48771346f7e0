package restkit

import (
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Schema is a JSON Schema object, the subset OpenAPI 3.1 uses.
type Schema struct {
	Type        string            `json:"type,omitempty" yaml:"type,omitempty"`
	Format      string            `json:"format,omitempty" yaml:"format,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Properties  map[string]Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Items       *Schema           `json:"items,omitempty" yaml:"items,omitempty"`
	Required    []string          `json:"required,omitempty" yaml:"required,omitempty"`

	Enum      []string `json:"enum,omitempty" yaml:"enum,omitempty"`
	Pattern   string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	MinLength *int     `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Minimum   *float64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum   *float64 `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	MinItems  *int     `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems  *int     `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`

	// AdditionalProperties holds the value schema for string-keyed maps.
	AdditionalProperties *Schema `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`
}

// typeSchema converts a reflect.Type to its JSON Schema.
func typeSchema(t reflect.Type) Schema {
	if t.Kind() == reflect.Pointer {
		return typeSchema(t.Elem())
	}

	switch t {
	case reflect.TypeFor[time.Time]():
		return Schema{Type: "string", Format: "date-time"}
	case reflect.TypeFor[time.Duration]():
		return Schema{Type: "string", Format: "duration"}
	case reflect.TypeFor[Void]():
		return Schema{}
	}

	//exhaustive:ignore
	switch t.Kind() {
	case reflect.String:
		return Schema{Type: "string"}
	case reflect.Bool:
		return Schema{Type: "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Schema{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return Schema{Type: "number"}
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return Schema{Type: "string", Format: "byte"}
		}
		items := typeSchema(t.Elem())
		return Schema{Type: "array", Items: &items}
	case reflect.Array:
		items := typeSchema(t.Elem())
		return Schema{Type: "array", Items: &items}
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return Schema{Type: "object"}
		}
		values := typeSchema(t.Elem())
		return Schema{Type: "object", AdditionalProperties: &values}
	case reflect.Struct:
		return structSchema(t)
	default:
		return Schema{}
	}
}

// structSchema builds an object schema from a struct's non-parameter
// fields. Constraint tags become schema keywords so the document reflects
// what the validator enforces.
func structSchema(t reflect.Type) Schema {
	schema := Schema{
		Type:       "object",
		Properties: make(map[string]Schema),
	}

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() || isParamField(f) {
			continue
		}

		name := jsonFieldName(f)
		if name == "-" {
			continue
		}

		prop := typeSchema(f.Type)
		applyConstraintKeywords(f, &prop)

		if doc := f.Tag.Get("doc"); doc != "" {
			prop.Description = doc
		}

		schema.Properties[name] = prop

		if f.Tag.Get("required") == "true" {
			schema.Required = append(schema.Required, name)
		}
	}

	return schema
}

// applyConstraintKeywords copies constraint tag values onto a schema.
func applyConstraintKeywords(f reflect.StructField, s *Schema) {
	if tag := f.Tag.Get("pattern"); tag != "" {
		s.Pattern = tag
	}
	if tag := f.Tag.Get("enum"); tag != "" {
		s.Enum = strings.Split(tag, ",")
	}
	s.MinLength = intTag(f, "minLength")
	s.MaxLength = intTag(f, "maxLength")
	s.MinItems = intTag(f, "minItems")
	s.MaxItems = intTag(f, "maxItems")
	s.Minimum = floatTag(f, "minimum")
	s.Maximum = floatTag(f, "maximum")
}

func intTag(f reflect.StructField, tag string) *int {
	v := f.Tag.Get(tag)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

func floatTag(f reflect.StructField, tag string) *float64 {
	v := f.Tag.Get(tag)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &n
}

// jsonFieldName returns the wire name of a struct field.
func jsonFieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return f.Name
	}
	return name
}
