package restkit

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"time"
)

// paramTags are the struct tags that bind request parameters.
var paramTags = []string{"path", "query", "header", "cookie"}

// bindKind describes how a request type is populated.
type bindKind int

const (
	bindNone  bindKind = iota // Void, nothing to bind
	bindBody                  // whole struct is the JSON body
	bindParam                 // tagged fields only, no body
	bindMixed                 // tagged fields plus a Body field
)

func classify(t reflect.Type) bindKind {
	switch {
	case t == reflect.TypeFor[Void]():
		return bindNone
	case hasBodyField(t):
		return bindMixed
	case hasParamTags(t):
		return bindParam
	default:
		return bindBody
	}
}

func hasBodyField(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	_, ok := t.FieldByName("Body")
	return ok
}

func hasParamTags(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := range t.NumField() {
		if isParamField(t.Field(i)) {
			return true
		}
	}
	return false
}

// isParamField reports whether a struct field carries a parameter tag.
func isParamField(f reflect.StructField) bool {
	for _, tag := range paramTags {
		if f.Tag.Get(tag) != "" {
			return true
		}
	}
	return false
}

// bindRequest allocates a Req and populates it from the HTTP request.
func bindRequest[Req any](r *http.Request) (*Req, error) {
	req := new(Req)
	t := reflect.TypeFor[Req]()

	switch classify(t) {
	case bindNone:
		return req, nil
	case bindBody:
		if err := decodeJSONBody(r, req); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBindBody, err)
		}
	case bindParam:
		if err := bindParams(req, r); err != nil {
			return nil, err
		}
	case bindMixed:
		if err := bindParams(req, r); err != nil {
			return nil, err
		}
		body := reflect.ValueOf(req).Elem().FieldByName("Body").Addr().Interface()
		if err := decodeJSONBody(r, body); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBindBody, err)
		}
	}

	return req, nil
}

// bindParams fills path, query, header, and cookie fields from their tags.
// Query, header, and cookie parameters respect a "default" tag.
func bindParams(target any, r *http.Request) error {
	v := reflect.ValueOf(target).Elem()
	t := v.Type()

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() || f.Name == "Body" {
			continue
		}

		field := v.Field(i)

		if name := f.Tag.Get("path"); name != "" {
			if val := r.PathValue(name); val != "" {
				if err := setField(field, val); err != nil {
					return fmt.Errorf("%w: %s: %w", ErrBindPath, name, err)
				}
			}
		}

		if name := f.Tag.Get("query"); name != "" {
			val := r.URL.Query().Get(name)
			if val == "" {
				val = f.Tag.Get("default")
			}
			if val != "" {
				if err := setField(field, val); err != nil {
					return fmt.Errorf("%w: %s: %w", ErrBindQuery, name, err)
				}
			}
		}

		if name := f.Tag.Get("header"); name != "" {
			val := r.Header.Get(name)
			if val == "" {
				val = f.Tag.Get("default")
			}
			if val != "" {
				if err := setField(field, val); err != nil {
					return fmt.Errorf("%w: %s: %w", ErrBindHeader, name, err)
				}
			}
		}

		if name := f.Tag.Get("cookie"); name != "" {
			var val string
			if c, err := r.Cookie(name); err == nil {
				val = c.Value
			}
			if val == "" {
				val = f.Tag.Get("default")
			}
			if val != "" {
				if err := setField(field, val); err != nil {
					return fmt.Errorf("%w: %s: %w", ErrBindCookie, name, err)
				}
			}
		}
	}

	return nil
}

// setField parses a string into a field value. Strings, integers, floats,
// bools, and time.Duration are supported.
func setField(field reflect.Value, value string) error {
	if field.Type() == reflect.TypeFor[time.Duration]() {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.Set(reflect.ValueOf(d))
		return nil
	}

	//exhaustive:ignore
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		field.SetFloat(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported parameter type %s", field.Type())
	}
	return nil
}

// decodeJSONBody decodes the request body into target. An absent or empty
// body leaves target at its zero value.
func decodeJSONBody(r *http.Request, target any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(target)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
