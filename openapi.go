package restkit

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

// Document is a generated OpenAPI 3.1 document.
type Document struct {
	OpenAPI string              `json:"openapi" yaml:"openapi"`
	Info    Info                `json:"info" yaml:"info"`
	Paths   map[string]PathItem `json:"paths" yaml:"paths"`
}

// Info holds API metadata.
type Info struct {
	Title   string `json:"title" yaml:"title"`
	Version string `json:"version" yaml:"version"`
}

// PathItem maps lowercase HTTP methods to operations.
type PathItem map[string]Operation

// Operation describes one operation on a path.
type Operation struct {
	Summary     string              `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	OperationID string              `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Tags        []string            `json:"tags,omitempty" yaml:"tags,omitempty"`
	Parameters  []Parameter         `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *RequestBody        `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses" yaml:"responses"`
	Deprecated  bool                `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

// Parameter describes a path, query, header, or cookie parameter.
type Parameter struct {
	Name        string `json:"name" yaml:"name"`
	In          string `json:"in" yaml:"in"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Schema      Schema `json:"schema" yaml:"schema"`
}

// RequestBody describes an operation's request body.
type RequestBody struct {
	Required bool                 `json:"required" yaml:"required"`
	Content  map[string]MediaType `json:"content" yaml:"content"`
}

// MediaType pairs a content type with an optional schema.
type MediaType struct {
	Schema *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Response describes one response status.
type Response struct {
	Description string               `json:"description" yaml:"description"`
	Content     map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

// Spec generates the OpenAPI 3.1 document from the registered routes.
func (r *Router) Spec() Document {
	doc := Document{
		OpenAPI: "3.1.0",
		Info: Info{
			Title:   r.title,
			Version: r.version,
		},
		Paths: make(map[string]PathItem),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.routes {
		re := &r.routes[i]
		path := specPath(re.pattern)

		if doc.Paths[path] == nil {
			doc.Paths[path] = make(PathItem)
		}
		doc.Paths[path][strings.ToLower(re.method)] = buildOperation(re)
	}

	return doc
}

func buildOperation(re *routeEntry) Operation {
	op := Operation{
		Summary:     re.summary,
		Description: re.description,
		OperationID: re.operationID,
		Tags:        re.tags,
		Deprecated:  re.deprecated,
		Responses:   make(map[string]Response),
	}

	if re.reqType != nil && re.reqType != reflect.TypeFor[Void]() {
		op.Parameters = paramSpecs(re.reqType)
		op.RequestBody = bodySpec(re.reqType, re.method)
	}

	status := re.status
	if status == 0 {
		status = http.StatusOK
	}

	if re.respType == nil || re.respType == reflect.TypeFor[Void]() {
		op.Responses[strconv.Itoa(status)] = Response{Description: "No content"}
	} else {
		schema := typeSchema(re.respType)
		op.Responses[strconv.Itoa(status)] = Response{
			Description: "Successful response",
			Content: map[string]MediaType{
				"application/json": {Schema: &schema},
			},
		}
	}

	// Declared error codes answer with problem details.
	problem := typeSchema(reflect.TypeFor[Problem]())
	for _, code := range re.errors {
		op.Responses[strconv.Itoa(code)] = Response{
			Description: http.StatusText(code),
			Content: map[string]MediaType{
				"application/problem+json": {Schema: &problem},
			},
		}
	}

	return op
}

// paramSpecs builds parameter objects from param-tagged fields.
func paramSpecs(t reflect.Type) []Parameter {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var params []Parameter
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		for _, tag := range paramTags {
			name := f.Tag.Get(tag)
			if name == "" {
				continue
			}

			schema := typeSchema(f.Type)
			applyConstraintKeywords(f, &schema)

			p := Parameter{
				Name:        name,
				In:          tag,
				Description: f.Tag.Get("doc"),
				Schema:      schema,
			}

			// Path parameters are always required.
			if tag == "path" || f.Tag.Get("required") == "true" {
				p.Required = true
			}

			params = append(params, p)
		}
	}

	return params
}

// bodySpec builds a RequestBody when the request type carries one: either
// an explicit Body field, or the whole struct on body-carrying methods.
func bodySpec(t reflect.Type, method string) *RequestBody {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	if bodyField, ok := t.FieldByName("Body"); ok {
		schema := typeSchema(bodyField.Type)
		return &RequestBody{
			Required: true,
			Content: map[string]MediaType{
				"application/json": {Schema: &schema},
			},
		}
	}

	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
	default:
		return nil
	}
	if hasParamTags(t) {
		return nil
	}

	schema := typeSchema(t)
	return &RequestBody{
		Required: true,
		Content: map[string]MediaType{
			"application/json": {Schema: &schema},
		},
	}
}

// specPath converts a mux pattern to an OpenAPI path: "{name...}" wildcard
// suffixes lose the ellipsis.
func specPath(pattern string) string {
	return strings.ReplaceAll(pattern, "...", "")
}
