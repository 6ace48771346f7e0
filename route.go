package restkit

import (
	"net/http"
	"reflect"
)

// routeEntry holds everything known about a registered route: enough to
// dispatch it and enough to document it.
type routeEntry struct {
	method  string
	pattern string

	summary     string
	description string
	tags        []string
	operationID string
	deprecated  bool

	status int
	errors []int

	reqType  reflect.Type
	respType reflect.Type

	handler http.Handler
}

// RouteOption configures a route at registration time.
type RouteOption func(*routeEntry)

// WithStatus sets the success status code for the route. Defaults to 200,
// or 204 when the response type is Void.
func WithStatus(code int) RouteOption {
	return func(re *routeEntry) { re.status = code }
}

// WithSummary sets the OpenAPI summary.
func WithSummary(s string) RouteOption {
	return func(re *routeEntry) { re.summary = s }
}

// WithDescription sets the OpenAPI description.
func WithDescription(d string) RouteOption {
	return func(re *routeEntry) { re.description = d }
}

// WithTags appends OpenAPI tags.
func WithTags(tags ...string) RouteOption {
	return func(re *routeEntry) { re.tags = append(re.tags, tags...) }
}

// WithOperationID sets a custom OpenAPI operationId.
func WithOperationID(id string) RouteOption {
	return func(re *routeEntry) { re.operationID = id }
}

// WithDeprecated marks the route deprecated in the OpenAPI document.
func WithDeprecated() RouteOption {
	return func(re *routeEntry) { re.deprecated = true }
}

// WithErrors declares error status codes the route can answer with; each
// is documented as a problem-details response in the OpenAPI document.
func WithErrors(codes ...int) RouteOption {
	return func(re *routeEntry) { re.errors = append(re.errors, codes...) }
}

// OperationInfo carries manual OpenAPI metadata for raw handlers, which
// have no types to derive it from.
type OperationInfo struct {
	Summary     string
	Description string
	Tags        []string
	Status      int
}
