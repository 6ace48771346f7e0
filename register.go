package restkit

import (
	"net/http"
	"reflect"
)

// Registrar is accepted by the registration functions. Both *Router and
// *Group implement it.
type Registrar interface {
	mount(re routeEntry)
	getValidator() Validator
	getErrorHandler() ErrorHandler
	routeMiddleware() []Middleware
}

// Get registers a GET handler.
func Get[Req, Resp any](reg Registrar, pattern string, h Handler[Req, Resp], opts ...RouteOption) {
	register(reg, http.MethodGet, pattern, h, opts...)
}

// Post registers a POST handler.
func Post[Req, Resp any](reg Registrar, pattern string, h Handler[Req, Resp], opts ...RouteOption) {
	register(reg, http.MethodPost, pattern, h, opts...)
}

// Put registers a PUT handler.
func Put[Req, Resp any](reg Registrar, pattern string, h Handler[Req, Resp], opts ...RouteOption) {
	register(reg, http.MethodPut, pattern, h, opts...)
}

// Patch registers a PATCH handler.
func Patch[Req, Resp any](reg Registrar, pattern string, h Handler[Req, Resp], opts ...RouteOption) {
	register(reg, http.MethodPatch, pattern, h, opts...)
}

// Delete registers a DELETE handler.
func Delete[Req, Resp any](reg Registrar, pattern string, h Handler[Req, Resp], opts ...RouteOption) {
	register(reg, http.MethodDelete, pattern, h, opts...)
}

// Raw registers a plain handler with manual OperationInfo for the OpenAPI
// document.
func Raw(reg Registrar, method, pattern string, h RawHandler, info OperationInfo) {
	re := routeEntry{
		method:      method,
		pattern:     pattern,
		summary:     info.Summary,
		description: info.Description,
		tags:        info.Tags,
		status:      info.Status,
		handler:     http.HandlerFunc(h),
	}

	for _, mw := range backward(reg.routeMiddleware()) {
		re.handler = mw(re.handler)
	}

	reg.mount(re)
}

func register[Req, Resp any](reg Registrar, method, pattern string, h Handler[Req, Resp], opts ...RouteOption) {
	re := routeEntry{
		method:   method,
		pattern:  pattern,
		reqType:  reflect.TypeFor[Req](),
		respType: reflect.TypeFor[Resp](),
	}

	for _, opt := range opts {
		opt(&re)
	}

	if re.status == 0 {
		re.status = http.StatusOK
		if re.respType == reflect.TypeFor[Void]() {
			re.status = http.StatusNoContent
		}
	}

	re.handler = typedHandler(h, re.status, reg.getValidator(), reg.getErrorHandler())

	// Group middleware wraps the route itself so it survives spec routes
	// and raw handlers mounted on other groups.
	for _, mw := range backward(reg.routeMiddleware()) {
		re.handler = mw(re.handler)
	}

	reg.mount(re)
}

// typedHandler adapts a Handler into an http.Handler running the full
// pipeline: bind, validate, handle, encode.
func typedHandler[Req, Resp any](h Handler[Req, Resp], status int, validator Validator, errHandler ErrorHandler) http.Handler {
	fail := func(w http.ResponseWriter, r *http.Request, err error) {
		if errHandler != nil {
			errHandler(w, r, err)
			return
		}
		writeProblem(w, err)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := bindRequest[Req](r)
		if err != nil {
			fail(w, r, Error(http.StatusBadRequest, err.Error()))
			return
		}

		if err := validateConstraints(req); err != nil {
			fail(w, r, err)
			return
		}

		if sv, ok := any(req).(SelfValidator); ok {
			if err := sv.Validate(); err != nil {
				fail(w, r, err)
				return
			}
		}

		if validator != nil {
			if err := validator.Validate(req); err != nil {
				fail(w, r, err)
				return
			}
		}

		resp, err := h(r.Context(), req)
		if err != nil {
			fail(w, r, err)
			return
		}

		if _, void := any(resp).(*Void); void || resp == nil {
			w.WriteHeader(status)
			return
		}

		writeResponse(w, r, resp, status)
	})
}

// backward returns mw reversed, so wrapping applies first-added outermost.
func backward(mw []Middleware) []Middleware {
	if len(mw) < 2 {
		return mw
	}
	out := make([]Middleware, len(mw))
	for i, m := range mw {
		out[len(mw)-1-i] = m
	}
	return out
}
