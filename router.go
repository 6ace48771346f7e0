package restkit

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Router holds routes, middleware, and API metadata. It implements
// http.Handler and dispatches through an http.ServeMux using method
// patterns, so routing precedence is exactly the standard library's.
type Router struct {
	mux        *http.ServeMux
	middleware []Middleware
	routes     []routeEntry

	title   string
	version string

	validator    Validator
	errorHandler ErrorHandler

	mu sync.Mutex
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithTitle sets the API title used in the OpenAPI document.
func WithTitle(title string) RouterOption {
	return func(r *Router) { r.title = title }
}

// WithVersion sets the API version used in the OpenAPI document.
func WithVersion(version string) RouterOption {
	return func(r *Router) { r.version = version }
}

// WithValidator installs a router-level validator that runs on every bound
// request after constraint-tag and self validation.
func WithValidator(v Validator) RouterOption {
	return func(r *Router) { r.validator = v }
}

// ErrorHandler writes an error response. Installing one replaces the
// default problem-details writer.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// WithErrorHandler sets a custom error handler for the router.
func WithErrorHandler(h ErrorHandler) RouterOption {
	return func(r *Router) { r.errorHandler = h }
}

// New creates a Router with the given options.
func New(opts ...RouterOption) *Router {
	r := &Router{
		mux: http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Use appends global middleware. Middleware runs in the order added, and
// wraps every route including raw handlers and the spec endpoints.
func (r *Router) Use(mw ...Middleware) {
	r.middleware = append(r.middleware, mw...)
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	h := http.Handler(r.mux)
	for i := len(r.middleware) - 1; i >= 0; i-- {
		h = r.middleware[i](h)
	}
	h.ServeHTTP(w, req)
}

// ListenAndServe runs an HTTP server on addr until the context is
// cancelled, then shuts down gracefully.
func (r *Router) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// mount registers a route with the mux and records it in the route table
// for spec generation. Group middleware is already baked into re.handler;
// global middleware applies in ServeHTTP.
func (r *Router) mount(re routeEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.mux.Handle(re.method+" "+re.pattern, re.handler)
	r.routes = append(r.routes, re)
}

func (r *Router) getValidator() Validator       { return r.validator }
func (r *Router) getErrorHandler() ErrorHandler { return r.errorHandler }
func (r *Router) routeMiddleware() []Middleware { return nil }
