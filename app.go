package restkit

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"github.com/restkit/restkit/di"
)

// App ties a service container to a router and a server. It is the
// top-level builder for applications:
//
//	app := restkit.NewApp(restkit.WithPort(8080), restkit.WithRouter(r))
//	di.Register(app.Container(), store.NewUserStore())
//	app.Mount(routes.Install)
//	err := app.Serve(ctx)
type App struct {
	container *di.Container
	router    *Router
	host      string
	port      int
}

// AppOption configures an App.
type AppOption func(*App)

// WithHost sets the bind host. Default: "0.0.0.0".
func WithHost(host string) AppOption {
	return func(a *App) { a.host = host }
}

// WithPort sets the bind port. Default: 3000.
func WithPort(port int) AppOption {
	return func(a *App) { a.port = port }
}

// WithRouter replaces the App's router, for routers built with their own
// options (title, version, validator).
func WithRouter(r *Router) AppOption {
	return func(a *App) { a.router = r }
}

// NewApp creates an application with an empty container and router,
// listening on 0.0.0.0:3000 unless configured otherwise.
func NewApp(opts ...AppOption) *App {
	a := &App{
		container: di.New(),
		router:    New(),
		host:      "0.0.0.0",
		port:      3000,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Container returns the application's service container.
func (a *App) Container() *di.Container { return a.container }

// Router returns the application's router.
func (a *App) Router() *Router { return a.router }

// Configure runs fn against the container. Chainable, for grouping service
// registration:
//
//	app.Configure(func(c *di.Container) {
//	    di.Register(c, NewHealthService())
//	    di.Register(c, NewEchoService())
//	})
func (a *App) Configure(fn func(c *di.Container)) *App {
	fn(a.container)
	return a
}

// Mount runs a route installer against the app. Installers resolve their
// services from the container and register routes; a missing service
// panics here, at startup, rather than at request time.
func (a *App) Mount(install func(app *App)) *App {
	install(a)
	return a
}

// Use appends global middleware to the router. Chainable.
func (a *App) Use(mw ...Middleware) *App {
	a.router.Use(mw...)
	return a
}

// App delegates Registrar to its router, so registration functions accept
// an App directly: restkit.Get[Req, Resp](app, "/path", handler).
func (a *App) mount(re routeEntry)           { a.router.mount(re) }
func (a *App) getValidator() Validator       { return a.router.getValidator() }
func (a *App) getErrorHandler() ErrorHandler { return a.router.getErrorHandler() }
func (a *App) routeMiddleware() []Middleware { return nil }

// Addr returns the configured bind address.
func (a *App) Addr() string {
	return net.JoinHostPort(a.host, fmt.Sprintf("%d", a.port))
}

// Serve runs the HTTP server until ctx is cancelled, then shuts down
// gracefully. Bind failures and serve failures come back wrapped.
func (a *App) Serve(ctx context.Context) error {
	addr := a.Addr()
	slog.Info("server running", "addr", addr)

	if err := a.router.ListenAndServe(ctx, addr); err != nil {
		return fmt.Errorf("serve %s: %w", addr, err)
	}
	return nil
}
