package restkit

// Group is a set of routes sharing a path prefix, default tags, and
// middleware. Groups satisfy Registrar, so registration functions accept
// them interchangeably with the router.
type Group struct {
	router     *Router
	prefix     string
	middleware []Middleware
	tags       []string
}

// GroupOption configures a Group.
type GroupOption func(*Group)

// WithGroupTags adds default tags to every route registered on the group.
func WithGroupTags(tags ...string) GroupOption {
	return func(g *Group) { g.tags = append(g.tags, tags...) }
}

// WithGroupMiddleware adds middleware that wraps every route registered on
// the group.
func WithGroupMiddleware(mw ...Middleware) GroupOption {
	return func(g *Group) { g.middleware = append(g.middleware, mw...) }
}

// Group creates a route group under the given prefix.
func (r *Router) Group(prefix string, opts ...GroupOption) *Group {
	g := &Group{
		router: r,
		prefix: prefix,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Group) mount(re routeEntry) {
	re.pattern = g.prefix + re.pattern
	re.tags = append(g.tags, re.tags...)
	g.router.mount(re)
}

func (g *Group) getValidator() Validator       { return g.router.validator }
func (g *Group) getErrorHandler() ErrorHandler { return g.router.errorHandler }
func (g *Group) routeMiddleware() []Middleware { return g.middleware }
