// Package restkit is a FastAPI-inspired REST framework for Go. Handler
// types are the contract: request parameters, bodies, and responses are
// declared as Go types, and the framework derives param binding,
// validation, serialization, and OpenAPI 3.1 documentation from them.
//
// The typed handler signature hides http.ResponseWriter and *http.Request:
//
//	type Handler[Req, Resp any] func(ctx context.Context, req *Req) (*Resp, error)
//
// Routes are declared with package-level generic functions, one per HTTP
// verb:
//
//	r := restkit.New(restkit.WithTitle("Users API"), restkit.WithVersion("1.0.0"))
//	restkit.Get[GetUserReq, User](r, "/users/{id}", getUser)
//	restkit.Post[CreateUserReq, User](r, "/users", createUser, restkit.WithStatus(http.StatusCreated))
//
// Request types bind parameters through struct tags and declare bodies with
// a Body field. Constraint tags are validated before the handler runs:
//
//	type CreateUserReq struct {
//	    OrgID string `path:"org_id"`
//	    Body  struct {
//	        Name  string `json:"name" required:"true" minLength:"1" maxLength:"100"`
//	        Email string `json:"email" required:"true" pattern:"^[^@]+@[^@]+$"`
//	    }
//	}
//
// Services live in a type-keyed container (package di) and are wired into
// handlers through the App builder:
//
//	app := restkit.NewApp(restkit.WithPort(3000))
//	di.Register(app.Container(), store.NewUserStore())
//	app.Mount(routes.Install)
//	err := app.Serve(ctx)
//
// Middleware uses the standard func(http.Handler) http.Handler signature,
// so the existing Go middleware ecosystem plugs in directly.
package restkit
