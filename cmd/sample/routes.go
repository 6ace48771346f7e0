package main

import (
	"context"
	"net/http"
	"time"

	"github.com/restkit/restkit"
	"github.com/restkit/restkit/di"
)

// installRoutes resolves services and registers every route. Runs once at
// startup via App.Mount.
func installRoutes(app *restkit.App) {
	health := di.MustResolve[*healthService](app.Container())
	echo := di.MustResolve[*echoService](app.Container())
	users := di.MustResolve[*userStore](app.Container())

	v1 := app.Router().Group("/v1", restkit.WithGroupTags("v1"))

	restkit.Get(v1, "/health", handleHealth(health),
		restkit.WithSummary("Health check"),
		restkit.WithTags("ops"),
	)

	restkit.Post(v1, "/echo", handleEcho(echo),
		restkit.WithSummary("Echo a message"),
		restkit.WithTags("ops"),
	)

	restkit.Get(v1, "/users", handleListUsers(users),
		restkit.WithSummary("List users"),
		restkit.WithDescription("Returns all users, optionally filtered by role."),
		restkit.WithTags("users"),
	)
	restkit.Post(v1, "/users", handleCreateUser(users),
		restkit.WithStatus(http.StatusCreated),
		restkit.WithSummary("Create user"),
		restkit.WithTags("users"),
		restkit.WithErrors(http.StatusBadRequest),
	)
	restkit.Get(v1, "/users/{id}", handleGetUser(users),
		restkit.WithSummary("Get user by ID"),
		restkit.WithTags("users"),
		restkit.WithErrors(http.StatusNotFound),
	)
	restkit.Put(v1, "/users/{id}", handleUpdateUser(users),
		restkit.WithSummary("Update user"),
		restkit.WithTags("users"),
		restkit.WithErrors(http.StatusBadRequest, http.StatusNotFound),
	)
	restkit.Delete(v1, "/users/{id}", handleDeleteUser(users),
		restkit.WithSummary("Delete user"),
		restkit.WithTags("users"),
		restkit.WithErrors(http.StatusNotFound),
	)
}

type healthResp struct {
	Status string        `json:"status"`
	Uptime time.Duration `json:"uptime" doc:"Process uptime"`
}

func handleHealth(svc *healthService) restkit.Handler[restkit.Void, healthResp] {
	return func(_ context.Context, _ *restkit.Void) (*healthResp, error) {
		status, uptime := svc.Status()
		return &healthResp{Status: status, Uptime: uptime}, nil
	}
}

type echoReq struct {
	Message string `json:"message" required:"true" maxLength:"1024"`
}

type echoResp struct {
	Message string `json:"message"`
}

func handleEcho(svc *echoService) restkit.Handler[echoReq, echoResp] {
	return func(_ context.Context, req *echoReq) (*echoResp, error) {
		return &echoResp{Message: svc.Echo(req.Message)}, nil
	}
}

type listUsersReq struct {
	Role string `query:"role" enum:"admin,member,guest" doc:"Filter by role"`
}

type usersResp struct {
	Users []user `json:"users"`
}

func handleListUsers(store *userStore) restkit.Handler[listUsersReq, usersResp] {
	return func(_ context.Context, req *listUsersReq) (*usersResp, error) {
		return &usersResp{Users: store.List(req.Role)}, nil
	}
}

type createUserReq struct {
	Body struct {
		Name  string `json:"name" required:"true" minLength:"1" maxLength:"100"`
		Email string `json:"email" required:"true" pattern:"^[^@\\s]+@[^@\\s]+$"`
		Role  string `json:"role" enum:"admin,member,guest" doc:"Defaults to member"`
	}
}

func handleCreateUser(store *userStore) restkit.Handler[createUserReq, user] {
	return func(_ context.Context, req *createUserReq) (*user, error) {
		role := req.Body.Role
		if role == "" {
			role = "member"
		}
		u := store.Create(req.Body.Name, req.Body.Email, role)
		return &u, nil
	}
}

type userByIDReq struct {
	ID string `path:"id"`
}

func handleGetUser(store *userStore) restkit.Handler[userByIDReq, user] {
	return func(_ context.Context, req *userByIDReq) (*user, error) {
		u, ok := store.Get(req.ID)
		if !ok {
			return nil, restkit.Errorf(http.StatusNotFound, "user %s not found", req.ID)
		}
		return &u, nil
	}
}

type updateUserReq struct {
	ID   string `path:"id"`
	Body struct {
		Name  string `json:"name" required:"true" minLength:"1" maxLength:"100"`
		Email string `json:"email" required:"true" pattern:"^[^@\\s]+@[^@\\s]+$"`
		Role  string `json:"role" enum:"admin,member,guest"`
	}
}

func handleUpdateUser(store *userStore) restkit.Handler[updateUserReq, user] {
	return func(_ context.Context, req *updateUserReq) (*user, error) {
		u := user{Name: req.Body.Name, Email: req.Body.Email, Role: req.Body.Role}
		if !store.Update(req.ID, u) {
			return nil, restkit.Errorf(http.StatusNotFound, "user %s not found", req.ID)
		}
		u.ID = req.ID
		return &u, nil
	}
}

func handleDeleteUser(store *userStore) restkit.Handler[userByIDReq, restkit.Void] {
	return func(_ context.Context, req *userByIDReq) (*restkit.Void, error) {
		if !store.Delete(req.ID) {
			return nil, restkit.Errorf(http.StatusNotFound, "user %s not found", req.ID)
		}
		return &restkit.Void{}, nil
	}
}
