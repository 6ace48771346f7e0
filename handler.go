package restkit

import (
	"context"
	"net/http"
)

// Void marks the absence of request data or of a response body. A route
// whose response type is Void answers 204 No Content by default.
type Void struct{}

// Handler is the typed handler signature. The framework owns binding and
// serialization; handlers never touch http.ResponseWriter or *http.Request.
type Handler[Req, Resp any] func(ctx context.Context, req *Req) (*Resp, error)

// RawHandler is the escape hatch for responses the typed pipeline cannot
// express (websocket upgrades, streaming, non-JSON payloads).
type RawHandler func(w http.ResponseWriter, r *http.Request)
