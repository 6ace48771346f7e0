package restkit

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig configures the JWTAuth middleware.
type JWTConfig struct {
	// Secret is the HMAC signing key. Required.
	Secret []byte

	// SigningMethod restricts accepted algorithms. Default: HS256.
	SigningMethod jwt.SigningMethod

	// Header to read the token from. Default: "Authorization".
	Header string

	// Scheme expected in the header value. Default: "Bearer".
	Scheme string

	// Skipper exempts requests from authentication.
	Skipper func(r *http.Request) bool
}

// JWTAuth returns middleware that validates a bearer JWT and stores its
// claims in the request context. Missing, malformed, or invalid tokens
// answer 401 with a problem-details body.
func JWTAuth(cfg JWTConfig) Middleware {
	if cfg.SigningMethod == nil {
		cfg.SigningMethod = jwt.SigningMethodHS256
	}
	if cfg.Header == "" {
		cfg.Header = "Authorization"
	}
	if cfg.Scheme == "" {
		cfg.Scheme = "Bearer"
	}

	keyFunc := func(_ *jwt.Token) (any, error) {
		return cfg.Secret, nil
	}
	validMethods := jwt.WithValidMethods([]string{cfg.SigningMethod.Alg()})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skipper != nil && cfg.Skipper(r) {
				next.ServeHTTP(w, r)
				return
			}

			raw, ok := extractToken(r.Header.Get(cfg.Header), cfg.Scheme)
			if !ok {
				writeProblem(w, Error(http.StatusUnauthorized, "missing or malformed token"))
				return
			}

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(raw, claims, keyFunc, validMethods)
			if err != nil || !token.Valid {
				writeProblem(w, Error(http.StatusUnauthorized, "invalid token"))
				return
			}

			next.ServeHTTP(w, SetValue(r, claims))
		})
	}
}

// GetClaims retrieves the validated JWT claims from the context.
func GetClaims(r *http.Request) (jwt.MapClaims, bool) {
	return GetValue[jwt.MapClaims](r.Context())
}

// extractToken splits "Scheme <token>" header values.
func extractToken(header, scheme string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], scheme) {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
