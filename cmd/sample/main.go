// Command sample runs a demonstration API built on restkit: health and
// echo endpoints plus an in-memory users CRUD, wired through the service
// container.
//
// Run:
//
//	go run ./cmd/sample
//
// Print the OpenAPI spec and exit:
//
//	go run ./cmd/sample -spec
//	go run ./cmd/sample -spec -o openapi.json
//
// Then explore:
//
//	GET    http://localhost:3000/openapi.json
//	GET    http://localhost:3000/docs
//	GET    http://localhost:3000/v1/health
//	POST   http://localhost:3000/v1/echo
//	GET    http://localhost:3000/v1/users
//	POST   http://localhost:3000/v1/users
//	GET    http://localhost:3000/v1/users/{id}
//	PUT    http://localhost:3000/v1/users/{id}
//	DELETE http://localhost:3000/v1/users/{id}
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/caarlos0/env/v10"

	"github.com/restkit/restkit"
	"github.com/restkit/restkit/di"
)

type config struct {
	Host     string  `env:"APP_HOST" envDefault:"0.0.0.0"`
	Port     int     `env:"APP_PORT" envDefault:"3000"`
	LogLevel string  `env:"LOG_LEVEL" envDefault:"info"`
	RateRPS  float64 `env:"RATE_LIMIT_RPS" envDefault:"50"`
	Burst    int     `env:"RATE_LIMIT_BURST" envDefault:"100"`
}

func main() {
	specFlag := flag.Bool("spec", false, "print the OpenAPI spec and exit")
	outFlag := flag.String("o", "", "output file for the spec (requires -spec)")
	flag.Parse()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	})))

	app := newApp(cfg)

	if *specFlag {
		if err := writeSpec(app.Router(), *outFlag); err != nil {
			slog.Error("spec generation failed", "err", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.Serve(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

func newApp(cfg config) *restkit.App {
	router := restkit.New(
		restkit.WithTitle("Sample API"),
		restkit.WithVersion("1.0.0"),
	)

	app := restkit.NewApp(
		restkit.WithHost(cfg.Host),
		restkit.WithPort(cfg.Port),
		restkit.WithRouter(router),
	)

	app.Use(restkit.Recovery())
	app.Use(restkit.RequestID())
	app.Use(restkit.Logger(slog.Default()))
	app.Use(restkit.CORS())
	app.Use(restkit.RateLimit(restkit.RateLimitConfig{
		Rate:  cfg.RateRPS,
		Burst: cfg.Burst,
	}))

	app.Configure(func(c *di.Container) {
		di.Register(c, newHealthService())
		di.Register(c, newEchoService())
		di.Register(c, newUserStore())
	})

	app.Mount(installRoutes)

	router.ServeSpec("/openapi.json")
	router.ServeSpecYAML("/openapi.yaml")
	router.ServeDocs("/docs")

	return app
}

func writeSpec(r *restkit.Router, out string) error {
	if out == "" {
		return r.WriteSpec(os.Stdout)
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	return r.WriteSpec(f)
}

func logLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
