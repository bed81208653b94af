// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bootstrap

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"rivaas.dev/logging"
	"rivaas.dev/metrics"
	"rivaas.dev/router"
)

// Default configuration values.
const (
	DefaultServiceName       = "bootstrap-app"
	DefaultVersion           = "1.0.0"
	DefaultEnvironment       = "development"
	DefaultPort              = 8080
	DefaultPortAttempts      = 100
	DefaultReadTimeout       = 10 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultIdleTimeout       = 60 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second
	DefaultMaxHeaderBytes    = 1 << 20 // 1MB
	DefaultShutdownTimeout   = 30 * time.Second

	// Environment constants
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

// App turns declarative route and middleware configuration into a running
// HTTP server. Create an App with [New] or [MustNew]; all configuration is
// supplied through options.
//
// Registration happens once, during [New], in a fixed order: before-phase
// middleware, then routes (flat and nested), then after-phase middleware.
// [App.Start] freezes the router before serving; there is no re-registration
// after that point.
type App struct {
	router  *router.Router
	logging *logging.Logger
	metrics *metrics.Recorder
	config  *config
	hooks   *Hooks

	urlMu sync.RWMutex
	url   string // effective URL, set once the listener is bound
}

// config holds the internal application configuration.
// config maintains encapsulation by keeping all fields private.
type config struct {
	serviceName    string
	serviceVersion string
	environment    string
	logger         *slog.Logger

	routes      []Route
	tree        RouteTree
	middlewares []MiddlewareEntry
	prefix      string
	routerOpts  []router.Option

	server *serverConfig

	loggingEnabled bool
	loggingOpts    []logging.Option

	metricsEnabled bool
	metricsOpts    []metrics.Option

	banner bool
}

// serverConfig holds server configuration settings.
type serverConfig struct {
	host              string
	port              int
	portAttempts      int
	strictPort        bool
	readTimeout       time.Duration
	writeTimeout      time.Duration
	idleTimeout       time.Duration
	readHeaderTimeout time.Duration
	maxHeaderBytes    int
	shutdownTimeout   time.Duration
}

// validate validates the server configuration, collecting all errors.
func (sc *serverConfig) validate(errs *ValidationError) {
	if sc.port < 0 || sc.port > 65535 {
		errs.Add(newInvalidValueError("server.port", sc.port, "must be between 0 and 65535"))
	}
	if sc.portAttempts < 1 {
		errs.Add(newInvalidValueError("server.portAttempts", sc.portAttempts, "must be at least 1"))
	}
	if sc.readTimeout <= 0 {
		errs.Add(newInvalidValueError("server.readTimeout", sc.readTimeout, "must be positive"))
	}
	if sc.writeTimeout <= 0 {
		errs.Add(newInvalidValueError("server.writeTimeout", sc.writeTimeout, "must be positive"))
	}
	if sc.idleTimeout <= 0 {
		errs.Add(newInvalidValueError("server.idleTimeout", sc.idleTimeout, "must be positive"))
	}
	if sc.readHeaderTimeout <= 0 {
		errs.Add(newInvalidValueError("server.readHeaderTimeout", sc.readHeaderTimeout, "must be positive"))
	}
	if sc.maxHeaderBytes <= 0 {
		errs.Add(newInvalidValueError("server.maxHeaderBytes", sc.maxHeaderBytes, "must be positive"))
	}
	if sc.shutdownTimeout < time.Second {
		errs.Add(newInvalidValueError("server.shutdownTimeout", sc.shutdownTimeout,
			"must be at least 1 second for proper graceful shutdown"))
	}
}

// validate checks the configuration and returns all validation errors at
// once rather than stopping at the first one.
func (c *config) validate() error {
	var errs ValidationError

	if c.serviceName == "" {
		errs.Add(newEmptyFieldError("serviceName"))
	}
	if c.serviceVersion == "" {
		errs.Add(newEmptyFieldError("serviceVersion"))
	}
	if c.environment != EnvironmentDevelopment && c.environment != EnvironmentProduction {
		errs.Add(newInvalidValueError("environment", c.environment,
			fmt.Sprintf("must be %q or %q", EnvironmentDevelopment, EnvironmentProduction)))
	}
	if c.server != nil {
		c.server.validate(&errs)
	}

	return errs.ToError()
}

// defaultConfig returns a configuration with default values.
// Host and port defaults honor the BOOTSTRAP_HOST and BOOTSTRAP_PORT
// environment variables when set.
func defaultConfig() *config {
	return &config{
		serviceName:    DefaultServiceName,
		serviceVersion: DefaultVersion,
		environment:    DefaultEnvironment,
		server: &serverConfig{
			host:              envHost(),
			port:              envPort(),
			portAttempts:      DefaultPortAttempts,
			readTimeout:       DefaultReadTimeout,
			writeTimeout:      DefaultWriteTimeout,
			idleTimeout:       DefaultIdleTimeout,
			readHeaderTimeout: DefaultReadHeaderTimeout,
			maxHeaderBytes:    DefaultMaxHeaderBytes,
			shutdownTimeout:   DefaultShutdownTimeout,
		},
		banner: true,
	}
}

// New creates a new App from the given options and performs the full
// registration bootstrap. New returns an error if the configuration is
// invalid or the router cannot be built.
//
// Example:
//
//	app, err := bootstrap.New(
//	    bootstrap.WithServiceName("users-api"),
//	    bootstrap.WithRoutes(routes),
//	    bootstrap.WithRoutesPrefix("/api/v1"),
//	    bootstrap.WithMiddlewares(
//	        bootstrap.Handler(auth),
//	        bootstrap.CreateMiddleware(audit, &bootstrap.MiddlewareOptions{IsAfter: true}),
//	    ),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
func New(opts ...Option) (*App, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.validate(); err != nil {
		// Validation errors are already structured; don't wrap them
		return nil, err
	}

	app := &App{
		config: cfg,
		hooks:  &Hooks{},
	}

	if cfg.loggingEnabled {
		// Prepend service metadata to user options, same pattern as metrics
		loggingOpts := []logging.Option{
			logging.WithServiceName(cfg.serviceName),
			logging.WithServiceVersion(cfg.serviceVersion),
			logging.WithEnvironment(cfg.environment),
		}
		loggingOpts = append(loggingOpts, cfg.loggingOpts...)

		loggingCfg, err := logging.New(loggingOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logging: %w", err)
		}
		app.logging = loggingCfg

		// An explicitly configured logger wins over the derived one
		if cfg.logger == nil {
			cfg.logger = loggingCfg.Logger()
		}
	}

	if cfg.metricsEnabled {
		metricsOpts := []metrics.Option{
			metrics.WithServiceName(cfg.serviceName),
			metrics.WithServiceVersion(cfg.serviceVersion),
		}
		if cfg.logger != nil {
			metricsOpts = append(metricsOpts, metrics.WithLogger(cfg.logger))
		}
		metricsOpts = append(metricsOpts, cfg.metricsOpts...)

		recorder, err := metrics.New(metricsOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
		app.metrics = recorder
	}

	if err := app.register(); err != nil {
		return nil, err
	}

	return app, nil
}

// MustNew creates a new [App] or panics on error. Useful for
// initialization in main() functions.
//
// Example:
//
//	app := bootstrap.MustNew(bootstrap.WithRoutes(routes))
func MustNew(opts ...Option) *App {
	app, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("bootstrap: app initialization failed: %v", err))
	}
	return app
}

// register builds the router and issues every registration call in order:
// before-phase middleware, routes, after-phase middleware. The order
// determines whether a middleware observes a request before or after route
// handling.
func (a *App) register() error {
	cfg := a.config
	before, after := partitionMiddlewares(cfg.middlewares)

	r, err := router.New(cfg.routerOpts...)
	if err != nil {
		return fmt.Errorf("failed to create router: %w", err)
	}

	RegisterMiddlewares(r, before)

	if len(cfg.routes) > 0 {
		registerFlatWithPrefix(r, cfg.routes, cfg.prefix, a.Logger())
	}
	if len(cfg.tree) > 0 {
		RegisterRoutes(r, cfg.tree)
	}

	registerAfter(r, after)

	a.router = r
	return nil
}

// registerFlatWithPrefix registers flat routes on r, building the two-tier
// base/nested mount when the prefix is effective. r acts as the base router
// in that case. Shared by [BuildRouter] and the app bootstrap.
func registerFlatWithPrefix(r *router.Router, routes []Route, prefix string, logger *slog.Logger) {
	normalized := NormalizePrefix(prefix)
	if normalized == "" || normalized == "/" {
		registerFlat(r, routes, logger)
		return
	}

	nested := router.MustNew()
	remaining := make([]Route, 0, len(routes))
	for _, rt := range routes {
		if rt.URL == "/" {
			rt.URL = normalized
			registerRoute(r, rt, logger)
			continue
		}
		remaining = append(remaining, rt)
	}

	registerFlat(nested, remaining, logger)
	r.Mount(normalized, nested)
}

// Router returns the underlying router for advanced usage.
func (a *App) Router() *router.Router {
	return a.router
}

// Use registers additional before-phase middleware on the app. Entries
// configured with [WithMiddlewares] always precede them in the chain.
// Use panics once the router is frozen (after [App.Start]): route chains
// are composed at freeze time, so later middleware would silently never
// run.
func (a *App) Use(middleware ...router.HandlerFunc) {
	if a.router.Frozen() {
		panic("cannot register middleware after router is frozen")
	}
	a.router.Use(middleware...)
}

// Metrics returns the metrics recorder, or nil if metrics are not enabled.
func (a *App) Metrics() *metrics.Recorder {
	return a.metrics
}

// Logging returns the structured logging configuration, or nil if logging
// is not enabled via [WithLogging].
func (a *App) Logging() *logging.Logger {
	return a.logging
}

// Logger returns the configured logger. It never returns nil; without a
// configured logger a no-op logger is returned.
func (a *App) Logger() *slog.Logger {
	if a.config.logger != nil {
		return a.config.logger
	}
	return noopLogger
}

// ServiceName returns the configured service name.
func (a *App) ServiceName() string {
	return a.config.serviceName
}

// ServiceVersion returns the configured service version.
func (a *App) ServiceVersion() string {
	return a.config.serviceVersion
}

// Environment returns the current environment (development or production).
func (a *App) Environment() string {
	return a.config.environment
}

// URL returns the effective base URL once the server is listening, e.g.
// "http://localhost:8081" after the port probe settled on 8081. It returns
// "" before [App.Start] has bound a listener.
func (a *App) URL() string {
	a.urlMu.RLock()
	defer a.urlMu.RUnlock()
	return a.url
}

// setURL records the effective URL once the listener is bound.
func (a *App) setURL(url string) {
	a.urlMu.Lock()
	a.url = url
	a.urlMu.Unlock()
}
