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
	"log/slog"
	"time"

	"rivaas.dev/logging"
	"rivaas.dev/metrics"
	"rivaas.dev/router"
)

// Option defines functional options for app configuration.
// Option functions are used to configure an App instance during creation.
type Option func(*config)

// WithServiceName sets the service name shown in the banner and attached to
// metrics metadata. An empty name causes validation to fail during [New].
//
// Example:
//
//	bootstrap.New(bootstrap.WithServiceName("users-api"))
func WithServiceName(name string) Option {
	return func(c *config) {
		c.serviceName = name
	}
}

// WithServiceVersion sets the service version shown in the banner and
// attached to metrics metadata. An empty version causes validation to fail
// during [New].
func WithServiceVersion(version string) Option {
	return func(c *config) {
		c.serviceVersion = version
	}
}

// WithEnvironment sets the environment mode.
// Valid values are "development" or "production". Invalid values cause
// validation to fail during [New].
//
// Environment affects:
//   - Startup banner (development shows the route table)
//   - Terminal colors (production strips ANSI sequences)
//
// Example:
//
//	bootstrap.New(bootstrap.WithEnvironment("production"))
func WithEnvironment(env string) Option {
	return func(c *config) {
		c.environment = env
	}
}

// WithLogger sets the logger for registration diagnostics and lifecycle
// events. Without it, logs are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithRoutes sets the flat route list to register. Successive calls
// append. Routes with unsupported methods are skipped with a warning;
// duplicates are permitted, last registration wins.
//
// Example:
//
//	bootstrap.New(bootstrap.WithRoutes([]bootstrap.Route{
//	    {URL: "/users", Method: "GET", Handler: listUsers},
//	    {URL: "/users", Method: "POST", Handler: createUser},
//	}))
func WithRoutes(routes []Route) Option {
	return func(c *config) {
		c.routes = append(c.routes, routes...)
	}
}

// WithRouteTree sets the nested route tree to register alongside any flat
// routes. The tree is flattened per [ParseRoutes]; the routes prefix does
// not apply to it.
func WithRouteTree(tree RouteTree) Option {
	return func(c *config) {
		c.tree = tree
	}
}

// WithMiddlewares sets the middleware entries to register. Successive calls
// append. Entries split into before and after phases per their options;
// relative order within each phase follows input order.
//
// Example:
//
//	bootstrap.New(bootstrap.WithMiddlewares(
//	    bootstrap.Handler(requestID),
//	    &bootstrap.Middleware{Handler: auth, Route: "/admin"},
//	    bootstrap.CreateMiddleware(audit, &bootstrap.MiddlewareOptions{IsAfter: true}),
//	))
func WithMiddlewares(entries ...MiddlewareEntry) Option {
	return func(c *config) {
		c.middlewares = append(c.middlewares, entries...)
	}
}

// WithRoutesPrefix prepends a path prefix to every flat route. Empty,
// whitespace-only, or "/" means no prefix. The prefix is normalized per
// [NormalizePrefix]; a route with URL "/" lands on the bare prefix itself.
//
// Example:
//
//	bootstrap.New(
//	    bootstrap.WithRoutes(routes),
//	    bootstrap.WithRoutesPrefix("/api/v1"),
//	)
func WithRoutesPrefix(prefix string) Option {
	return func(c *config) {
		c.prefix = prefix
	}
}

// WithRouterOptions passes configuration through to the underlying router.
func WithRouterOptions(opts ...router.Option) Option {
	return func(c *config) {
		c.routerOpts = append(c.routerOpts, opts...)
	}
}

// WithHost sets the host to bind. Default is all interfaces, or the
// BOOTSTRAP_HOST environment variable when set.
func WithHost(host string) Option {
	return func(c *config) {
		c.server.host = host
	}
}

// WithPort sets the first port the server tries to bind. When the port is
// taken the probe walks upward one port at a time; see [WithPortAttempts]
// and [WithStrictPort]. Default is 8080, or the BOOTSTRAP_PORT environment
// variable when set.
func WithPort(port int) Option {
	return func(c *config) {
		c.server.port = port
	}
}

// WithPortAttempts sets how many consecutive ports the probe tries before
// giving up with [ErrNoPortAvailable]. Default is 100.
func WithPortAttempts(attempts int) Option {
	return func(c *config) {
		c.server.portAttempts = attempts
	}
}

// WithStrictPort disables the port probe: [App.Start] fails immediately if
// the configured port is taken instead of walking to the next free one.
func WithStrictPort() Option {
	return func(c *config) {
		c.server.strictPort = true
	}
}

// WithLogging enables structured logging. Service name, version, and
// environment are applied automatically; additional options pass through.
// The derived *slog.Logger becomes the app logger unless [WithLogger] set
// one explicitly, and is shut down with the server.
//
// Example:
//
//	bootstrap.New(bootstrap.WithLogging(
//	    logging.WithJSONHandler(),
//	    logging.WithDebugLevel(),
//	))
func WithLogging(opts ...logging.Option) Option {
	return func(c *config) {
		c.loggingEnabled = true
		c.loggingOpts = append(c.loggingOpts, opts...)
	}
}

// WithMetrics enables the metrics recorder. Service name and version are
// applied automatically; additional options pass through.
//
// Example:
//
//	bootstrap.New(bootstrap.WithMetrics(
//	    metrics.WithPrometheus(9090, "/metrics"),
//	))
func WithMetrics(opts ...metrics.Option) Option {
	return func(c *config) {
		c.metricsEnabled = true
		c.metricsOpts = append(c.metricsOpts, opts...)
	}
}

// WithoutBanner disables the startup banner.
func WithoutBanner() Option {
	return func(c *config) {
		c.banner = false
	}
}

// ServerOption configures server settings.
type ServerOption func(*serverConfig)

// WithServer applies server-level settings such as timeouts.
//
// Example:
//
//	bootstrap.New(bootstrap.WithServer(
//	    bootstrap.WithReadTimeout(30*time.Second),
//	    bootstrap.WithShutdownTimeout(10*time.Second),
//	))
func WithServer(opts ...ServerOption) Option {
	return func(c *config) {
		for _, opt := range opts {
			opt(c.server)
		}
	}
}

// WithReadTimeout configures how long the server waits to read the entire
// request.
func WithReadTimeout(d time.Duration) ServerOption {
	return func(sc *serverConfig) {
		sc.readTimeout = d
	}
}

// WithWriteTimeout configures how long the server may take to write the
// response.
func WithWriteTimeout(d time.Duration) ServerOption {
	return func(sc *serverConfig) {
		sc.writeTimeout = d
	}
}

// WithIdleTimeout configures how long keep-alive connections are held open.
func WithIdleTimeout(d time.Duration) ServerOption {
	return func(sc *serverConfig) {
		sc.idleTimeout = d
	}
}

// WithReadHeaderTimeout configures how long the server waits for request
// headers.
func WithReadHeaderTimeout(d time.Duration) ServerOption {
	return func(sc *serverConfig) {
		sc.readHeaderTimeout = d
	}
}

// WithMaxHeaderBytes caps the size of request headers.
func WithMaxHeaderBytes(n int) ServerOption {
	return func(sc *serverConfig) {
		sc.maxHeaderBytes = n
	}
}

// WithShutdownTimeout configures how long graceful shutdown may take before
// in-flight requests are cut off. Minimum is 1 second.
func WithShutdownTimeout(d time.Duration) ServerOption {
	return func(sc *serverConfig) {
		sc.shutdownTimeout = d
	}
}
