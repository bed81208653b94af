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
	"io"
	"log/slog"
	"net/http"
	"strings"

	"rivaas.dev/router"
	"rivaas.dev/router/route"
)

// noopLogger is a singleton no-op logger used when no logger is configured.
// noopLogger discards all log messages.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// supportedMethods is the fixed set of HTTP methods the registration layer
// accepts, in enumeration order. Nested-tree parsing emits methods in this
// order, so callers can rely on deterministic output.
var supportedMethods = [...]string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
	http.MethodPatch,
	http.MethodHead,
	http.MethodOptions,
}

// IsSupportedMethod reports whether method (case-insensitive) is one of the
// HTTP methods the registration layer accepts.
func IsSupportedMethod(method string) bool {
	method = strings.ToUpper(method)
	for _, m := range supportedMethods {
		if m == method {
			return true
		}
	}
	return false
}

// Route describes a single route in flat form: a URL path, an HTTP method,
// and a handler. Routes are consumed once at registration time.
//
// Duplicate (URL, Method) pairs are permitted; the router's last
// registration wins.
type Route struct {
	// URL is the caller-supplied path. It may or may not start with "/".
	URL string

	// Method is the HTTP method, case-insensitive. Empty means GET.
	Method string

	// Handler processes matched requests.
	Handler router.HandlerFunc

	// Options carries optional route metadata.
	Options *RouteOptions
}

// RouteOptions carries optional metadata applied to a registered route.
// The zero value registers a route with no metadata.
type RouteOptions struct {
	// Name is a human-readable route name for reverse routing and logging.
	Name string

	// Description documents the route for introspection.
	Description string

	// Tags categorize the route.
	Tags []string
}

// RouterOptions configures [BuildRouter].
// The zero value is valid: no prefix, discarded logs, default router
// configuration.
type RouterOptions struct {
	// Prefix is prepended to every route path. Empty, whitespace-only, or
	// "/" means no prefix. Normalized per [NormalizePrefix].
	Prefix string

	// Logger receives registration diagnostics such as skipped routes.
	// Nil discards them.
	Logger *slog.Logger

	// Router passes configuration through to the underlying router.
	Router []router.Option
}

// BuildRouter builds a router from a flat list of route descriptors.
//
// Without a prefix every route registers on a single router. Routes with an
// unsupported method are skipped with a warning on opts.Logger; the
// remaining routes still register.
//
// With a prefix, BuildRouter builds two tiers: a route whose URL is exactly
// "/" registers on the base router at the normalized prefix itself (so the
// root route is reachable at "/api", not "/api/"), all other routes register
// on a nested router that is mounted on the base under the prefix. The base
// router is the returned entry point. An empty route set with a prefix still
// yields a valid router.
//
// Example:
//
//	r, err := bootstrap.BuildRouter(routes, bootstrap.RouterOptions{Prefix: "/api"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	http.ListenAndServe(":8080", r)
func BuildRouter(routes []Route, opts RouterOptions) (*router.Router, error) {
	logger := opts.Logger
	if logger == nil {
		logger = noopLogger
	}

	r, err := router.New(opts.Router...)
	if err != nil {
		return nil, err
	}
	registerFlatWithPrefix(r, routes, opts.Prefix, logger)
	return r, nil
}

// registerFlat registers every route in routes on r, skipping entries with
// unsupported methods.
func registerFlat(r *router.Router, routes []Route, logger *slog.Logger) {
	for _, rt := range routes {
		registerRoute(r, rt, logger)
	}
}

// registerRoute registers a single flat route descriptor on r.
// An unsupported method is non-fatal: the route is skipped and a warning is
// emitted on logger.
func registerRoute(r *router.Router, rt Route, logger *slog.Logger) {
	method := rt.Method
	if method == "" {
		method = http.MethodGet
	}
	method = strings.ToUpper(method)

	if !IsSupportedMethod(method) {
		logger.Warn("skipping route with unsupported method",
			"method", rt.Method,
			"url", rt.URL,
		)
		return
	}

	registered := r.AddRouteWithConstraints(method, rt.URL, []route.Handler{rt.Handler})
	applyRouteOptions(registered, rt.Options)
}

// applyRouteOptions copies route metadata onto a registered route.
func applyRouteOptions(rt *route.Route, opts *RouteOptions) {
	if opts == nil {
		return
	}
	if opts.Name != "" {
		rt.SetName(opts.Name)
	}
	if opts.Description != "" {
		rt.SetDescription(opts.Description)
	}
	if len(opts.Tags) > 0 {
		rt.SetTags(opts.Tags...)
	}
}
