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
	"strings"

	"rivaas.dev/router"
)

// MiddlewareEntry is one middleware configuration entry: either a
// [*Middleware] config object or a bare [Handler]. The interface is sealed;
// the two variants make the config/bare distinction explicit so a bare
// handler can never be mistaken for a config object.
type MiddlewareEntry interface {
	isMiddlewareEntry()
}

func (Handler) isMiddlewareEntry() {}

// MiddlewareOptions carries optional middleware configuration.
type MiddlewareOptions struct {
	// Name labels the middleware in logs and diagnostics.
	Name string

	// IsAfter moves the middleware to the after-route phase: it observes
	// the request after route dispatch instead of before. Default is the
	// before phase.
	IsAfter bool
}

// Middleware is the config-object form of a middleware entry: a handler
// with an optional route scope and optional options.
type Middleware struct {
	// Handler processes requests passing through the middleware.
	Handler router.HandlerFunc

	// Route restricts the middleware to requests under this path.
	// Empty means all requests.
	Route string

	// Options carries optional name and phase configuration.
	Options *MiddlewareOptions
}

func (*Middleware) isMiddlewareEntry() {}

// after reports whether the entry belongs to the after-route phase.
func (m *Middleware) after() bool {
	return m.Options != nil && m.Options.IsAfter
}

// CreateMiddleware builds a middleware entry from a handler and optional
// options. A nil opts means an unnamed before-phase middleware.
//
// Example:
//
//	audit := bootstrap.CreateMiddleware(auditHandler, &bootstrap.MiddlewareOptions{
//	    Name:    "audit",
//	    IsAfter: true,
//	})
func CreateMiddleware(handler router.HandlerFunc, opts *MiddlewareOptions) *Middleware {
	return &Middleware{
		Handler: handler,
		Options: opts,
	}
}

// Use is the normalized registration tuple for one middleware entry: the
// minimal shape the router's generic use entry point needs. Route is set
// only when the entry carries a non-empty route scope, Options only when
// the entry carries options.
type Use struct {
	Route   string
	Handler router.HandlerFunc
	Options *MiddlewareOptions
}

// ParseMiddlewares normalizes heterogeneous middleware entries into an
// ordered list of registration tuples, preserving input order. Bare
// handlers normalize to handler-only tuples; config objects keep route and
// options only when present.
func ParseMiddlewares(entries []MiddlewareEntry) []Use {
	uses := make([]Use, 0, len(entries))
	for _, entry := range entries {
		switch e := entry.(type) {
		case *Middleware:
			u := Use{Handler: e.Handler, Options: e.Options}
			if e.Route != "" {
				u.Route = e.Route
			}
			uses = append(uses, u)
		case Handler:
			uses = append(uses, Use{Handler: router.HandlerFunc(e)})
		}
	}
	return uses
}

// RegisterMiddlewares normalizes entries and registers each tuple, in input
// order, on the router's generic use entry point. Route-scoped tuples are
// wrapped so they only act on requests under their path. Empty or nil input
// is a no-op.
func RegisterMiddlewares(r *router.Router, entries []MiddlewareEntry) {
	if len(entries) == 0 {
		return
	}
	for _, u := range ParseMiddlewares(entries) {
		r.Use(u.middleware())
	}
}

// registerAfter registers after-phase entries in input order, each wrapped
// so it observes the request after route dispatch.
func registerAfter(r *router.Router, entries []MiddlewareEntry) {
	for _, u := range ParseMiddlewares(entries) {
		r.Use(afterDispatch(u.middleware()))
	}
}

// middleware returns the handler to hand to the router, applying the route
// scope when present.
func (u Use) middleware() router.HandlerFunc {
	if u.Route == "" {
		return u.Handler
	}
	return scopeToRoute(u.Route, u.Handler)
}

// scopeToRoute wraps h so it only runs for requests whose path is the
// given route or below it. Non-matching requests fall through to the rest
// of the chain untouched.
func scopeToRoute(routePath string, h router.HandlerFunc) router.HandlerFunc {
	scope := NormalizePrefix(routePath)
	if scope == "" || scope == "/" {
		return h
	}
	return func(c *router.Context) {
		path := c.Request.URL.Path
		if path == scope || strings.HasPrefix(path, scope+"/") {
			h(c)
		}
	}
}

// afterDispatch wraps h so it runs after route dispatch: the remainder of
// the chain (including the route handler) executes first, then h observes
// the finished request.
func afterDispatch(h router.HandlerFunc) router.HandlerFunc {
	return func(c *router.Context) {
		c.Next()
		h(c)
	}
}

// partitionMiddlewares splits entries into before-route and after-route
// phases, preserving relative order within each phase. Only a
// [*Middleware] with IsAfter set lands in the after phase; everything else
// (bare handlers included) is before-phase. The two phases never
// interleave, regardless of how the input mixed them.
func partitionMiddlewares(entries []MiddlewareEntry) (before, after []MiddlewareEntry) {
	for _, entry := range entries {
		if m, ok := entry.(*Middleware); ok && m.after() {
			after = append(after, entry)
			continue
		}
		before = append(before, entry)
	}
	return before, after
}
