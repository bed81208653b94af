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
	"net/http"
	"slices"

	"rivaas.dev/router"
	"rivaas.dev/router/route"
)

// MethodAll marks a parsed route that matches every supported HTTP method.
const MethodAll = "ALL"

// RouteTree is a nested route configuration: each key is a path segment,
// each value either a [*MethodMap] attaching handlers per method (with
// optional children) or a bare [Handler] matching the segment for any
// method. Full paths are computed by joining ancestor segments with
// [JoinPaths].
//
// A RouteTree is caller-authored literal configuration. It is traversed once
// during parsing and not retained.
//
// Example:
//
//	tree := bootstrap.RouteTree{
//	    "/users": &bootstrap.MethodMap{
//	        GET:  &bootstrap.Endpoint{Handler: listUsers},
//	        POST: &bootstrap.Endpoint{Handler: createUser},
//	        Children: bootstrap.RouteTree{
//	            "/:id": &bootstrap.MethodMap{
//	                GET: &bootstrap.Endpoint{Handler: getUser},
//	            },
//	        },
//	    },
//	    "/ping": bootstrap.Handler(pong),
//	}
type RouteTree map[string]RouteNode

// RouteNode is one node of a [RouteTree]: either a [*MethodMap] or a bare
// [Handler]. The interface is sealed; no other implementations exist.
type RouteNode interface {
	isRouteNode()
}

// Handler is a bare handler usable directly as a [RouteTree] node (matching
// any method) or as a [MiddlewareEntry].
type Handler router.HandlerFunc

func (Handler) isRouteNode() {}

// Endpoint attaches a handler to a single HTTP method, with optional route
// metadata. A nil Options is the bare-handler form.
type Endpoint struct {
	Handler router.HandlerFunc
	Options *RouteOptions
}

// MethodMap is a [RouteTree] node carrying per-method endpoints and an
// optional subtree. Nil method fields are absent; a MethodMap with no
// endpoints and no children contributes nothing.
type MethodMap struct {
	GET     *Endpoint
	POST    *Endpoint
	PUT     *Endpoint
	DELETE  *Endpoint
	PATCH   *Endpoint
	HEAD    *Endpoint
	OPTIONS *Endpoint

	// Children holds the nested subtree below this node's path.
	Children RouteTree
}

func (*MethodMap) isRouteNode() {}

// iterate calls fn for each present endpoint in the fixed method
// enumeration order (GET, POST, PUT, DELETE, PATCH, HEAD, OPTIONS).
func (m *MethodMap) iterate(fn func(method string, ep *Endpoint)) {
	if m.GET != nil {
		fn(http.MethodGet, m.GET)
	}
	if m.POST != nil {
		fn(http.MethodPost, m.POST)
	}
	if m.PUT != nil {
		fn(http.MethodPut, m.PUT)
	}
	if m.DELETE != nil {
		fn(http.MethodDelete, m.DELETE)
	}
	if m.PATCH != nil {
		fn(http.MethodPatch, m.PATCH)
	}
	if m.HEAD != nil {
		fn(http.MethodHead, m.HEAD)
	}
	if m.OPTIONS != nil {
		fn(http.MethodOptions, m.OPTIONS)
	}
}

// empty reports whether the node has neither endpoints nor children.
func (m *MethodMap) empty() bool {
	count := 0
	m.iterate(func(string, *Endpoint) { count++ })
	return count == 0 && len(m.Children) == 0
}

// ParsedRoute is the canonical flattened form of one nested-tree entry:
// a fully-qualified path, a method (or [MethodAll]), a handler, and
// optional metadata. It is what the registration layer hands to the router
// regardless of which input shape produced it.
type ParsedRoute struct {
	Route   string
	Method  string
	Handler router.HandlerFunc
	Options *RouteOptions
}

// ParseRoutes flattens a nested route tree into an ordered list of parsed
// routes.
//
// Segments are visited in lexical order. For a [*MethodMap] node, endpoints
// emit in the fixed method enumeration order (GET, POST, PUT, DELETE, PATCH,
// HEAD, OPTIONS), then the node's Children emit below its path. A bare
// [Handler] node emits exactly one [MethodAll] route. The output order is
// deterministic for a given tree.
//
// Nil nodes and method maps with neither endpoints nor children are
// tolerated as no-ops; ParseRoutes never fails.
func ParseRoutes(tree RouteTree) []ParsedRoute {
	return parseRoutes(tree, "")
}

// parseRoutes is the recursive descent behind [ParseRoutes], carrying the
// joined path of all ancestor segments.
func parseRoutes(tree RouteTree, basePath string) []ParsedRoute {
	var parsed []ParsedRoute

	for _, segment := range sortedSegments(tree) {
		node := tree[segment]
		fullPath := JoinPaths(basePath, segment)

		switch n := node.(type) {
		case *MethodMap:
			if n.empty() {
				continue
			}
			n.iterate(func(method string, ep *Endpoint) {
				parsed = append(parsed, ParsedRoute{
					Route:   fullPath,
					Method:  method,
					Handler: ep.Handler,
					Options: ep.Options,
				})
			})
			if len(n.Children) > 0 {
				parsed = append(parsed, parseRoutes(n.Children, fullPath)...)
			}
		case Handler:
			parsed = append(parsed, ParsedRoute{
				Route:   fullPath,
				Method:  MethodAll,
				Handler: router.HandlerFunc(n),
			})
		}
	}

	return parsed
}

// sortedSegments returns the tree's segment keys in lexical order.
// Go maps are unordered; sorting keeps parse output deterministic.
func sortedSegments(tree RouteTree) []string {
	segments := make([]string, 0, len(tree))
	for segment := range tree {
		segments = append(segments, segment)
	}
	slices.Sort(segments)
	return segments
}

// RegisterRoutes parses a nested route tree and registers every resulting
// route on r. Routes with method [MethodAll] fan out to every supported
// method; all others register on their single method. Route metadata from
// [Endpoint.Options] is applied to each registered route.
//
// Example:
//
//	r := router.MustNew()
//	bootstrap.RegisterRoutes(r, tree)
func RegisterRoutes(r *router.Router, tree RouteTree) {
	for _, pr := range ParseRoutes(tree) {
		if pr.Method == MethodAll {
			for _, method := range supportedMethods {
				registerParsed(r, method, pr)
			}
			continue
		}
		registerParsed(r, pr.Method, pr)
	}
}

// registerParsed registers one parsed route on r under the given method.
func registerParsed(r *router.Router, method string, pr ParsedRoute) {
	registered := r.AddRouteWithConstraints(method, pr.Route, []route.Handler{pr.Handler})
	applyRouteOptions(registered, pr.Options)
}
