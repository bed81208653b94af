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

//go:build !integration

package bootstrap

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/router"
)

// flatten reduces parsed routes to comparable (method, path) pairs.
func flatten(parsed []ParsedRoute) [][2]string {
	out := make([][2]string, len(parsed))
	for i, pr := range parsed {
		out[i] = [2]string{pr.Method, pr.Route}
	}
	return out
}

func TestParseRoutes_MethodMap(t *testing.T) {
	t.Parallel()

	tree := RouteTree{
		"/users": &MethodMap{
			GET:  &Endpoint{Handler: echoHandler("list")},
			POST: &Endpoint{Handler: echoHandler("create")},
		},
	}

	got := ParseRoutes(tree)
	assert.Equal(t, [][2]string{
		{http.MethodGet, "/users"},
		{http.MethodPost, "/users"},
	}, flatten(got))
}

func TestParseRoutes_NestedChildren(t *testing.T) {
	t.Parallel()

	tree := RouteTree{
		"/users": &MethodMap{
			GET: &Endpoint{Handler: echoHandler("list")},
			Children: RouteTree{
				"/:id": &MethodMap{
					GET:    &Endpoint{Handler: echoHandler("get")},
					DELETE: &Endpoint{Handler: echoHandler("delete")},
					Children: RouteTree{
						"/posts": &MethodMap{
							GET: &Endpoint{Handler: echoHandler("posts")},
						},
					},
				},
			},
		},
	}

	got := ParseRoutes(tree)
	assert.Equal(t, [][2]string{
		{http.MethodGet, "/users"},
		{http.MethodGet, "/users/:id"},
		{http.MethodDelete, "/users/:id"},
		{http.MethodGet, "/users/:id/posts"},
	}, flatten(got))
}

func TestParseRoutes_BareHandler(t *testing.T) {
	t.Parallel()

	tree := RouteTree{
		"/ping": Handler(echoHandler("pong")),
	}

	got := ParseRoutes(tree)
	require.Len(t, got, 1)
	assert.Equal(t, MethodAll, got[0].Method)
	assert.Equal(t, "/ping", got[0].Route)
	assert.NotNil(t, got[0].Handler)
}

func TestParseRoutes_RootSegment(t *testing.T) {
	t.Parallel()

	tree := RouteTree{
		"/": &MethodMap{
			GET: &Endpoint{Handler: echoHandler("root")},
		},
		"/hello": &MethodMap{
			GET: &Endpoint{Handler: echoHandler("hello")},
		},
	}

	got := ParseRoutes(tree)
	assert.Equal(t, [][2]string{
		{http.MethodGet, "/"},
		{http.MethodGet, "/hello"},
	}, flatten(got))
}

func TestParseRoutes_EmptyNodes(t *testing.T) {
	t.Parallel()

	tree := RouteTree{
		"/empty": &MethodMap{},
		"/nil":   nil,
		"/real": &MethodMap{
			GET: &Endpoint{Handler: echoHandler("ok")},
		},
	}

	got := ParseRoutes(tree)
	assert.Equal(t, [][2]string{{http.MethodGet, "/real"}}, flatten(got))
}

func TestParseRoutes_ChildrenOnlyNode(t *testing.T) {
	t.Parallel()

	// A node with no endpoints of its own still contributes its subtree
	tree := RouteTree{
		"/api": &MethodMap{
			Children: RouteTree{
				"/health": &MethodMap{
					GET: &Endpoint{Handler: echoHandler("ok")},
				},
			},
		},
	}

	got := ParseRoutes(tree)
	assert.Equal(t, [][2]string{{http.MethodGet, "/api/health"}}, flatten(got))
}

func TestParseRoutes_MethodEnumerationOrder(t *testing.T) {
	t.Parallel()

	tree := RouteTree{
		"/all": &MethodMap{
			OPTIONS: &Endpoint{Handler: echoHandler("options")},
			GET:     &Endpoint{Handler: echoHandler("get")},
			DELETE:  &Endpoint{Handler: echoHandler("delete")},
			POST:    &Endpoint{Handler: echoHandler("post")},
		},
	}

	got := ParseRoutes(tree)
	assert.Equal(t, [][2]string{
		{http.MethodGet, "/all"},
		{http.MethodPost, "/all"},
		{http.MethodDelete, "/all"},
		{http.MethodOptions, "/all"},
	}, flatten(got))
}

func TestParseRoutes_CarriesOptions(t *testing.T) {
	t.Parallel()

	opts := &RouteOptions{Name: "get-user"}
	tree := RouteTree{
		"/users": &MethodMap{
			GET: &Endpoint{Handler: echoHandler("get"), Options: opts},
		},
	}

	got := ParseRoutes(tree)
	require.Len(t, got, 1)
	assert.Same(t, opts, got[0].Options)
}

func TestRegisterRoutes_ServesTree(t *testing.T) {
	t.Parallel()

	tree := RouteTree{
		"/users": &MethodMap{
			GET: &Endpoint{Handler: echoHandler("list")},
			Children: RouteTree{
				"/:id": &MethodMap{
					GET: &Endpoint{Handler: echoHandler("get")},
				},
			},
		},
	}

	r := router.MustNew()
	RegisterRoutes(r, tree)

	rec := serve(r, http.MethodGet, "/users")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "list", rec.Body.String())

	rec = serve(r, http.MethodGet, "/users/7")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "get", rec.Body.String())
}

func TestRegisterRoutes_BareHandlerMatchesAllMethods(t *testing.T) {
	t.Parallel()

	tree := RouteTree{
		"/ping": Handler(echoHandler("pong")),
	}

	r := router.MustNew()
	RegisterRoutes(r, tree)

	for _, method := range []string{
		http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete,
		http.MethodPatch, http.MethodOptions,
	} {
		rec := serve(r, method, "/ping")
		assert.Equal(t, http.StatusOK, rec.Code, method)
		assert.Equal(t, "pong", rec.Body.String(), method)
	}

	rec := serve(r, http.MethodHead, "/ping")
	assert.Equal(t, http.StatusOK, rec.Code)
}
