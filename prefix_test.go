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
)

func TestAddRoutesPrefix_NoOpPrefixes(t *testing.T) {
	t.Parallel()

	routes := []Route{
		{URL: "/users", Method: http.MethodGet},
		{URL: "/orders", Method: http.MethodPost},
	}

	for _, prefix := range []string{"", "   ", "/"} {
		got := AddRoutesPrefix(routes, prefix)
		// The exact input slice comes back, not a copy
		assert.Same(t, &routes[0], &got[0], "prefix %q must return the input slice", prefix)
	}
}

func TestAddRoutesPrefix_Normalization(t *testing.T) {
	t.Parallel()

	routes := []Route{{URL: "/users", Method: http.MethodGet}}

	// All spellings of the prefix produce the same result
	for _, prefix := range []string{"api", "/api", "api/", "/api/"} {
		got := AddRoutesPrefix(routes, prefix)
		require.Len(t, got, 1)
		assert.Equal(t, "/api/users", got[0].URL, "prefix %q", prefix)
	}
}

func TestAddRoutesPrefix_RootRoute(t *testing.T) {
	t.Parallel()

	routes := []Route{{URL: "/", Method: http.MethodGet}}

	got := AddRoutesPrefix(routes, "/api")
	require.Len(t, got, 1)
	assert.Equal(t, "/api", got[0].URL, "root route lands on the bare prefix, no trailing slash")
}

func TestAddRoutesPrefix_MissingLeadingSlash(t *testing.T) {
	t.Parallel()

	routes := []Route{{URL: "users", Method: http.MethodGet}}

	got := AddRoutesPrefix(routes, "/api")
	require.Len(t, got, 1)
	assert.Equal(t, "/api/users", got[0].URL)
}

func TestAddRoutesPrefix_PreservesOrderAndFields(t *testing.T) {
	t.Parallel()

	opts := &RouteOptions{Name: "list-users", Tags: []string{"users"}}
	routes := []Route{
		{URL: "/users", Method: http.MethodGet, Options: opts},
		{URL: "/users", Method: http.MethodPost},
		{URL: "/orders/:id", Method: http.MethodDelete},
	}

	got := AddRoutesPrefix(routes, "/api")
	require.Len(t, got, 3)

	assert.Equal(t, "/api/users", got[0].URL)
	assert.Equal(t, http.MethodGet, got[0].Method)
	assert.Same(t, opts, got[0].Options)
	assert.Equal(t, "/api/users", got[1].URL)
	assert.Equal(t, http.MethodPost, got[1].Method)
	assert.Equal(t, "/api/orders/:id", got[2].URL)

	// Input slice is untouched
	assert.Equal(t, "/users", routes[0].URL)
}
