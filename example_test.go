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

package bootstrap_test

import (
	"fmt"
	"net/http"

	"rivaas.dev/bootstrap"
	"rivaas.dev/router"
)

func ExampleJoinPaths() {
	fmt.Println(bootstrap.JoinPaths("/api/", "/users", "42"))
	fmt.Println(bootstrap.JoinPaths("", "/"))
	// Output:
	// /api/users/42
	// /
}

func ExampleNormalizePrefix() {
	fmt.Println(bootstrap.NormalizePrefix("api/"))
	fmt.Printf("%q\n", bootstrap.NormalizePrefix("   "))
	// Output:
	// /api
	// ""
}

func ExampleAddRoutesPrefix() {
	routes := []bootstrap.Route{
		{URL: "/", Method: http.MethodGet},
		{URL: "/users", Method: http.MethodGet},
	}

	for _, rt := range bootstrap.AddRoutesPrefix(routes, "api") {
		fmt.Println(rt.URL)
	}
	// Output:
	// /api
	// /api/users
}

func ExampleParseRoutes() {
	handler := func(c *router.Context) {}

	tree := bootstrap.RouteTree{
		"/users": &bootstrap.MethodMap{
			GET:  &bootstrap.Endpoint{Handler: handler},
			POST: &bootstrap.Endpoint{Handler: handler},
			Children: bootstrap.RouteTree{
				"/:id": &bootstrap.MethodMap{
					GET: &bootstrap.Endpoint{Handler: handler},
				},
			},
		},
		"/ping": bootstrap.Handler(handler),
	}

	for _, pr := range bootstrap.ParseRoutes(tree) {
		fmt.Println(pr.Method, pr.Route)
	}
	// Output:
	// ALL /ping
	// GET /users
	// POST /users
	// GET /users/:id
}

func ExampleBuildRouter() {
	routes := []bootstrap.Route{
		{URL: "/users", Method: http.MethodGet, Handler: func(c *router.Context) {
			_ = c.String(http.StatusOK, "users")
		}},
	}

	r, err := bootstrap.BuildRouter(routes, bootstrap.RouterOptions{Prefix: "/api/v1"})
	if err != nil {
		panic(err)
	}
	_ = r // hand to http.ListenAndServe or bootstrap.App

	fmt.Println("router ready")
	// Output:
	// router ready
}
