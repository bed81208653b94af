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

// Package bootstrap turns declarative route and middleware configuration
// into a registered router and, optionally, a running HTTP server.
//
// The package accepts three configuration shapes:
//
//   - flat route lists ([Route]), registered with [BuildRouter]
//   - nested route trees ([RouteTree]), flattened by [ParseRoutes] and
//     registered by [RegisterRoutes]
//   - heterogeneous middleware lists ([MiddlewareEntry]), normalized by
//     [ParseMiddlewares] and registered by [RegisterMiddlewares]
//
// Path helpers ([JoinPaths], [NormalizePrefix], [AddRoutesPrefix]) keep
// prefixes and joined segments canonical: single slashes, no trailing
// slash, root route pinned to the bare prefix.
//
// The [App] type ties the shapes together with a server lifecycle:
//
//	app, err := bootstrap.New(
//	    bootstrap.WithServiceName("users-api"),
//	    bootstrap.WithRoutes(routes),
//	    bootstrap.WithRoutesPrefix("/api/v1"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer cancel()
//	if err := app.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// [App.Start] binds the configured port when free and otherwise walks
// upward to the next free port; [App.URL] reports where the server actually
// listens. Cancel the context for graceful shutdown.
package bootstrap
