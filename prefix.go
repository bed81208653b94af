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

import "strings"

// AddRoutesPrefix returns a copy of routes with prefix prepended to every
// URL. The input slice is never modified.
//
// An empty, whitespace-only, or "/" prefix is a no-op: the input slice is
// returned as-is. Otherwise the prefix is normalized per [NormalizePrefix]
// and applied with these rules:
//
//   - a URL of exactly "/" becomes the normalized prefix itself, so the root
//     route lands on the prefix without a trailing slash
//   - a URL with a leading slash is concatenated directly (the normalized
//     prefix never ends in "/")
//   - any other URL gets a "/" inserted between prefix and URL
//
// Order and all other route fields are preserved. Malformed URLs pass
// through structurally; AddRoutesPrefix has no failure mode.
//
// Example:
//
//	AddRoutesPrefix(routes, "api")    // "/users" -> "/api/users"
//	AddRoutesPrefix(routes, "/api/")  // same result
//	AddRoutesPrefix(routes, "/api")   // "/" -> "/api"
func AddRoutesPrefix(routes []Route, prefix string) []Route {
	normalized := NormalizePrefix(prefix)
	if normalized == "" || normalized == "/" {
		return routes
	}

	prefixed := make([]Route, len(routes))
	for i, rt := range routes {
		switch {
		case rt.URL == "/":
			rt.URL = normalized
		case strings.HasPrefix(rt.URL, "/"):
			rt.URL = normalized + rt.URL
		default:
			rt.URL = normalized + "/" + rt.URL
		}
		prefixed[i] = rt
	}

	return prefixed
}
