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

// JoinPaths joins path segments into a single route path.
// Empty segments are dropped, runs of consecutive slashes collapse to one,
// and a single trailing slash is stripped. Joining nothing (or only empty
// segments) yields "/".
//
// JoinPaths is total: it never fails, regardless of input.
//
// Example:
//
//	JoinPaths("/api/", "/users", "42") // "/api/users/42"
//	JoinPaths("", "/")                 // "/"
func JoinPaths(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s != "" {
			parts = append(parts, s)
		}
	}

	joined := strings.Join(parts, "/")

	// Collapse any run of consecutive slashes to a single one
	for strings.Contains(joined, "//") {
		joined = strings.ReplaceAll(joined, "//", "/")
	}

	// Strip a single trailing slash; "/" itself reduces to "" and is
	// restored by the default below
	joined = strings.TrimSuffix(joined, "/")

	if joined == "" {
		return "/"
	}
	return joined
}

// NormalizePrefix normalizes a route prefix for registration.
// An empty or whitespace-only prefix means "no prefix" and returns "".
// Otherwise the prefix gains a leading slash if missing and loses its
// trailing slashes; a prefix of only slashes stays "/".
//
// Example:
//
//	NormalizePrefix("api/")   // "/api"
//	NormalizePrefix("/api/v1") // "/api/v1"
//	NormalizePrefix("   ")    // ""
//	NormalizePrefix("/")      // "/"
func NormalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return ""
	}

	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	prefix = strings.TrimRight(prefix, "/")
	if prefix == "" {
		return "/"
	}

	return prefix
}
