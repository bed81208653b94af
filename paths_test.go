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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinPaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		segments []string
		want     string
	}{
		{"no segments", nil, "/"},
		{"all empty segments", []string{"", "", ""}, "/"},
		{"single root", []string{"/"}, "/"},
		{"simple join", []string{"/api", "/users"}, "/api/users"},
		{"collapses doubled slashes", []string{"/api/", "/users"}, "/api/users"},
		{"empty segments dropped", []string{"", "/api", "", "/users"}, "/api/users"},
		{"trailing slash trimmed", []string{"/api", "/users/"}, "/api/users"},
		{"deep nesting", []string{"/a", "/b", "/c", "/d"}, "/a/b/c/d"},
		{"param segments", []string{"/users", "/:id"}, "/users/:id"},
		{"root with child", []string{"/", "/hello"}, "/hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, JoinPaths(tt.segments...))
		})
	}
}

func TestNormalizePrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		want   string
	}{
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"bare slash", "/", "/"},
		{"missing leading slash", "api", "/api"},
		{"already canonical", "/api", "/api"},
		{"trailing slash stripped", "/api/", "/api"},
		{"both fixed", "api/", "/api"},
		{"multi segment", "/api/v1/", "/api/v1"},
		{"surrounding whitespace", "  /api  ", "/api"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizePrefix(tt.prefix))
		})
	}
}
