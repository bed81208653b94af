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
	"os"
	"strconv"
)

// Environment variables consulted for server defaults. Options always win
// over the environment.
const (
	EnvHost = "BOOTSTRAP_HOST"
	EnvPort = "BOOTSTRAP_PORT"
)

// envHost returns the default bind host, honoring EnvHost when set.
// Empty means all interfaces.
func envHost() string {
	return os.Getenv(EnvHost)
}

// envPort returns the default port, honoring EnvPort when it holds a valid
// port number. Malformed or out-of-range values fall back to [DefaultPort].
func envPort() int {
	v := os.Getenv(EnvPort)
	if v == "" {
		return DefaultPort
	}
	port, err := strconv.Atoi(v)
	if err != nil || port < 0 || port > 65535 {
		return DefaultPort
	}
	return port
}
