// Copyright 2025 The Sidekick Authors
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

package config

import "fmt"

// SessionConfig configures the session manager.
type SessionConfig struct {
	// MaxIterations bounds the tool-calling loop per query.
	MaxIterations int `yaml:"max_iterations,omitempty"`

	// CreateTimeout in seconds for session initialization.
	CreateTimeout int `yaml:"create_timeout,omitempty"`

	// QueryTimeout in seconds for one query round trip.
	QueryTimeout int `yaml:"query_timeout,omitempty"`

	// DestroyTimeout in seconds for session teardown.
	DestroyTimeout int `yaml:"destroy_timeout,omitempty"`
}

// SetDefaults applies default values. The timeouts mirror the web layer's
// expectations: initialization is cheap, queries may chain several tool
// round trips.
func (c *SessionConfig) SetDefaults() {
	if c.MaxIterations == 0 {
		c.MaxIterations = 5
	}
	if c.CreateTimeout == 0 {
		c.CreateTimeout = 30
	}
	if c.QueryTimeout == 0 {
		c.QueryTimeout = 120
	}
	if c.DestroyTimeout == 0 {
		c.DestroyTimeout = 5
	}
}

// Validate checks the configuration.
func (c *SessionConfig) Validate() error {
	if c.MaxIterations < 1 {
		return fmt.Errorf("max_iterations must be at least 1, got %d", c.MaxIterations)
	}
	return nil
}
