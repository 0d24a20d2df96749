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

// ServerConfig configures the HTTP front end.
type ServerConfig struct {
	// Addr to listen on.
	Addr string `yaml:"addr,omitempty"`

	// MaxUploadBytes limits document upload size.
	MaxUploadBytes int64 `yaml:"max_upload_bytes,omitempty"`
}

// SetDefaults applies default values.
func (c *ServerConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.MaxUploadBytes == 0 {
		c.MaxUploadBytes = 32 << 20
	}
}

// Validate checks the configuration.
func (c *ServerConfig) Validate() error {
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("max_upload_bytes cannot be negative")
	}
	return nil
}
