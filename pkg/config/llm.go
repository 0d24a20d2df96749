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

// LLMConfig configures the chat model backend.
type LLMConfig struct {
	// Host of the Ollama server.
	Host string `yaml:"host,omitempty"`

	// Model name (e.g. "llama3.2").
	Model string `yaml:"model,omitempty"`

	// Temperature for generation.
	Temperature float64 `yaml:"temperature,omitempty"`

	// MaxTokens limits response length. Zero means backend default.
	MaxTokens int `yaml:"max_tokens,omitempty"`

	// Timeout in seconds for a single model invocation.
	Timeout int `yaml:"timeout,omitempty"`

	// MaxRetries for transient backend failures.
	MaxRetries int `yaml:"max_retries,omitempty"`
}

// SetDefaults applies default values.
func (c *LLMConfig) SetDefaults() {
	if c.Host == "" {
		c.Host = "http://localhost:11434"
	}
	if c.Model == "" {
		c.Model = "llama3.2"
	}
	if c.Timeout == 0 {
		c.Timeout = 120
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
}

// Validate checks the configuration.
func (c *LLMConfig) Validate() error {
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got %v", c.Temperature)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}
	return nil
}

// EmbedderConfig configures the embedding backend.
type EmbedderConfig struct {
	// Host of the Ollama server. Defaults to the LLM host.
	Host string `yaml:"host,omitempty"`

	// Model name (e.g. "nomic-embed-text").
	Model string `yaml:"model,omitempty"`

	// Dimension of the embedding vectors.
	Dimension int `yaml:"dimension,omitempty"`

	// Timeout in seconds per embedding request.
	Timeout int `yaml:"timeout,omitempty"`

	// MaxRetries for transient backend failures.
	MaxRetries int `yaml:"max_retries,omitempty"`
}

// SetDefaults applies default values.
func (c *EmbedderConfig) SetDefaults() {
	if c.Host == "" {
		c.Host = "http://localhost:11434"
	}
	if c.Model == "" {
		c.Model = "nomic-embed-text"
	}
	if c.Dimension == 0 {
		c.Dimension = 768
	}
	if c.Timeout == 0 {
		c.Timeout = 30
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
}

// Validate checks the configuration.
func (c *EmbedderConfig) Validate() error {
	if c.Dimension <= 0 {
		return fmt.Errorf("dimension must be positive, got %d", c.Dimension)
	}
	return nil
}
