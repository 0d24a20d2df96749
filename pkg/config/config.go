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

// Package config defines the yaml configuration for the sidekick runtime.
//
// Every section implements SetDefaults and Validate. Values support
// ${VAR} and ${VAR:-default} environment expansion, and a local .env
// file is loaded before expansion when present.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sidekick-dev/sidekick/pkg/logger"
)

// Config is the root configuration.
type Config struct {
	LLM      LLMConfig      `yaml:"llm,omitempty"`
	Embedder EmbedderConfig `yaml:"embedder,omitempty"`
	RAG      RAGConfig      `yaml:"rag,omitempty"`
	Session  SessionConfig  `yaml:"session,omitempty"`
	Server   ServerConfig   `yaml:"server,omitempty"`
	Tools    ToolsConfig    `yaml:"tools,omitempty"`
	Logging  logger.Config  `yaml:"logging,omitempty"`
}

// Load reads, expands and validates a configuration file.
// A missing path yields the default configuration.
func Load(path string) (*Config, error) {
	// Best effort: a .env file is optional.
	_ = godotenv.Load()

	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		expanded := expandEnvVars(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetDefaults applies defaults to all sections.
func (c *Config) SetDefaults() {
	c.LLM.SetDefaults()
	c.Embedder.SetDefaults()
	c.RAG.SetDefaults()
	c.Session.SetDefaults()
	c.Server.SetDefaults()
	c.Tools.SetDefaults()
}

// Validate checks all sections.
func (c *Config) Validate() error {
	if err := c.LLM.Validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	if err := c.Embedder.Validate(); err != nil {
		return fmt.Errorf("embedder: %w", err)
	}
	if err := c.RAG.Validate(); err != nil {
		return fmt.Errorf("rag: %w", err)
	}
	if err := c.Session.Validate(); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Tools.Validate(); err != nil {
		return fmt.Errorf("tools: %w", err)
	}
	return nil
}
