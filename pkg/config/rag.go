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

// RAGConfig configures the retrieval index.
type RAGConfig struct {
	// StorePath for file persistence. Empty means in-memory only.
	StorePath string `yaml:"store_path,omitempty"`

	// Compress enables gzip compression for persistence.
	Compress bool `yaml:"compress,omitempty"`

	// ChunkSize is the target chunk size in characters.
	ChunkSize int `yaml:"chunk_size,omitempty"`

	// ChunkOverlap is the number of characters shared by consecutive chunks.
	ChunkOverlap int `yaml:"chunk_overlap,omitempty"`

	// WatchPath is an optional docs folder to watch and auto-reindex.
	WatchPath string `yaml:"watch_path,omitempty"`
}

// SetDefaults applies default values.
func (c *RAGConfig) SetDefaults() {
	if c.StorePath == "" {
		c.StorePath = ".sidekick/vectors"
	}
	if c.ChunkSize == 0 {
		c.ChunkSize = 500
	}
	if c.ChunkOverlap == 0 {
		c.ChunkOverlap = 50
	}
}

// Validate checks the configuration.
func (c *RAGConfig) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("chunk_overlap cannot be negative, got %d", c.ChunkOverlap)
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("chunk_overlap (%d) must be less than chunk_size (%d)", c.ChunkOverlap, c.ChunkSize)
	}
	return nil
}
