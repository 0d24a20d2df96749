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

package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidekick-dev/sidekick/pkg/config"
	"github.com/sidekick-dev/sidekick/pkg/rag"
)

type zeroEmbedder struct{}

func (zeroEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0}, nil
}

func (zeroEmbedder) Dimension() int { return 2 }

func newBuiltinRegistry(t *testing.T, cfg *config.ToolsConfig) *Registry {
	t.Helper()

	store, err := rag.NewStore(&config.RAGConfig{}, zeroEmbedder{})
	require.NoError(t, err)
	indexer := rag.NewIndexer(store, &config.RAGConfig{ChunkSize: 100, ChunkOverlap: 10})

	reg := NewRegistry()
	require.NoError(t, RegisterBuiltins(reg, cfg, store, indexer))
	return reg
}

func TestBuiltinCatalogOrder(t *testing.T) {
	cfg := &config.ToolsConfig{}
	cfg.SetDefaults()
	reg := newBuiltinRegistry(t, cfg)

	want := []string{
		"calculator", "weather", "gold_price", "send_email",
		"rag_query", "rag_index", "rag_stats",
		"execute_command", "web_extract_text", "web_get_links",
		"file_read", "file_write", "file_list",
		"git_status", "git_log", "generate_image",
		"data_load_csv", "data_summary",
	}
	assert.Equal(t, want, reg.Names())
}

func TestBuiltinEnabledFilter(t *testing.T) {
	cfg := &config.ToolsConfig{Enabled: []string{"calculator", "weather"}}
	cfg.SetDefaults()
	reg := newBuiltinRegistry(t, cfg)

	assert.Equal(t, []string{"calculator", "weather"}, reg.Names())
}
