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

package rag

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidekick-dev/sidekick/pkg/config"
)

// keywordEmbedder maps texts onto axis-aligned unit vectors by keyword,
// so similarity rankings in tests are fully deterministic.
type keywordEmbedder struct{}

func (keywordEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	switch {
	case strings.Contains(text, "cat"):
		return []float32{1, 0, 0}, nil
	case strings.Contains(text, "dog"):
		return []float32{0, 1, 0}, nil
	default:
		return []float32{0, 0, 1}, nil
	}
}

func (keywordEmbedder) Dimension() int { return 3 }

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(&config.RAGConfig{}, keywordEmbedder{})
	require.NoError(t, err)
	return store
}

func TestStoreSearchRanksBySimilarity(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Add(ctx, "cats purr when content", map[string]string{"source": "a"})
	require.NoError(t, err)
	_, err = store.Add(ctx, "dogs bark at strangers", map[string]string{"source": "b"})
	require.NoError(t, err)
	_, err = store.Add(ctx, "fish swim in circles", map[string]string{"source": "c"})
	require.NoError(t, err)

	results, err := store.Search(ctx, "tell me about cats", 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "cats purr when content", results[0].Text)
	assert.Equal(t, "a", results[0].Metadata["source"])
	assert.Equal(t, 1, results[0].Rank)
	assert.InDelta(t, 0, results[0].Score, 1e-6)

	// Distances ascend with rank.
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i].Score, results[i-1].Score)
		assert.Equal(t, i+1, results[i].Rank)
	}
}

func TestStoreSearchClampsK(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Add(ctx, "cats", nil)
	require.NoError(t, err)
	_, err = store.Add(ctx, "dogs", nil)
	require.NoError(t, err)

	results, err := store.Search(ctx, "cats", 10)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestStoreSearchEmptyIndex(t *testing.T) {
	store := newTestStore(t)

	results, err := store.Search(context.Background(), "anything", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestStoreClear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Add(ctx, "cats", nil)
	require.NoError(t, err)
	require.Equal(t, 1, store.Count())

	require.NoError(t, store.Clear(ctx))
	assert.Equal(t, 0, store.Count())

	results, err := store.Search(ctx, "cats", 1)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestStoreConcurrentClearAndRead(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Add(ctx, "cats and more cats", nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				if _, err := store.Search(ctx, "cat", 1); err != nil {
					t.Error(err)
					return
				}
				store.Count()
				store.Stats()
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 10; j++ {
			if err := store.Clear(ctx); err != nil {
				t.Error(err)
				return
			}
			if _, err := store.Add(ctx, "cats again", nil); err != nil {
				t.Error(err)
				return
			}
		}
	}()
	wg.Wait()
}

func TestStoreStats(t *testing.T) {
	store := newTestStore(t)

	stats := store.Stats()
	assert.Equal(t, 0, stats["documents"])
	assert.Equal(t, 3, stats["dimension"])
	assert.Equal(t, false, stats["persisted"])
}

func TestRelevanceBands(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.0, "High"},
		{0.29, "High"},
		{0.3, "Medium"},
		{0.59, "Medium"},
		{0.6, "Low"},
		{1.0, "Low"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Relevance(tt.score), "score %v", tt.score)
	}
}

func TestIndexerIndexText(t *testing.T) {
	store := newTestStore(t)
	indexer := NewIndexer(store, &config.RAGConfig{ChunkSize: 50, ChunkOverlap: 10})

	n, err := indexer.IndexText(context.Background(), strings.Repeat("cats and more cats. ", 10), "notes.txt")
	require.NoError(t, err)
	assert.Greater(t, n, 1)
	assert.Equal(t, n, store.Count())

	results, err := store.Search(context.Background(), "cats", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "notes.txt", results[0].Metadata["source"])
	assert.Equal(t, "0", results[0].Metadata["chunk_index"])
}
