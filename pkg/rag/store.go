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
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/philippgille/chromem-go"

	"github.com/sidekick-dev/sidekick/pkg/config"
	"github.com/sidekick-dev/sidekick/pkg/embedders"
)

const collectionName = "documents"

// SearchResult is one ranked hit from the index. Score is a distance:
// lower means more similar.
type SearchResult struct {
	ID       string            `json:"id"`
	Text     string            `json:"text"`
	Score    float64           `json:"score"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Rank     int               `json:"rank"`
}

// Relevance maps a distance score to a coarse band for model feedback.
func Relevance(score float64) string {
	switch {
	case score < 0.3:
		return "High"
	case score < 0.6:
		return "Medium"
	default:
		return "Low"
	}
}

// Store is an embedded vector index backed by chromem-go. Documents and
// their embeddings live in memory, with optional gob persistence on disk.
// All mutation goes through a single writer lock.
type Store struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedder   embedders.Embedder

	persistPath string
	compress    bool

	mu     sync.RWMutex
	nextID int
}

// current returns the live collection; Clear swaps the pointer under
// the write lock.
func (s *Store) current() *chromem.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collection
}

// identity function: embeddings are computed externally before insert.
func noEmbed(ctx context.Context, text string) ([]float32, error) {
	return nil, fmt.Errorf("embedding function called but vectors are pre-computed")
}

// NewStore opens or creates the index at cfg.StorePath. An empty path
// keeps everything in memory.
func NewStore(cfg *config.RAGConfig, embedder embedders.Embedder) (*Store, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}

	var db *chromem.DB
	var persistPath string

	if cfg.StorePath != "" {
		if err := os.MkdirAll(cfg.StorePath, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
		persistPath = cfg.StorePath + "/vectors.gob"
		if cfg.Compress {
			persistPath += ".gz"
		}

		if _, statErr := os.Stat(persistPath); statErr == nil {
			loaded, err := chromem.NewPersistentDB(persistPath, cfg.Compress)
			if err != nil {
				slog.Warn("Failed to load existing vector database, creating new",
					"path", persistPath, "error", err)
				db = chromem.NewDB()
			} else {
				slog.Info("Loaded vector database", "path", persistPath)
				db = loaded
			}
		} else {
			db = chromem.NewDB()
			slog.Info("Created new vector database", "path", persistPath)
		}
	} else {
		db = chromem.NewDB()
		slog.Info("Created in-memory vector database (no persistence)")
	}

	collection, err := db.GetOrCreateCollection(collectionName, nil, noEmbed)
	if err != nil {
		return nil, fmt.Errorf("failed to open collection: %w", err)
	}

	return &Store{
		db:          db,
		collection:  collection,
		embedder:    embedder,
		persistPath: persistPath,
		compress:    cfg.Compress,
		nextID:      collection.Count(),
	}, nil
}

// Add embeds text and inserts it with its metadata. It returns the
// assigned document ID.
func (s *Store) Add(ctx context.Context, text string, metadata map[string]string) (string, error) {
	if text == "" {
		return "", fmt.Errorf("text must not be empty")
	}

	embedding, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return "", fmt.Errorf("failed to embed document: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := fmt.Sprintf("doc-%06d", s.nextID)
	s.nextID++

	doc := chromem.Document{
		ID:        id,
		Content:   text,
		Metadata:  metadata,
		Embedding: embedding,
	}
	if err := s.collection.AddDocuments(ctx, []chromem.Document{doc}, runtime.NumCPU()); err != nil {
		return "", fmt.Errorf("failed to insert document: %w", err)
	}

	if err := s.persist(); err != nil {
		slog.Warn("Failed to persist vector database", "error", err)
	}

	return id, nil
}

// Search embeds the query and returns up to k hits ordered by ascending
// distance. k larger than the index is clamped; an empty index yields an
// empty slice, never an error.
func (s *Store) Search(ctx context.Context, query string, k int) ([]SearchResult, error) {
	if query == "" {
		return nil, fmt.Errorf("query must not be empty")
	}
	if k < 1 {
		k = 1
	}

	collection := s.current()
	count := collection.Count()
	if count == 0 {
		return []SearchResult{}, nil
	}
	if k > count {
		k = count
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	hits, err := collection.QueryEmbedding(ctx, embedding, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := make([]SearchResult, 0, len(hits))
	for _, hit := range hits {
		results = append(results, SearchResult{
			ID:       hit.ID,
			Text:     hit.Content,
			Score:    1 - float64(hit.Similarity),
			Metadata: hit.Metadata,
		})
	}

	// Ascending distance; ties broken by document ID so rankings are
	// stable across runs.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score < results[j].Score
		}
		return results[i].ID < results[j].ID
	})
	for i := range results {
		results[i].Rank = i + 1
	}

	return results, nil
}

// Count returns the number of indexed documents.
func (s *Store) Count() int {
	return s.current().Count()
}

// Stats reports index size and embedding dimensionality.
func (s *Store) Stats() map[string]interface{} {
	return map[string]interface{}{
		"documents": s.current().Count(),
		"dimension": s.embedder.Dimension(),
		"persisted": s.persistPath != "",
	}
}

// Clear removes every document from the index.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.DeleteCollection(collectionName); err != nil {
		return fmt.Errorf("failed to clear index: %w", err)
	}
	collection, err := s.db.GetOrCreateCollection(collectionName, nil, noEmbed)
	if err != nil {
		return fmt.Errorf("failed to recreate collection: %w", err)
	}
	s.collection = collection
	s.nextID = 0

	if err := s.persist(); err != nil {
		slog.Warn("Failed to persist vector database", "error", err)
	}
	return nil
}

// Close flushes the index to disk.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist()
}

func (s *Store) persist() error {
	if s.persistPath == "" {
		return nil
	}
	if err := s.db.Export(s.persistPath, s.compress, ""); err != nil {
		return fmt.Errorf("failed to persist database: %w", err)
	}
	return nil
}
