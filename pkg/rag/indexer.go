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
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/sidekick-dev/sidekick/pkg/config"
)

var indexableExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".pdf":  true,
	".docx": true,
	".go":   true,
	".py":   true,
	".json": true,
	".yaml": true,
	".yml":  true,
	".csv":  true,
}

// Indexer chunks documents and feeds them into a Store.
type Indexer struct {
	store        *Store
	chunkSize    int
	chunkOverlap int
}

func NewIndexer(store *Store, cfg *config.RAGConfig) *Indexer {
	return &Indexer{
		store:        store,
		chunkSize:    cfg.ChunkSize,
		chunkOverlap: cfg.ChunkOverlap,
	}
}

// IndexText chunks raw text and adds each chunk under the given source
// label. It returns the number of chunks added.
func (ix *Indexer) IndexText(ctx context.Context, text, source string) (int, error) {
	chunks := ChunkText(text, ix.chunkSize, ix.chunkOverlap)
	if len(chunks) == 0 {
		return 0, nil
	}

	for i, chunk := range chunks {
		metadata := map[string]string{
			"source":       source,
			"chunk_index":  fmt.Sprintf("%d", i),
			"total_chunks": fmt.Sprintf("%d", len(chunks)),
		}
		if _, err := ix.store.Add(ctx, chunk, metadata); err != nil {
			return i, fmt.Errorf("failed to index chunk %d of %s: %w", i, source, err)
		}
	}

	slog.Info("Indexed document", "source", source, "chunks", len(chunks))
	return len(chunks), nil
}

// IndexFile extracts a file's text and indexes it.
func (ix *Indexer) IndexFile(ctx context.Context, path string) (int, error) {
	text, err := ExtractText(path)
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(text) == "" {
		slog.Debug("Skipping empty document", "path", path)
		return 0, nil
	}

	chunks := ChunkText(text, ix.chunkSize, ix.chunkOverlap)
	for i, chunk := range chunks {
		metadata := map[string]string{
			"source":       path,
			"file_name":    filepath.Base(path),
			"chunk_index":  fmt.Sprintf("%d", i),
			"total_chunks": fmt.Sprintf("%d", len(chunks)),
		}
		if _, err := ix.store.Add(ctx, chunk, metadata); err != nil {
			return i, fmt.Errorf("failed to index chunk %d of %s: %w", i, path, err)
		}
	}

	slog.Info("Indexed file", "path", path, "chunks", len(chunks))
	return len(chunks), nil
}

// IndexDirectory walks a directory tree and indexes every supported file.
// It returns total files and chunks indexed. Unsupported files are
// skipped; extraction failures are logged and skipped so one bad file
// does not abort the walk.
func (ix *Indexer) IndexDirectory(ctx context.Context, dir string) (files, chunks int, err error) {
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsIndexable(path) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := ix.IndexFile(ctx, path)
		if err != nil {
			slog.Warn("Failed to index file, skipping", "path", path, "error", err)
			return nil
		}
		if n > 0 {
			files++
			chunks += n
		}
		return nil
	})
	if err != nil {
		return files, chunks, fmt.Errorf("failed to walk %s: %w", dir, err)
	}
	return files, chunks, nil
}

// IsIndexable reports whether a file extension is supported by the indexer.
func IsIndexable(path string) bool {
	return indexableExtensions[strings.ToLower(filepath.Ext(path))]
}
