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
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sidekick-dev/sidekick/pkg/rag"
)

// RAGQueryTool searches the retrieval index.
type RAGQueryTool struct {
	store *rag.Store
}

// RAGIndexTool adds documents or directories to the retrieval index.
type RAGIndexTool struct {
	indexer *rag.Indexer
}

// RAGStatsTool reports retrieval index statistics.
type RAGStatsTool struct {
	store *rag.Store
}

func NewRAGQueryTool(store *rag.Store) *RAGQueryTool {
	return &RAGQueryTool{store: store}
}

func NewRAGIndexTool(indexer *rag.Indexer) *RAGIndexTool {
	return &RAGIndexTool{indexer: indexer}
}

func NewRAGStatsTool(store *rag.Store) *RAGStatsTool {
	return &RAGStatsTool{store: store}
}

func (t *RAGQueryTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        "rag_query",
		Description: "Search the document knowledge base for relevant passages",
		Parameters: []ToolParameter{
			{
				Name:        "query",
				Type:        "string",
				Description: "Search query",
				Required:    true,
			},
			{
				Name:        "n_results",
				Type:        "number",
				Description: "Number of passages to return",
				Required:    false,
				Default:     3,
			},
		},
	}
}

func (t *RAGQueryTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	query, err := stringArg(args, "query")
	if err != nil {
		return "", err
	}
	n := optionalIntArg(args, "n_results", 3)

	results, err := t.store.Search(ctx, query, n)
	if err != nil {
		return "", err
	}

	if len(results) == 0 {
		return fmt.Sprintf(`Query: %s
Found: 0 documents

No relevant documents found. Try indexing documents first or using different search terms.`, query), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Query: %s\nFound: %d relevant document(s)\n", query, len(results))
	for _, r := range results {
		fmt.Fprintf(&sb, "\nResult #%d (Relevance: %s)\n", r.Rank, rag.Relevance(r.Score))
		if source, ok := r.Metadata["source"]; ok {
			fmt.Fprintf(&sb, "Source: %s\n", source)
		}
		fmt.Fprintf(&sb, "%s\n", r.Text)
	}
	return sb.String(), nil
}

func (t *RAGIndexTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        "rag_index",
		Description: "Index a file or directory into the document knowledge base",
		Parameters: []ToolParameter{
			{
				Name:        "path",
				Type:        "string",
				Description: "File or directory to index",
				Required:    false,
			},
			{
				Name:        "text",
				Type:        "string",
				Description: "Raw text to index instead of a path",
				Required:    false,
			},
			{
				Name:        "source",
				Type:        "string",
				Description: "Source label for raw text",
				Required:    false,
				Default:     "inline",
			},
		},
	}
}

func (t *RAGIndexTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	path := optionalStringArg(args, "path", "")
	text := optionalStringArg(args, "text", "")

	switch {
	case text != "":
		source := optionalStringArg(args, "source", "inline")
		chunks, err := t.indexer.IndexText(ctx, text, source)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Indexed %d chunk(s) from '%s'", chunks, source), nil

	case path != "":
		if isDirectory(path) {
			files, chunks, err := t.indexer.IndexDirectory(ctx, path)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Indexed %d file(s), %d chunk(s) from %s", files, chunks, path), nil
		}
		chunks, err := t.indexer.IndexFile(ctx, path)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Indexed %d chunk(s) from %s", chunks, path), nil

	default:
		return "", fmt.Errorf("%w: either 'path' or 'text' is required", ErrInvalidArgument)
	}
}

func (t *RAGStatsTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        "rag_stats",
		Description: "Show statistics about the document knowledge base",
	}
}

func (t *RAGStatsTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	stats, err := json.MarshalIndent(t.store.Stats(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode stats: %w", err)
	}
	return string(stats), nil
}

func isDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
