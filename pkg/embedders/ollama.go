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

package embedders

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/sidekick-dev/sidekick/pkg/config"
	"github.com/sidekick-dev/sidekick/pkg/ollama"
)

// Serializes Ollama embedding requests. The llama runner crashes when it
// receives concurrent embedding requests.
var ollamaEmbedMu sync.Mutex

// OllamaEmbedder computes embeddings via the Ollama /api/embeddings endpoint.
type OllamaEmbedder struct {
	cfg    *config.EmbedderConfig
	client *ollama.Client
}

type ollamaEmbedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaEmbedResponse struct {
	Embedding []float32 `json:"embedding"`
}

// NewOllamaEmbedder creates an embedder from configuration.
func NewOllamaEmbedder(cfg *config.EmbedderConfig) (*OllamaEmbedder, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	return &OllamaEmbedder{
		cfg:    cfg,
		client: ollama.NewClient(cfg.Host, time.Duration(cfg.Timeout)*time.Second),
	}, nil
}

// Embed computes one embedding vector for text.
func (e *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	ollamaEmbedMu.Lock()
	defer ollamaEmbedMu.Unlock()

	request := ollamaEmbedRequest{
		Model:  e.cfg.Model,
		Prompt: text,
	}

	var resp *http.Response
	var err error
	for attempt := 0; attempt < e.cfg.MaxRetries; attempt++ {
		resp, err = e.client.Post(ctx, "/api/embeddings", request)
		if err == nil {
			break
		}

		slog.Debug("Ollama embedding retry", "attempt", attempt+1, "error", err)
		if attempt < e.cfg.MaxRetries-1 {
			time.Sleep(time.Duration(attempt+1) * time.Second)
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to send embedding request to Ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ollama API returned status %d: %s", resp.StatusCode, string(body))
	}

	var response ollamaEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode embedding response: %w", err)
	}

	if len(response.Embedding) == 0 {
		return nil, fmt.Errorf("ollama returned an empty embedding for model %s", e.cfg.Model)
	}

	return response.Embedding, nil
}

// Dimension returns the configured embedding dimensionality.
func (e *OllamaEmbedder) Dimension() int {
	return e.cfg.Dimension
}
