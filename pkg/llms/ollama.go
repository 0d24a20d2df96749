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

package llms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sidekick-dev/sidekick/pkg/config"
	"github.com/sidekick-dev/sidekick/pkg/ollama"
)

// OllamaProvider implements Provider against the Ollama /api/chat endpoint.
type OllamaProvider struct {
	cfg    *config.LLMConfig
	client *ollama.Client
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  *ollamaOptions  `json:"options,omitempty"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaChatResponse struct {
	Model           string        `json:"model"`
	Message         ollamaMessage `json:"message"`
	Done            bool          `json:"done"`
	PromptEvalCount int           `json:"prompt_eval_count"`
	EvalCount       int           `json:"eval_count"`
	Error           string        `json:"error,omitempty"`
}

// NewOllamaProvider creates a chat provider from configuration.
func NewOllamaProvider(cfg *config.LLMConfig) (*OllamaProvider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	return &OllamaProvider{
		cfg:    cfg,
		client: ollama.NewClient(cfg.Host, time.Duration(cfg.Timeout)*time.Second),
	}, nil
}

// Generate sends the transcript to Ollama and returns the reply text.
func (p *OllamaProvider) Generate(ctx context.Context, messages []Message) (string, error) {
	request := ollamaChatRequest{
		Model:    p.cfg.Model,
		Messages: toOllamaMessages(messages),
		Stream:   false,
	}
	if p.cfg.Temperature > 0 || p.cfg.MaxTokens > 0 {
		request.Options = &ollamaOptions{
			Temperature: p.cfg.Temperature,
			NumPredict:  p.cfg.MaxTokens,
		}
	}

	start := time.Now()
	resp, err := p.client.Post(ctx, "/api/chat", request)
	if err != nil {
		return "", &BackendUnavailableError{Host: p.client.BaseURL(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama API returned status %d: %s", resp.StatusCode, string(body))
	}

	var response ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode ollama response: %w", err)
	}

	if response.Error != "" {
		return "", fmt.Errorf("ollama API error: %s", response.Error)
	}

	slog.Debug("Ollama chat completion",
		"model", p.cfg.Model,
		"prompt_tokens", response.PromptEvalCount,
		"completion_tokens", response.EvalCount,
		"duration", time.Since(start))

	return response.Message.Content, nil
}

// Model returns the configured model name.
func (p *OllamaProvider) Model() string {
	return p.cfg.Model
}

func toOllamaMessages(messages []Message) []ollamaMessage {
	out := make([]ollamaMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, ollamaMessage{Role: string(m.Role), Content: m.Content})
	}
	return out
}
