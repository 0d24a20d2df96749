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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidekick-dev/sidekick/pkg/config"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) (*OllamaProvider, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.LLMConfig{Host: srv.URL, Model: "llama3.2"}
	cfg.SetDefaults()
	cfg.Host = srv.URL

	p, err := NewOllamaProvider(cfg)
	require.NoError(t, err)
	return p, srv
}

func TestOllamaProvider_Generate(t *testing.T) {
	var gotReq ollamaChatRequest
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		resp := ollamaChatResponse{
			Model:   "llama3.2",
			Message: ollamaMessage{Role: "assistant", Content: "hello there"},
			Done:    true,
		}
		json.NewEncoder(w).Encode(resp)
	})

	messages := []Message{
		NewMessage(RoleSystem, "You are a helpful assistant."),
		NewMessage(RoleUser, "hi"),
	}

	text, err := p.Generate(context.Background(), messages)
	require.NoError(t, err)
	assert.Equal(t, "hello there", text)

	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
	assert.False(t, gotReq.Stream)
}

func TestOllamaProvider_APIError(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaChatResponse{Error: "model not found"})
	})

	_, err := p.Generate(context.Background(), []Message{NewMessage(RoleUser, "hi")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not found")
	assert.False(t, IsBackendUnavailable(err))
}

func TestOllamaProvider_BackendUnavailable(t *testing.T) {
	cfg := &config.LLMConfig{}
	cfg.SetDefaults()
	// Nothing listens here.
	cfg.Host = "http://127.0.0.1:1"
	cfg.Timeout = 1

	p, err := NewOllamaProvider(cfg)
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), []Message{NewMessage(RoleUser, "hi")})
	require.Error(t, err)
	assert.True(t, IsBackendUnavailable(err), "expected BackendUnavailableError, got %v", err)
}
