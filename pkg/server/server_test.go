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

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidekick-dev/sidekick/pkg/agent"
	"github.com/sidekick-dev/sidekick/pkg/config"
	"github.com/sidekick-dev/sidekick/pkg/llms"
	"github.com/sidekick-dev/sidekick/pkg/rag"
	"github.com/sidekick-dev/sidekick/pkg/session"
	"github.com/sidekick-dev/sidekick/pkg/tools"
)

type fixedProvider struct{ reply string }

func (p *fixedProvider) Generate(ctx context.Context, messages []llms.Message) (string, error) {
	return p.reply, nil
}

func (p *fixedProvider) Model() string { return "fixed" }

type flatEmbedder struct{}

func (flatEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

func (flatEmbedder) Dimension() int { return 3 }

func newTestServer(t *testing.T) (*Server, *session.Manager) {
	t.Helper()

	reg := tools.NewRegistry()
	a, err := agent.New(&fixedProvider{reply: "final answer"}, reg)
	require.NoError(t, err)

	sessCfg := &config.SessionConfig{}
	sessCfg.SetDefaults()
	manager := session.NewManager(a, sessCfg)
	t.Cleanup(manager.Close)

	store, err := rag.NewStore(&config.RAGConfig{}, flatEmbedder{})
	require.NoError(t, err)
	indexer := rag.NewIndexer(store, &config.RAGConfig{ChunkSize: 100, ChunkOverlap: 10})

	srvCfg := &config.ServerConfig{}
	srvCfg.SetDefaults()
	return New(srvCfg, manager, store, indexer), manager
}

func doRequest(t *testing.T, s *Server, req *http.Request) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	s.http.Handler.ServeHTTP(rec, req)

	var body map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)

	rec, body := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	s, manager := newTestServer(t)

	rec, body := doRequest(t, s, httptest.NewRequest(http.MethodPost, "/api/sessions", nil))
	require.Equal(t, http.StatusCreated, rec.Code)
	id, _ := body["session_id"].(string)
	require.NotEmpty(t, id)
	assert.True(t, manager.Has(id))

	queryBody := strings.NewReader(`{"query": "hello"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/query", queryBody)
	req.Header.Set(sessionHeader, id)
	rec, body = doRequest(t, s, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "final answer", body["answer"])

	rec, _ = doRequest(t, s, httptest.NewRequest(http.MethodDelete, "/api/sessions/"+id, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, manager.Has(id))
}

func TestQueryWithoutSessionHeaderAutoCreates(t *testing.T) {
	s, manager := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(`{"query": "hi"}`))
	rec, body := doRequest(t, s, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "final answer", body["answer"])

	id, _ := body["session_id"].(string)
	require.NotEmpty(t, id)
	assert.True(t, manager.Has(id))
}

func TestQueryUnknownSession(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(`{"query": "hi"}`))
	req.Header.Set(sessionHeader, "ghost")
	rec, body := doRequest(t, s, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
	msg, _ := body["message"].(string)
	assert.Contains(t, msg, "POST /api/sessions")
}

func TestUploadAndSearch(t *testing.T) {
	s, _ := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "notes.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("The capital of France is Paris. It is known for the Eiffel Tower."))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/documents", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec, body := doRequest(t, s, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "notes.txt", body["file"])
	assert.GreaterOrEqual(t, body["chunks_added"].(float64), float64(1))

	searchReq := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"query": "capital of France"}`))
	rec, body = doRequest(t, s, searchReq)
	require.Equal(t, http.StatusOK, rec.Code)
	results, ok := body["results"].([]interface{})
	require.True(t, ok)
	require.NotEmpty(t, results)
	first := results[0].(map[string]interface{})
	assert.Contains(t, first["text"], "Paris")
	assert.Equal(t, "High", first["relevance"])
}

func TestSearchEmptyIndex(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"query": "anything"}`))
	rec, body := doRequest(t, s, req)
	require.Equal(t, http.StatusOK, rec.Code)
	results, ok := body["results"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, results)
}
