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

// Package server exposes the assistant over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sidekick-dev/sidekick/pkg/config"
	"github.com/sidekick-dev/sidekick/pkg/llms"
	"github.com/sidekick-dev/sidekick/pkg/rag"
	"github.com/sidekick-dev/sidekick/pkg/session"
)

const sessionHeader = "X-Session-ID"

// Server routes HTTP requests to the session manager and retrieval index.
type Server struct {
	cfg      *config.ServerConfig
	sessions *session.Manager
	store    *rag.Store
	indexer  *rag.Indexer
	http     *http.Server
}

// New builds the server and its routes.
func New(cfg *config.ServerConfig, sessions *session.Manager, store *rag.Store, indexer *rag.Indexer) *Server {
	s := &Server{
		cfg:      cfg,
		sessions: sessions,
		store:    store,
		indexer:  indexer,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(corsMiddleware)
	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/sessions", s.handleCreateSession)
		r.Delete("/sessions/{id}", s.handleDestroySession)
		r.Post("/query", s.handleQuery)
		r.Post("/documents", s.handleUploadDocument)
		r.Post("/search", s.handleSearch)
	})

	s.http = &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}
	return s
}

// ListenAndServe blocks until the listener fails or Shutdown is called.
func (s *Server) ListenAndServe() error {
	slog.Info("HTTP server listening", "addr", s.cfg.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"session_id"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
			return
		}
	}

	id, err := s.sessions.Create(req.SessionID)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"session_id": id})
}

func (s *Server) handleDestroySession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.sessions.Destroy(id)
	writeJSON(w, http.StatusOK, map[string]string{"session_id": id, "status": "destroyed"})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, errors.New("query is required"))
		return
	}

	// Requests without a session header get a fresh session. The id is
	// echoed back so clients can keep the conversation going.
	id := r.Header.Get(sessionHeader)
	if id == "" {
		created, err := s.sessions.Create("")
		if err != nil {
			writeSessionError(w, err)
			return
		}
		id = created
	}

	answer, err := s.sessions.Query(id, req.Query)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"session_id": id,
		"answer":     answer,
	})
}

func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid multipart form: %w", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("a 'file' form field is required"))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("failed to read upload: %w", err))
		return
	}

	chunks, err := s.indexer.IndexText(r.Context(), string(content), header.Filename)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"file":         header.Filename,
		"chunks_added": chunks,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query    string `json:"query"`
		NResults int    `json:"n_results"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, errors.New("query is required"))
		return
	}
	if req.NResults <= 0 {
		req.NResults = 3
	}

	results, err := s.store.Search(r.Context(), req.Query, req.NResults)
	if err != nil {
		if llms.IsBackendUnavailable(err) {
			writeError(w, http.StatusBadGateway, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	type hit struct {
		Rank      int               `json:"rank"`
		Text      string            `json:"text"`
		Score     float64           `json:"score"`
		Relevance string            `json:"relevance"`
		Metadata  map[string]string `json:"metadata,omitempty"`
	}
	hits := make([]hit, 0, len(results))
	for _, res := range results {
		hits = append(hits, hit{
			Rank:      res.Rank,
			Text:      res.Text,
			Score:     res.Score,
			Relevance: rag.Relevance(res.Score),
			Metadata:  res.Metadata,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"query":   req.Query,
		"results": hits,
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("HTTP request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+sessionHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeSessionError maps session-layer errors onto HTTP statuses.
func writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case session.IsNotInitialized(err):
		writeError(w, http.StatusConflict, fmt.Errorf("%w; POST /api/sessions to create one", err))
	case session.IsTimeout(err):
		writeError(w, http.StatusGatewayTimeout, err)
	case llms.IsBackendUnavailable(err):
		writeError(w, http.StatusBadGateway, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{
		"status":  "error",
		"message": err.Error(),
	})
}
