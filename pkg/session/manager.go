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

// Package session owns conversation lifecycles. Operations on one
// session are serialized through that session's lock, so a transcript
// only ever sees whole query passes. Different sessions run
// concurrently; a slow query never holds up another session's work.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sidekick-dev/sidekick/pkg/agent"
	"github.com/sidekick-dev/sidekick/pkg/config"
)

type state struct {
	// mu serializes queries against this session's transcript.
	mu         sync.Mutex
	transcript *agent.Transcript
	createdAt  time.Time
}

type jobResult struct {
	value string
	err   error
}

// Manager creates, queries and destroys sessions. Each operation runs
// in the background with its own timeout; a timed-out caller is
// released while the operation's context is cancelled and its eventual
// result discarded.
type Manager struct {
	agent *agent.Agent
	cfg   *config.SessionConfig

	mu       sync.RWMutex
	sessions map[string]*state

	closeMu sync.RWMutex
	closed  bool
	done    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

// NewManager creates a manager.
func NewManager(a *agent.Agent, cfg *config.SessionConfig) *Manager {
	return &Manager{
		agent:    a,
		cfg:      cfg,
		sessions: make(map[string]*state),
		done:     make(chan struct{}),
	}
}

// submit runs fn in the background and waits for its result or the
// timeout. The context handed to fn carries the same deadline, so a
// timed-out operation is cancelled rather than left running blind.
func (m *Manager) submit(op string, timeout time.Duration, fn func(ctx context.Context) (string, error)) (string, error) {
	// The job is registered under the close lock so Close never starts
	// waiting between the closed check and the Add.
	m.closeMu.RLock()
	if m.closed {
		m.closeMu.RUnlock()
		return "", ErrManagerClosed
	}
	m.wg.Add(1)
	m.closeMu.RUnlock()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Buffered channel: a departed caller does not block the job, the
	// result is simply dropped.
	result := make(chan jobResult, 1)
	go func() {
		defer m.wg.Done()
		value, err := fn(ctx)
		result <- jobResult{value: value, err: err}
	}()

	select {
	case res := <-result:
		return res.value, res.err
	case <-ctx.Done():
		return "", &TimeoutError{Op: op, Timeout: timeout}
	case <-m.done:
		return "", ErrManagerClosed
	}
}

// Create registers a session and returns its ID. An empty id gets a
// generated UUID. Creating an existing session is a no-op returning the
// same ID.
func (m *Manager) Create(id string) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}

	return m.submit("create", time.Duration(m.cfg.CreateTimeout)*time.Second, func(ctx context.Context) (string, error) {
		m.mu.Lock()
		defer m.mu.Unlock()

		if _, exists := m.sessions[id]; exists {
			slog.Debug("Session already exists", "session", id)
			return id, nil
		}

		m.sessions[id] = &state{
			transcript: m.agent.NewTranscript(),
			createdAt:  time.Now(),
		}
		slog.Info("Session created", "session", id)
		return id, nil
	})
}

// Query runs one orchestration-loop pass for the session. Queries for
// the same session run one at a time; queries for different sessions
// run concurrently.
func (m *Manager) Query(id, query string) (string, error) {
	if query == "" {
		return "", fmt.Errorf("query must not be empty")
	}

	return m.submit("query", time.Duration(m.cfg.QueryTimeout)*time.Second, func(ctx context.Context) (string, error) {
		m.mu.RLock()
		st, exists := m.sessions[id]
		m.mu.RUnlock()
		if !exists {
			return "", &NotInitializedError{ID: id}
		}

		st.mu.Lock()
		defer st.mu.Unlock()
		return m.agent.ProcessQuery(ctx, st.transcript, query)
	})
}

// Destroy removes a session. Teardown failures are logged, never
// propagated; destroying an unknown session is a no-op.
func (m *Manager) Destroy(id string) {
	_, err := m.submit("destroy", time.Duration(m.cfg.DestroyTimeout)*time.Second, func(ctx context.Context) (string, error) {
		m.mu.Lock()
		defer m.mu.Unlock()

		if _, exists := m.sessions[id]; !exists {
			return "", nil
		}
		delete(m.sessions, id)
		slog.Info("Session destroyed", "session", id)
		return "", nil
	})
	if err != nil {
		slog.Warn("Session teardown failed", "session", id, "error", err)
	}
}

// Has reports whether a session exists.
func (m *Manager) Has(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.sessions[id]
	return exists
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Transcript returns a session's transcript, or nil if absent.
func (m *Manager) Transcript(id string) *agent.Transcript {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if st, exists := m.sessions[id]; exists {
		return st.transcript
	}
	return nil
}

// Close rejects new operations, waits for in-flight ones and drops all
// sessions.
func (m *Manager) Close() {
	m.once.Do(func() {
		m.closeMu.Lock()
		m.closed = true
		m.closeMu.Unlock()
		close(m.done)
		m.wg.Wait()

		m.mu.Lock()
		n := len(m.sessions)
		m.sessions = make(map[string]*state)
		m.mu.Unlock()
		if n > 0 {
			slog.Info("Dropped sessions on shutdown", "count", n)
		}
	})
}
