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

package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sidekick-dev/sidekick/pkg/agent"
	"github.com/sidekick-dev/sidekick/pkg/config"
	"github.com/sidekick-dev/sidekick/pkg/embedders"
	"github.com/sidekick-dev/sidekick/pkg/llms"
	"github.com/sidekick-dev/sidekick/pkg/rag"
	"github.com/sidekick-dev/sidekick/pkg/session"
	"github.com/sidekick-dev/sidekick/pkg/tools"
)

// runtime wires the configured components together. Commands build only
// the parts they need via the with* flags.
type runtime struct {
	cfg      *config.Config
	provider llms.Provider
	store    *rag.Store
	indexer  *rag.Indexer
	watcher  *rag.Watcher
	registry *tools.Registry
	agent    *agent.Agent
	sessions *session.Manager

	mcpSources []*tools.MCPSource
}

type runtimeOptions struct {
	withAgent   bool
	withWatcher bool
}

func newRuntime(cfg *config.Config, opts runtimeOptions) (*runtime, error) {
	rt := &runtime{cfg: cfg}

	embedder, err := embedders.NewOllamaEmbedder(&cfg.Embedder)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	rt.store, err = rag.NewStore(&cfg.RAG, embedder)
	if err != nil {
		return nil, fmt.Errorf("failed to open vector store: %w", err)
	}
	rt.indexer = rag.NewIndexer(rt.store, &cfg.RAG)

	if opts.withWatcher && cfg.RAG.WatchPath != "" {
		rt.watcher, err = rag.NewWatcher(rt.indexer, cfg.RAG.WatchPath)
		if err != nil {
			return nil, fmt.Errorf("failed to start document watcher: %w", err)
		}
	}

	if !opts.withAgent {
		return rt, nil
	}

	rt.provider, err = llms.NewOllamaProvider(&cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create model provider: %w", err)
	}

	rt.registry = tools.NewRegistry()
	if err := tools.RegisterBuiltins(rt.registry, &cfg.Tools, rt.store, rt.indexer); err != nil {
		return nil, err
	}

	for _, srvCfg := range cfg.Tools.MCPServers {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		source, mcpTools, err := tools.NewMCPSource(ctx, srvCfg)
		cancel()
		if err != nil {
			slog.Warn("Skipping MCP server", "name", srvCfg.Name, "error", err)
			continue
		}
		rt.mcpSources = append(rt.mcpSources, source)
		for _, t := range mcpTools {
			if err := rt.registry.RegisterTool(t); err != nil {
				slog.Warn("Skipping MCP tool", "server", srvCfg.Name, "error", err)
			}
		}
	}

	rt.agent, err = agent.New(rt.provider, rt.registry,
		agent.WithMaxIterations(cfg.Session.MaxIterations))
	if err != nil {
		return nil, err
	}

	rt.sessions = session.NewManager(rt.agent, &cfg.Session)
	return rt, nil
}

func (rt *runtime) Close() {
	if rt.sessions != nil {
		rt.sessions.Close()
	}
	if rt.watcher != nil {
		_ = rt.watcher.Close()
	}
	for _, source := range rt.mcpSources {
		_ = source.Close()
	}
	if rt.store != nil {
		if err := rt.store.Close(); err != nil {
			slog.Warn("Failed to flush vector store", "error", err)
		}
	}
}
