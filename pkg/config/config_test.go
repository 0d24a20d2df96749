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

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LLM.Host != "http://localhost:11434" {
		t.Errorf("LLM.Host = %q", cfg.LLM.Host)
	}
	if cfg.LLM.Model != "llama3.2" {
		t.Errorf("LLM.Model = %q", cfg.LLM.Model)
	}
	if cfg.Embedder.Model != "nomic-embed-text" {
		t.Errorf("Embedder.Model = %q", cfg.Embedder.Model)
	}
	if cfg.Embedder.Dimension != 768 {
		t.Errorf("Embedder.Dimension = %d", cfg.Embedder.Dimension)
	}
	if cfg.RAG.ChunkSize != 500 || cfg.RAG.ChunkOverlap != 50 {
		t.Errorf("RAG chunking defaults = %d/%d", cfg.RAG.ChunkSize, cfg.RAG.ChunkOverlap)
	}
	if cfg.Session.MaxIterations != 5 {
		t.Errorf("Session.MaxIterations = %d", cfg.Session.MaxIterations)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
llm:
  model: mistral
rag:
  chunk_size: 200
  chunk_overlap: 20
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LLM.Model != "mistral" {
		t.Errorf("LLM.Model = %q, want mistral", cfg.LLM.Model)
	}
	if cfg.RAG.ChunkSize != 200 {
		t.Errorf("RAG.ChunkSize = %d, want 200", cfg.RAG.ChunkSize)
	}
	// Unset fields still get defaults.
	if cfg.LLM.Host != "http://localhost:11434" {
		t.Errorf("LLM.Host = %q", cfg.LLM.Host)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("SIDEKICK_TEST_HOST", "http://ollama.internal:11434")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
llm:
  host: ${SIDEKICK_TEST_HOST}
  model: ${SIDEKICK_TEST_MODEL:-llama3.2}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LLM.Host != "http://ollama.internal:11434" {
		t.Errorf("LLM.Host = %q", cfg.LLM.Host)
	}
	if cfg.LLM.Model != "llama3.2" {
		t.Errorf("LLM.Model = %q (default expansion)", cfg.LLM.Model)
	}
}

func TestLoad_InvalidChunking(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
rag:
  chunk_size: 100
  chunk_overlap: 100
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected validation error for overlap >= size")
	}
}

func TestToolsConfig_Includes(t *testing.T) {
	c := &ToolsConfig{}
	if !c.Includes("calculator") {
		t.Error("empty enabled list should include everything")
	}

	c.Enabled = []string{"calculator", "weather"}
	if !c.Includes("weather") {
		t.Error("expected weather to be enabled")
	}
	if c.Includes("git_status") {
		t.Error("expected git_status to be disabled")
	}

	c.Enabled = []string{"all"}
	if !c.Includes("git_status") {
		t.Error("'all' should enable everything")
	}
}
