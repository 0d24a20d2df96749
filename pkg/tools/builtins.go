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
	"fmt"

	"github.com/sidekick-dev/sidekick/pkg/config"
	"github.com/sidekick-dev/sidekick/pkg/rag"
)

// RegisterBuiltins registers the builtin catalog in its canonical order.
// The order is part of the prompt contract: the model sees tools listed
// exactly as registered here. Tools absent from cfg.Enabled are skipped
// when an enabled list is configured.
func RegisterBuiltins(reg *Registry, cfg *config.ToolsConfig, store *rag.Store, indexer *rag.Indexer) error {
	dataStore := NewDataStore()

	builtins := []Tool{
		NewCalculatorTool(),
		NewWeatherTool(),
		NewGoldPriceTool(),
		NewEmailTool(),
		NewRAGQueryTool(store),
		NewRAGIndexTool(indexer),
		NewRAGStatsTool(store),
		NewCommandTool(cfg),
		NewWebExtractTextTool(),
		NewWebGetLinksTool(),
		NewFileReadTool(),
		NewFileWriteTool(),
		NewFileListTool(),
		NewGitStatusTool(),
		NewGitLogTool(),
		NewImageTool(cfg),
		NewDataLoadCSVTool(dataStore),
		NewDataSummaryTool(dataStore),
	}

	for _, t := range builtins {
		if !cfg.Includes(t.GetInfo().Name) {
			continue
		}
		if err := reg.RegisterTool(t); err != nil {
			return fmt.Errorf("failed to register builtin tools: %w", err)
		}
	}
	return nil
}
