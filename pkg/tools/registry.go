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
	"fmt"
	"log/slog"
	"time"

	"github.com/sidekick-dev/sidekick/pkg/registry"
)

// Registry holds the tool catalog. Tools are listed in registration order
// so the rendered system prompt is reproducible.
type Registry struct {
	*registry.OrderedRegistry[Tool]
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		OrderedRegistry: registry.NewOrderedRegistry[Tool](),
	}
}

// RegisterTool adds a tool under its declared name.
func (r *Registry) RegisterTool(t Tool) error {
	info := t.GetInfo()
	if err := r.Register(info.Name, t); err != nil {
		return fmt.Errorf("failed to register tool: %w", err)
	}
	return nil
}

// GetTool looks up a tool by name.
func (r *Registry) GetTool(name string) (Tool, error) {
	t, exists := r.Get(name)
	if !exists {
		return nil, &ToolNotFoundError{Name: name}
	}
	return t, nil
}

// ListTools returns tool descriptions in registration order.
func (r *Registry) ListTools() []ToolInfo {
	items := r.List()
	infos := make([]ToolInfo, 0, len(items))
	for _, t := range items {
		infos = append(infos, t.GetInfo())
	}
	return infos
}

// Subset returns a new registry containing only the named tools, in the
// order given. Unknown names are skipped.
func (r *Registry) Subset(names ...string) *Registry {
	sub := NewRegistry()
	for _, name := range names {
		if t, exists := r.Get(name); exists {
			// Same name, fresh registry: cannot collide.
			_ = sub.RegisterTool(t)
		}
	}
	return sub
}

// Execute dispatches a tool call and always returns a ToolResult. Unknown
// tools, handler errors and handler panics all become error results so the
// orchestration loop's recovery path is never broken by a panic or a
// missing handler.
func (r *Registry) Execute(ctx context.Context, call ToolCall) (result ToolResult) {
	start := time.Now()
	result.ToolName = call.Tool

	defer func() {
		result.Duration = time.Since(start)
		if rec := recover(); rec != nil {
			slog.Error("Tool handler panicked", "tool", call.Tool, "panic", rec)
			result.IsError = true
			result.Text = fmt.Sprintf("unknown: tool '%s' failed: %v", call.Tool, rec)
		}
	}()

	tool, err := r.GetTool(call.Tool)
	if err != nil {
		result.IsError = true
		result.Text = fmt.Sprintf("Unknown tool: %s", call.Tool)
		return result
	}

	args := call.Arguments
	if args == nil {
		args = map[string]interface{}{}
	}

	text, err := tool.Execute(ctx, args)
	if err != nil {
		category := classifyError(err)
		slog.Debug("Tool execution failed",
			"tool", call.Tool,
			"category", category,
			"error", err)
		result.IsError = true
		result.Text = fmt.Sprintf("%s: %v", category, err)
		return result
	}

	slog.Debug("Tool executed", "tool", call.Tool, "duration", time.Since(start))
	result.Text = text
	return result
}
