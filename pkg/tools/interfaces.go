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

// Package tools declares the tool catalog and the dispatcher that maps a
// parsed tool call to its handler.
package tools

import (
	"context"
	"time"
)

// ToolInfo describes one tool to the model. It is rendered verbatim into
// the system prompt.
type ToolInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ToolParameter `json:"parameters,omitempty"`
}

// ToolParameter describes one argument of a tool.
type ToolParameter struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Required    bool        `json:"required"`
	Default     interface{} `json:"default,omitempty"`
	Enum        []string    `json:"enum,omitempty"`
}

// ToolCall is a parsed request from the model to invoke a tool. It is
// consumed by the dispatcher and discarded after one loop iteration.
type ToolCall struct {
	Tool      string                 `json:"tool"`
	Arguments map[string]interface{} `json:"arguments,omitempty"`
}

// ToolResult is the outcome of one tool invocation, fed back into the
// conversation transcript.
type ToolResult struct {
	Text     string        `json:"text"`
	IsError  bool          `json:"is_error"`
	ToolName string        `json:"tool_name"`
	Duration time.Duration `json:"duration,omitempty"`
}

// Tool is a named, schema-described function the model may request.
// Handlers may return errors; the dispatcher converts them into error
// results and never lets them escape.
type Tool interface {
	GetInfo() ToolInfo

	Execute(ctx context.Context, args map[string]interface{}) (string, error)
}
