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
	"strings"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/sidekick-dev/sidekick/pkg/config"
)

const mcpProtocolVersion = "2024-11-05"

// MCPSource connects to an external MCP server over stdio and exposes its
// tools. Tools discovered at connect time are registered alongside the
// builtins and dispatched the same way.
type MCPSource struct {
	cfg    config.MCPServerConfig
	client *client.Client
}

// mcpTool adapts one remote MCP tool to the Tool interface.
type mcpTool struct {
	source *MCPSource
	name   string
	desc   string
	params []ToolParameter
}

// NewMCPSource spawns the server subprocess, performs the MCP handshake
// and lists the tools it offers.
func NewMCPSource(ctx context.Context, cfg config.MCPServerConfig) (*MCPSource, []Tool, error) {
	if cfg.Command == "" {
		return nil, nil, fmt.Errorf("mcp server '%s': command is required", cfg.Name)
	}

	mcpClient, err := client.NewStdioMCPClient(cfg.Command, cfg.Env, cfg.Args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create MCP client for '%s': %w", cfg.Name, err)
	}

	if err := mcpClient.Start(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to start MCP server '%s': %w", cfg.Name, err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "sidekick",
		Version: "1.0.0",
	}
	initReq.Params.ProtocolVersion = mcpProtocolVersion

	if _, err := mcpClient.Initialize(ctx, initReq); err != nil {
		mcpClient.Close()
		return nil, nil, fmt.Errorf("failed to initialize MCP server '%s': %w", cfg.Name, err)
	}

	listResp, err := mcpClient.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		mcpClient.Close()
		return nil, nil, fmt.Errorf("failed to list tools of MCP server '%s': %w", cfg.Name, err)
	}

	filterSet := make(map[string]bool, len(cfg.Filter))
	for _, name := range cfg.Filter {
		filterSet[name] = true
	}

	source := &MCPSource{cfg: cfg, client: mcpClient}

	var tools []Tool
	for _, remote := range listResp.Tools {
		if len(filterSet) > 0 && !filterSet[remote.Name] {
			continue
		}
		tools = append(tools, &mcpTool{
			source: source,
			name:   remote.Name,
			desc:   remote.Description,
			params: convertMCPSchema(remote.InputSchema),
		})
	}

	slog.Info("Connected to MCP server",
		"name", cfg.Name,
		"command", cfg.Command,
		"tools", len(tools))

	return source, tools, nil
}

// Close shuts down the server subprocess.
func (s *MCPSource) Close() error {
	return s.client.Close()
}

func (t *mcpTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        t.name,
		Description: t.desc,
		Parameters:  t.params,
	}
}

func (t *mcpTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = t.name
	req.Params.Arguments = args

	resp, err := t.source.client.CallTool(ctx, req)
	if err != nil {
		return "", fmt.Errorf("MCP call failed: %w", err)
	}

	var texts []string
	for _, content := range resp.Content {
		if textContent, ok := content.(mcp.TextContent); ok {
			texts = append(texts, textContent.Text)
		}
	}
	text := strings.Join(texts, "\n")

	if resp.IsError {
		if text == "" {
			text = "unknown error"
		}
		return "", fmt.Errorf("MCP tool '%s' failed: %s", t.name, text)
	}
	return text, nil
}

// convertMCPSchema flattens an MCP input schema into the parameter list
// rendered into the system prompt.
func convertMCPSchema(schema mcp.ToolInputSchema) []ToolParameter {
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	var params []ToolParameter
	for name, raw := range schema.Properties {
		param := ToolParameter{
			Name:     name,
			Type:     "string",
			Required: required[name],
		}
		if prop, ok := raw.(map[string]interface{}); ok {
			if typ, ok := prop["type"].(string); ok {
				param.Type = typ
			}
			if desc, ok := prop["description"].(string); ok {
				param.Description = desc
			}
			if def, ok := prop["default"]; ok {
				param.Default = def
			}
			if enum, ok := prop["enum"].([]interface{}); ok {
				for _, v := range enum {
					if s, ok := v.(string); ok {
						param.Enum = append(param.Enum, s)
					}
				}
			}
		}
		params = append(params, param)
	}
	return params
}
