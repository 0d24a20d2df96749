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

package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sidekick-dev/sidekick/pkg/tools"
)

// RenderSystemPrompt builds the system message: an optional persona
// preamble, the tool catalog in registration order, and the calling
// convention the parser understands.
func RenderSystemPrompt(persona string, infos []tools.ToolInfo) string {
	var sb strings.Builder

	if persona != "" {
		sb.WriteString(persona)
		sb.WriteString("\n\n")
	}

	sb.WriteString("You are a helpful assistant with access to the following tools:\n\n")
	sb.WriteString(formatToolDescriptions(infos))
	sb.WriteString(`

When you need to use a tool, respond with a JSON object in this format:
{"tool": "tool_name", "arguments": {"arg1": "value1", "arg2": "value2"}}

If you don't need to use a tool, just respond normally.

Important: Only use the tools when necessary to answer the user's question.`)

	return sb.String()
}

func formatToolDescriptions(infos []tools.ToolInfo) string {
	descriptions := make([]string, 0, len(infos))
	for _, info := range infos {
		desc := fmt.Sprintf("- %s: %s", info.Name, info.Description)
		if len(info.Parameters) > 0 {
			properties := make(map[string]interface{}, len(info.Parameters))
			for _, p := range info.Parameters {
				prop := map[string]interface{}{
					"type":        p.Type,
					"description": p.Description,
				}
				if p.Default != nil {
					prop["default"] = p.Default
				}
				if len(p.Enum) > 0 {
					prop["enum"] = p.Enum
				}
				properties[p.Name] = prop
			}
			if data, err := json.MarshalIndent(properties, "  ", "  "); err == nil {
				desc += fmt.Sprintf("\n  Parameters: %s", string(data))
			}
		}
		descriptions = append(descriptions, desc)
	}
	return strings.Join(descriptions, "\n\n")
}
