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
	"strings"

	"github.com/sidekick-dev/sidekick/pkg/tools"
)

// CallParser decides whether a model reply is a tool call. A nil return
// means the reply is a final answer; parsers never error.
type CallParser interface {
	Parse(text string) *tools.ToolCall
}

// BraceScanParser extracts a tool call by scanning for the outermost
// braces: the slice from the first '{' to the last '}' must parse as a
// JSON object carrying a "tool" key. Anything else, including malformed
// JSON and objects without "tool", is treated as prose.
type BraceScanParser struct{}

func (BraceScanParser) Parse(text string) *tools.ToolCall {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text[start:end+1]), &probe); err != nil {
		return nil
	}

	rawTool, ok := probe["tool"]
	if !ok {
		return nil
	}

	var call tools.ToolCall
	if err := json.Unmarshal(rawTool, &call.Tool); err != nil || call.Tool == "" {
		return nil
	}

	if rawArgs, ok := probe["arguments"]; ok {
		if err := json.Unmarshal(rawArgs, &call.Arguments); err != nil {
			return nil
		}
	}
	if call.Arguments == nil {
		call.Arguments = map[string]interface{}{}
	}

	return &call
}
