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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBraceScanParserPlainCall(t *testing.T) {
	call := BraceScanParser{}.Parse(`{"tool": "calculator", "arguments": {"operation": "add", "a": 1, "b": 2}}`)
	require.NotNil(t, call)
	assert.Equal(t, "calculator", call.Tool)
	assert.Equal(t, "add", call.Arguments["operation"])
	assert.Equal(t, float64(1), call.Arguments["a"])
}

func TestBraceScanParserEmbeddedInProse(t *testing.T) {
	text := `Sure, I'll use the calculator for that.
{"tool": "calculator", "arguments": {"operation": "multiply", "a": 25, "b": 4}}
Let me know if you need anything else.`
	call := BraceScanParser{}.Parse(text)
	require.NotNil(t, call)
	assert.Equal(t, "calculator", call.Tool)
}

func TestBraceScanParserMissingArguments(t *testing.T) {
	call := BraceScanParser{}.Parse(`{"tool": "weather"}`)
	require.NotNil(t, call)
	assert.Equal(t, "weather", call.Tool)
	require.NotNil(t, call.Arguments)
	assert.Empty(t, call.Arguments)
}

func TestBraceScanParserProse(t *testing.T) {
	assert.Nil(t, BraceScanParser{}.Parse("The answer is 42."))
}

func TestBraceScanParserObjectWithoutToolKey(t *testing.T) {
	assert.Nil(t, BraceScanParser{}.Parse(`{"answer": 42}`))
}

func TestBraceScanParserMalformedJSON(t *testing.T) {
	assert.Nil(t, BraceScanParser{}.Parse(`{"tool": "calculator", "arguments": {`))
	assert.Nil(t, BraceScanParser{}.Parse(`some text { not json } more text`))
}

func TestBraceScanParserNonStringTool(t *testing.T) {
	assert.Nil(t, BraceScanParser{}.Parse(`{"tool": 42}`))
	assert.Nil(t, BraceScanParser{}.Parse(`{"tool": ""}`))
}

func TestBraceScanParserBracesInProse(t *testing.T) {
	// First '{' to last '}' spans non-JSON text, so this is prose.
	text := `In Go you write { } blocks; later {"tool": "x"} appears.`
	assert.Nil(t, BraceScanParser{}.Parse(text))
}
