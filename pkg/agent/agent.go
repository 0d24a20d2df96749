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

// Package agent implements the tool-calling orchestration loop: it feeds
// the conversation to the model, parses tool calls out of replies,
// dispatches them and loops until the model answers in prose or the
// iteration budget runs out.
package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sidekick-dev/sidekick/pkg/llms"
	"github.com/sidekick-dev/sidekick/pkg/tools"
)

// DefaultMaxIterations bounds tool-call round trips per query.
const DefaultMaxIterations = 5

// MaxIterationsMessage is returned when the budget is exhausted without a
// prose answer.
const MaxIterationsMessage = "Maximum iterations reached. Could not complete the request."

// Agent runs the orchestration loop against one provider and one tool
// registry. Agents are stateless between queries; conversation state
// lives in the Transcript.
type Agent struct {
	provider      llms.Provider
	registry      *tools.Registry
	parser        CallParser
	persona       string
	name          string
	maxIterations int
}

// Option configures an Agent.
type Option func(*Agent)

// WithMaxIterations overrides the tool-call budget per query.
func WithMaxIterations(n int) Option {
	return func(a *Agent) {
		if n > 0 {
			a.maxIterations = n
		}
	}
}

// WithParser swaps the tool-call parser.
func WithParser(p CallParser) Option {
	return func(a *Agent) {
		if p != nil {
			a.parser = p
		}
	}
}

// WithPersona prepends a role description to the system prompt.
func WithPersona(name, persona string) Option {
	return func(a *Agent) {
		a.name = name
		a.persona = persona
	}
}

// New creates an agent. The default parser is the brace scanner and the
// default budget is DefaultMaxIterations.
func New(provider llms.Provider, registry *tools.Registry, opts ...Option) (*Agent, error) {
	if provider == nil {
		return nil, fmt.Errorf("provider is required")
	}
	if registry == nil {
		return nil, fmt.Errorf("tool registry is required")
	}

	a := &Agent{
		provider:      provider,
		registry:      registry,
		parser:        BraceScanParser{},
		name:          "assistant",
		maxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Name returns the agent's role name.
func (a *Agent) Name() string {
	return a.name
}

// NewTranscript creates a transcript primed with this agent's system
// prompt.
func (a *Agent) NewTranscript() *Transcript {
	t := NewTranscript()
	t.SetSystem(RenderSystemPrompt(a.persona, a.registry.ListTools()))
	return t
}

// ProcessQuery appends the query to the transcript and runs the loop.
// The returned answer is the model's final reply verbatim. Provider
// errors propagate without appending an assistant message, so a retried
// query sees a clean transcript.
func (a *Agent) ProcessQuery(ctx context.Context, transcript *Transcript, query string) (string, error) {
	if transcript == nil {
		return "", fmt.Errorf("transcript is required")
	}
	transcript.SetSystem(RenderSystemPrompt(a.persona, a.registry.ListTools()))
	transcript.Append(llms.RoleUser, query)

	for iteration := 1; iteration <= a.maxIterations; iteration++ {
		reply, err := a.provider.Generate(ctx, transcript.Messages())
		if err != nil {
			return "", err
		}

		call := a.parser.Parse(reply)
		if call == nil {
			transcript.Append(llms.RoleAssistant, reply)
			slog.Debug("Final answer", "agent", a.name, "iteration", iteration)
			return reply, nil
		}

		transcript.Append(llms.RoleAssistant, reply)
		slog.Info("Calling tool", "agent", a.name, "tool", call.Tool, "iteration", iteration)

		result := a.registry.Execute(ctx, *call)

		var feedback string
		if result.IsError {
			feedback = fmt.Sprintf("Tool call failed: %s\n\nPlease respond to the user explaining the error.", result.Text)
		} else {
			feedback = fmt.Sprintf("Tool '%s' returned: %s\n\nPlease provide a natural language response to the user based on this result.", call.Tool, result.Text)
		}
		transcript.Append(llms.RoleUser, feedback)
	}

	slog.Warn("Iteration budget exhausted", "agent", a.name, "budget", a.maxIterations)
	return MaxIterationsMessage, nil
}
