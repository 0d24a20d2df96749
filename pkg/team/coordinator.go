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

// Package team coordinates multiple role-specialized agents on one task.
// Roles are plain parameterizations of the same agent type: a persona
// plus a tool subset.
package team

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sidekick-dev/sidekick/pkg/agent"
	"github.com/sidekick-dev/sidekick/pkg/llms"
	"github.com/sidekick-dev/sidekick/pkg/tools"
)

// Role names a specialization.
type Role string

const (
	RoleResearcher Role = "researcher"
	RoleCoder      Role = "coder"
	RoleAnalyst    Role = "analyst"
	RoleWriter     Role = "writer"
	RolePlanner    Role = "planner"
	RoleCritic     Role = "critic"
)

// roleSpec parameterizes one role: its persona preamble and the tool
// names it may use. An empty tool list means pure reasoning.
type roleSpec struct {
	persona string
	tools   []string
}

var roleSpecs = map[Role]roleSpec{
	RoleResearcher: {
		persona: "You are a specialized researcher agent. Gather facts from the web and the document knowledge base before answering.",
		tools:   []string{"web_extract_text", "web_get_links", "rag_query"},
	},
	RoleCoder: {
		persona: "You are a specialized coder agent. Inspect, write and run code to complete the task.",
		tools:   []string{"execute_command", "git_status", "git_log", "file_read", "file_write"},
	},
	RoleAnalyst: {
		persona: "You are a specialized analyst agent. Load data and back your conclusions with numbers.",
		tools:   []string{"data_load_csv", "data_summary", "file_read"},
	},
	RoleWriter: {
		persona: "You are a specialized writer agent. Produce clear, well-structured prose from the material you are given.",
		tools:   []string{"file_write", "rag_query"},
	},
	RolePlanner: {
		persona: "You are a specialized planner agent. Break the task into concrete, ordered steps. Do not execute them.",
	},
	RoleCritic: {
		persona: "You are a specialized critic agent. Review the contributions for correctness and completeness, and point out gaps.",
	},
}

// Result collects one team run.
type Result struct {
	Task    string
	Order   []Role
	Outputs map[Role]string

	// Aggregate is the critic's review when a critic ran, otherwise the
	// last contribution.
	Aggregate string
}

// Coordinator builds role agents on demand and runs them sequentially.
type Coordinator struct {
	provider llms.Provider
	registry *tools.Registry
	opts     []agent.Option
}

// NewCoordinator creates a coordinator. Extra agent options (iteration
// budget, parser) apply to every role agent.
func NewCoordinator(provider llms.Provider, registry *tools.Registry, opts ...agent.Option) (*Coordinator, error) {
	if provider == nil {
		return nil, fmt.Errorf("provider is required")
	}
	if registry == nil {
		return nil, fmt.Errorf("tool registry is required")
	}
	return &Coordinator{provider: provider, registry: registry, opts: opts}, nil
}

// DefaultTeam is the full bench in execution order.
func DefaultTeam() []Role {
	return []Role{RoleResearcher, RoleCoder, RoleAnalyst, RoleWriter, RolePlanner, RoleCritic}
}

// agentFor builds the agent for a role.
func (c *Coordinator) agentFor(role Role) (*agent.Agent, error) {
	spec, ok := roleSpecs[role]
	if !ok {
		return nil, fmt.Errorf("unknown role: %s", role)
	}

	reg := c.registry
	if len(spec.tools) > 0 {
		reg = c.registry.Subset(spec.tools...)
	} else {
		reg = tools.NewRegistry()
	}

	opts := append([]agent.Option{agent.WithPersona(string(role), spec.persona)}, c.opts...)
	return agent.New(c.provider, reg, opts...)
}

// Solve runs the requested roles in order on the task. The critic, when
// requested, always runs last and sees every other contribution. Each
// role gets a fresh transcript; context flows through the prompt, not a
// shared conversation.
func (c *Coordinator) Solve(ctx context.Context, task string, roles []Role) (*Result, error) {
	if strings.TrimSpace(task) == "" {
		return nil, fmt.Errorf("task must not be empty")
	}
	if len(roles) == 0 {
		roles = DefaultTeam()
	}

	ordered := make([]Role, 0, len(roles))
	critic := false
	for _, role := range roles {
		if role == RoleCritic {
			critic = true
			continue
		}
		ordered = append(ordered, role)
	}

	result := &Result{
		Task:    task,
		Outputs: make(map[Role]string, len(roles)),
	}

	var contributions strings.Builder
	for _, role := range ordered {
		a, err := c.agentFor(role)
		if err != nil {
			return nil, err
		}

		prompt := task
		if contributions.Len() > 0 {
			prompt = fmt.Sprintf("Task: %s\n\nContributions so far:\n%s\nWhat is your contribution?", task, contributions.String())
		}

		slog.Info("Running role agent", "role", role)
		output, err := a.ProcessQuery(ctx, a.NewTranscript(), prompt)
		if err != nil {
			return nil, fmt.Errorf("role %s failed: %w", role, err)
		}

		result.Order = append(result.Order, role)
		result.Outputs[role] = output
		result.Aggregate = output
		fmt.Fprintf(&contributions, "[%s]\n%s\n\n", role, output)
	}

	if critic {
		a, err := c.agentFor(RoleCritic)
		if err != nil {
			return nil, err
		}

		prompt := fmt.Sprintf("Review the solution for: %s\n\nContributions:\n%s", task, contributions.String())
		review, err := a.ProcessQuery(ctx, a.NewTranscript(), prompt)
		if err != nil {
			return nil, fmt.Errorf("role %s failed: %w", RoleCritic, err)
		}

		result.Order = append(result.Order, RoleCritic)
		result.Outputs[RoleCritic] = review
		result.Aggregate = review
	}

	return result, nil
}
