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

package team

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidekick-dev/sidekick/pkg/llms"
	"github.com/sidekick-dev/sidekick/pkg/tools"
)

// recordingProvider replies with a counter and keeps the prompts it saw.
type recordingProvider struct {
	prompts []string
}

func (p *recordingProvider) Generate(ctx context.Context, messages []llms.Message) (string, error) {
	last := messages[len(messages)-1]
	p.prompts = append(p.prompts, last.Content)
	return "contribution-" + string(rune('a'+len(p.prompts)-1)), nil
}

func (p *recordingProvider) Model() string { return "recording" }

func TestSolveRunsRolesInOrder(t *testing.T) {
	provider := &recordingProvider{}
	c, err := NewCoordinator(provider, tools.NewRegistry())
	require.NoError(t, err)

	result, err := c.Solve(context.Background(), "write a report", []Role{RoleResearcher, RoleWriter})
	require.NoError(t, err)

	assert.Equal(t, []Role{RoleResearcher, RoleWriter}, result.Order)
	assert.Len(t, result.Outputs, 2)
	assert.Equal(t, result.Outputs[RoleWriter], result.Aggregate)

	// The second role sees the first role's contribution.
	require.Len(t, provider.prompts, 2)
	assert.Contains(t, provider.prompts[1], "contribution-a")
}

func TestSolveCriticAlwaysLast(t *testing.T) {
	provider := &recordingProvider{}
	c, err := NewCoordinator(provider, tools.NewRegistry())
	require.NoError(t, err)

	// Critic requested first must still run after everyone else.
	result, err := c.Solve(context.Background(), "assess this", []Role{RoleCritic, RoleResearcher, RoleCoder})
	require.NoError(t, err)

	require.NotEmpty(t, result.Order)
	assert.Equal(t, RoleCritic, result.Order[len(result.Order)-1])
	assert.Equal(t, result.Outputs[RoleCritic], result.Aggregate)

	// The critic's prompt carries every prior contribution.
	criticPrompt := provider.prompts[len(provider.prompts)-1]
	assert.Contains(t, criticPrompt, "Review the solution for: assess this")
	assert.Contains(t, criticPrompt, "[researcher]")
	assert.Contains(t, criticPrompt, "[coder]")
}

func TestSolveUnknownRole(t *testing.T) {
	c, err := NewCoordinator(&recordingProvider{}, tools.NewRegistry())
	require.NoError(t, err)

	_, err = c.Solve(context.Background(), "task", []Role{Role("wizard")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown role")
}

func TestSolveEmptyTask(t *testing.T) {
	c, err := NewCoordinator(&recordingProvider{}, tools.NewRegistry())
	require.NoError(t, err)

	_, err = c.Solve(context.Background(), "  ", nil)
	require.Error(t, err)
}

func TestRoleToolSubsets(t *testing.T) {
	reg := tools.NewRegistry()
	require.NoError(t, reg.RegisterTool(tools.NewWebExtractTextTool()))
	require.NoError(t, reg.RegisterTool(tools.NewFileWriteTool()))
	require.NoError(t, reg.RegisterTool(tools.NewGitStatusTool()))

	c, err := NewCoordinator(&recordingProvider{}, reg)
	require.NoError(t, err)

	researcher, err := c.agentFor(RoleResearcher)
	require.NoError(t, err)
	assert.NotNil(t, researcher)

	planner, err := c.agentFor(RolePlanner)
	require.NoError(t, err)
	assert.NotNil(t, planner)
}
