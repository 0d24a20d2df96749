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
	"os/exec"
	"strings"
)

// GitStatusTool reports the working tree status of a repository.
type GitStatusTool struct{}

// GitLogTool shows recent commits of a repository.
type GitLogTool struct{}

func NewGitStatusTool() *GitStatusTool { return &GitStatusTool{} }
func NewGitLogTool() *GitLogTool       { return &GitLogTool{} }

func (t *GitStatusTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        "git_status",
		Description: "Show the working tree status of a git repository",
		Parameters: []ToolParameter{
			{
				Name:        "repo",
				Type:        "string",
				Description: "Path to the repository",
				Required:    false,
				Default:     ".",
			},
		},
	}
}

func (t *GitStatusTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	repo := optionalStringArg(args, "repo", ".")

	branch, err := runGit(ctx, repo, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	status, err := runGit(ctx, repo, "status", "--porcelain")
	if err != nil {
		return "", err
	}

	if status == "" {
		return fmt.Sprintf("On branch %s\nWorking tree clean", branch), nil
	}
	return fmt.Sprintf("On branch %s\n%s", branch, status), nil
}

func (t *GitLogTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        "git_log",
		Description: "Show recent commits of a git repository",
		Parameters: []ToolParameter{
			{
				Name:        "repo",
				Type:        "string",
				Description: "Path to the repository",
				Required:    false,
				Default:     ".",
			},
			{
				Name:        "limit",
				Type:        "number",
				Description: "Number of commits to show",
				Required:    false,
				Default:     10,
			},
		},
	}
}

func (t *GitLogTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	repo := optionalStringArg(args, "repo", ".")
	limit := optionalIntArg(args, "limit", 10)
	if limit < 1 {
		limit = 1
	}

	return runGit(ctx, repo, "log", fmt.Sprintf("-%d", limit), "--oneline", "--decorate")
}

func runGit(ctx context.Context, repo string, gitArgs ...string) (string, error) {
	args := append([]string{"-C", repo}, gitArgs...)
	output, err := exec.CommandContext(ctx, "git", args...).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s failed: %w\n%s", gitArgs[0], err, string(output))
	}
	return strings.TrimSpace(string(output)), nil
}
