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
	"time"

	"github.com/sidekick-dev/sidekick/pkg/config"
)

// CommandTool runs shell commands whose base command appears on the
// configured allowlist.
type CommandTool struct {
	cfg *config.ToolsConfig
}

func NewCommandTool(cfg *config.ToolsConfig) *CommandTool {
	return &CommandTool{cfg: cfg}
}

func (t *CommandTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        "execute_command",
		Description: fmt.Sprintf("Execute a shell command (allowed: %s)", strings.Join(t.cfg.AllowedCommands, ", ")),
		Parameters: []ToolParameter{
			{
				Name:        "command",
				Type:        "string",
				Description: "Command line to run",
				Required:    true,
			},
			{
				Name:        "working_dir",
				Type:        "string",
				Description: "Working directory for the command",
				Required:    false,
			},
		},
	}
}

func (t *CommandTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	command, err := stringArg(args, "command")
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(command) == "" {
		return "", fmt.Errorf("%w: command must not be empty", ErrInvalidArgument)
	}

	workingDir := optionalStringArg(args, "working_dir", t.cfg.WorkingDirectory)

	if err := t.validateCommand(command); err != nil {
		return "", err
	}

	if t.cfg.CommandTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(t.cfg.CommandTimeout)*time.Second)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = workingDir

	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("command failed: %w\n%s", err, string(output))
	}

	text := string(output)
	if text == "" {
		text = "(no output)"
	}
	return text, nil
}

func (t *CommandTool) validateCommand(command string) error {
	base := t.extractBaseCommand(command)
	for _, allowed := range t.cfg.AllowedCommands {
		if base == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: command not allowed: %s (allowed: %v)",
		ErrInvalidArgument, base, t.cfg.AllowedCommands)
}

func (t *CommandTool) extractBaseCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	base := fields[0]
	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		base = base[idx+1:]
	}
	return base
}
