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

package config

import "fmt"

// ToolsConfig configures the tool catalog.
type ToolsConfig struct {
	// Enabled selects built-in tools. Empty or ["all"] enables everything.
	Enabled []string `yaml:"enabled,omitempty"`

	// AllowedCommands is the whitelist for the execute_command tool.
	AllowedCommands []string `yaml:"allowed_commands,omitempty"`

	// WorkingDirectory for command, file and git tools.
	WorkingDirectory string `yaml:"working_directory,omitempty"`

	// CommandTimeout in seconds for the execute_command tool.
	CommandTimeout int `yaml:"command_timeout,omitempty"`

	// ImageEndpoint is the URL of a local image-generation server.
	// Empty means the generate_image tool runs in simulated mode.
	ImageEndpoint string `yaml:"image_endpoint,omitempty"`

	// ImageOutputDir is where generated images are written.
	ImageOutputDir string `yaml:"image_output_dir,omitempty"`

	// MCPServers lists external MCP servers whose tools join the catalog.
	MCPServers []MCPServerConfig `yaml:"mcp_servers,omitempty"`
}

// MCPServerConfig configures one external MCP server (stdio transport).
type MCPServerConfig struct {
	// Name identifies the server in logs and tool listings.
	Name string `yaml:"name"`

	// Command launches the MCP server process.
	Command string `yaml:"command"`

	// Args for the server process.
	Args []string `yaml:"args,omitempty"`

	// Env for the server process, KEY=VALUE entries.
	Env []string `yaml:"env,omitempty"`

	// Filter limits which tools are exposed from this server.
	Filter []string `yaml:"filter,omitempty"`
}

// SetDefaults applies default values.
func (c *ToolsConfig) SetDefaults() {
	if len(c.AllowedCommands) == 0 {
		c.AllowedCommands = []string{"ls", "cat", "echo", "pwd", "wc", "head", "tail", "python3", "go"}
	}
	if c.WorkingDirectory == "" {
		c.WorkingDirectory = "."
	}
	if c.CommandTimeout == 0 {
		c.CommandTimeout = 30
	}
	if c.ImageOutputDir == "" {
		c.ImageOutputDir = ".sidekick/images"
	}
}

// Validate checks the configuration.
func (c *ToolsConfig) Validate() error {
	for i, srv := range c.MCPServers {
		if srv.Name == "" {
			return fmt.Errorf("mcp_servers[%d]: name is required", i)
		}
		if srv.Command == "" {
			return fmt.Errorf("mcp_servers[%d]: command is required", i)
		}
	}
	return nil
}

// Includes reports whether a built-in tool is enabled.
func (c *ToolsConfig) Includes(name string) bool {
	if len(c.Enabled) == 0 {
		return true
	}
	for _, n := range c.Enabled {
		if n == "all" || n == name {
			return true
		}
	}
	return false
}
