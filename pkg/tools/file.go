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
	"os"
	"path/filepath"
	"strings"
)

const maxFileReadBytes = 1 << 20

// FileReadTool reads a text file from disk.
type FileReadTool struct{}

// FileWriteTool writes content to a file, creating parent directories.
type FileWriteTool struct{}

// FileListTool lists the entries of a directory.
type FileListTool struct{}

func NewFileReadTool() *FileReadTool   { return &FileReadTool{} }
func NewFileWriteTool() *FileWriteTool { return &FileWriteTool{} }
func NewFileListTool() *FileListTool   { return &FileListTool{} }

func (t *FileReadTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        "file_read",
		Description: "Read the contents of a file",
		Parameters: []ToolParameter{
			{
				Name:        "path",
				Type:        "string",
				Description: "Path to the file",
				Required:    true,
			},
		},
	}
}

func (t *FileReadTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	path, err := stringArg(args, "path")
	if err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrInvalidArgument, path)
	}
	if info.Size() > maxFileReadBytes {
		return "", fmt.Errorf("%w: %s is too large (%d bytes)", ErrInvalidArgument, path, info.Size())
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	lines := strings.Count(string(content), "\n") + 1
	return fmt.Sprintf("File: %s (%d bytes, %d lines)\n\n%s", path, info.Size(), lines, string(content)), nil
}

func (t *FileWriteTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        "file_write",
		Description: "Write content to a file, creating parent directories as needed",
		Parameters: []ToolParameter{
			{
				Name:        "path",
				Type:        "string",
				Description: "Path to the file",
				Required:    true,
			},
			{
				Name:        "content",
				Type:        "string",
				Description: "Content to write",
				Required:    true,
			},
		},
	}
}

func (t *FileWriteTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	path, err := stringArg(args, "path")
	if err != nil {
		return "", err
	}
	content, err := stringArg(args, "content")
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return fmt.Sprintf("Wrote %d bytes to %s", len(content), path), nil
}

func (t *FileListTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        "file_list",
		Description: "List the files and directories at a path",
		Parameters: []ToolParameter{
			{
				Name:        "path",
				Type:        "string",
				Description: "Directory to list",
				Required:    false,
				Default:     ".",
			},
			{
				Name:        "pattern",
				Type:        "string",
				Description: "Optional glob pattern to filter entries (e.g. *.go)",
				Required:    false,
			},
		},
	}
}

func (t *FileListTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	path := optionalStringArg(args, "path", ".")
	pattern := optionalStringArg(args, "pattern", "")

	entries, err := os.ReadDir(path)
	if err != nil {
		return "", fmt.Errorf("failed to list %s: %w", path, err)
	}

	var files, dirs []string
	for _, entry := range entries {
		if pattern != "" {
			match, err := filepath.Match(pattern, entry.Name())
			if err != nil {
				return "", fmt.Errorf("%w: bad pattern '%s'", ErrInvalidArgument, pattern)
			}
			if !match {
				continue
			}
		}
		if entry.IsDir() {
			dirs = append(dirs, entry.Name()+"/")
		} else {
			files = append(files, entry.Name())
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Directory: %s (%d directories, %d files)\n", path, len(dirs), len(files))
	for _, d := range dirs {
		fmt.Fprintf(&sb, "  %s\n", d)
	}
	for _, f := range files {
		fmt.Fprintf(&sb, "  %s\n", f)
	}
	return sb.String(), nil
}
