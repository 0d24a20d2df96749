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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/sidekick-dev/sidekick/pkg/config"
	"github.com/sidekick-dev/sidekick/pkg/httpclient"
)

// ImageTool generates an image from a text prompt. When an endpoint is
// configured it posts the prompt there and saves the returned bytes;
// without one it records the request and reports a simulated result.
type ImageTool struct {
	cfg    *config.ToolsConfig
	client *httpclient.Client
}

func NewImageTool(cfg *config.ToolsConfig) *ImageTool {
	return &ImageTool{
		cfg: cfg,
		client: httpclient.New(
			httpclient.WithHTTPClient(&http.Client{Timeout: 120 * time.Second}),
			httpclient.WithMaxRetries(2),
		),
	}
}

func (t *ImageTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        "generate_image",
		Description: "Generate an image from a text prompt",
		Parameters: []ToolParameter{
			{
				Name:        "prompt",
				Type:        "string",
				Description: "Text description of the desired image",
				Required:    true,
			},
			{
				Name:        "negative_prompt",
				Type:        "string",
				Description: "What to avoid in the image",
				Required:    false,
				Default:     "blurry, low quality, distorted",
			},
		},
	}
}

func (t *ImageTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	prompt, err := stringArg(args, "prompt")
	if err != nil {
		return "", err
	}
	negative := optionalStringArg(args, "negative_prompt", "blurry, low quality, distorted")

	if t.cfg.ImageEndpoint == "" {
		return fmt.Sprintf(`Image Generation (simulated)
Prompt: %s
Negative prompt: %s

No image endpoint is configured; set tools.image_endpoint to generate real images.`,
			prompt, negative), nil
	}

	payload, err := json.Marshal(map[string]string{
		"prompt":          prompt,
		"negative_prompt": negative,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode image request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.cfg.ImageEndpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build image request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("image endpoint unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("image endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image response: %w", err)
	}

	if err := os.MkdirAll(t.cfg.ImageOutputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create image output directory: %w", err)
	}
	outPath := filepath.Join(t.cfg.ImageOutputDir, uuid.NewString()+".png")
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	return fmt.Sprintf("Image generated for prompt '%s' and saved to %s (%d bytes)",
		prompt, outPath, len(data)), nil
}
