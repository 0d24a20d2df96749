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
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/sidekick-dev/sidekick/pkg/httpclient"
)

const (
	webFetchTimeout     = 10 * time.Second
	maxWebResponseBytes = 4 << 20
	maxExtractedChars   = 8000
)

var (
	scriptStyleRe = regexp.MustCompile(`(?is)<(script|style|nav|footer|header)[^>]*>.*?</(script|style|nav|footer|header)>`)
	tagRe         = regexp.MustCompile(`(?s)<[^>]+>`)
	hrefRe        = regexp.MustCompile(`(?i)<a[^>]+href=["']([^"'#][^"']*)["']`)
	titleRe       = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	blankLinesRe  = regexp.MustCompile(`\n{3,}`)
)

// WebExtractTextTool fetches a URL and returns its readable text.
type WebExtractTextTool struct {
	client *httpclient.Client
}

// WebGetLinksTool fetches a URL and lists the hyperlinks it contains.
type WebGetLinksTool struct {
	client *httpclient.Client
}

func newWebClient() *httpclient.Client {
	return httpclient.New(
		httpclient.WithHTTPClient(&http.Client{Timeout: webFetchTimeout}),
		httpclient.WithMaxRetries(2),
	)
}

func NewWebExtractTextTool() *WebExtractTextTool {
	return &WebExtractTextTool{client: newWebClient()}
}

func NewWebGetLinksTool() *WebGetLinksTool {
	return &WebGetLinksTool{client: newWebClient()}
}

func (t *WebExtractTextTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        "web_extract_text",
		Description: "Fetch a web page and extract its readable text content",
		Parameters: []ToolParameter{
			{
				Name:        "url",
				Type:        "string",
				Description: "URL of the page to fetch",
				Required:    true,
			},
		},
	}
}

func (t *WebExtractTextTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	rawURL, err := stringArg(args, "url")
	if err != nil {
		return "", err
	}

	body, err := fetchPage(ctx, t.client, rawURL)
	if err != nil {
		return "", err
	}

	title := "No title"
	if m := titleRe.FindStringSubmatch(body); m != nil {
		title = strings.TrimSpace(m[1])
	}

	text := stripHTML(body)
	if len(text) > maxExtractedChars {
		text = text[:maxExtractedChars] + "\n... (truncated)"
	}

	return fmt.Sprintf("Title: %s\nURL: %s\n\n%s", title, rawURL, text), nil
}

func (t *WebGetLinksTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        "web_get_links",
		Description: "Fetch a web page and list the hyperlinks it contains",
		Parameters: []ToolParameter{
			{
				Name:        "url",
				Type:        "string",
				Description: "URL of the page to fetch",
				Required:    true,
			},
		},
	}
}

func (t *WebGetLinksTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	rawURL, err := stringArg(args, "url")
	if err != nil {
		return "", err
	}

	body, err := fetchPage(ctx, t.client, rawURL)
	if err != nil {
		return "", err
	}

	base, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: invalid url '%s'", ErrInvalidArgument, rawURL)
	}

	seen := make(map[string]bool)
	var links []string
	for _, m := range hrefRe.FindAllStringSubmatch(body, -1) {
		ref, err := url.Parse(m[1])
		if err != nil {
			continue
		}
		abs := base.ResolveReference(ref).String()
		if seen[abs] {
			continue
		}
		seen[abs] = true
		links = append(links, abs)
	}

	if len(links) == 0 {
		return fmt.Sprintf("No links found on %s", rawURL), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d link(s) on %s:\n", len(links), rawURL)
	for i, link := range links {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, link)
	}
	return sb.String(), nil
}

func fetchPage(ctx context.Context, client *httpclient.Client, rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", fmt.Errorf("%w: url must be http(s), got '%s'", ErrInvalidArgument, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch of %s returned status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxWebResponseBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	return string(body), nil
}

// stripHTML removes markup and collapses whitespace. A regexp pass is
// enough for feedback text fed to a model; this is not a DOM parser.
func stripHTML(body string) string {
	text := scriptStyleRe.ReplaceAllString(body, " ")
	text = tagRe.ReplaceAllString(text, "\n")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return blankLinesRe.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
}
