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
	"strings"
	"time"
)

// EmailTool simulates sending an email. No SMTP connection is made; the
// tool reports the message it would have delivered.
type EmailTool struct{}

func NewEmailTool() *EmailTool {
	return &EmailTool{}
}

func (t *EmailTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        "send_email",
		Description: "Send an email to a recipient (simulated delivery)",
		Parameters: []ToolParameter{
			{
				Name:        "to",
				Type:        "string",
				Description: "Recipient address",
				Required:    true,
			},
			{
				Name:        "subject",
				Type:        "string",
				Description: "Email subject",
				Required:    true,
			},
			{
				Name:        "body",
				Type:        "string",
				Description: "Email body",
				Required:    true,
			},
		},
	}
}

func (t *EmailTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	to, err := stringArg(args, "to")
	if err != nil {
		return "", err
	}
	subject, err := stringArg(args, "subject")
	if err != nil {
		return "", err
	}
	body, err := stringArg(args, "body")
	if err != nil {
		return "", err
	}

	if !strings.Contains(to, "@") {
		return "", fmt.Errorf("%w: '%s' is not a valid email address", ErrInvalidArgument, to)
	}

	preview := body
	if len(preview) > 100 {
		preview = preview[:100] + "..."
	}

	return fmt.Sprintf(`Email Sent Successfully
To: %s
Subject: %s
Sent: %s

Message Preview:
%s

Status: Delivered (simulated)`,
		to, subject, time.Now().Format("2006-01-02 15:04:05"), preview), nil
}
