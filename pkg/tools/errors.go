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
	"errors"
	"fmt"
	"os"
)

// ErrInvalidArgument marks handler failures caused by a missing or
// malformed argument. Handlers wrap it so the dispatcher can classify.
var ErrInvalidArgument = errors.New("invalid argument")

// ToolNotFoundError reports a tool name with no registered handler.
type ToolNotFoundError struct {
	Name string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("tool %s not found", e.Name)
}

// classifyError maps a handler error to a short user-facing category.
// The category is prefixed to the message fed back to the model.
func classifyError(err error) string {
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return "invalid-argument"
	case errors.Is(err, os.ErrNotExist):
		return "not-found"
	case errors.Is(err, os.ErrPermission):
		return "permission"
	default:
		return "unknown"
	}
}
