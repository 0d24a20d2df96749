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
	"fmt"
	"strconv"
)

// stringArg extracts a required string argument.
func stringArg(args map[string]interface{}, name string) (string, error) {
	v, ok := args[name]
	if !ok {
		return "", fmt.Errorf("%w: missing required argument '%s'", ErrInvalidArgument, name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: argument '%s' must be a string", ErrInvalidArgument, name)
	}
	return s, nil
}

// optionalStringArg extracts an optional string argument with a default.
func optionalStringArg(args map[string]interface{}, name, def string) string {
	if v, ok := args[name]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// numberArg extracts a required numeric argument. JSON numbers arrive as
// float64, but models occasionally quote them.
func numberArg(args map[string]interface{}, name string) (float64, error) {
	v, ok := args[name]
	if !ok {
		return 0, fmt.Errorf("%w: missing required argument '%s'", ErrInvalidArgument, name)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: argument '%s' must be a number", ErrInvalidArgument, name)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: argument '%s' must be a number", ErrInvalidArgument, name)
	}
}

// optionalIntArg extracts an optional integer argument with a default.
func optionalIntArg(args map[string]interface{}, name string, def int) int {
	v, ok := args[name]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
	}
	return def
}

// optionalBoolArg extracts an optional boolean argument with a default.
func optionalBoolArg(args map[string]interface{}, name string, def bool) bool {
	if v, ok := args[name]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}
