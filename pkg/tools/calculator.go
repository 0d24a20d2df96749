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
	"strconv"
)

// CalculatorTool performs basic arithmetic.
type CalculatorTool struct{}

func NewCalculatorTool() *CalculatorTool {
	return &CalculatorTool{}
}

func (t *CalculatorTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        "calculator",
		Description: "Perform arithmetic operations (add, subtract, multiply, divide)",
		Parameters: []ToolParameter{
			{
				Name:        "operation",
				Type:        "string",
				Description: "The operation to perform",
				Required:    true,
				Enum:        []string{"add", "subtract", "multiply", "divide"},
			},
			{
				Name:        "a",
				Type:        "number",
				Description: "First operand",
				Required:    true,
			},
			{
				Name:        "b",
				Type:        "number",
				Description: "Second operand",
				Required:    true,
			},
		},
	}
}

func (t *CalculatorTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	operation, err := stringArg(args, "operation")
	if err != nil {
		return "", err
	}
	a, err := numberArg(args, "a")
	if err != nil {
		return "", err
	}
	b, err := numberArg(args, "b")
	if err != nil {
		return "", err
	}

	var result float64
	switch operation {
	case "add":
		result = a + b
	case "subtract":
		result = a - b
	case "multiply":
		result = a * b
	case "divide":
		if b == 0 {
			return "", fmt.Errorf("%w: division by zero", ErrInvalidArgument)
		}
		result = a / b
	default:
		return "", fmt.Errorf("%w: unknown operation '%s'", ErrInvalidArgument, operation)
	}

	return fmt.Sprintf("Result: %s %s %s = %s",
		formatNumber(a), operation, formatNumber(b), formatNumber(result)), nil
}

// formatNumber renders integers without a trailing ".0" so model feedback
// stays readable.
func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
