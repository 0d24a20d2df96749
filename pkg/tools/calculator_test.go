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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculatorOperations(t *testing.T) {
	calc := NewCalculatorTool()
	ctx := context.Background()

	tests := []struct {
		operation string
		a, b      float64
		want      string
	}{
		{"add", 2, 3, "Result: 2 add 3 = 5"},
		{"subtract", 10, 4, "Result: 10 subtract 4 = 6"},
		{"multiply", 25, 4, "Result: 25 multiply 4 = 100"},
		{"divide", 9, 2, "Result: 9 divide 2 = 4.5"},
	}
	for _, tt := range tests {
		got, err := calc.Execute(ctx, map[string]interface{}{
			"operation": tt.operation,
			"a":         tt.a,
			"b":         tt.b,
		})
		require.NoError(t, err, tt.operation)
		assert.Equal(t, tt.want, got)
	}
}

func TestCalculatorDivideByZero(t *testing.T) {
	calc := NewCalculatorTool()

	_, err := calc.Execute(context.Background(), map[string]interface{}{
		"operation": "divide",
		"a":         1.0,
		"b":         0.0,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCalculatorUnknownOperation(t *testing.T) {
	calc := NewCalculatorTool()

	_, err := calc.Execute(context.Background(), map[string]interface{}{
		"operation": "modulo",
		"a":         1.0,
		"b":         2.0,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCalculatorStringNumbers(t *testing.T) {
	calc := NewCalculatorTool()

	got, err := calc.Execute(context.Background(), map[string]interface{}{
		"operation": "add",
		"a":         "1.5",
		"b":         "2.5",
	})
	require.NoError(t, err)
	assert.Equal(t, "Result: 1.5 add 2.5 = 4", got)
}
