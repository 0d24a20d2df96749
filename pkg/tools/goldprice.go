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
	"math/rand"
	"time"
)

var goldRates = map[string]float64{
	"USD": 1.0,
	"EUR": 0.92,
	"GBP": 0.79,
	"INR": 83.12,
}

// GoldPriceTool returns a mock spot price quote.
type GoldPriceTool struct{}

func NewGoldPriceTool() *GoldPriceTool {
	return &GoldPriceTool{}
}

func (t *GoldPriceTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        "gold_price",
		Description: "Get live gold market prices in a given currency",
		Parameters: []ToolParameter{
			{
				Name:        "currency",
				Type:        "string",
				Description: "Quote currency",
				Required:    false,
				Default:     "USD",
				Enum:        []string{"USD", "EUR", "GBP", "INR"},
			},
		},
	}
}

func (t *GoldPriceTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	currency := optionalStringArg(args, "currency", "USD")

	rate, ok := goldRates[currency]
	if !ok {
		return "", fmt.Errorf("%w: unsupported currency '%s'", ErrInvalidArgument, currency)
	}

	basePrice := 2050 + (rand.Float64()*100 - 50)
	price := basePrice * rate
	change := rand.Float64()*4 - 2
	changeSign := ""
	if change > 0 {
		changeSign = "+"
	}

	return fmt.Sprintf(`Live Gold Price
Price: %s %.2f per troy ounce
24h Change: %s%.2f%%
Currency: %s
Updated: %s

Note: This is mock data for demonstration purposes.`,
		currency, price, changeSign, change, currency,
		time.Now().Format("2006-01-02 15:04:05")), nil
}
