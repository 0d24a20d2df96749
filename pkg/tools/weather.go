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

var weatherConditions = []string{"Sunny", "Cloudy", "Partly Cloudy", "Rainy", "Overcast"}

// WeatherTool returns mock weather data. It exists so the orchestration
// loop has a deterministic-shaped tool to call without network access.
type WeatherTool struct{}

func NewWeatherTool() *WeatherTool {
	return &WeatherTool{}
}

func (t *WeatherTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        "weather",
		Description: "Get weather information for a city",
		Parameters: []ToolParameter{
			{
				Name:        "city",
				Type:        "string",
				Description: "City name",
				Required:    true,
			},
			{
				Name:        "units",
				Type:        "string",
				Description: "Temperature units",
				Required:    false,
				Default:     "celsius",
				Enum:        []string{"celsius", "fahrenheit"},
			},
		},
	}
}

func (t *WeatherTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	city, err := stringArg(args, "city")
	if err != nil {
		return "", err
	}
	units := optionalStringArg(args, "units", "celsius")

	tempC := 15 + rand.Intn(16)
	tempF := tempC*9/5 + 32
	condition := weatherConditions[rand.Intn(len(weatherConditions))]
	humidity := 40 + rand.Intn(41)
	wind := 5 + rand.Intn(21)

	temp, unitSymbol := tempC, "°C"
	if units == "fahrenheit" {
		temp, unitSymbol = tempF, "°F"
	}

	return fmt.Sprintf(`Weather in %s:
Temperature: %d%s
Condition: %s
Humidity: %d%%
Wind Speed: %d km/h
Updated: %s

Note: This is mock data for demonstration purposes.`,
		city, temp, unitSymbol, condition, humidity, wind,
		time.Now().Format("2006-01-02 15:04:05")), nil
}
