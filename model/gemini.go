// Copyright 2025 Google LLC
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

// Package model adapts LLM backends to the runner's Generator interface.
package model

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiGenerator produces responses from the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string

	temperature     float32
	maxOutputTokens int32
}

// GeminiOption configures a GeminiGenerator.
type GeminiOption func(*GeminiGenerator)

// WithTemperature sets the sampling temperature.
func WithTemperature(t float32) GeminiOption {
	return func(g *GeminiGenerator) { g.temperature = t }
}

// WithMaxOutputTokens caps the response length.
func WithMaxOutputTokens(n int32) GeminiOption {
	return func(g *GeminiGenerator) { g.maxOutputTokens = n }
}

// NewGeminiGenerator creates a generator for the named model. cfg may be
// nil, in which case credentials come from the environment.
func NewGeminiGenerator(ctx context.Context, model string, cfg *genai.ClientConfig, opts ...GeminiOption) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	g := &GeminiGenerator{
		client:          client,
		model:           model,
		temperature:     0.1,
		maxOutputTokens: 1024,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Model returns the configured model name.
func (g *GeminiGenerator) Model() string {
	return g.model
}

// Generate implements runner.Generator.
func (g *GeminiGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	temperature := g.temperature
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: g.maxOutputTokens,
	}
	if systemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	contents := []*genai.Content{
		genai.NewContentFromText(userPrompt, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no candidates returned by model %s", g.model)
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	return b.String(), nil
}
