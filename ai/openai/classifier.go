// Copyright 2025 Poiesic Systems
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


package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goccy/go-json"
	"github.com/poiesic/tweetlabel/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Classifier implements ai.Classifier using OpenAI-compatible chat APIs.
type Classifier struct {
	client llms.Model
	logger *slog.Logger
}

// verdict is the JSON object the model is asked to produce.
type verdict struct {
	Political *bool `json:"political"`
}

// newClassifier is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newClassifier(config *ai.Config) (*Classifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ClassifierHost),
		openai.WithToken(token(config)),
		openai.WithModel(config.ClassifierModel),
		openai.WithResponseFormat(classificationResponseFormat),
	)
	if err != nil {
		return nil, err
	}

	return &Classifier{
		client: client,
		logger: slog.Default().With("component", "openai-classifier"),
	}, nil
}

// NewClassifier creates a new classifier using the provided configuration.
//
// Returns ai.Classifier interface to enforce abstraction.
func NewClassifier(config *ai.Config) (ai.Classifier, error) {
	return newClassifier(config)
}

// Classify asks the model whether the tweet text is political.
// The model is called exactly once; an unusable answer is a failure, not a
// reason to ask again.
func (c *Classifier) Classify(ctx context.Context, text string) (bool, error) {
	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, classificationPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, text),
	}

	response, err := c.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		c.logger.Debug("failed to generate content", "err", err)
		return false, fmt.Errorf("%w: %w", ai.ErrClassification, err)
	}

	if len(response.Choices) < 1 {
		return false, fmt.Errorf("%w: %w: no choices returned", ai.ErrClassification, ai.ErrMalformedResponse)
	}

	political, err := parseVerdict(response.Choices[0].Content)
	if err != nil {
		c.logger.Debug("error parsing classifier response",
			"response", response.Choices[0].Content,
			"err", err)
		return false, fmt.Errorf("%w: %w", ai.ErrClassification, err)
	}

	return political, nil
}

// parseVerdict extracts the boolean from a model answer, tolerating code
// fences and unquoted keys.
func parseVerdict(raw string) (bool, error) {
	responseText := strings.TrimSpace(raw)
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")
	responseText = strings.TrimSpace(responseText)

	responseText = repairJSON(responseText)

	var v verdict
	if err := json.Unmarshal([]byte(responseText), &v); err != nil {
		return false, fmt.Errorf("%w: %w", ai.ErrMalformedResponse, err)
	}
	if v.Political == nil {
		return false, fmt.Errorf("%w: missing field \"political\"", ai.ErrMalformedResponse)
	}
	return *v.Political, nil
}

// token returns the configured API key, or a placeholder for local
// OpenAI-compatible services that don't require authentication.
func token(config *ai.Config) string {
	if config.Token == "" {
		return "none"
	}
	return config.Token
}
