// Package llm provides the LLM-backed Disney character search.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/disneybound/disneyboundbackend/models"
)

const searchPrompt = `You are a Disney character expert helping people plan Disneybound outfits.

Given a search query, identify the Disney character it refers to. Queries may be
exact names, nicknames, misspellings, or descriptions ("the frozen queen").

Return ONLY a valid JSON object, no other text, with this shape:
{
  "found": true,
  "name": "Canonical character name",
  "movie": "Movie or show title, with release year in parentheses",
  "category": "One of: Princess, Villain, Hero, Sidekick, Fairy, Animal, Other",
  "description": "One or two sentences about the character",
  "colors": [
    {"name": "Color name", "hex": "#RRGGBB", "usage": "What the character wears it as"}
  ]
}

If the query does not refer to any Disney character, return {"found": false}.`

// CharacterSearcher resolves a free-text query to a structured character result.
type CharacterSearcher interface {
	SearchCharacter(ctx context.Context, query string) (*models.CharacterResult, error)
}

// Client implements CharacterSearcher using OpenAI chat completions.
type Client struct {
	client        *openai.Client
	model         string
	keyConfigured bool
}

// NewClient creates a new OpenAI-backed character search client. A missing
// API key is tolerated here so the server still starts; each search then
// fails with a per-request error instead.
func NewClient(apiKey, model string) *Client {
	return &Client{
		client:        openai.NewClient(apiKey),
		model:         model,
		keyConfigured: apiKey != "",
	}
}

// SearchCharacter asks the model to resolve the query to a Disney character.
// The raw, as-typed query is sent; normalization is a cache concern.
func (c *Client) SearchCharacter(ctx context.Context, query string) (*models.CharacterResult, error) {
	if !c.keyConfigured {
		return nil, errors.New("OpenAI API key is not configured")
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: searchPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: query,
			},
		},
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("calling OpenAI: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("no response from OpenAI")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)

	var result models.CharacterResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("parsing character JSON: %w (response: %s)", err, content)
	}

	return &result, nil
}

// cleanJSONResponse removes markdown code blocks if present.
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}

	return strings.TrimSpace(content)
}
