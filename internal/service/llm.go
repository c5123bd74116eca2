package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"github.com/tidwall/gjson"

	"github.com/pageza/fridge-inventory/backend/config"
	"github.com/pageza/fridge-inventory/backend/internal/types"
)

const suggestionPrompt = "Generate multiple different recipes that can use some of the following products: "

const suggestionFormat = `Respond with a JSON object of the form ` +
	`{"recipes":[{"name":"...","description":"...","ingredients":["..."]}]}. ` +
	`Every ingredient is a plain product name. Do not add any other keys or text.`

var errEmptyCompletion = errors.New("model returned no content")

// SuggestionPrompt builds the user prompt sent to every generator backend.
func SuggestionPrompt(productNames []string) string {
	return suggestionPrompt + strings.Join(productNames, ",")
}

// NewGenerator builds the generator selected by cfg.LLMProvider.
func NewGenerator(ctx context.Context, cfg *config.Config) (Generator, error) {
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		return NewGeminiGenerator(ctx, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMBaseURL)
	case config.ProviderDeepSeek:
		return NewOpenAIGenerator(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMModel), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.LLMProvider)
	}
}

// OpenAIGenerator talks to any OpenAI compatible chat completions endpoint, DeepSeek by default.
type OpenAIGenerator struct {
	client openai.Client
	model  string
}

func NewOpenAIGenerator(apiKey, baseURL, model string, opts ...option.RequestOption) *OpenAIGenerator {
	base := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		base = append(base, option.WithBaseURL(baseURL))
	}
	return &OpenAIGenerator{
		client: openai.NewClient(append(base, opts...)...),
		model:  model,
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, productNames []string) ([]types.RecipeSuggestion, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(suggestionFormat),
			openai.UserMessage(SuggestionPrompt(productNames)),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, errEmptyCompletion
	}
	return ParseSuggestions(resp.Choices[0].Message.Content)
}

// ParseSuggestions extracts recipes from a model reply. Code fences and text
// around the JSON object are tolerated.
func ParseSuggestions(content string) ([]types.RecipeSuggestion, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("no JSON object in model reply")
	}
	raw := content[start : end+1]
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("invalid JSON in model reply")
	}

	recipes := gjson.Get(raw, "recipes")
	if !recipes.IsArray() {
		return nil, fmt.Errorf("model reply has no recipes array")
	}

	suggestions := []types.RecipeSuggestion{}
	for _, r := range recipes.Array() {
		name := strings.TrimSpace(r.Get("name").String())
		if name == "" {
			continue
		}
		ingredients := []string{}
		for _, ing := range r.Get("ingredients").Array() {
			if s := strings.TrimSpace(ing.String()); s != "" {
				ingredients = append(ingredients, s)
			}
		}
		suggestions = append(suggestions, types.RecipeSuggestion{
			Name:         name,
			Description:  r.Get("description").String(),
			ProductNames: ingredients,
		})
	}
	return suggestions, nil
}
