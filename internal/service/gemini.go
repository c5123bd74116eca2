package service

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/pageza/fridge-inventory/backend/internal/types"
)

var suggestionSchema = &genai.Schema{
	Type:        genai.TypeObject,
	Description: "Recipe ideas built from the available products.",
	Required:    []string{"recipes"},
	Properties: map[string]*genai.Schema{
		"recipes": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type:     genai.TypeObject,
				Required: []string{"name", "description", "ingredients"},
				Properties: map[string]*genai.Schema{
					"name": {
						Type:        genai.TypeString,
						Description: "The name of the recipe.",
					},
					"description": {
						Type:        genai.TypeString,
						Description: "A short description of the recipe.",
					},
					"ingredients": {
						Type:        genai.TypeArray,
						Description: "Product names the recipe needs.",
						Items:       &genai.Schema{Type: genai.TypeString},
					},
				},
			},
		},
	},
}

// GeminiGenerator uses Gemini structured output.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, apiKey, model, baseURL string) (*GeminiGenerator, error) {
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, productNames []string) ([]types.RecipeSuggestion, error) {
	res, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{
		genai.NewContentFromText(SuggestionPrompt(productNames), genai.RoleUser),
	}, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   suggestionSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil ||
		len(res.Candidates[0].Content.Parts) == 0 || res.Candidates[0].Content.Parts[0].Text == "" {
		return nil, errEmptyCompletion
	}
	return ParseSuggestions(res.Candidates[0].Content.Parts[0].Text)
}
