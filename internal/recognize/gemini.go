package recognize

import (
	"context"
	"fmt"
	"os"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini recognizes cover text with a Google Gemini vision model.
// It returns plain text only, no block geometry.
type Gemini struct {
	model string
}

// NewGemini creates a Gemini provider. An empty model falls back to the
// GEMINI_MODEL environment variable, then to a sane default.
func NewGemini(model string) *Gemini {
	if model == "" {
		model = os.Getenv("GEMINI_MODEL")
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &Gemini{model: model}
}

func (g *Gemini) Name() string { return "gemini/" + g.model }

func (g *Gemini) Recognize(ctx context.Context, img []byte) (*Result, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	model.SetTemperature(0) // exact transcription, not creativity

	resp, err := model.GenerateContent(ctx, genai.ImageData("jpeg", img), genai.Text(visionPrompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates returned from gemini")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, fmt.Errorf("empty content returned from gemini")
	}

	txt, ok := candidate.Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response format from gemini")
	}
	return FromText(string(txt)), nil
}
