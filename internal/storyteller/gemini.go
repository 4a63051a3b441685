package storyteller

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var ErrEmptyResponse = errors.New("gemini returned an empty response")

// GeminiCompleter sends prompts to Google Gemini. The client is built per call
// because every narrator brings their own API key.
type GeminiCompleter struct {
	model string
}

func NewGeminiCompleter(model string) *GeminiCompleter {
	return &GeminiCompleter{model: model}
}

func (that *GeminiCompleter) Complete(ctx context.Context, credential, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(credential))
	if err != nil {
		return "", fmt.Errorf("could not create gemini client: %w", err)
	}
	defer client.Close()

	resp, err := client.GenerativeModel(that.model).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}

	return text, nil
}

// responseText - concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}

	return text.String()
}
