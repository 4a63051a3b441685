package storyteller

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
)

func TestResponseText(t *testing.T) {
	t.Run("Concatenates text parts of the first candidate", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("X ||| "), genai.Text("Y ||| Z")}}},
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("ignored")}}},
			},
		}

		assert.Equal(t, "X ||| Y ||| Z", responseText(resp))
	})

	t.Run("Empty when there is nothing to read", func(t *testing.T) {
		assert.Empty(t, responseText(nil))
		assert.Empty(t, responseText(&genai.GenerateContentResponse{}))
		assert.Empty(t, responseText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}))
	})
}
