package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.0-flash"

// TranscriptPrompt asks for the transcript and the sentiment in one response.
const TranscriptPrompt = `
Please provide an exact transcript for the audio, followed by sentiment analysis.

Your response should follow the format:

Text: USERS SPEECH TRANSCRIPTION

Sentiment Analysis: positive|neutral|negative
`

// GeminiClient sends the recording inline to a generative model and returns
// its free text answer untouched.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("NewGeminiClient(): API key is not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("NewGeminiClient(): failed to create client: %w", err)
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiClient{client: client, model: model}, nil
}

// GenerationConfig holds the fixed sampling settings.
func GenerationConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](1),
		TopP:             genai.Ptr[float32](0.95),
		MaxOutputTokens:  8192,
		ResponseMIMEType: "text/plain",
	}
}

func (g *GeminiClient) Generate(ctx context.Context, audio []byte, mimeType string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(TranscriptPrompt),
			genai.NewPartFromBytes(audio, mimeType),
		}, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, GenerationConfig())
	if err != nil {
		return "", fmt.Errorf("GenerateContent failed: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("GenerateContent returned no text")
	}
	return text, nil
}
