package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// WhisperClient transcribes recordings with the OpenAI audio API.
type WhisperClient struct {
	client *openai.Client
}

func NewWhisperClient(apiKey string) (*WhisperClient, error) {
	if apiKey == "" {
		return nil, errors.New("NewWhisperClient(): API key is not set")
	}
	return &WhisperClient{client: openai.NewClient(apiKey)}, nil
}

func (w *WhisperClient) Transcribe(ctx context.Context, path string) (string, error) {
	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: path,
		Language: "en",
	})
	if err != nil {
		return "", fmt.Errorf("whisper transcription failed: %w", err)
	}
	return resp.Text, nil
}
