package llm

import (
	"context"
	"errors"
	"fmt"

	language "cloud.google.com/go/language/apiv2"
	"cloud.google.com/go/language/apiv2/languagepb"

	"github.com/apolaki-ghub/Project3/internal/sentiment"
)

// SentimentClient scores documents with Cloud Natural Language.
type SentimentClient struct {
	client *language.Client
}

func NewSentimentClient(ctx context.Context, opts GoogleOptions) (*SentimentClient, error) {
	client, err := language.NewClient(ctx, opts.clientOptions()...)
	if err != nil {
		return nil, fmt.Errorf("NewSentimentClient(): failed to create language client: %w", err)
	}
	return &SentimentClient{client: client}, nil
}

func SentimentRequest(text string) *languagepb.AnalyzeSentimentRequest {
	return &languagepb.AnalyzeSentimentRequest{
		Document: &languagepb.Document{
			Type:         languagepb.Document_PLAIN_TEXT,
			Source:       &languagepb.Document_Content{Content: text},
			LanguageCode: "en",
		},
		EncodingType: languagepb.EncodingType_UTF8,
	}
}

func (s *SentimentClient) AnalyzeSentiment(ctx context.Context, text string) (sentiment.Assessment, error) {
	resp, err := s.client.AnalyzeSentiment(ctx, SentimentRequest(text))
	if err != nil {
		return sentiment.Assessment{}, fmt.Errorf("AnalyzeSentiment failed: %w", err)
	}
	doc := resp.GetDocumentSentiment()
	if doc == nil {
		return sentiment.Assessment{}, errors.New("AnalyzeSentiment returned no document sentiment")
	}
	return sentiment.Assessment{
		Score:     float64(doc.GetScore()),
		Magnitude: float64(doc.GetMagnitude()),
	}, nil
}

func (s *SentimentClient) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
