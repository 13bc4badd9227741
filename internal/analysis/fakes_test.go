package analysis

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/apolaki-ghub/Project3/internal/events"
	"github.com/apolaki-ghub/Project3/internal/models"
	"github.com/apolaki-ghub/Project3/internal/sentiment"
)

type fakeTranscriber struct {
	transcript string
	err        error
	block      bool
	gotAudio   []byte
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	f.gotAudio = data
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.transcript, f.err
}

type fakeScorer struct {
	assessment sentiment.Assessment
	err        error
	gotText    string
}

func (f *fakeScorer) AnalyzeSentiment(_ context.Context, text string) (sentiment.Assessment, error) {
	f.gotText = text
	return f.assessment, f.err
}

type fakeSynthesizer struct {
	audio   []byte
	err     error
	gotText string
}

func (f *fakeSynthesizer) Synthesize(_ context.Context, text string) ([]byte, error) {
	f.gotText = text
	return f.audio, f.err
}

type fakeGenerator struct {
	text        string
	err         error
	gotAudio    []byte
	gotMimeType string
}

func (f *fakeGenerator) Generate(_ context.Context, audio []byte, mimeType string) (string, error) {
	f.gotAudio = audio
	f.gotMimeType = mimeType
	return f.text, f.err
}

type fakeIndex struct {
	entries []models.ReportEntry
	err     error
}

func (f *fakeIndex) Add(_ context.Context, entry *models.ReportEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, *entry)
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (f *fakePublisher) Publish(event events.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

var errBoom = errors.New("boom")
