package analysis

import (
	"context"
	"os"
	"time"

	"github.com/apolaki-ghub/Project3/internal/sentiment"
)

// Backends selectable at deployment time.
const (
	BackendGemini  = "gemini"
	BackendGoogle  = "google"
	BackendWhisper = "whisper"
)

// BackendTextToSpeech tags reports produced from submitted text.
const BackendTextToSpeech = "texttospeech"

const wavMimeType = "audio/wav"

// Transcriber turns a stored recording into text.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
}

// SentimentScorer returns the document sentiment of text.
type SentimentScorer interface {
	AnalyzeSentiment(ctx context.Context, text string) (sentiment.Assessment, error)
}

// Synthesizer renders text as a WAV file.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Generator answers a fixed transcription prompt about the audio in one shot.
type Generator interface {
	Generate(ctx context.Context, audio []byte, mimeType string) (string, error)
}

// Analysis is what an analyzer produced for one recording. Sentiment is nil
// when the backend does not return structured scores.
type Analysis struct {
	Report     string
	Transcript string
	Sentiment  *sentiment.Assessment
}

func (a *Analysis) Label() sentiment.Label {
	if a.Sentiment == nil {
		return ""
	}
	return a.Sentiment.Label()
}

// Analyzer produces the report text for a stored recording.
type Analyzer interface {
	Analyze(ctx context.Context, path string) (*Analysis, error)
	Backend() string
}

// GenerativeAnalyzer delegates transcription and sentiment to a single
// generative call and keeps its answer verbatim.
type GenerativeAnalyzer struct {
	generator Generator
	timeout   time.Duration
}

func NewGenerativeAnalyzer(generator Generator, timeout time.Duration) *GenerativeAnalyzer {
	return &GenerativeAnalyzer{generator: generator, timeout: timeout}
}

func (g *GenerativeAnalyzer) Backend() string { return BackendGemini }

func (g *GenerativeAnalyzer) Analyze(ctx context.Context, path string) (*Analysis, error) {
	audio, err := os.ReadFile(path)
	if err != nil {
		return nil, stageError(StageStore, err)
	}

	text, err := runStage(ctx, StageGenerate, g.timeout, func(ctx context.Context) (string, error) {
		return g.generator.Generate(ctx, audio, wavMimeType)
	})
	if err != nil {
		return nil, err
	}
	return &Analysis{Report: text}, nil
}

// PipelineAnalyzer transcribes first, then scores the transcript.
type PipelineAnalyzer struct {
	backend           string
	transcriber       Transcriber
	scorer            SentimentScorer
	transcribeTimeout time.Duration
	sentimentTimeout  time.Duration
}

func NewPipelineAnalyzer(backend string, transcriber Transcriber, scorer SentimentScorer, transcribeTimeout, sentimentTimeout time.Duration) *PipelineAnalyzer {
	return &PipelineAnalyzer{
		backend:           backend,
		transcriber:       transcriber,
		scorer:            scorer,
		transcribeTimeout: transcribeTimeout,
		sentimentTimeout:  sentimentTimeout,
	}
}

func (p *PipelineAnalyzer) Backend() string { return p.backend }

func (p *PipelineAnalyzer) Analyze(ctx context.Context, path string) (*Analysis, error) {
	transcript, err := runStage(ctx, StageTranscribe, p.transcribeTimeout, func(ctx context.Context) (string, error) {
		return p.transcriber.Transcribe(ctx, path)
	})
	if err != nil {
		return nil, err
	}

	assessment, err := scoreText(ctx, p.scorer, p.sentimentTimeout, transcript)
	if err != nil {
		return nil, err
	}

	return &Analysis{
		Report:     FormatReport(transcript, assessment),
		Transcript: transcript,
		Sentiment:  &assessment,
	}, nil
}

func scoreText(ctx context.Context, scorer SentimentScorer, timeout time.Duration, text string) (sentiment.Assessment, error) {
	if scorer == nil {
		return sentiment.Assessment{}, stageError(StageSentiment, ErrSentimentDisabled)
	}
	return runStage(ctx, StageSentiment, timeout, func(ctx context.Context) (sentiment.Assessment, error) {
		return scorer.AnalyzeSentiment(ctx, text)
	})
}
