/**
* Name: 			service.go
* Description: 		Upload and text workflows around the analyzers
* Workflow: 		name -> save recording -> analyze -> write report -> index -> notify
 */

package analysis

import (
	"bytes"
	"context"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/apolaki-ghub/Project3/internal/events"
	"github.com/apolaki-ghub/Project3/internal/models"
	"github.com/apolaki-ghub/Project3/internal/storage"
)

// ReportRecorder keeps a history of written reports.
type ReportRecorder interface {
	Add(ctx context.Context, entry *models.ReportEntry) error
}

// Publisher is notified after each report is written.
type Publisher interface {
	Publish(event events.Event)
}

type Timeouts struct {
	Transcribe time.Duration
	Sentiment  time.Duration
	Synthesize time.Duration
	Generate   time.Duration
}

type Options struct {
	Store       *storage.RecordingStore
	Analyzer    Analyzer
	Synthesizer Synthesizer
	Scorer      SentimentScorer
	Index       ReportRecorder
	Publisher   Publisher
	Timeouts    Timeouts
	Logger      *zap.Logger
	Now         func() time.Time
}

// Result describes a completed run: both files exist on disk.
type Result struct {
	Recording string
	Report    string
	Backend   string
	Analysis  *Analysis
}

type Service struct {
	store       *storage.RecordingStore
	analyzer    Analyzer
	synthesizer Synthesizer
	scorer      SentimentScorer
	index       ReportRecorder
	publisher   Publisher
	timeouts    Timeouts
	log         *zap.Logger
	now         func() time.Time
}

func NewService(opts Options) *Service {
	s := &Service{
		store:       opts.Store,
		analyzer:    opts.Analyzer,
		synthesizer: opts.Synthesizer,
		scorer:      opts.Scorer,
		index:       opts.Index,
		publisher:   opts.Publisher,
		timeouts:    opts.Timeouts,
		log:         opts.Logger,
		now:         opts.Now,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *Service) Backend() string {
	return s.analyzer.Backend()
}

// ProcessUpload stores src as a new recording, analyzes it and writes the
// report. The call blocks for the whole external round trip.
func (s *Service) ProcessUpload(ctx context.Context, src io.Reader) (*Result, error) {
	name := storage.RecordingName(s.now())
	path, err := s.store.SaveRecording(name, src)
	if err != nil {
		return nil, stageError(StageStore, err)
	}
	s.log.Info("ProcessUpload(): recording saved", zap.String("recording", name))

	analysis, err := s.analyzer.Analyze(ctx, path)
	if err != nil {
		s.log.Error("ProcessUpload(): analysis failed", zap.String("recording", name), zap.Error(err))
		return nil, withRecording(err, name)
	}

	return s.finish(ctx, name, s.analyzer.Backend(), models.SourceUpload, analysis)
}

// ProcessText synthesizes text into a new recording and scores the text
// itself, not the synthesized audio. The report echoes text as submitted.
func (s *Service) ProcessText(ctx context.Context, text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	if s.synthesizer == nil {
		return nil, stageError(StageSynthesize, ErrSynthesisDisabled)
	}

	audio, err := runStage(ctx, StageSynthesize, s.timeouts.Synthesize, func(ctx context.Context) ([]byte, error) {
		return s.synthesizer.Synthesize(ctx, text)
	})
	if err != nil {
		s.log.Error("ProcessText(): synthesis failed", zap.Error(err))
		return nil, err
	}

	name := storage.RecordingName(s.now())
	if _, err := s.store.SaveRecording(name, bytes.NewReader(audio)); err != nil {
		return nil, stageError(StageStore, err)
	}
	s.log.Info("ProcessText(): synthesized recording saved", zap.String("recording", name), zap.Int("bytes", len(audio)))

	assessment, err := scoreText(ctx, s.scorer, s.timeouts.Sentiment, text)
	if err != nil {
		s.log.Error("ProcessText(): sentiment failed", zap.String("recording", name), zap.Error(err))
		return nil, withRecording(err, name)
	}

	analysis := &Analysis{
		Report:     FormatReport(text, assessment),
		Transcript: text,
		Sentiment:  &assessment,
	}
	return s.finish(ctx, name, BackendTextToSpeech, models.SourceText, analysis)
}

func (s *Service) finish(ctx context.Context, recording, backend, source string, analysis *Analysis) (*Result, error) {
	report, err := s.store.WriteReport(recording, analysis.Report)
	if err != nil {
		return nil, withRecording(stageError(StageStore, err), recording)
	}

	entry := &models.ReportEntry{
		Recording: recording,
		Report:    report,
		Backend:   backend,
		Source:    source,
		Label:     string(analysis.Label()),
		Sentiment: analysis.Sentiment,
		CreatedAt: s.now(),
	}
	if s.index != nil {
		// The report is already on disk; a missing history row is not fatal.
		if err := s.index.Add(ctx, entry); err != nil {
			s.log.Warn("finish(): failed to index report", zap.String("report", report), zap.Error(err))
		}
	}
	if s.publisher != nil {
		s.publisher.Publish(events.NewReportWritten(entry))
	}

	s.log.Info("finish(): report written",
		zap.String("recording", recording),
		zap.String("report", report),
		zap.String("source", source),
		zap.String("label", entry.Label),
	)
	return &Result{Recording: recording, Report: report, Backend: backend, Analysis: analysis}, nil
}
