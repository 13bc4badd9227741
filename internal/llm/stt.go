/**
* Name: 			stt.go
* Description: 		Cloud Speech-to-Text long running recognition
* Workflow: 		read recording, start operation, wait, join transcripts
 */

package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"go.uber.org/zap"
)

type SpeechRecognizer struct {
	client *speech.Client
	log    *zap.Logger
}

func NewSpeechRecognizer(ctx context.Context, opts GoogleOptions, log *zap.Logger) (*SpeechRecognizer, error) {
	client, err := speech.NewClient(ctx, opts.clientOptions()...)
	if err != nil {
		return nil, fmt.Errorf("NewSpeechRecognizer(): failed to create speech client: %w", err)
	}
	return &SpeechRecognizer{client: client, log: log}, nil
}

// RecognitionConfig is the fixed configuration used for uploaded recordings.
// Encoding and sample rate are left unset so the service reads them from the
// WAV header.
func RecognitionConfig() *speechpb.RecognitionConfig {
	return &speechpb.RecognitionConfig{
		LanguageCode:          LanguageCode,
		AudioChannelCount:     1,
		EnableWordConfidence:  true,
		EnableWordTimeOffsets: true,
		Model:                 "default",
	}
}

// Transcribe blocks until the operation completes or ctx is done.
func (r *SpeechRecognizer) Transcribe(ctx context.Context, path string) (string, error) {
	audio, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read recording: %w", err)
	}

	op, err := r.client.LongRunningRecognize(ctx, &speechpb.LongRunningRecognizeRequest{
		Config: RecognitionConfig(),
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to start recognition: %w", err)
	}
	r.log.Debug("Transcribe(): recognition started", zap.String("operation", op.Name()))

	resp, err := op.Wait(ctx)
	if err != nil {
		return "", fmt.Errorf("recognition failed: %w", err)
	}
	return JoinTranscripts(resp.GetResults()), nil
}

// JoinTranscripts keeps the top alternative of every result, one per line.
func JoinTranscripts(results []*speechpb.SpeechRecognitionResult) string {
	lines := make([]string, 0, len(results))
	for _, result := range results {
		alternatives := result.GetAlternatives()
		if len(alternatives) == 0 {
			continue
		}
		lines = append(lines, alternatives[0].GetTranscript())
	}
	return strings.Join(lines, "\n")
}

func (r *SpeechRecognizer) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
