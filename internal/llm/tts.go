/**
* Name: 			tts.go
* Description: 		Cloud Text-to-Speech synthesis
* Workflow: 		text -> LINEAR16 WAV bytes
 */

package llm

import (
	"context"
	"fmt"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"go.uber.org/zap"
)

type SpeechSynthesizer struct {
	client *texttospeech.Client
	log    *zap.Logger
}

func NewSpeechSynthesizer(ctx context.Context, opts GoogleOptions, log *zap.Logger) (*SpeechSynthesizer, error) {
	client, err := texttospeech.NewClient(ctx, opts.clientOptions()...)
	if err != nil {
		return nil, fmt.Errorf("NewSpeechSynthesizer(): failed to create TTS client: %w", err)
	}
	return &SpeechSynthesizer{client: client, log: log}, nil
}

func SynthesizeRequest(text string) *texttospeechpb.SynthesizeSpeechRequest {
	return &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: LanguageCode,
			SsmlGender:   texttospeechpb.SsmlVoiceGender_NEUTRAL,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_LINEAR16,
		},
	}
}

// Synthesize returns a complete WAV file; LINEAR16 output carries its header.
func (s *SpeechSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	resp, err := s.client.SynthesizeSpeech(ctx, SynthesizeRequest(text))
	if err != nil {
		return nil, fmt.Errorf("SynthesizeSpeech failed: %w", err)
	}
	s.log.Debug("Synthesize(): speech synthesized", zap.Int("bytes", len(resp.GetAudioContent())))
	return resp.GetAudioContent(), nil
}

func (s *SpeechSynthesizer) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
