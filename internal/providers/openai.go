package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/voxatu/scribe/pkg/Logger"
)

// OpenAIProvider backs both capabilities with the OpenAI API: Whisper for
// transcription, tts-1 for synthesis. Selected when a provider backend is
// configured as "openai".
type OpenAIProvider struct {
	client openai.Client
	logger *Logger.Logger
}

func NewOpenAIProvider(apiKey string, logger *Logger.Logger) *OpenAIProvider {
	return &OpenAIProvider{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		logger: logger,
	}
}

// Transcribe implements SpeechToText.
func (p *OpenAIProvider) Transcribe(ctx context.Context, req STTRequest) (*STTResult, error) {
	resp, err := p.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:     openai.File(req.Audio, req.Filename, "application/octet-stream"),
		Model:    openai.AudioModelWhisper1,
		Language: openai.String(req.Language),
	})
	if err != nil {
		return nil, fmt.Errorf("openai transcription failed: %w", err)
	}

	raw := map[string]any{}
	if err := json.Unmarshal([]byte(resp.RawJSON()), &raw); err != nil {
		raw = map[string]any{"text": resp.Text}
	}

	return &STTResult{Text: resp.Text, Raw: raw}, nil
}

// Synthesize implements TextToSpeech.
func (p *OpenAIProvider) Synthesize(ctx context.Context, req TTSRequest) (*TTSResult, error) {
	model := openai.SpeechModelTTS1
	if req.Model == "tts-1-hd" {
		model = openai.SpeechModelTTS1HD
	}

	resp, err := p.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          model,
		Input:          req.Text,
		Voice:          openaiVoice(req.Voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	})
	if err != nil {
		return nil, fmt.Errorf("openai speech synthesis failed: %w", err)
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read openai audio body: %w", err)
	}

	p.logger.Debugf("openai tts audio received (%d bytes)", len(audio))

	return &TTSResult{Audio: audio, ContentType: "audio/mpeg"}, nil
}

// openaiVoice maps a requested voice onto OpenAI's fixed voice set; voice
// ids from other vendors fall back to alloy.
func openaiVoice(voice string) openai.AudioSpeechNewParamsVoice {
	switch strings.ToLower(voice) {
	case "alloy", "ash", "coral", "echo", "fable", "onyx", "nova", "sage", "shimmer":
		return openai.AudioSpeechNewParamsVoice(strings.ToLower(voice))
	default:
		return openai.AudioSpeechNewParamsVoiceAlloy
	}
}
