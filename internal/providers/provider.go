package providers

import (
	"context"
	"fmt"
	"io"
)

// STTRequest carries one audio payload to a speech-to-text service.
type STTRequest struct {
	Audio    io.Reader
	Filename string
	Model    string
	Language string
}

// STTResult is a successful transcription. Raw keeps the full decoded
// provider response for the record's metadata.
type STTResult struct {
	Text string
	Raw  map[string]any
}

// TTSRequest carries one synthesis request to a text-to-speech service.
type TTSRequest struct {
	Text     string
	Model    string
	Language string
	Voice    string
}

// TTSResult is the synthesized audio payload.
type TTSResult struct {
	Audio       []byte
	ContentType string
}

// SpeechToText converts audio to transcript text.
type SpeechToText interface {
	Transcribe(ctx context.Context, req STTRequest) (*STTResult, error)
}

// TextToSpeech synthesizes audio from text.
type TextToSpeech interface {
	Synthesize(ctx context.Context, req TTSRequest) (*TTSResult, error)
}

// ProviderError is a non-success response from an external speech service.
// The remote status and body are kept for diagnostics.
type ProviderError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s API request failed: status %d: %s", e.Service, e.StatusCode, e.Body)
}
