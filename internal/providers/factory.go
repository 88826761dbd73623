package providers

import (
	"fmt"

	"github.com/voxatu/scribe/internal/config"
	"github.com/voxatu/scribe/pkg/Logger"
)

// NewSpeechToText creates an STT provider from configuration.
// Defaults to the generic HTTP backend.
func NewSpeechToText(cfg config.ProviderConfig, logger *Logger.Logger) (SpeechToText, error) {
	switch cfg.Backend {
	case "", "http":
		return NewHTTPSpeechToText(cfg.BaseURL, cfg.APIKey, cfg.Timeout(), logger), nil
	case "openai":
		return NewOpenAIProvider(cfg.APIKey, logger), nil
	default:
		return nil, fmt.Errorf("unsupported stt backend: %s. Supported: http, openai", cfg.Backend)
	}
}

// NewTextToSpeech creates a TTS provider from configuration.
func NewTextToSpeech(cfg config.ProviderConfig, logger *Logger.Logger) (TextToSpeech, error) {
	switch cfg.Backend {
	case "", "http":
		return NewHTTPTextToSpeech(cfg.BaseURL, cfg.APIKey, cfg.Timeout(), logger), nil
	case "openai":
		return NewOpenAIProvider(cfg.APIKey, logger), nil
	default:
		return nil, fmt.Errorf("unsupported tts backend: %s. Supported: http, openai", cfg.Backend)
	}
}
