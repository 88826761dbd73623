package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/voxatu/scribe/pkg/Logger"
)

// HTTPTextToSpeech talks to a generic TTS HTTP service: JSON request
// {text, model, language, voice}, bearer-token auth. The success response
// is the raw audio body, not JSON.
type HTTPTextToSpeech struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *Logger.Logger
}

func NewHTTPTextToSpeech(baseURL, apiKey string, timeout time.Duration, logger *Logger.Logger) *HTTPTextToSpeech {
	return &HTTPTextToSpeech{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type ttsPayload struct {
	Text     string `json:"text"`
	Model    string `json:"model"`
	Language string `json:"language"`
	Voice    string `json:"voice"`
}

// Synthesize implements TextToSpeech.
func (c *HTTPTextToSpeech) Synthesize(ctx context.Context, req TTSRequest) (*TTSResult, error) {
	if req.Text == "" {
		return nil, fmt.Errorf("empty text")
	}

	payload, err := json.Marshal(ttsPayload{
		Text:     req.Text,
		Model:    req.Model,
		Language: req.Language,
		Voice:    req.Voice,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tts payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/synthesize", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "audio/*")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("tts request failed: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read tts response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Errorf("tts service error (status %d, dur=%s): %s", resp.StatusCode, time.Since(start), string(responseBody))
		return nil, &ProviderError{Service: "TTS", StatusCode: resp.StatusCode, Body: string(responseBody)}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}

	c.logger.Debugf("tts audio received (%d bytes, %s, dur=%s)", len(responseBody), contentType, time.Since(start))

	return &TTSResult{Audio: responseBody, ContentType: contentType}, nil
}
