package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/voxatu/scribe/pkg/Logger"
)

// HTTPSpeechToText talks to a generic STT HTTP service: multipart upload of
// the audio file plus {model, language} fields, bearer-token auth, JSON
// response carrying at least a "text" key.
type HTTPSpeechToText struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *Logger.Logger
}

func NewHTTPSpeechToText(baseURL, apiKey string, timeout time.Duration, logger *Logger.Logger) *HTTPSpeechToText {
	return &HTTPSpeechToText{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Transcribe implements SpeechToText.
func (c *HTTPSpeechToText) Transcribe(ctx context.Context, req STTRequest) (*STTResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", req.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, req.Audio); err != nil {
		return nil, fmt.Errorf("failed to write audio data: %w", err)
	}
	if err := writer.WriteField("model", req.Model); err != nil {
		return nil, fmt.Errorf("failed to write model field: %w", err)
	}
	if err := writer.WriteField("language", req.Language); err != nil {
		return nil, fmt.Errorf("failed to write language field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/transcribe", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("stt request failed: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read stt response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Errorf("stt service error (status %d): %s", resp.StatusCode, string(responseBody))
		return nil, &ProviderError{Service: "STT", StatusCode: resp.StatusCode, Body: string(responseBody)}
	}

	raw := map[string]any{}
	if err := json.Unmarshal(responseBody, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode stt response: %w", err)
	}

	text, _ := raw["text"].(string)
	c.logger.Debugf("stt transcription received (%d chars)", len(text))

	return &STTResult{Text: text, Raw: raw}, nil
}
