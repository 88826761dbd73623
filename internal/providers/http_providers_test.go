package providers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/voxatu/scribe/internal/config"
	"github.com/voxatu/scribe/pkg/Logger"
)

func testLogger() *Logger.Logger {
	return Logger.New(true)
}

func sttConfig(backend string) config.ProviderConfig {
	return config.ProviderConfig{
		Backend: backend,
		BaseURL: "http://localhost:9000",
		APIKey:  "k",
	}
}

func TestHTTPSpeechToTextTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/transcribe" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer secret" {
			t.Errorf("Unexpected auth header %q", auth)
		}

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("Expected multipart body: %v", err)
		}
		if got := r.FormValue("model"); got != "openai/whisper-base" {
			t.Errorf("Expected model field, got %q", got)
		}
		if got := r.FormValue("language"); got != "en" {
			t.Errorf("Expected language field, got %q", got)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("Expected file part: %v", err)
		}
		defer file.Close()
		if header.Filename != "meeting.wav" {
			t.Errorf("Expected filename meeting.wav, got %s", header.Filename)
		}
		audio, _ := io.ReadAll(file)
		if string(audio) != "pcm" {
			t.Errorf("Expected audio bytes, got %q", string(audio))
		}

		json.NewEncoder(w).Encode(map[string]any{
			"text":     "hello world",
			"duration": 2.4,
		})
	}))
	defer srv.Close()

	client := NewHTTPSpeechToText(srv.URL, "secret", 5*time.Second, testLogger())
	res, err := client.Transcribe(context.Background(), STTRequest{
		Audio:    strings.NewReader("pcm"),
		Filename: "meeting.wav",
		Model:    "openai/whisper-base",
		Language: "en",
	})
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if res.Text != "hello world" {
		t.Errorf("Expected text %q, got %q", "hello world", res.Text)
	}
	if res.Raw["duration"] != 2.4 {
		t.Errorf("Expected raw response retained, got %v", res.Raw)
	}
}

func TestHTTPSpeechToTextErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable"))
	}))
	defer srv.Close()

	client := NewHTTPSpeechToText(srv.URL, "secret", 5*time.Second, testLogger())
	_, err := client.Transcribe(context.Background(), STTRequest{
		Audio:    strings.NewReader("pcm"),
		Filename: "a.wav",
	})

	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("Expected ProviderError, got %T: %v", err, err)
	}
	if perr.Service != "STT" || perr.StatusCode != http.StatusBadGateway {
		t.Errorf("Unexpected provider error %+v", perr)
	}
	if !strings.Contains(perr.Error(), "status 502") {
		t.Errorf("Expected status in message, got %q", perr.Error())
	}
}

func TestHTTPTextToSpeechSynthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/synthesize" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}

		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("Expected JSON payload: %v", err)
		}
		if payload["text"] != "hola" || payload["voice"] != "es-ES-Standard-A" {
			t.Errorf("Unexpected payload %v", payload)
		}

		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("mp3-bytes"))
	}))
	defer srv.Close()

	client := NewHTTPTextToSpeech(srv.URL, "secret", 5*time.Second, testLogger())
	res, err := client.Synthesize(context.Background(), TTSRequest{
		Text:     "hola",
		Model:    "tts-1",
		Language: "es",
		Voice:    "es-ES-Standard-A",
	})
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if string(res.Audio) != "mp3-bytes" {
		t.Errorf("Expected audio bytes, got %q", string(res.Audio))
	}
	if res.ContentType != "audio/mpeg" {
		t.Errorf("Unexpected content type %s", res.ContentType)
	}
}

func TestHTTPTextToSpeechRejectsEmptyText(t *testing.T) {
	client := NewHTTPTextToSpeech("http://unused", "k", time.Second, testLogger())
	if _, err := client.Synthesize(context.Background(), TTSRequest{Text: ""}); err == nil {
		t.Fatal("Expected error for empty text")
	}
}

func TestHTTPTextToSpeechErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("rate limited"))
	}))
	defer srv.Close()

	client := NewHTTPTextToSpeech(srv.URL, "secret", 5*time.Second, testLogger())
	_, err := client.Synthesize(context.Background(), TTSRequest{Text: "x"})

	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("Expected ProviderError, got %T: %v", err, err)
	}
	if perr.Service != "TTS" || perr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("Unexpected provider error %+v", perr)
	}
}

func TestFactoryUnsupportedBackend(t *testing.T) {
	logger := testLogger()

	if _, err := NewSpeechToText(sttConfig("grpc"), logger); err == nil {
		t.Error("Expected error for unsupported stt backend")
	}
	if _, err := NewTextToSpeech(sttConfig("grpc"), logger); err == nil {
		t.Error("Expected error for unsupported tts backend")
	}
	if _, err := NewSpeechToText(sttConfig(""), logger); err != nil {
		t.Errorf("Empty backend should default to http: %v", err)
	}
	if _, err := NewSpeechToText(sttConfig("openai"), logger); err != nil {
		t.Errorf("openai backend should be supported: %v", err)
	}
}
