package transcription

import (
	"context"
	"errors"
	"testing"
)

func newTestService(repo *fakeRepo, blobs *fakeBlob) TranscriptionService {
	processor := NewProcessor(repo, blobs, &fakeSTT{text: "ok"}, &fakeTTS{audio: []byte("a")}, nil, testLogger())
	return NewService(repo, processor, nil, blobs, testLogger())
}

func TestCreateValidatesTypeInputs(t *testing.T) {
	svc := newTestService(newFakeRepo(), newFakeBlob())
	ctx := context.Background()

	_, err := svc.Create(ctx, "user-1", CreateTranscriptionRequest{
		Title: "Bad",
		Type:  TranscriptionType("video_to_text"),
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError for unknown type, got %v", err)
	}

	_, err = svc.Create(ctx, "user-1", CreateTranscriptionRequest{
		Title: "No audio",
		Type:  TypeSpeechToText,
	})
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError for missing audio path, got %v", err)
	}

	_, err = svc.Create(ctx, "user-1", CreateTranscriptionRequest{
		Title: "No text",
		Type:  TypeTextToSpeech,
	})
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError for missing input text, got %v", err)
	}
}

func TestCreateAppliesDefaults(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, newFakeBlob())

	created, err := svc.Create(context.Background(), "user-1", CreateTranscriptionRequest{
		Title:     "Defaults",
		Type:      TypeTextToSpeech,
		InputText: "hello",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.Language != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, created.Language)
	}
	if created.ModelUsed != "default" {
		t.Errorf("Expected default model, got %s", created.ModelUsed)
	}
	if created.Status != StatusPending {
		t.Errorf("Expected pending status, got %s", created.Status)
	}
}

func TestGetEnforcesOwnership(t *testing.T) {
	record := ttsRecord("en", "mine")
	repo := newFakeRepo(record)
	svc := newTestService(repo, newFakeBlob())

	if _, err := svc.Get(context.Background(), "user-1", record.ID); err != nil {
		t.Fatalf("Owner should see their record: %v", err)
	}

	_, err := svc.Get(context.Background(), "intruder", record.ID)
	if !errors.Is(err, ErrUnauthorizedAccess) {
		t.Fatalf("Expected ErrUnauthorizedAccess, got %v", err)
	}
}

func TestDownloadTextRequiresCompletedSTT(t *testing.T) {
	blobs := newFakeBlob()
	record := sttRecord(blobs)
	repo := newFakeRepo(record)
	svc := newTestService(repo, blobs)
	ctx := context.Background()

	// Pending record: no artifact yet.
	_, err := svc.DownloadText(ctx, "user-1", record.ID)
	if !errors.Is(err, ErrArtifactNotFound) {
		t.Fatalf("Expected ErrArtifactNotFound for pending record, got %v", err)
	}

	if _, err := svc.ProcessTranscription(ctx, "user-1", record.ID); err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	d, err := svc.DownloadText(ctx, "user-1", record.ID)
	if err != nil {
		t.Fatalf("DownloadText failed: %v", err)
	}
	if string(d.Data) != "ok" {
		t.Errorf("Expected transcribed text %q, got %q", "ok", string(d.Data))
	}
	if d.Filename != "board-meeting.txt" {
		t.Errorf("Expected slugged filename, got %s", d.Filename)
	}
	if d.ContentType != "text/plain; charset=utf-8" {
		t.Errorf("Unexpected content type %s", d.ContentType)
	}
}

func TestDownloadTextWrongType(t *testing.T) {
	record := ttsRecord("en", "speak this")
	repo := newFakeRepo(record)
	svc := newTestService(repo, newFakeBlob())
	ctx := context.Background()

	if _, err := svc.ProcessTranscription(ctx, "user-1", record.ID); err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	// Text download is only for speech-to-text records.
	_, err := svc.DownloadText(ctx, "user-1", record.ID)
	if !errors.Is(err, ErrArtifactNotFound) {
		t.Fatalf("Expected ErrArtifactNotFound for TTS record, got %v", err)
	}
}

func TestDownloadAudio(t *testing.T) {
	record := ttsRecord("en", "speak this")
	repo := newFakeRepo(record)
	blobs := newFakeBlob()
	svc := newTestService(repo, blobs)
	ctx := context.Background()

	_, err := svc.DownloadAudio(ctx, "user-1", record.ID)
	if !errors.Is(err, ErrArtifactNotFound) {
		t.Fatalf("Expected ErrArtifactNotFound before processing, got %v", err)
	}

	if _, err := svc.ProcessTranscription(ctx, "user-1", record.ID); err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	d, err := svc.DownloadAudio(ctx, "user-1", record.ID)
	if err != nil {
		t.Fatalf("DownloadAudio failed: %v", err)
	}
	if string(d.Data) != "a" {
		t.Errorf("Expected stored audio bytes, got %q", string(d.Data))
	}
	if d.Filename != "welcome-message.mp3" {
		t.Errorf("Expected slugged filename, got %s", d.Filename)
	}
	if d.ContentType != "audio/mpeg" {
		t.Errorf("Unexpected content type %s", d.ContentType)
	}
}

func TestDownloadAudioMissingBlob(t *testing.T) {
	record := ttsRecord("en", "speak this")
	repo := newFakeRepo(record)
	blobs := newFakeBlob()
	svc := newTestService(repo, blobs)
	ctx := context.Background()

	if _, err := svc.ProcessTranscription(ctx, "user-1", record.ID); err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	// Simulate the stored artifact disappearing from disk.
	stored, _ := repo.GetByID(record.ID)
	delete(blobs.blobs, stored.OutputAudioPath)

	_, err := svc.DownloadAudio(ctx, "user-1", record.ID)
	if !errors.Is(err, ErrArtifactNotFound) {
		t.Fatalf("Expected ErrArtifactNotFound for missing blob, got %v", err)
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Board Meeting":     "board-meeting",
		"  Hello,  World! ": "hello-world",
		"já está":           "já-está",
		"!!!":               "transcription",
		"":                  "transcription",
	}
	for in, want := range cases {
		if got := slug(in); got != want {
			t.Errorf("slug(%q) = %q, expected %q", in, got, want)
		}
	}
}
