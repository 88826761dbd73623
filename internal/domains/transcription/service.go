package transcription

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/voxatu/scribe/internal/storage"
	"github.com/voxatu/scribe/pkg/Logger"
)

// Download is a ready-to-serve artifact: content plus the headers the
// handler needs to send it as an attachment.
type Download struct {
	Filename    string
	ContentType string
	Data        []byte
}

// TranscriptionService is the API surface the handlers talk to. Ownership is
// enforced here: a record is only visible to the user it belongs to.
type TranscriptionService interface {
	Create(ctx context.Context, userID string, req CreateTranscriptionRequest) (*Transcription, error)
	Get(ctx context.Context, userID string, id uuid.UUID) (*Transcription, error)
	List(ctx context.Context, userID string, filters ListTranscriptionsRequest) ([]Transcription, int64, error)
	Update(ctx context.Context, userID string, id uuid.UUID, req UpdateTranscriptionRequest) (*Transcription, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) error

	// ProcessTranscription runs one synchronous processing attempt.
	ProcessTranscription(ctx context.Context, userID string, id uuid.UUID) (*Transcription, error)
	// EnqueueProcessing hands the record to the background queue instead.
	EnqueueProcessing(ctx context.Context, userID string, id uuid.UUID) error

	DownloadText(ctx context.Context, userID string, id uuid.UUID) (*Download, error)
	DownloadAudio(ctx context.Context, userID string, id uuid.UUID) (*Download, error)
}

type transcriptionService struct {
	repo      TranscriptionRepository
	processor *Processor
	queue     Enqueuer
	blobs     storage.BlobStore
	logger    *Logger.Logger
}

// NewService wires the service. queue may be nil when running without a
// background worker; AutoProcess then falls back to synchronous processing.
func NewService(
	repo TranscriptionRepository,
	processor *Processor,
	queue Enqueuer,
	blobs storage.BlobStore,
	logger *Logger.Logger,
) TranscriptionService {
	return &transcriptionService{
		repo:      repo,
		processor: processor,
		queue:     queue,
		blobs:     blobs,
		logger:    logger,
	}
}

func (s *transcriptionService) Create(ctx context.Context, userID string, req CreateTranscriptionRequest) (*Transcription, error) {
	if !req.Type.Valid() {
		return nil, &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown transcription type %q", req.Type)}
	}
	switch req.Type {
	case TypeSpeechToText:
		if strings.TrimSpace(req.AudioFilePath) == "" {
			return nil, &ValidationError{Field: "audioFilePath", Reason: "speech_to_text requires a source audio file"}
		}
	case TypeTextToSpeech:
		if strings.TrimSpace(req.InputText) == "" {
			return nil, &ValidationError{Field: "inputText", Reason: "text_to_speech requires input text"}
		}
	}

	t := NewTranscription(userID, req)
	if err := s.repo.Create(t); err != nil {
		return nil, fmt.Errorf("failed to create transcription: %w", err)
	}

	s.logger.Infof("transcription %s created (type=%s user=%s)", t.ID, t.Type, userID)

	if req.AutoProcess {
		if err := s.enqueue(ctx, t.ID); err != nil {
			// Record is saved; surface the queue failure in the log and let
			// the caller trigger processing again.
			s.logger.Errorf("auto-process enqueue failed for %s: %v", t.ID, err)
		}
	}

	return t, nil
}

func (s *transcriptionService) Get(ctx context.Context, userID string, id uuid.UUID) (*Transcription, error) {
	return s.getOwned(userID, id)
}

func (s *transcriptionService) List(ctx context.Context, userID string, filters ListTranscriptionsRequest) ([]Transcription, int64, error) {
	if filters.Limit <= 0 || filters.Limit > 100 {
		filters.Limit = 20
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}
	return s.repo.List(userID, filters)
}

func (s *transcriptionService) Update(ctx context.Context, userID string, id uuid.UUID, req UpdateTranscriptionRequest) (*Transcription, error) {
	if _, err := s.getOwned(userID, id); err != nil {
		return nil, err
	}
	return s.repo.Update(id, req)
}

func (s *transcriptionService) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	if _, err := s.getOwned(userID, id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func (s *transcriptionService) ProcessTranscription(ctx context.Context, userID string, id uuid.UUID) (*Transcription, error) {
	if _, err := s.getOwned(userID, id); err != nil {
		return nil, err
	}
	return s.processor.Process(ctx, id)
}

func (s *transcriptionService) EnqueueProcessing(ctx context.Context, userID string, id uuid.UUID) error {
	if _, err := s.getOwned(userID, id); err != nil {
		return err
	}
	return s.enqueue(ctx, id)
}

// DownloadText serves the transcribed text of a completed speech-to-text
// record. Anything else is reported as a missing artifact.
func (s *transcriptionService) DownloadText(ctx context.Context, userID string, id uuid.UUID) (*Download, error) {
	t, err := s.getOwned(userID, id)
	if err != nil {
		return nil, err
	}
	if t.Type != TypeSpeechToText || t.Status != StatusCompleted || t.OutputText == "" {
		return nil, ErrArtifactNotFound
	}
	return &Download{
		Filename:    slug(t.Title) + ".txt",
		ContentType: "text/plain; charset=utf-8",
		Data:        []byte(t.OutputText),
	}, nil
}

// DownloadAudio serves the synthesized audio of a text-to-speech record.
func (s *transcriptionService) DownloadAudio(ctx context.Context, userID string, id uuid.UUID) (*Download, error) {
	t, err := s.getOwned(userID, id)
	if err != nil {
		return nil, err
	}
	if t.Type != TypeTextToSpeech || t.OutputAudioPath == "" || !s.blobs.Exists(t.OutputAudioPath) {
		return nil, ErrArtifactNotFound
	}
	data, err := s.blobs.Read(t.OutputAudioPath)
	if err != nil {
		return nil, &StorageError{Op: "read", Path: t.OutputAudioPath, Err: err}
	}
	return &Download{
		Filename:    slug(t.Title) + ".mp3",
		ContentType: "audio/mpeg",
		Data:        data,
	}, nil
}

func (s *transcriptionService) getOwned(userID string, id uuid.UUID) (*Transcription, error) {
	t, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, ErrUnauthorizedAccess
	}
	return t, nil
}

func (s *transcriptionService) enqueue(ctx context.Context, id uuid.UUID) error {
	if s.queue == nil {
		s.logger.Warnf("no queue configured, processing %s synchronously", id)
		_, err := s.processor.Process(ctx, id)
		return err
	}
	return s.queue.Enqueue(ctx, id)
}

// slug derives a safe download filename from the record title.
func slug(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "transcription"
	}
	return out
}
