package transcription

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CompletionUpdate carries everything a successful attempt writes back.
// Exactly one of OutputText / OutputAudioPath is populated, depending on
// the record's type.
type CompletionUpdate struct {
	OutputText      string
	OutputAudioPath string
	WordCount       int
	CharCount       int
	ProcessingTime  float64
	Metadata        map[string]any
}

// TranscriptionRepository is the record store. Implementations must apply
// partial-field updates and must merge failure metadata without clobbering
// unrelated keys.
type TranscriptionRepository interface {
	Create(t *Transcription) error
	GetByID(id uuid.UUID) (*Transcription, error)
	List(userID string, filters ListTranscriptionsRequest) ([]Transcription, int64, error)
	Update(id uuid.UUID, updates UpdateTranscriptionRequest) (*Transcription, error)

	// MarkProcessing stamps the attempt start and moves the record to
	// "processing". The update is guarded on the current status so two
	// entry points cannot both win the transition.
	MarkProcessing(id uuid.UUID, startedAt time.Time) error
	Complete(id uuid.UUID, update CompletionUpdate) (*Transcription, error)
	// Fail marks the record failed and merges {error, trace} into its
	// metadata, preserving unrelated keys. Safe to apply repeatedly.
	Fail(id uuid.UUID, errMsg, trace string) (*Transcription, error)

	Delete(id uuid.UUID) error
}

// ProcessLocker guards a record against concurrent processing by the two
// entry points. Acquire returns false when another worker holds the record.
type ProcessLocker interface {
	Acquire(id uuid.UUID) (bool, error)
	Release(id uuid.UUID) error
}

// Enqueuer hands a record id to the queue runner. Only the id crosses the
// process boundary; the worker re-fetches the live record before mutating it.
type Enqueuer interface {
	Enqueue(ctx context.Context, id uuid.UUID) error
}
