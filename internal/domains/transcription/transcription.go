package transcription

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TranscriptionType selects which processing branch runs for a record.
// Immutable after creation.
type TranscriptionType string

const (
	TypeSpeechToText TranscriptionType = "speech_to_text"
	TypeTextToSpeech TranscriptionType = "text_to_speech"
)

func (t TranscriptionType) Valid() bool {
	return t == TypeSpeechToText || t == TypeTextToSpeech
}

// TranscriptionStatus is the record lifecycle state. Transitions only
// advance pending -> processing -> {completed, failed}; a new processing
// attempt re-enters processing.
type TranscriptionStatus string

const (
	StatusPending    TranscriptionStatus = "pending"
	StatusProcessing TranscriptionStatus = "processing"
	StatusCompleted  TranscriptionStatus = "completed"
	StatusFailed     TranscriptionStatus = "failed"
)

const DefaultLanguage = "en"

// Transcription is the unit of work: one speech-to-text or text-to-speech
// request together with its inputs, outputs and processing state.
type Transcription struct {
	ID                  uuid.UUID
	UserID              string
	Title               string
	Description         string
	Type                TranscriptionType
	InputText           string
	AudioFilePath       string
	OutputText          string
	OutputAudioPath     string
	ModelUsed           string
	Language            string
	Status              TranscriptionStatus
	ProcessingStartedAt *time.Time
	ProcessingTime      *float64
	WordCount           int
	CharCount           int
	Metadata            map[string]any
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// CreateTranscriptionRequest is what the admin form (or any API client)
// submits. AutoProcess asks for the record to be queued right after saving.
type CreateTranscriptionRequest struct {
	Title         string            `json:"title" binding:"required,max=255"`
	Description   string            `json:"description"`
	Type          TranscriptionType `json:"type" binding:"required"`
	InputText     string            `json:"inputText"`
	AudioFilePath string            `json:"audioFilePath"`
	ModelUsed     string            `json:"modelUsed"`
	Language      string            `json:"language"`
	AutoProcess   bool              `json:"autoProcess"`
}

// UpdateTranscriptionRequest applies partial edits; nil fields are untouched.
type UpdateTranscriptionRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	InputText   *string `json:"inputText"`
	ModelUsed   *string `json:"modelUsed"`
	Language    *string `json:"language"`
}

// ListTranscriptionsRequest filters and paginates the admin list view.
type ListTranscriptionsRequest struct {
	Type   *TranscriptionType   `form:"type"`
	Status *TranscriptionStatus `form:"status"`
	Offset int                  `form:"offset"`
	Limit  int                  `form:"limit"`
}

type TranscriptionResponse struct {
	ID                  uuid.UUID           `json:"id"`
	UserID              string              `json:"userId"`
	Title               string              `json:"title"`
	Description         string              `json:"description,omitempty"`
	Type                TranscriptionType   `json:"type"`
	InputText           string              `json:"inputText,omitempty"`
	AudioFilePath       string              `json:"audioFilePath,omitempty"`
	OutputText          string              `json:"outputText,omitempty"`
	OutputAudioPath     string              `json:"outputAudioPath,omitempty"`
	ModelUsed           string              `json:"modelUsed"`
	Language            string              `json:"language"`
	Status              TranscriptionStatus `json:"status"`
	ProcessingStartedAt *time.Time          `json:"processingStartedAt,omitempty"`
	ProcessingTime      *float64            `json:"processingTime,omitempty"`
	WordCount           int                 `json:"wordCount"`
	CharCount           int                 `json:"charCount"`
	Metadata            map[string]any      `json:"metadata,omitempty"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
}

func (t *Transcription) ToResponse() TranscriptionResponse {
	return TranscriptionResponse{
		ID:                  t.ID,
		UserID:              t.UserID,
		Title:               t.Title,
		Description:         t.Description,
		Type:                t.Type,
		InputText:           t.InputText,
		AudioFilePath:       t.AudioFilePath,
		OutputText:          t.OutputText,
		OutputAudioPath:     t.OutputAudioPath,
		ModelUsed:           t.ModelUsed,
		Language:            t.Language,
		Status:              t.Status,
		ProcessingStartedAt: t.ProcessingStartedAt,
		ProcessingTime:      t.ProcessingTime,
		WordCount:           t.WordCount,
		CharCount:           t.CharCount,
		Metadata:            t.Metadata,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}
}

// NewTranscription builds a pending record from a create request,
// filling defaults the same way the admin form does.
func NewTranscription(userID string, req CreateTranscriptionRequest) *Transcription {
	language := strings.TrimSpace(req.Language)
	if language == "" {
		language = DefaultLanguage
	}
	model := strings.TrimSpace(req.ModelUsed)
	if model == "" {
		model = "default"
	}

	now := time.Now()
	return &Transcription{
		ID:            uuid.New(),
		UserID:        userID,
		Title:         req.Title,
		Description:   req.Description,
		Type:          req.Type,
		InputText:     req.InputText,
		AudioFilePath: req.AudioFilePath,
		ModelUsed:     model,
		Language:      language,
		Status:        StatusPending,
		Metadata:      map[string]any{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// SupportedModels lists the model identifiers the form layer offers per type.
func SupportedModels(t TranscriptionType) []string {
	switch t {
	case TypeSpeechToText:
		return []string{
			"openai/whisper-base",
			"openai/whisper-small",
			"openai/whisper-medium",
			"openai/whisper-large",
			"facebook/mms-1b-all",
			"facebook/mms-1b-lt",
		}
	case TypeTextToSpeech:
		return []string{"tts-1", "tts-1-hd"}
	default:
		return nil
	}
}

// SupportedLanguages lists the language codes offered by the form layer.
func SupportedLanguages() []string {
	return []string{"en", "es", "fr", "de", "it", "pt", "ru", "zh", "ja", "ko", "hi", "ar"}
}
