package transcription

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/voxatu/scribe/internal/domains/transcription"
)

// MetadataMap stores the record's metadata as a JSON column.
type MetadataMap map[string]any

func (m MetadataMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return string(data), nil
}

func (m *MetadataMap) Scan(value any) error {
	if value == nil {
		*m = MetadataMap{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported metadata column type %T", value)
	}
	if len(data) == 0 {
		*m = MetadataMap{}
		return nil
	}
	return json.Unmarshal(data, m)
}

// TranscriptionEntity is the persistence model for a transcription record.
type TranscriptionEntity struct {
	ID                  uuid.UUID      `gorm:"type:char(36);primaryKey"`
	UserID              string         `gorm:"type:varchar(64);index;not null"`
	Title               string         `gorm:"type:varchar(255);not null"`
	Description         string         `gorm:"type:text"`
	Type                string         `gorm:"type:varchar(32);index;not null"`
	InputText           string         `gorm:"type:longtext"`
	AudioFilePath       string         `gorm:"type:varchar(512)"`
	OutputText          string         `gorm:"type:longtext"`
	OutputAudioPath     string         `gorm:"type:varchar(512)"`
	ModelUsed           string         `gorm:"type:varchar(128)"`
	Language            string         `gorm:"type:varchar(16)"`
	Status              string         `gorm:"type:varchar(32);index;not null;default:pending"`
	ProcessingStartedAt *time.Time     `gorm:""`
	ProcessingTime      *float64       `gorm:""`
	WordCount           int            `gorm:"default:0"`
	CharCount           int            `gorm:"default:0"`
	Metadata            MetadataMap    `gorm:"type:json"`
	CreatedAt           time.Time      `gorm:""`
	UpdatedAt           time.Time      `gorm:""`
	DeletedAt           gorm.DeletedAt `gorm:"index"`
}

func (TranscriptionEntity) TableName() string {
	return "transcriptions"
}

func (e *TranscriptionEntity) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (e *TranscriptionEntity) ToDomain() *domain.Transcription {
	return &domain.Transcription{
		ID:                  e.ID,
		UserID:              e.UserID,
		Title:               e.Title,
		Description:         e.Description,
		Type:                domain.TranscriptionType(e.Type),
		InputText:           e.InputText,
		AudioFilePath:       e.AudioFilePath,
		OutputText:          e.OutputText,
		OutputAudioPath:     e.OutputAudioPath,
		ModelUsed:           e.ModelUsed,
		Language:            e.Language,
		Status:              domain.TranscriptionStatus(e.Status),
		ProcessingStartedAt: e.ProcessingStartedAt,
		ProcessingTime:      e.ProcessingTime,
		WordCount:           e.WordCount,
		CharCount:           e.CharCount,
		Metadata:            map[string]any(e.Metadata),
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
}

func FromDomain(t *domain.Transcription) *TranscriptionEntity {
	return &TranscriptionEntity{
		ID:                  t.ID,
		UserID:              t.UserID,
		Title:               t.Title,
		Description:         t.Description,
		Type:                string(t.Type),
		InputText:           t.InputText,
		AudioFilePath:       t.AudioFilePath,
		OutputText:          t.OutputText,
		OutputAudioPath:     t.OutputAudioPath,
		ModelUsed:           t.ModelUsed,
		Language:            t.Language,
		Status:              string(t.Status),
		ProcessingStartedAt: t.ProcessingStartedAt,
		ProcessingTime:      t.ProcessingTime,
		WordCount:           t.WordCount,
		CharCount:           t.CharCount,
		Metadata:            MetadataMap(t.Metadata),
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}
}
