package transcription

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/voxatu/scribe/internal/domains/transcription"
	"github.com/voxatu/scribe/pkg/Logger"
)

// GormTranscriptionRepo is the MySQL-backed record store.
type GormTranscriptionRepo struct {
	db     *gorm.DB
	logger *Logger.Logger
}

func NewGormTranscriptionRepo(db *gorm.DB, logger *Logger.Logger) *GormTranscriptionRepo {
	return &GormTranscriptionRepo{db: db, logger: logger}
}

func (r *GormTranscriptionRepo) Create(t *domain.Transcription) error {
	entity := FromDomain(t)
	if err := r.db.Create(entity).Error; err != nil {
		return fmt.Errorf("failed to insert transcription: %w", err)
	}
	t.ID = entity.ID
	return nil
}

func (r *GormTranscriptionRepo) GetByID(id uuid.UUID) (*domain.Transcription, error) {
	var entity TranscriptionEntity
	if err := r.db.First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTranscriptionNotFound
		}
		return nil, fmt.Errorf("failed to fetch transcription: %w", err)
	}
	return entity.ToDomain(), nil
}

func (r *GormTranscriptionRepo) List(userID string, filters domain.ListTranscriptionsRequest) ([]domain.Transcription, int64, error) {
	query := r.db.Model(&TranscriptionEntity{}).Where("user_id = ?", userID)
	if filters.Type != nil {
		query = query.Where("type = ?", string(*filters.Type))
	}
	if filters.Status != nil {
		query = query.Where("status = ?", string(*filters.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transcriptions: %w", err)
	}

	var entities []TranscriptionEntity
	err := query.
		Order("created_at DESC").
		Offset(filters.Offset).
		Limit(filters.Limit).
		Find(&entities).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transcriptions: %w", err)
	}

	out := make([]domain.Transcription, 0, len(entities))
	for i := range entities {
		out = append(out, *entities[i].ToDomain())
	}
	return out, total, nil
}

func (r *GormTranscriptionRepo) Update(id uuid.UUID, updates domain.UpdateTranscriptionRequest) (*domain.Transcription, error) {
	fields := map[string]any{}
	if updates.Title != nil {
		fields["title"] = *updates.Title
	}
	if updates.Description != nil {
		fields["description"] = *updates.Description
	}
	if updates.InputText != nil {
		fields["input_text"] = *updates.InputText
	}
	if updates.ModelUsed != nil {
		fields["model_used"] = *updates.ModelUsed
	}
	if updates.Language != nil {
		fields["language"] = *updates.Language
	}

	if len(fields) > 0 {
		result := r.db.Model(&TranscriptionEntity{}).Where("id = ?", id).Updates(fields)
		if result.Error != nil {
			return nil, fmt.Errorf("failed to update transcription: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, domain.ErrTranscriptionNotFound
		}
	}
	return r.GetByID(id)
}

// MarkProcessing is guarded on the current status so that only one caller
// wins the transition into "processing"; a record already processing is
// left untouched.
func (r *GormTranscriptionRepo) MarkProcessing(id uuid.UUID, startedAt time.Time) error {
	result := r.db.Model(&TranscriptionEntity{}).
		Where("id = ? AND status IN ?", id, []string{
			string(domain.StatusPending),
			string(domain.StatusFailed),
			string(domain.StatusCompleted),
		}).
		Updates(map[string]any{
			"status":                string(domain.StatusProcessing),
			"processing_started_at": startedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark transcription processing: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(id); err != nil {
			return err
		}
		return domain.ErrAlreadyProcessing
	}
	return nil
}

func (r *GormTranscriptionRepo) Complete(id uuid.UUID, update domain.CompletionUpdate) (*domain.Transcription, error) {
	current, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	metadata := mergeMetadata(current.Metadata, update.Metadata)
	// A completed attempt supersedes any failure left by an earlier one.
	delete(metadata, "error")
	delete(metadata, "trace")

	fields := map[string]any{
		"status":          string(domain.StatusCompleted),
		"word_count":      update.WordCount,
		"char_count":      update.CharCount,
		"processing_time": update.ProcessingTime,
		"metadata":        MetadataMap(metadata),
	}
	if update.OutputText != "" {
		fields["output_text"] = update.OutputText
	}
	if update.OutputAudioPath != "" {
		fields["output_audio_path"] = update.OutputAudioPath
	}

	result := r.db.Model(&TranscriptionEntity{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to record completion: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrTranscriptionNotFound
	}
	return r.GetByID(id)
}

// failureMetadata merges a failure annotation into existing metadata.
// Unrelated keys survive, and an empty trace never clobbers the trace left
// by an earlier annotation of the same failure.
func failureMetadata(base map[string]any, errMsg, trace string) map[string]any {
	overlay := map[string]any{"error": errMsg}
	if trace != "" {
		overlay["trace"] = trace
	}
	return mergeMetadata(base, overlay)
}

// Fail merges {error, trace} into the record's metadata without touching
// unrelated keys, so repeated failures from overlapping attempts stay safe.
func (r *GormTranscriptionRepo) Fail(id uuid.UUID, errMsg, trace string) (*domain.Transcription, error) {
	current, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	metadata := failureMetadata(current.Metadata, errMsg, trace)

	result := r.db.Model(&TranscriptionEntity{}).Where("id = ?", id).Updates(map[string]any{
		"status":   string(domain.StatusFailed),
		"metadata": MetadataMap(metadata),
	})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to record failure: %w", result.Error)
	}
	return r.GetByID(id)
}

func (r *GormTranscriptionRepo) Delete(id uuid.UUID) error {
	result := r.db.Delete(&TranscriptionEntity{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete transcription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrTranscriptionNotFound
	}
	return nil
}

func mergeMetadata(base, overlay map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(overlay))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overlay {
		merged[k] = v
	}
	return merged
}
