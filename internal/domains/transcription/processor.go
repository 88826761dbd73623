package transcription

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"github.com/voxatu/scribe/internal/providers"
	"github.com/voxatu/scribe/internal/storage"
	"github.com/voxatu/scribe/pkg/Logger"
)

// Status machine events.
const (
	eventStart    = "start"
	eventComplete = "complete"
	eventFail     = "fail"
)

// newStatusMachine builds the per-attempt lifecycle machine. A new attempt
// may re-enter "processing" from either terminal state (queue retry, or an
// explicit reprocess from the admin panel), but a terminal transition is
// only reachable from "processing".
func newStatusMachine(current TranscriptionStatus) *fsm.FSM {
	return fsm.NewFSM(
		string(current),
		fsm.Events{
			{
				Name: eventStart,
				Src:  []string{string(StatusPending), string(StatusFailed), string(StatusCompleted)},
				Dst:  string(StatusProcessing),
			},
			{Name: eventComplete, Src: []string{string(StatusProcessing)}, Dst: string(StatusCompleted)},
			{Name: eventFail, Src: []string{string(StatusProcessing)}, Dst: string(StatusFailed)},
		},
		fsm.Callbacks{},
	)
}

// attemptResult is what one successful provider round-trip produces.
type attemptResult struct {
	outputText      string
	outputAudioPath string
	wordCount       int
	charCount       int
	metadata        map[string]any
}

// Processor executes one processing attempt for a transcription record.
// Both entry points (synchronous controller and queue runner) share this
// component; neither duplicates any of its logic.
type Processor struct {
	repo   TranscriptionRepository
	blobs  storage.BlobStore
	stt    providers.SpeechToText
	tts    providers.TextToSpeech
	locks  ProcessLocker
	logger *Logger.Logger
}

// NewProcessor wires a processor. locks may be nil, in which case the
// concurrent double-processing guard is disabled.
func NewProcessor(
	repo TranscriptionRepository,
	blobs storage.BlobStore,
	stt providers.SpeechToText,
	tts providers.TextToSpeech,
	locks ProcessLocker,
	logger *Logger.Logger,
) *Processor {
	return &Processor{
		repo:   repo,
		blobs:  blobs,
		stt:    stt,
		tts:    tts,
		locks:  locks,
		logger: logger,
	}
}

// Process runs one attempt: mark processing (before any external call),
// dispatch by type, then mark completed or failed. Failures are written to
// the record's status/metadata and returned to the caller, never swallowed.
func (p *Processor) Process(ctx context.Context, id uuid.UUID) (*Transcription, error) {
	t, err := p.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if p.locks != nil {
		acquired, err := p.locks.Acquire(id)
		if err != nil {
			// Lock backend down: proceed unguarded rather than block processing.
			p.logger.Warnf("process lock unavailable for %s: %v", id, err)
		} else if !acquired {
			return nil, ErrAlreadyProcessing
		} else {
			defer func() {
				if err := p.locks.Release(id); err != nil {
					p.logger.Warnf("failed to release process lock for %s: %v", id, err)
				}
			}()
		}
	}

	machine := newStatusMachine(t.Status)
	if err := machine.Event(ctx, eventStart); err != nil {
		return nil, fmt.Errorf("cannot start processing from status %q: %w", t.Status, err)
	}

	startedAt := time.Now()
	if err := p.repo.MarkProcessing(id, startedAt); err != nil {
		return nil, err
	}
	t.Status = StatusProcessing

	if err := validateInputs(t); err != nil {
		return p.fail(ctx, machine, id, err)
	}

	var result *attemptResult
	switch t.Type {
	case TypeSpeechToText:
		result, err = p.processSpeechToText(ctx, t)
	case TypeTextToSpeech:
		result, err = p.processTextToSpeech(ctx, t)
	default:
		err = &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown transcription type %q", t.Type)}
	}
	if err != nil {
		return p.fail(ctx, machine, id, err)
	}

	if err := machine.Event(ctx, eventComplete); err != nil {
		return p.fail(ctx, machine, id, err)
	}

	updated, err := p.repo.Complete(id, CompletionUpdate{
		OutputText:      result.outputText,
		OutputAudioPath: result.outputAudioPath,
		WordCount:       result.wordCount,
		CharCount:       result.charCount,
		ProcessingTime:  time.Since(startedAt).Seconds(),
		Metadata:        result.metadata,
	})
	if err != nil {
		// The record must not stay stuck in "processing" when the store
		// rejects the completion write.
		return p.fail(ctx, machine, id, fmt.Errorf("failed to record completion for %s: %w", id, err))
	}

	p.logger.Infof("transcription %s completed in %.2fs", id, time.Since(startedAt).Seconds())
	return updated, nil
}

// fail runs the failure path: terminal transition, metadata annotation,
// diagnostic log, and propagation of the cause to the caller.
func (p *Processor) fail(ctx context.Context, machine *fsm.FSM, id uuid.UUID, cause error) (*Transcription, error) {
	if err := machine.Event(ctx, eventFail); err != nil {
		p.logger.Warnf("failure transition rejected for %s: %v", id, err)
	}

	trace := string(debug.Stack())
	if _, err := p.repo.Fail(id, cause.Error(), trace); err != nil {
		p.logger.Errorf("failed to record failure for %s: %v", id, err)
	}

	p.logger.Errorw("transcription processing failed",
		"transcription_id", id.String(),
		"error", cause.Error(),
	)

	return nil, cause
}

// validateInputs defensively re-checks the type-specific required input.
// Upstream validation should already have rejected these.
func validateInputs(t *Transcription) error {
	switch t.Type {
	case TypeSpeechToText:
		if strings.TrimSpace(t.AudioFilePath) == "" {
			return &ValidationError{Field: "audioFilePath", Reason: "speech_to_text requires a source audio file"}
		}
	case TypeTextToSpeech:
		if strings.TrimSpace(t.InputText) == "" {
			return &ValidationError{Field: "inputText", Reason: "text_to_speech requires input text"}
		}
	}
	return nil
}

func (p *Processor) processSpeechToText(ctx context.Context, t *Transcription) (*attemptResult, error) {
	if !p.blobs.Exists(t.AudioFilePath) {
		return nil, &StorageError{Op: "read", Path: t.AudioFilePath, Err: fmt.Errorf("audio file missing from blob store")}
	}
	audio, err := p.blobs.Read(t.AudioFilePath)
	if err != nil {
		return nil, &StorageError{Op: "read", Path: t.AudioFilePath, Err: err}
	}

	res, err := p.stt.Transcribe(ctx, providers.STTRequest{
		Audio:    bytes.NewReader(audio),
		Filename: path.Base(t.AudioFilePath),
		Model:    t.ModelUsed,
		Language: t.Language,
	})
	if err != nil {
		return nil, err
	}

	return &attemptResult{
		outputText: res.Text,
		wordCount:  CountWords(res.Text),
		charCount:  CountChars(res.Text),
		metadata: map[string]any{
			"model":        t.ModelUsed,
			"language":     t.Language,
			"api_response": res.Raw,
		},
	}, nil
}

func (p *Processor) processTextToSpeech(ctx context.Context, t *Transcription) (*attemptResult, error) {
	voice := VoiceForLanguage(t.Language)

	res, err := p.tts.Synthesize(ctx, providers.TTSRequest{
		Text:     t.InputText,
		Model:    t.ModelUsed,
		Language: t.Language,
		Voice:    voice,
	})
	if err != nil {
		return nil, err
	}

	// Output names must be collision-free across retried attempts.
	name := fmt.Sprintf("tts-%s-%s.mp3", t.ID, uuid.NewString())
	outputPath := storage.OutputPath(t.UserID, name)
	if err := p.blobs.Write(outputPath, res.Audio); err != nil {
		return nil, &StorageError{Op: "write", Path: outputPath, Err: err}
	}

	// Counts reference the input text; the synthesized signal has no
	// textual count of its own.
	return &attemptResult{
		outputAudioPath: outputPath,
		wordCount:       CountWords(t.InputText),
		charCount:       CountChars(t.InputText),
		metadata: map[string]any{
			"model":    t.ModelUsed,
			"language": t.Language,
			"voice":    voice,
		},
	}, nil
}
