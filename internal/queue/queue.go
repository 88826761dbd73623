package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/voxatu/scribe/internal/config"
	domain "github.com/voxatu/scribe/internal/domains/transcription"
	"github.com/voxatu/scribe/pkg/Logger"
)

// TypeProcessTranscription is the asynq task type for a processing attempt.
const TypeProcessTranscription = "transcription:process"

// ProcessPayload is the task body. Only the record id crosses the process
// boundary; the worker re-fetches the live record before touching it.
type ProcessPayload struct {
	TranscriptionID uuid.UUID `json:"transcriptionId"`
}

// Queue owns both sides of the background pipeline: the client that
// enqueues processing tasks and the server that consumes them.
type Queue struct {
	client    *asynq.Client
	server    *asynq.Server
	mux       *asynq.ServeMux
	processor *domain.Processor
	repo      domain.TranscriptionRepository
	cfg       config.QueueConfig
	logger    *Logger.Logger
}

// New builds the queue. Retry behavior follows the configured schedule:
// cfg.Attempts() total attempts with cfg.RetryDelays() between them, and
// each attempt bounded by cfg.AttemptTimeout().
func New(
	redisCfg config.RedisConfig,
	cfg config.QueueConfig,
	processor *domain.Processor,
	repo domain.TranscriptionRepository,
	logger *Logger.Logger,
) *Queue {
	opt := asynq.RedisClientOpt{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Pass,
		DB:       redisCfg.DB,
	}

	q := &Queue{
		client:    asynq.NewClient(opt),
		processor: processor,
		repo:      repo,
		cfg:       cfg,
		logger:    logger,
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}

	q.server = asynq.NewServer(opt, asynq.Config{
		Concurrency:    concurrency,
		RetryDelayFunc: q.retryDelay,
		ErrorHandler:   asynq.ErrorHandlerFunc(q.handleError),
		Logger:         &AsynqLogger{logger: logger},
	})

	q.mux = asynq.NewServeMux()
	q.mux.HandleFunc(TypeProcessTranscription, q.handleProcess)

	return q
}

// Enqueue implements domain.Enqueuer.
func (q *Queue) Enqueue(ctx context.Context, id uuid.UUID) error {
	payload, err := json.Marshal(ProcessPayload{TranscriptionID: id})
	if err != nil {
		return fmt.Errorf("failed to marshal process payload: %w", err)
	}

	task := asynq.NewTask(TypeProcessTranscription, payload)
	info, err := q.client.EnqueueContext(ctx, task,
		asynq.MaxRetry(q.cfg.Attempts()-1),
		asynq.Timeout(q.cfg.AttemptTimeout()),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue transcription %s: %w", id, err)
	}

	q.logger.Infof("enqueued transcription %s as task %s", id, info.ID)
	return nil
}

func (q *Queue) handleProcess(ctx context.Context, task *asynq.Task) error {
	var payload ProcessPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid process payload: %v: %w", err, asynq.SkipRetry)
	}

	_, err := q.processor.Process(ctx, payload.TranscriptionID)
	if err == nil {
		return nil
	}

	// Bad input cannot become valid by waiting; don't burn retries on it.
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return fmt.Errorf("%v: %w", verr, asynq.SkipRetry)
	}
	if errors.Is(err, domain.ErrTranscriptionNotFound) {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	return err
}

// retryDelay walks the configured backoff schedule; attempts beyond the
// schedule reuse its last entry.
func (q *Queue) retryDelay(n int, err error, task *asynq.Task) time.Duration {
	delays := q.cfg.RetryDelays()
	if n < 0 {
		n = 0
	}
	if n >= len(delays) {
		n = len(delays) - 1
	}
	return delays[n]
}

// handleError annotates the record once the final attempt has failed, so
// the stored status reflects retry exhaustion rather than just the last
// attempt's error.
func (q *Queue) handleError(ctx context.Context, task *asynq.Task, err error) {
	if task.Type() != TypeProcessTranscription {
		return
	}

	retried, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)
	if retried < maxRetry {
		return
	}

	var payload ProcessPayload
	if uerr := json.Unmarshal(task.Payload(), &payload); uerr != nil {
		q.logger.Errorf("cannot finalize failed task with bad payload: %v", uerr)
		return
	}

	msg := fmt.Sprintf("failed after %d attempts: %v", maxRetry+1, err)
	if _, ferr := q.repo.Fail(payload.TranscriptionID, msg, ""); ferr != nil {
		q.logger.Errorf("failed to finalize transcription %s: %v", payload.TranscriptionID, ferr)
		return
	}

	q.logger.Errorw("transcription failed after all retries",
		"transcription_id", payload.TranscriptionID.String(),
		"attempts", maxRetry+1,
		"error", err.Error(),
	)
}

// Start runs the worker loop until Stop is called.
func (q *Queue) Start() error {
	q.logger.Infof("starting transcription queue worker (concurrency=%d, attempts=%d)",
		q.cfg.Concurrency, q.cfg.Attempts())
	return q.server.Start(q.mux)
}

// Stop drains in-flight tasks and closes the client.
func (q *Queue) Stop() {
	q.server.Shutdown()
	if err := q.client.Close(); err != nil {
		q.logger.Warnf("failed to close queue client: %v", err)
	}
}
