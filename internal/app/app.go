package app

import (
	"github.com/go-redis/redis"
	"gorm.io/gorm"

	"github.com/voxatu/scribe/internal/config"
	"github.com/voxatu/scribe/internal/domains/transcription"
	"github.com/voxatu/scribe/internal/handlers"
	"github.com/voxatu/scribe/internal/providers"
	"github.com/voxatu/scribe/internal/queue"
	transrepo "github.com/voxatu/scribe/internal/repository/transcription"
	"github.com/voxatu/scribe/internal/server"
	"github.com/voxatu/scribe/internal/storage"
	"github.com/voxatu/scribe/pkg/Logger"
)

// App represents the application with all its dependencies
type App struct {
	Config *config.Settings
	Logger *Logger.Logger
	DB     *gorm.DB
	RC     *redis.Client

	BlobStore storage.BlobStore
	Repo      transcription.TranscriptionRepository
	Processor *transcription.Processor
	Queue     *queue.Queue
	Service   transcription.TranscriptionService

	ServerDeps server.Dependencies
}

// NewApp creates a new application instance with all dependencies properly wired
func NewApp(cfg *config.Settings, logger *Logger.Logger, db *gorm.DB, rc *redis.Client) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
		DB:     db,
		RC:     rc,
	}

	if err := app.setupDependencies(); err != nil {
		return nil, err
	}

	return app, nil
}

// setupDependencies initializes all application dependencies
func (a *App) setupDependencies() error {
	blobs, err := storage.NewLocalStore(a.Config.Storage.Root)
	if err != nil {
		return err
	}
	a.BlobStore = blobs

	a.Repo = transrepo.NewGormTranscriptionRepo(a.DB, a.Logger)

	stt, err := providers.NewSpeechToText(a.Config.Providers.STT, a.Logger)
	if err != nil {
		return err
	}
	tts, err := providers.NewTextToSpeech(a.Config.Providers.TTS, a.Logger)
	if err != nil {
		return err
	}

	var locks transcription.ProcessLocker
	if a.RC != nil {
		locks = transrepo.NewRedisProcessLock(a.RC, a.Config.Queue.AttemptTimeout())
	}

	a.Processor = transcription.NewProcessor(a.Repo, blobs, stt, tts, locks, a.Logger)
	a.Queue = queue.New(a.Config.Redis, a.Config.Queue, a.Processor, a.Repo, a.Logger)
	a.Service = transcription.NewService(a.Repo, a.Processor, a.Queue, blobs, a.Logger)

	handler := handlers.NewTranscriptionHandler(a.Service, blobs, a.Logger)
	a.ServerDeps = server.NewServerDependencies(handler, a.Logger, a.Config)

	return nil
}

// GetServerDependencies returns the server dependencies
func (a *App) GetServerDependencies() server.Dependencies {
	return a.ServerDeps
}
