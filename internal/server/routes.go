package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/voxatu/scribe/internal/config"
	"github.com/voxatu/scribe/internal/handlers"
	"github.com/voxatu/scribe/pkg/Logger"

	_ "github.com/voxatu/scribe/docs"
)

// Dependencies carries everything the HTTP surface needs.
type Dependencies struct {
	TranscriptionHandler *handlers.TranscriptionHandler
	Logger               *Logger.Logger
	Configs              *config.Settings
}

func NewServerDependencies(
	transcriptionHandler *handlers.TranscriptionHandler,
	logger *Logger.Logger,
	cfg *config.Settings,
) Dependencies {
	return Dependencies{
		TranscriptionHandler: transcriptionHandler,
		Logger:               logger,
		Configs:              cfg,
	}
}

// InitializeRoutes mounts the whole API surface onto the engine.
func InitializeRoutes(cfg *config.Settings, r *gin.Engine, dep Dependencies) {
	r.Use(handlers.CORSMiddleware())
	r.Use(handlers.RequestLoggerMiddleware(dep.Logger))
	r.Use(handlers.ErrorHandlerMiddleware(dep.Logger))

	r.GET("/", func(ctx *gin.Context) { ctx.JSON(200, gin.H{"message": "Server healthy"}) })
	r.GET("/health", func(ctx *gin.Context) { ctx.JSON(200, gin.H{"status": "ok"}) })

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	dep.TranscriptionHandler.RegisterTranscriptionRoutes(api)
}
