package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/voxatu/scribe/internal/domains/transcription"
	"github.com/voxatu/scribe/internal/storage"
	"github.com/voxatu/scribe/pkg/Logger"
)

// TranscriptionHandler handles transcription-related HTTP requests
type TranscriptionHandler struct {
	service transcription.TranscriptionService
	blobs   storage.BlobStore
	logger  *Logger.Logger
}

// NewTranscriptionHandler creates a new transcription handler
func NewTranscriptionHandler(service transcription.TranscriptionService, blobs storage.BlobStore, logger *Logger.Logger) *TranscriptionHandler {
	return &TranscriptionHandler{
		service: service,
		blobs:   blobs,
		logger:  logger,
	}
}

// CreateTranscription handles transcription creation
// @Summary Create a new transcription
// @Description Create a new speech-to-text or text-to-speech transcription record
// @Tags Transcriptions
// @Accept json
// @Produce json
// @Param request body transcription.CreateTranscriptionRequest true "Transcription creation data"
// @Success 201 {object} CreateTranscriptionResponse "Transcription created successfully"
// @Failure 400 {object} ErrorResponse "Invalid request data"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /transcriptions [post]
func (h *TranscriptionHandler) CreateTranscription(c *gin.Context) {
	userID := c.GetString("userID")

	var req transcription.CreateTranscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request data",
			Details: err.Error(),
		})
		return
	}

	t, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		var verr *transcription.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Invalid transcription data",
				Details: verr.Error(),
			})
			return
		}
		h.logger.Errorf("create transcription error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, CreateTranscriptionResponse{
		Message:       "Transcription created successfully",
		Transcription: t.ToResponse(),
	})
}

// GetTranscription handles getting a specific transcription
// @Summary Get transcription by ID
// @Description Get a specific transcription by ID (user can only access their own records)
// @Tags Transcriptions
// @Accept json
// @Produce json
// @Param id path string true "Transcription ID"
// @Success 200 {object} GetTranscriptionResponse "Transcription data"
// @Failure 400 {object} ErrorResponse "Invalid transcription ID"
// @Failure 403 {object} ErrorResponse "Unauthorized access"
// @Failure 404 {object} ErrorResponse "Transcription not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /transcriptions/{id} [get]
func (h *TranscriptionHandler) GetTranscription(c *gin.Context) {
	userID := c.GetString("userID")

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	t, err := h.service.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.respondError(c, err, "get transcription")
		return
	}

	c.JSON(http.StatusOK, GetTranscriptionResponse{Transcription: t.ToResponse()})
}

// ListTranscriptions handles listing user's transcriptions with filtering
// @Summary List transcriptions
// @Description List transcriptions for the requesting user with optional filtering
// @Tags Transcriptions
// @Accept json
// @Produce json
// @Param type query string false "Filter by type (speech_to_text, text_to_speech)"
// @Param status query string false "Filter by status (pending, processing, completed, failed)"
// @Param offset query int false "Number of records to skip" default(0)
// @Param limit query int false "Number of records to return" default(20)
// @Success 200 {object} ListTranscriptionsResponse "List of transcriptions with pagination"
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /transcriptions [get]
func (h *TranscriptionHandler) ListTranscriptions(c *gin.Context) {
	userID := c.GetString("userID")

	var filters transcription.ListTranscriptionsRequest
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid query parameters",
			Details: err.Error(),
		})
		return
	}

	records, total, err := h.service.List(c.Request.Context(), userID, filters)
	if err != nil {
		h.logger.Errorf("list transcriptions error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	responses := make([]transcription.TranscriptionResponse, 0, len(records))
	for i := range records {
		responses = append(responses, records[i].ToResponse())
	}

	c.JSON(http.StatusOK, ListTranscriptionsResponse{
		Transcriptions: responses,
		Pagination: PaginationInfo{
			Total:  total,
			Offset: filters.Offset,
			Limit:  filters.Limit,
		},
	})
}

// UpdateTranscription handles updating a transcription
// @Summary Update transcription
// @Description Update a specific transcription (user can only update their own records)
// @Tags Transcriptions
// @Accept json
// @Produce json
// @Param id path string true "Transcription ID"
// @Param request body transcription.UpdateTranscriptionRequest true "Transcription update data"
// @Success 200 {object} UpdateTranscriptionResponse "Transcription updated successfully"
// @Failure 400 {object} ErrorResponse "Invalid request data"
// @Failure 403 {object} ErrorResponse "Unauthorized access"
// @Failure 404 {object} ErrorResponse "Transcription not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /transcriptions/{id} [put]
func (h *TranscriptionHandler) UpdateTranscription(c *gin.Context) {
	userID := c.GetString("userID")

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req transcription.UpdateTranscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request data",
			Details: err.Error(),
		})
		return
	}

	t, err := h.service.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		h.respondError(c, err, "update transcription")
		return
	}

	c.JSON(http.StatusOK, UpdateTranscriptionResponse{
		Message:       "Transcription updated successfully",
		Transcription: t.ToResponse(),
	})
}

// DeleteTranscription handles transcription deletion
// @Summary Delete transcription
// @Description Delete a specific transcription (user can only delete their own records)
// @Tags Transcriptions
// @Accept json
// @Produce json
// @Param id path string true "Transcription ID"
// @Success 200 {object} SuccessResponse "Transcription deleted successfully"
// @Failure 400 {object} ErrorResponse "Invalid transcription ID"
// @Failure 403 {object} ErrorResponse "Unauthorized access"
// @Failure 404 {object} ErrorResponse "Transcription not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /transcriptions/{id} [delete]
func (h *TranscriptionHandler) DeleteTranscription(c *gin.Context) {
	userID := c.GetString("userID")

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, id); err != nil {
		h.respondError(c, err, "delete transcription")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Transcription deleted successfully",
	})
}

// ProcessTranscription handles a synchronous processing request
// @Summary Process transcription
// @Description Run one processing attempt for the transcription and wait for the result
// @Tags Transcriptions
// @Accept json
// @Produce json
// @Param id path string true "Transcription ID"
// @Success 200 {object} ProcessResultResponse "Processing completed"
// @Failure 400 {object} ErrorResponse "Invalid transcription ID"
// @Failure 403 {object} ErrorResponse "Unauthorized access"
// @Failure 404 {object} ErrorResponse "Transcription not found"
// @Failure 409 {object} ErrorResponse "Transcription already processing"
// @Failure 500 {object} ProcessResultResponse "Processing failed"
// @Router /transcriptions/{id}/process [post]
func (h *TranscriptionHandler) ProcessTranscription(c *gin.Context) {
	userID := c.GetString("userID")

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	t, err := h.service.ProcessTranscription(c.Request.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, transcription.ErrTranscriptionNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Transcription not found"})
		case errors.Is(err, transcription.ErrUnauthorizedAccess):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Unauthorized access"})
		case errors.Is(err, transcription.ErrAlreadyProcessing):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Transcription is already being processed"})
		default:
			// The failure is recorded on the transcription; report it to
			// the caller rather than a generic 500 body.
			c.JSON(http.StatusInternalServerError, ProcessResultResponse{
				Success: false,
				Message: err.Error(),
			})
		}
		return
	}

	resp := t.ToResponse()
	c.JSON(http.StatusOK, ProcessResultResponse{
		Success: true,
		Data:    &resp,
	})
}

// QueueTranscription handles queueing a background processing attempt
// @Summary Queue transcription processing
// @Description Enqueue the transcription for background processing with retries
// @Tags Transcriptions
// @Accept json
// @Produce json
// @Param id path string true "Transcription ID"
// @Success 202 {object} SuccessResponse "Transcription queued"
// @Failure 400 {object} ErrorResponse "Invalid transcription ID"
// @Failure 403 {object} ErrorResponse "Unauthorized access"
// @Failure 404 {object} ErrorResponse "Transcription not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /transcriptions/{id}/queue [post]
func (h *TranscriptionHandler) QueueTranscription(c *gin.Context) {
	userID := c.GetString("userID")

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.EnqueueProcessing(c.Request.Context(), userID, id); err != nil {
		h.respondError(c, err, "queue transcription")
		return
	}

	c.JSON(http.StatusAccepted, SuccessResponse{
		Message: "Transcription queued for processing",
	})
}

// UploadAudio handles uploading a source audio file
// @Summary Upload source audio
// @Description Upload an audio file to use as speech-to-text input
// @Tags Transcriptions
// @Accept multipart/form-data
// @Produce json
// @Param audio formData file true "Audio file"
// @Success 201 {object} SuccessResponse "Audio stored"
// @Failure 400 {object} ErrorResponse "Invalid upload"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /transcriptions/audio [post]
func (h *TranscriptionHandler) UploadAudio(c *gin.Context) {
	userID := c.GetString("userID")

	file, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Audio file is required",
			Details: err.Error(),
		})
		return
	}

	name := fmt.Sprintf("%s-%s", uuid.NewString(), filepath.Base(file.Filename))
	dest := storage.AudioPath(userID, name)

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Cannot read uploaded file"})
		return
	}
	defer src.Close()

	data := make([]byte, file.Size)
	if _, err := io.ReadFull(src, data); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Cannot read uploaded file"})
		return
	}

	if err := h.blobs.Write(dest, data); err != nil {
		h.logger.Errorf("audio upload store error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Audio stored",
		"audioFilePath": dest,
	})
}

// DownloadText handles downloading the transcribed text
// @Summary Download transcribed text
// @Description Download the text output of a completed speech-to-text transcription
// @Tags Transcriptions
// @Produce plain
// @Param id path string true "Transcription ID"
// @Success 200 {string} string "Text attachment"
// @Failure 400 {object} ErrorResponse "Invalid transcription ID"
// @Failure 403 {object} ErrorResponse "Unauthorized access"
// @Failure 404 {object} ErrorResponse "No text output available"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /transcriptions/{id}/download/text [get]
func (h *TranscriptionHandler) DownloadText(c *gin.Context) {
	h.download(c, h.service.DownloadText)
}

// DownloadAudio handles downloading the synthesized audio
// @Summary Download synthesized audio
// @Description Download the audio output of a completed text-to-speech transcription
// @Tags Transcriptions
// @Produce octet-stream
// @Param id path string true "Transcription ID"
// @Success 200 {string} binary "Audio attachment"
// @Failure 400 {object} ErrorResponse "Invalid transcription ID"
// @Failure 403 {object} ErrorResponse "Unauthorized access"
// @Failure 404 {object} ErrorResponse "No audio output available"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /transcriptions/{id}/download/audio [get]
func (h *TranscriptionHandler) DownloadAudio(c *gin.Context) {
	h.download(c, h.service.DownloadAudio)
}

// GetModelCatalog handles listing supported models and languages
// @Summary List supported models and languages
// @Description List the model identifiers and language codes offered per transcription type
// @Tags Transcriptions
// @Produce json
// @Success 200 {object} ModelCatalogResponse "Model catalog"
// @Router /transcriptions/models [get]
func (h *TranscriptionHandler) GetModelCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, ModelCatalogResponse{
		SpeechToText: transcription.SupportedModels(transcription.TypeSpeechToText),
		TextToSpeech: transcription.SupportedModels(transcription.TypeTextToSpeech),
		Languages:    transcription.SupportedLanguages(),
	})
}

type downloadFn func(ctx context.Context, userID string, id uuid.UUID) (*transcription.Download, error)

func (h *TranscriptionHandler) download(c *gin.Context, fn downloadFn) {
	userID := c.GetString("userID")

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	d, err := fn(c.Request.Context(), userID, id)
	if err != nil {
		h.respondError(c, err, "download artifact")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", d.Filename))
	c.Data(http.StatusOK, d.ContentType, d.Data)
}

func (h *TranscriptionHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid transcription ID"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *TranscriptionHandler) respondError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, transcription.ErrTranscriptionNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Transcription not found"})
	case errors.Is(err, transcription.ErrUnauthorizedAccess):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Unauthorized access"})
	case errors.Is(err, transcription.ErrArtifactNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Requested artifact is not available"})
	default:
		h.logger.Errorf("%s error: %v", op, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

// RegisterTranscriptionRoutes registers all transcription-related routes
func (h *TranscriptionHandler) RegisterTranscriptionRoutes(r *gin.RouterGroup) {
	group := r.Group("/transcriptions")
	group.Use(UserScopeMiddleware())
	{
		group.POST("", h.CreateTranscription)
		group.GET("", h.ListTranscriptions)
		group.GET("/models", h.GetModelCatalog)
		group.POST("/audio", h.UploadAudio)
		group.GET("/:id", h.GetTranscription)
		group.PUT("/:id", h.UpdateTranscription)
		group.DELETE("/:id", h.DeleteTranscription)
		group.POST("/:id/process", h.ProcessTranscription)
		group.POST("/:id/queue", h.QueueTranscription)
		group.GET("/:id/download/text", h.DownloadText)
		group.GET("/:id/download/audio", h.DownloadAudio)
	}
}
