package handlers

import (
	"github.com/voxatu/scribe/internal/domains/transcription"
)

// Response wrapper types for Swagger documentation

// SuccessResponse represents a generic success response
type SuccessResponse struct {
	Message string `json:"message" example:"Operation completed successfully"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"Something went wrong"`
	Details string `json:"details,omitempty" example:"Validation error details"`
}

// PaginationInfo represents pagination information
type PaginationInfo struct {
	Total  int64 `json:"total" example:"150"`
	Offset int   `json:"offset" example:"0"`
	Limit  int   `json:"limit" example:"20"`
}

// CreateTranscriptionResponse represents the response for transcription creation
type CreateTranscriptionResponse struct {
	Message       string                              `json:"message" example:"Transcription created successfully"`
	Transcription transcription.TranscriptionResponse `json:"transcription"`
}

// GetTranscriptionResponse represents the response for getting a single transcription
type GetTranscriptionResponse struct {
	Transcription transcription.TranscriptionResponse `json:"transcription"`
}

// UpdateTranscriptionResponse represents the response for updating a transcription
type UpdateTranscriptionResponse struct {
	Message       string                              `json:"message" example:"Transcription updated successfully"`
	Transcription transcription.TranscriptionResponse `json:"transcription"`
}

// ListTranscriptionsResponse represents the response for listing transcriptions
type ListTranscriptionsResponse struct {
	Transcriptions []transcription.TranscriptionResponse `json:"transcriptions"`
	Pagination     PaginationInfo                        `json:"pagination"`
}

// ProcessResultResponse wraps the outcome of a processing request:
// {success, data} on completion, {success: false, message} on failure.
type ProcessResultResponse struct {
	Success bool                                 `json:"success" example:"true"`
	Message string                               `json:"message,omitempty" example:"Processing failed"`
	Data    *transcription.TranscriptionResponse `json:"data,omitempty"`
}

// ModelCatalogResponse lists the models and languages the form layer offers.
type ModelCatalogResponse struct {
	SpeechToText []string `json:"speechToText"`
	TextToSpeech []string `json:"textToSpeech"`
	Languages    []string `json:"languages"`
}
