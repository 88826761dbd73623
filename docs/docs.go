// Package docs registers the swagger spec served at /swagger/index.html.
// Regenerate with `swag init -g cmd/api/main.go` after changing handler
// annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/transcriptions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Transcriptions"],
                "summary": "List transcriptions",
                "responses": {
                    "200": {"description": "List of transcriptions with pagination"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Transcriptions"],
                "summary": "Create a new transcription",
                "responses": {
                    "201": {"description": "Transcription created successfully"},
                    "400": {"description": "Invalid request data"}
                }
            }
        },
        "/transcriptions/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Transcriptions"],
                "summary": "Get transcription by ID",
                "responses": {
                    "200": {"description": "Transcription data"},
                    "404": {"description": "Transcription not found"}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Transcriptions"],
                "summary": "Update transcription",
                "responses": {
                    "200": {"description": "Transcription updated successfully"}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Transcriptions"],
                "summary": "Delete transcription",
                "responses": {
                    "200": {"description": "Transcription deleted successfully"}
                }
            }
        },
        "/transcriptions/{id}/process": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Transcriptions"],
                "summary": "Process transcription",
                "responses": {
                    "200": {"description": "Processing completed"},
                    "409": {"description": "Transcription already processing"}
                }
            }
        },
        "/transcriptions/{id}/queue": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Transcriptions"],
                "summary": "Queue transcription processing",
                "responses": {
                    "202": {"description": "Transcription queued"}
                }
            }
        },
        "/transcriptions/{id}/download/text": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["Transcriptions"],
                "summary": "Download transcribed text",
                "responses": {
                    "200": {"description": "Text attachment"},
                    "404": {"description": "No text output available"}
                }
            }
        },
        "/transcriptions/{id}/download/audio": {
            "get": {
                "produces": ["application/octet-stream"],
                "tags": ["Transcriptions"],
                "summary": "Download synthesized audio",
                "responses": {
                    "200": {"description": "Audio attachment"},
                    "404": {"description": "No audio output available"}
                }
            }
        },
        "/transcriptions/models": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Transcriptions"],
                "summary": "List supported models and languages",
                "responses": {
                    "200": {"description": "Model catalog"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Scribe Transcription API",
	Description:      "Speech-to-text and text-to-speech transcription processing service.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
