// Package docs holds the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/api/main.go
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
        "/signal-pulse": {
            "post": {
                "description": "Extracts execution signals from meeting notes, scores them and writes the pulse report",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Pulse"],
                "summary": "Run signal pulse",
                "parameters": [
                    {
                        "description": "Meeting notes and options",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/pulse.RunRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.SuccessResponse"}},
                    "400": {"description": "Missing notes", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "401": {"description": "Invalid passcode", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "500": {"description": "Model not configured or extraction not JSON", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "502": {"description": "Model call failed", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/signal-pulse/score": {
            "post": {
                "description": "Runs the deterministic normalize, metrics and scoring engine on an extraction",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Pulse"],
                "summary": "Score an extraction",
                "parameters": [
                    {
                        "description": "Extraction object or raw model answer",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/pulse.ScoreRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.SuccessResponse"}},
                    "400": {"description": "Missing extraction", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "401": {"description": "Invalid passcode", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "500": {"description": "Extraction not JSON", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/signal-pulse/history": {
            "get": {
                "description": "Lists recent pulse run summaries, newest first",
                "produces": ["application/json"],
                "tags": ["Pulse"],
                "summary": "Run history",
                "parameters": [
                    {"type": "integer", "description": "Maximum entries (default 20)", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Shared passcode", "name": "X-Signal-Pulse-Passcode", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.SuccessResponse"}},
                    "400": {"description": "Invalid limit", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "401": {"description": "Invalid passcode", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/signal-pulse/runs": {
            "get": {
                "description": "Lists stored pulse run records, newest first",
                "produces": ["application/json"],
                "tags": ["Pulse"],
                "summary": "List runs",
                "parameters": [
                    {"type": "integer", "description": "Maximum runs (default 20)", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Shared passcode", "name": "X-Signal-Pulse-Passcode", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.SuccessResponse"}},
                    "401": {"description": "Invalid passcode", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "404": {"description": "Run store not configured", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/signal-pulse/runs/{run_id}": {
            "get": {
                "description": "Returns a stored pulse run record by run id",
                "produces": ["application/json"],
                "tags": ["Pulse"],
                "summary": "Get run",
                "parameters": [
                    {"type": "string", "description": "Run ID", "name": "run_id", "in": "path", "required": true},
                    {"type": "string", "description": "Shared passcode", "name": "X-Signal-Pulse-Passcode", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.SuccessResponse"}},
                    "401": {"description": "Invalid passcode", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "404": {"description": "Run not found", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/signal-pulse/health": {
            "get": {
                "description": "Reports whether the model credential and passcode are configured",
                "produces": ["application/json"],
                "tags": ["Pulse"],
                "summary": "Pulse health",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pulse.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "common.SuccessResponse": {
            "type": "object",
            "properties": {
                "code": {},
                "message": {"type": "string"},
                "data": {}
            }
        },
        "common.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {},
                "message": {"type": "string"},
                "info": {"type": "string"},
                "details": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "pulse.RunRequest": {
            "type": "object",
            "properties": {
                "notes": {"type": "string"},
                "meeting_type": {"type": "string"},
                "team": {"type": "string"},
                "tone": {"type": "string"},
                "passcode": {"type": "string"},
                "run_name": {"type": "string"}
            }
        },
        "pulse.ScoreRequest": {
            "type": "object",
            "properties": {
                "extraction": {},
                "team": {"type": "string"},
                "passcode": {"type": "string"}
            }
        },
        "pulse.HealthResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"},
                "server_time_iso": {"type": "string"},
                "has_zo_api_key": {"type": "boolean"},
                "zo_api_key_length": {"type": "integer"},
                "has_passcode": {"type": "boolean"},
                "has_passcode_key": {"type": "boolean"},
                "passcode_length": {"type": "integer"},
                "llm_provider": {"type": "string"},
                "llm_configured": {"type": "boolean"},
                "database_enabled": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Signal Pulse API",
	Description:      "Turns meeting notes into scored execution signals and a pulse report",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
