// Package docs holds the Swagger description served under /swagger/*.
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
        "/analyze_resume": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["analysis"],
                "summary": "Analyze a resume",
                "parameters": [
                    {"type": "file", "description": "PDF or DOCX resume", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "description": "Address the workflow reports matches to", "name": "email", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.AnalyzeResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/store_jobs": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Store one job posting",
                "parameters": [
                    {"description": "Job posting", "name": "job", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.JobPosting"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/upload_resume": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["relay"],
                "summary": "Upload a resume for the workflow",
                "parameters": [
                    {"type": "file", "description": "Resume", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.UploadResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/save_jobs": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Save a batch of job postings",
                "parameters": [
                    {"description": "Job batch", "name": "batch", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.JobBatch"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.SaveResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/get_latest_jobs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Latest job batch",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.JobBatch"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorEnvelope": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handler.errorEnvelope"},
                "request_id": {"type": "string"}
            }
        },
        "model.JobPosting": {
            "type": "object",
            "properties": {
                "company": {"type": "string"},
                "experience": {"type": "string"},
                "location": {"type": "string"},
                "salary": {"type": "string"},
                "skills": {"type": "array", "items": {"type": "string"}},
                "title": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "model.JobBatch": {
            "type": "object",
            "properties": {
                "jobs": {"type": "array", "items": {"$ref": "#/definitions/model.JobPosting"}}
            }
        },
        "service.AnalyzeResult": {
            "type": "object",
            "properties": {
                "experience": {"type": "string"},
                "filename": {"type": "string"},
                "skills": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string"}
            }
        },
        "service.SaveResult": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "service.UploadResult": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Job Recommender API",
	Description:      "Resume analysis and job relay services.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
