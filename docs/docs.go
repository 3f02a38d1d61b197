// Package docs registers the OpenAPI document served under /swagger.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/healthz": {
            "get": {
                "tags": ["system"],
                "summary": "Liveness probe",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/auth/sign-up": {
            "post": {
                "tags": ["auth"],
                "summary": "Create an account and open a session",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}
            }
        },
        "/auth/sign-in": {
            "post": {
                "tags": ["auth"],
                "summary": "Open a session",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/projects": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["projects"],
                "summary": "List project trees",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["projects"],
                "summary": "Create a project",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/tasks": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["tasks"],
                "summary": "Create a task",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/tasks/board": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["tasks"],
                "summary": "Tasks grouped as list, kanban or matrix",
                "parameters": [{"type": "string", "name": "view", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/events": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["events"],
                "summary": "Create an event",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/events/day/{date}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["events"],
                "summary": "Events occurring on a day, recurring series expanded",
                "parameters": [{"type": "string", "name": "date", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/habits/{id}/progress": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["habits"],
                "summary": "Set a habit's progress for a day",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/journal/{date}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["journal"],
                "summary": "Save the journal entry of a day",
                "parameters": [{"type": "string", "name": "date", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/journal/{date}/summary": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["journal"],
                "summary": "Journal entry with the day's completed tasks, events and habits",
                "parameters": [{"type": "string", "name": "date", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/feed/{collection}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["feed"],
                "summary": "Server-sent snapshots of a collection",
                "produces": ["text/event-stream"],
                "parameters": [{"type": "string", "name": "collection", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
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
	Title:            "Organon API",
	Description:      "Projects, planner, tasks, calendar events, habits and journal.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
