package docs

import "github.com/swaggo/swag"

// @tag.name Projects
// @tag.description Project settings, archive and favorites

// @tag.name Views
// @tag.description Rendered frames and listener events

// @tag.name Tasks
// @tag.description Task editing and moves

// @tag.name Statuses
// @tag.description Project workflow statuses

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/projects": {
            "get": {"tags": ["Projects"], "summary": "List projects", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Projects"], "summary": "Create a project with default statuses", "responses": {"201": {"description": "Created"}}}
        },
        "/projects/{slug}": {
            "put": {"tags": ["Projects"], "summary": "Update project settings", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Projects"], "summary": "Delete a project after name confirmation", "responses": {"204": {"description": "No Content"}}}
        },
        "/projects/{slug}/{tab}": {
            "get": {"tags": ["Views"], "summary": "Render a project tab", "responses": {"200": {"description": "Frame"}}}
        },
        "/events": {
            "post": {"tags": ["Views"], "summary": "Dispatch an event to a listener of the current render", "responses": {"200": {"description": "Response"}, "409": {"description": "Stale generation"}}}
        },
        "/projects/{slug}/tasks": {
            "post": {"tags": ["Tasks"], "summary": "Create a task", "responses": {"201": {"description": "Created"}}}
        },
        "/tasks/{id}": {
            "patch": {"tags": ["Tasks"], "summary": "Update task fields", "responses": {"200": {"description": "OK"}}}
        },
        "/tasks/{id}/move": {
            "post": {"tags": ["Tasks"], "summary": "Move a task to buckets and position", "responses": {"200": {"description": "OK"}}}
        },
        "/projects/{slug}/statuses": {
            "post": {"tags": ["Statuses"], "summary": "Create a status", "responses": {"201": {"description": "Created"}}},
            "put": {"tags": ["Statuses"], "summary": "Reorder statuses", "responses": {"200": {"description": "OK"}}}
        },
        "/statuses/{id}": {
            "delete": {"tags": ["Statuses"], "summary": "Delete a status", "responses": {"200": {"description": "OK"}, "409": {"description": "Status in use"}}}
        },
        "/notifications": {
            "get": {"summary": "List live notifications", "responses": {"200": {"description": "OK"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Planboard API",
	Description:      "Project views, render frames and drag-and-drop events over HTTP.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
