package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Elorrieta Client Gateway",
        "description": "Local HTTP gateway over the ElorServ session of this process",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Auth", "description": "Server login and gateway tokens"},
        {"name": "Schedule", "description": "Timetables and the composed weekly grid"},
        {"name": "Meetings", "description": "Meeting requests and their status"},
        {"name": "Students", "description": "Students of the current teacher"},
        {"name": "Profile", "description": "Own profile, password and avatar"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Liveness and server connection state",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check with a server round trip",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Degraded"}
                }
            }
        },
        "/metrics": {
            "get": {
                "summary": "Prometheus metrics",
                "produces": ["text/plain"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Connect and log in",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthenticated"},
                    "403": {"description": "Role not allowed"},
                    "502": {"description": "Server unreachable"}
                }
            }
        },
        "/api/v1/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Log out and close the connection",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/api/v1/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current user",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/teachers": {
            "get": {
                "tags": ["Schedule"],
                "summary": "List teachers",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedule": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Timetable entries of a teacher",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "teacherId", "in": "query", "type": "integer", "description": "defaults to the current user"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedule/grid": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Composed weekly grid with meeting overlay",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "teacherId", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/GridResponse"}}
                }
            }
        },
        "/api/v1/schedule/grid/export": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Download the weekly grid",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "teacherId", "in": "query", "type": "integer"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File"}
                }
            }
        },
        "/api/v1/meetings": {
            "get": {
                "tags": ["Meetings"],
                "summary": "Meetings of a teacher",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "teacherId", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Meetings"],
                "summary": "Request a meeting by date or by grid slot",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateMeetingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/meetings/{id}/status": {
            "patch": {
                "tags": ["Meetings"],
                "summary": "Change meeting status",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateMeetingStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/meetings/{id}": {
            "delete": {
                "tags": ["Meetings"],
                "summary": "Delete meeting",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/api/v1/students": {
            "get": {
                "tags": ["Students"],
                "summary": "Students of the current teacher",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/students/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Student details",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/api/v1/profile": {
            "get": {
                "tags": ["Profile"],
                "summary": "Own profile",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Profile"],
                "summary": "Update own contact details",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateProfileRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/api/v1/profile/password": {
            "put": {
                "tags": ["Profile"],
                "summary": "Change own password",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChangePasswordRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/api/v1/profile/avatar": {
            "get": {
                "tags": ["Profile"],
                "summary": "Profile picture, placeholder when unavailable",
                "security": [{"BearerAuth": []}],
                "produces": ["image/*"],
                "responses": {
                    "200": {"description": "Image"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "CreateMeetingRequest": {
            "type": "object",
            "properties": {
                "studentId": {"type": "integer"},
                "title": {"type": "string"},
                "subject": {"type": "string"},
                "room": {"type": "string"},
                "scheduledAt": {"type": "string", "description": "RFC3339 or yyyy-MM-dd HH:mm:ss"},
                "day": {"type": "string", "description": "grid weekday, used with period"},
                "period": {"type": "integer", "description": "grid period 1-6"}
            },
            "required": ["studentId", "title"]
        },
        "UpdateMeetingStatusRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["pending", "accepted", "denied", "conflict", "cancelled"], "description": "Spanish and Basque spellings are accepted too"}
            },
            "required": ["status"]
        },
        "UpdateProfileRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "address": {"type": "string"},
                "phone1": {"type": "string"},
                "phone2": {"type": "string"}
            }
        },
        "ChangePasswordRequest": {
            "type": "object",
            "properties": {
                "new_password": {"type": "string"}
            },
            "required": ["new_password"]
        },
        "GridCell": {
            "type": "object",
            "properties": {
                "day": {"type": "string"},
                "period": {"type": "integer"},
                "label": {"type": "string"},
                "tier": {"type": "string"},
                "color": {"type": "string"},
                "meetingTitle": {"type": "string"},
                "entryId": {"type": "integer"},
                "meetingId": {"type": "integer"}
            }
        },
        "GridResponse": {
            "type": "object",
            "properties": {
                "teacherId": {"type": "integer"},
                "days": {"type": "array", "items": {"type": "string"}},
                "rows": {
                    "type": "array",
                    "items": {"type": "array", "items": {"$ref": "#/definitions/GridCell"}}
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
