package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Faculty Portal API",
        "description": "Back-office API for the faculty portal",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Faculty account registration and login"},
        {"name": "Todos", "description": "Personal task list"},
        {"name": "Leaves", "description": "Leave requests"},
        {"name": "Classes", "description": "Class and column management"},
        {"name": "Students", "description": "Roster management and export"},
        {"name": "Syllabus", "description": "Syllabus document storage"},
        {"name": "Achievements", "description": "Certificate records"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register faculty account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload or non-institutional email"},
                    "409": {"description": "Email already registered"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid password"},
                    "404": {"description": "Unknown email"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Get current user",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or invalid token"}
                }
            }
        },
        "/todo/add": {
            "post": {
                "tags": ["Todos"],
                "summary": "Add task",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTodoRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/todo/list": {
            "get": {
                "tags": ["Todos"],
                "summary": "List own tasks",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/todo/done/{id}": {
            "put": {
                "tags": ["Todos"],
                "summary": "Mark task done",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/todo/delete/{id}": {
            "delete": {
                "tags": ["Todos"],
                "summary": "Delete task",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/leave": {
            "post": {
                "tags": ["Leaves"],
                "summary": "Apply for leave",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateLeaveRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/leave/{id}": {
            "get": {
                "tags": ["Leaves"],
                "summary": "List leaves for a user",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string", "description": "User ID"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Leaves"],
                "summary": "Edit leave request",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateLeaveRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Leaves"],
                "summary": "Delete leave request",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/class": {
            "post": {
                "tags": ["Classes"],
                "summary": "Create class",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateClassRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "get": {
                "tags": ["Classes"],
                "summary": "List classes",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/class/{id}": {
            "get": {
                "tags": ["Classes"],
                "summary": "Get class",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Class not found"}
                }
            }
        },
        "/class/{id}/columns": {
            "put": {
                "tags": ["Classes"],
                "summary": "Replace class columns",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateColumnsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Class not found"}
                }
            }
        },
        "/class/{id}/export": {
            "get": {
                "tags": ["Students"],
                "summary": "Download class roster",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "text/csv", "application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["xlsx", "csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Rendered roster file"},
                    "404": {"description": "Class not found"}
                }
            }
        },
        "/student": {
            "post": {
                "tags": ["Students"],
                "summary": "Add student to class",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Class not found"}
                }
            }
        },
        "/students/{classId}": {
            "get": {
                "tags": ["Students"],
                "summary": "List class roster",
                "parameters": [
                    {"name": "classId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/student/{id}": {
            "put": {
                "tags": ["Students"],
                "summary": "Replace student data",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Student not found"}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Delete student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/syllabus/upload": {
            "post": {
                "tags": ["Syllabus"],
                "summary": "Upload syllabus PDF",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Missing or oversized file"}
                }
            }
        },
        "/syllabus/list": {
            "get": {
                "tags": ["Syllabus"],
                "summary": "List syllabus documents",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/syllabus/pdf/{id}": {
            "get": {
                "tags": ["Syllabus"],
                "summary": "Stream syllabus PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Document content"},
                    "404": {"description": "Syllabus not found"}
                }
            }
        },
        "/syllabus/delete/{id}": {
            "post": {
                "tags": ["Syllabus"],
                "summary": "Delete syllabus document",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Syllabus not found"}
                }
            }
        },
        "/achievements": {
            "post": {
                "tags": ["Achievements"],
                "summary": "Record achievement",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "title", "in": "formData", "required": true, "type": "string"},
                    {"name": "description", "in": "formData", "required": true, "type": "string"},
                    {"name": "date", "in": "formData", "required": true, "type": "string"},
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Missing field or file"}
                }
            },
            "get": {
                "tags": ["Achievements"],
                "summary": "List achievements",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/achievements/{id}": {
            "put": {
                "tags": ["Achievements"],
                "summary": "Edit achievement metadata",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateAchievementRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Achievement not found"}
                }
            },
            "delete": {
                "tags": ["Achievements"],
                "summary": "Delete achievement",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Achievement not found"}
                }
            }
        },
        "/achievements/{id}/file": {
            "get": {
                "tags": ["Achievements"],
                "summary": "Stream certificate file",
                "produces": ["application/octet-stream"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Certificate content"},
                    "404": {"description": "Achievement not found"}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "definitions": {
        "RegisterRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 6}
            },
            "required": ["name", "email", "password"]
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "CreateTodoRequest": {
            "type": "object",
            "properties": {
                "task": {"type": "string"},
                "priority": {"type": "string", "enum": ["Low", "Medium", "High"]}
            },
            "required": ["task"]
        },
        "CreateLeaveRequest": {
            "type": "object",
            "properties": {
                "userId": {"type": "string"},
                "reason": {"type": "string"},
                "fromDate": {"type": "string"},
                "toDate": {"type": "string"}
            },
            "required": ["userId", "reason", "fromDate", "toDate"]
        },
        "UpdateLeaveRequest": {
            "type": "object",
            "properties": {
                "reason": {"type": "string"},
                "fromDate": {"type": "string"},
                "toDate": {"type": "string"}
            }
        },
        "CreateClassRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"}
            },
            "required": ["name"]
        },
        "UpdateColumnsRequest": {
            "type": "object",
            "properties": {
                "columns": {
                    "type": "array",
                    "items": {"type": "string"}
                }
            },
            "required": ["columns"]
        },
        "CreateStudentRequest": {
            "type": "object",
            "properties": {
                "classId": {"type": "string"},
                "data": {
                    "type": "object",
                    "additionalProperties": {"type": "string"}
                }
            },
            "required": ["classId", "data"]
        },
        "UpdateStudentRequest": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object",
                    "additionalProperties": {"type": "string"}
                }
            },
            "required": ["data"]
        },
        "UpdateAchievementRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "date": {"type": "string"}
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
