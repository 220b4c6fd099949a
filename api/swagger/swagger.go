package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Escola Admin Console",
        "description": "Server-rendered admin console over the school management API",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Console", "description": "Landing page and shell"},
        {"name": "Students", "description": "Students page and intents"},
        {"name": "Courses", "description": "Courses page and intents"},
        {"name": "Enrollments", "description": "Enrollments page and intents"}
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
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/": {
            "get": {
                "tags": ["Console"],
                "summary": "Landing page",
                "produces": ["text/html"],
                "responses": {
                    "200": {"description": "Page"}
                }
            }
        },
        "/alunos": {
            "get": {
                "tags": ["Students"],
                "summary": "Students page",
                "produces": ["text/html"],
                "parameters": [
                    {"name": "q", "in": "query", "type": "string", "description": "Search by name or email"}
                ],
                "responses": {
                    "200": {"description": "Page"}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Submit the open student form",
                "consumes": ["application/x-www-form-urlencoded"],
                "parameters": [
                    {"name": "nome", "in": "formData", "type": "string"},
                    {"name": "email", "in": "formData", "type": "string"},
                    {"name": "telefone", "in": "formData", "type": "string"}
                ],
                "responses": {
                    "303": {"description": "Redirect back to the page"}
                }
            }
        },
        "/alunos/form": {
            "post": {
                "tags": ["Students"],
                "summary": "Open the create form",
                "responses": {
                    "303": {"description": "Redirect back to the page"}
                }
            }
        },
        "/alunos/{id}/form": {
            "post": {
                "tags": ["Students"],
                "summary": "Open the edit form",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {
                    "303": {"description": "Redirect back to the page"}
                }
            }
        },
        "/alunos/{id}/delete": {
            "post": {
                "tags": ["Students"],
                "summary": "Stage the delete confirmation",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {
                    "303": {"description": "Redirect back to the page"}
                }
            }
        },
        "/alunos/delete/confirm": {
            "post": {
                "tags": ["Students"],
                "summary": "Perform the staged delete",
                "responses": {
                    "303": {"description": "Redirect back to the page"}
                }
            }
        },
        "/alunos/export": {
            "get": {
                "tags": ["Students"],
                "summary": "Export the filtered students list",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/cursos": {
            "get": {
                "tags": ["Courses"],
                "summary": "Courses page",
                "produces": ["text/html"],
                "parameters": [
                    {"name": "q", "in": "query", "type": "string", "description": "Search by name or code"}
                ],
                "responses": {
                    "200": {"description": "Page"}
                }
            },
            "post": {
                "tags": ["Courses"],
                "summary": "Submit the open course form",
                "consumes": ["application/x-www-form-urlencoded"],
                "parameters": [
                    {"name": "nome", "in": "formData", "type": "string"},
                    {"name": "codigo", "in": "formData", "type": "string"},
                    {"name": "descricao", "in": "formData", "type": "string"}
                ],
                "responses": {
                    "303": {"description": "Redirect back to the page"}
                }
            }
        },
        "/cursos/export": {
            "get": {
                "tags": ["Courses"],
                "summary": "Export the filtered courses list",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/matriculas": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "Enrollments page",
                "produces": ["text/html"],
                "parameters": [
                    {"name": "tipo", "in": "query", "type": "string", "enum": ["aluno", "curso"]},
                    {"name": "q", "in": "query", "type": "string", "description": "Student name or course code"}
                ],
                "responses": {
                    "200": {"description": "Page"}
                }
            },
            "post": {
                "tags": ["Enrollments"],
                "summary": "Submit the enrollment form",
                "consumes": ["application/x-www-form-urlencoded"],
                "parameters": [
                    {"name": "aluno_id", "in": "formData", "type": "integer"},
                    {"name": "curso_id", "in": "formData", "type": "integer"}
                ],
                "responses": {
                    "303": {"description": "Redirect back to the page"}
                }
            }
        }
    },
    "definitions": {
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
