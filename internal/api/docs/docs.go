// Package docs holds the API document served under /swagger.
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
        "/api/v1/results": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Sort is one of id, email, roles, result, time and is given as /api/v1/results.{format}/{sort}.",
                "produces": ["application/json", "application/xml"],
                "tags": ["results"],
                "summary": "List results",
                "parameters": [
                    {"type": "string", "description": "ETag of a cached collection", "name": "If-None-Match", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ResultListResponse"}},
                    "304": {"description": "Not Modified"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Non-admin users may only create results they own.",
                "consumes": ["application/json"],
                "produces": ["application/json", "application/xml"],
                "tags": ["results"],
                "summary": "Create a result",
                "parameters": [
                    {"description": "result, time (YYYY-MM-DD HH:MM:SS) and owner email", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateResultRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.ResultEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/results/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json", "application/xml"],
                "tags": ["results"],
                "summary": "Get a result",
                "parameters": [
                    {"type": "integer", "description": "result id, optionally suffixed with .json or .xml", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "ETag of a cached copy", "name": "If-None-Match", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ResultEnvelope"}},
                    "304": {"description": "Not Modified"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Requires If-Match with the current ETag. Only result and time can change.",
                "consumes": ["application/json"],
                "produces": ["application/json", "application/xml"],
                "tags": ["results"],
                "summary": "Update a result",
                "parameters": [
                    {"type": "integer", "description": "result id", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "current ETag", "name": "If-Match", "in": "header", "required": true},
                    {"description": "fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateResultRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ResultEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "412": {"description": "Precondition Failed", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["results"],
                "summary": "Delete a result",
                "parameters": [
                    {"type": "integer", "description": "result id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/auth/authorize": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Exchange credentials for an authorization code",
                "parameters": [
                    {"description": "email and password", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.AuthorizeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AuthorizeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/auth/token": {
            "post": {
                "description": "grant_type \"authorization_code\" takes code, \"password\" takes username and password.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Issue an access token",
                "parameters": [
                    {"description": "grant", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.TokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TokenResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.AuthorizeRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "dto.AuthorizeResponse": {
            "type": "object",
            "properties": {"code": {"type": "string"}}
        },
        "dto.CreateResultRequest": {
            "type": "object",
            "properties": {
                "result": {"type": "integer"},
                "time": {"type": "string", "example": "2023-12-12 10:10:10"},
                "user": {"type": "string", "example": "user@example.com"}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "error": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "dto.ResultEnvelope": {
            "type": "object",
            "properties": {"result": {"$ref": "#/definitions/dto.ResultResponse"}}
        },
        "dto.ResultItem": {
            "type": "object",
            "properties": {"result": {"$ref": "#/definitions/dto.ResultResponse"}}
        },
        "dto.ResultListResponse": {
            "type": "object",
            "properties": {
                "results": {"type": "array", "items": {"$ref": "#/definitions/dto.ResultItem"}}
            }
        },
        "dto.ResultOwner": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "id": {"type": "integer"}
            }
        },
        "dto.ResultResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "result": {"type": "integer"},
                "time": {"type": "string"},
                "user": {"$ref": "#/definitions/dto.ResultOwner"}
            }
        },
        "dto.TokenRequest": {
            "type": "object",
            "required": ["grant_type"],
            "properties": {
                "code": {"type": "string"},
                "grant_type": {"type": "string"},
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "dto.TokenResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "expires_in": {"type": "integer"},
                "token_type": {"type": "string"}
            }
        },
        "dto.UpdateResultRequest": {
            "type": "object",
            "properties": {
                "result": {"type": "integer"},
                "time": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Results API",
	Description:      "Results of users, with owner-or-admin access and conditional requests.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
