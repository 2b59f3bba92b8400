// Package swagger registers the OpenAPI document served at /swagger/doc.json.
// Regenerate with: swag init -g cmd/api/main.go -o docs/swagger
package swagger

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
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["songs"],
                "summary": "List songs",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/song.listData"}}
                }
            }
        },
        "/music/": {
            "get": {
                "description": "Returns every song with its images.",
                "produces": ["application/json"],
                "tags": ["songs"],
                "summary": "List songs",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/song.listData"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/create/user/": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Create a user",
                "parameters": [
                    {"description": "Name and class year", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/user.createRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/user.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/get/user/{id}/": {
            "get": {
                "description": "Returns the user with their songs and images.",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get a user",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/user.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/delete/user/{id}/": {
            "delete": {
                "description": "Deletes the user, their songs and every image attached to them.",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Delete a user",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/user.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/create/song/{user_id}/": {
            "post": {
                "description": "Adds a song owned by the given user. Only name is required.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["songs"],
                "summary": "Create a song",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "user_id", "in": "path", "required": true},
                    {"description": "Song fields", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/song.createRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/song.Song"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/get/song/{id}/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["songs"],
                "summary": "Get a song",
                "parameters": [
                    {"type": "integer", "description": "Song ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/song.Song"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/delete/song/{id}/": {
            "delete": {
                "description": "Deletes the song and its images, returning the song as it was.",
                "produces": ["application/json"],
                "tags": ["songs"],
                "summary": "Delete a song",
                "parameters": [
                    {"type": "integer", "description": "Song ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/song.Song"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/image/{song_id}/song/": {
            "post": {
                "description": "Decodes a base64 data URI (png, gif or jpeg), uploads it to object storage and records its dimensions.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["assets"],
                "summary": "Attach an image to a song",
                "parameters": [
                    {"type": "integer", "description": "Song ID", "name": "song_id", "in": "path", "required": true},
                    {"description": "Image data URI", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/asset.createRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/asset.View"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        }
    },
    "definitions": {
        "asset.View": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "url": {"type": "string", "example": "https://songs.s3.us-east-1.amazonaws.com/Q2W3E4R5T6Y7U8I9.png"},
                "width": {"type": "integer", "example": 640},
                "height": {"type": "integer", "example": 480},
                "created_at": {"type": "string", "example": "2026-02-27T14:48:34Z"}
            }
        },
        "asset.createRequest": {
            "type": "object",
            "properties": {
                "image_data": {"type": "string", "example": "data:image/png;base64,iVBORw0KGgo..."}
            }
        },
        "response.ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "song not found"}
            }
        },
        "song.Song": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "name": {"type": "string", "example": "Blue in Green"},
                "description": {"type": "string", "example": "late night"},
                "artistname": {"type": "string", "example": "Miles Davis"},
                "song_link": {"type": "string", "example": "https://example.com/blue-in-green"},
                "user_id": {"type": "integer", "example": 1},
                "image": {"type": "array", "items": {"$ref": "#/definitions/asset.View"}}
            }
        },
        "song.createRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "Blue in Green"},
                "description": {"type": "string", "example": "late night"},
                "artistname": {"type": "string", "example": "Miles Davis"},
                "song_link": {"type": "string", "example": "https://example.com/blue-in-green"}
            }
        },
        "song.listData": {
            "type": "object",
            "properties": {
                "songs": {"type": "array", "items": {"$ref": "#/definitions/song.Song"}}
            }
        },
        "user.User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "name": {"type": "string", "example": "Alice"},
                "class_year": {"type": "string", "example": "2025"},
                "songs": {"type": "array", "items": {"$ref": "#/definitions/song.Song"}}
            }
        },
        "user.createRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "Alice"},
                "class_year": {"type": "string", "example": "2025"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Songshare API",
	Description:      "Backend for sharing songs and the images attached to them.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
