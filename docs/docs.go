// Package docs holds the generated Swagger specification of the storefront API.
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
		"/getCakes": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"catalog"
				],
				"summary": "List cakes, optionally annotated for a viewer",
				"parameters": [
					{
						"type": "integer",
						"description": "Viewer ID",
						"name": "user_id",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/httpx.ListResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					},
					"504": {
						"description": "Gateway Timeout",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					}
				}
			}
		},
		"/getCakes/{category}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"catalog"
				],
				"summary": "List cakes in a category",
				"parameters": [
					{
						"type": "string",
						"description": "Category",
						"name": "category",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/httpx.ListResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					}
				}
			}
		},
		"/getCakes/{category}/{user_id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"catalog"
				],
				"summary": "List cakes in a category annotated with the viewer's favorites",
				"parameters": [
					{
						"type": "string",
						"description": "Category",
						"name": "category",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "User ID",
						"name": "user_id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/httpx.ListResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					}
				}
			}
		},
		"/toggleFavorites": {
			"post": {
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"favorites"
				],
				"summary": "Like or unlike a cake",
				"parameters": [
					{
						"description": "Cake and user",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.ToggleRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.ToggleResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					}
				}
			}
		},
		"/userFavorites/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"favorites"
				],
				"summary": "Count a user's favorites",
				"parameters": [
					{
						"type": "integer",
						"description": "User ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/httpx.StatusResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					}
				}
			}
		},
		"/getMyFavoritesCakes/{user_id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"favorites"
				],
				"summary": "List a user's favorite cakes",
				"parameters": [
					{
						"type": "integer",
						"description": "User ID",
						"name": "user_id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/httpx.ListResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					}
				}
			}
		},
		"/deleteMyFavoritesCake/{cake_id}/{user_id}": {
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"favorites"
				],
				"summary": "Remove a cake from a user's favorites",
				"parameters": [
					{
						"type": "integer",
						"description": "Cake ID",
						"name": "cake_id",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "User ID",
						"name": "user_id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/httpx.MessageResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					}
				}
			}
		},
		"/addingToCart": {
			"post": {
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"cart"
				],
				"summary": "Add a cake to a user's cart",
				"parameters": [
					{
						"description": "Cake and user",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.AddRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/httpx.MessageResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					}
				}
			}
		},
		"/userCartCount/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"cart"
				],
				"summary": "Count the cakes in a user's cart",
				"parameters": [
					{
						"type": "integer",
						"description": "User ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/httpx.StatusResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					}
				}
			}
		},
		"/getCartCakes/{user_id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"cart"
				],
				"summary": "List the cakes in a user's cart",
				"parameters": [
					{
						"type": "integer",
						"description": "User ID",
						"name": "user_id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/httpx.ListResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					}
				}
			}
		},
		"/deleteCartCake/{cake_id}/{user_id}": {
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"cart"
				],
				"summary": "Remove a cake from a user's cart",
				"parameters": [
					{
						"type": "integer",
						"description": "Cake ID",
						"name": "cake_id",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "User ID",
						"name": "user_id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/httpx.MessageResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					}
				}
			}
		},
		"/registerUser": {
			"post": {
				"consumes": [
					"multipart/form-data"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"auth"
				],
				"summary": "Register a new user",
				"parameters": [
					{
						"type": "string",
						"description": "Name",
						"name": "name",
						"in": "formData",
						"required": true
					},
					{
						"type": "string",
						"description": "Email",
						"name": "email",
						"in": "formData",
						"required": true
					},
					{
						"type": "string",
						"description": "Password",
						"name": "password",
						"in": "formData",
						"required": true
					},
					{
						"type": "file",
						"description": "Profile photo",
						"name": "photo",
						"in": "formData"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/httpx.StatusResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					}
				}
			}
		},
		"/userLogin": {
			"post": {
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"auth"
				],
				"summary": "Log in and receive a session token",
				"parameters": [
					{
						"description": "Credentials",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.LoginRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.LoginResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					}
				}
			}
		},
		"/logout": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"auth"
				],
				"summary": "Clear the session cookie",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/httpx.StatusResponse"
						}
					}
				}
			}
		},
		"/me": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"auth"
				],
				"summary": "Return the signed-in user",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.SessionResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					}
				}
			}
		},
		"/photos/{name}": {
			"get": {
				"produces": [
					"image/png",
					"image/jpeg",
					"image/gif",
					"image/webp"
				],
				"tags": [
					"auth"
				],
				"summary": "Download an uploaded profile photo",
				"parameters": [
					{
						"type": "string",
						"description": "Photo name",
						"name": "name",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "file"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					}
				}
			}
		},
		"/health": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"health"
				],
				"summary": "Health check",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/storefront.HealthResponse"
						}
					},
					"503": {
						"description": "Service Unavailable",
						"schema": {
							"$ref": "#/definitions/storefront.HealthResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"http.ToggleRequest": {
			"type": "object",
			"properties": {
				"cake_id": {
					"type": "integer"
				},
				"user_id": {
					"type": "integer"
				}
			}
		},
		"http.ToggleResponse": {
			"type": "object",
			"properties": {
				"liked": {
					"type": "boolean"
				},
				"success": {
					"type": "boolean"
				}
			}
		},
		"http.AddRequest": {
			"type": "object",
			"properties": {
				"cake_id": {
					"type": "integer"
				},
				"user_id": {
					"type": "integer"
				}
			}
		},
		"http.LoginRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			}
		},
		"http.LoginResponse": {
			"type": "object",
			"properties": {
				"Status": {
					"type": "string"
				},
				"message": {
					"type": "string"
				},
				"token": {
					"type": "string"
				},
				"user": {}
			}
		},
		"http.SessionResponse": {
			"type": "object",
			"properties": {
				"Status": {
					"type": "string"
				},
				"user": {}
			}
		},
		"httpx.ErrorResponse": {
			"type": "object",
			"properties": {
				"Status": {
					"type": "string"
				},
				"message": {
					"type": "string"
				},
				"success": {
					"type": "boolean"
				}
			}
		},
		"httpx.ListResponse": {
			"type": "object",
			"properties": {
				"Result": {},
				"success": {
					"type": "boolean"
				}
			}
		},
		"httpx.MessageResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"success": {
					"type": "boolean"
				}
			}
		},
		"httpx.StatusResponse": {
			"type": "object",
			"properties": {
				"Status": {
					"type": "string"
				},
				"Result": {},
				"message": {
					"type": "string"
				}
			}
		},
		"storefront.HealthResponse": {
			"type": "object",
			"properties": {
				"database": {
					"type": "string"
				},
				"success": {
					"type": "boolean"
				}
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:		  "1.0",
	Host:			 "localhost:8081",
	BasePath:		 "/",
	Schemes:		  []string{},
	Title:			"Crumbly Storefront API",
	Description:	  "Cake storefront: catalog, favorites, cart and user sessions",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:		"{{",
	RightDelim:	   "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
