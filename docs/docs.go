package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "Tasklist API Documentation",
        "title": "Tasklist API",
        "version": "1.0"
    },
    "host": "localhost:8080",
    "basePath": "/",
    "schemes": ["http"],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health Check",
                "description": "Check if server and its dependencies are running",
                "responses": {
                    "200": {
                        "description": "Server is healthy"
                    }
                }
            }
        },
        "/user": {
            "post": {
                "tags": ["User"],
                "summary": "Create Account",
                "description": "Register a new user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "user",
                        "description": "Account data",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "name": {
                                    "type": "string",
                                    "example": "Maria Silva"
                                },
                                "email": {
                                    "type": "string",
                                    "example": "maria@exemplo.com.br"
                                },
                                "password": {
                                    "type": "string",
                                    "example": "Abcdef1!"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Account created"
                    },
                    "400": {
                        "description": "Validation failure"
                    }
                }
            }
        },
        "/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "User Login",
                "description": "Login with email and password",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "credentials",
                        "description": "Login credentials",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "login": {
                                    "type": "string",
                                    "example": "maria@exemplo.com.br"
                                },
                                "password": {
                                    "type": "string",
                                    "example": "Abcdef1!"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Token, name and email under data"
                    },
                    "400": {
                        "description": "Invalid credentials"
                    }
                }
            }
        },
        "/task": {
            "post": {
                "tags": ["Task"],
                "summary": "Create Task",
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "task",
                        "description": "Task data",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "name": {
                                    "type": "string",
                                    "example": "Estudar Go"
                                },
                                "finishPrevisionDate": {
                                    "type": "string",
                                    "example": "2030-12-31"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Task created"
                    },
                    "400": {
                        "description": "Validation failure"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            },
            "get": {
                "tags": ["Task"],
                "summary": "List Tasks",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "query",
                        "name": "finishPrevisionStart",
                        "type": "string",
                        "description": "Inclusive lower bound on the planned date"
                    },
                    {
                        "in": "query",
                        "name": "finishPrevisionEnd",
                        "type": "string",
                        "description": "Inclusive upper bound on the planned date"
                    },
                    {
                        "in": "query",
                        "name": "status",
                        "type": "string",
                        "description": "1 = open only, 2 = finished only"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Task list"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            },
            "put": {
                "tags": ["Task"],
                "summary": "Update Task",
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "query",
                        "name": "id",
                        "type": "string",
                        "required": true
                    },
                    {
                        "in": "body",
                        "name": "task",
                        "description": "Partial task data",
                        "required": false,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Task updated"
                    },
                    "400": {
                        "description": "Task not found"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            },
            "delete": {
                "tags": ["Task"],
                "summary": "Delete Task",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "query",
                        "name": "id",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Task deleted"
                    },
                    "400": {
                        "description": "Task not found"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type 'Bearer' followed by a space and JWT token"
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Tasklist API",
	Description:      "Tasklist API Documentation",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
