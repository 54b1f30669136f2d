package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the auth API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.JSON(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>rehabai-auth - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the auth and utility endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "rehabai-auth", "version": "v0.1.0" },
  "paths": {
    "/api/auth/register": {
      "post": {
        "summary": "Register a new account",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"password":{"type":"string"},"firstName":{"type":"string"},"lastName":{"type":"string"},"role":{"type":"string","enum":["patient","provider"]}}}}}},
        "responses": { "201": { "description": "account created, token returned" }, "400": { "description": "missing fields or duplicate email" }, "503": { "description": "database unavailable" } }
      }
    },
    "/api/auth/login": {
      "post": {
        "summary": "Authenticate and obtain a session token",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"password":{"type":"string"}}}}}},
        "responses": { "200": { "description": "token returned" }, "401": { "description": "invalid credentials" }, "503": { "description": "database unavailable" } }
      }
    },
    "/api/auth/profile": {
      "get": { "summary": "Get the current user (Authorization: Bearer)", "responses": { "200": { "description": "user returned" }, "401": { "description": "missing or invalid token" }, "404": { "description": "user not found" } } }
    },
    "/api/ping": { "get": { "summary": "Greeting check", "responses": { "200": { "description": "configured ping message" } } } },
    "/api/status": { "get": { "summary": "Auth mode and uptime info", "responses": { "200": { "description": "status" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
