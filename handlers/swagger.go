package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the demo API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>clauselens — Swagger</title>
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

// Minimal OpenAPI document describing the mocked demo endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "clauselens", "version": "v0.1.0" },
  "paths": {
    "/api/auth/login": {
      "post": {
        "summary": "Login with the demo credential pair",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"password":{"type":"string"}}}}}},
        "responses": { "200": { "description": "token returned" }, "401": { "description": "invalid credentials" } }
      }
    },
    "/api/auth/register": {
      "post": { "summary": "Register a new address (nothing is persisted)", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"password":{"type":"string"}}}}}}, "responses": { "200": { "description": "token returned" }, "409": { "description": "user already exists" } } }
    },
    "/api/auth/social/{provider}": {
      "post": { "summary": "Social login with a synthetic derived address", "responses": { "200": { "description": "token returned" } } }
    },
    "/api/auth/logout": {
      "post": { "summary": "Logout, clear slot and blacklist the bearer token", "responses": { "200": { "description": "logged out" } } }
    },
    "/api/contracts/summarize": {
      "post": { "summary": "Mocked contract summary (JSON text or multipart file)", "responses": { "200": { "description": "keyTerms, potentialRisks, obligations" }, "401": { "description": "missing or expired token" } } }
    },
    "/api/contracts/ask": {
      "post": { "summary": "Mocked question answering against contract context", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"contractContext":{"type":"string"},"question":{"type":"string"}}}}}}, "responses": { "200": { "description": "answer" }, "401": { "description": "missing or expired token" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
