package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints describing the editor API.
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
    <title>Employee JSON editor - Swagger</title>
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

// OpenAPI description of the editor listener. The admin endpoints are listed
// too but live on the admin address.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "employee-json-editor", "version": "v1.0.0" },
  "paths": {
    "/": {
      "get": { "summary": "Editor page", "responses": { "200": { "description": "HTML page" } } }
    },
    "/api/employees": {
      "get": {
        "summary": "Read the employee document",
        "responses": { "200": { "description": "document indented with two spaces, [] when absent, or {\"error\": ...}" } }
      },
      "post": {
        "summary": "Overwrite the employee document",
        "requestBody": { "content": { "application/json": { "schema": { "type": "array", "items": { "$ref": "#/components/schemas/Employee" } } } } },
        "responses": { "200": { "description": "{\"success\": true}" }, "500": { "description": "{\"success\": false, \"error\": \"Failed to save\"}" } }
      }
    },
    "/api/apppath": {
      "get": { "summary": "Read the saved export destination", "responses": { "200": { "description": "{\"appPath\": string}" } } },
      "post": {
        "summary": "Save the export destination",
        "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/AppPath" } } } },
        "responses": { "200": { "description": "saved" }, "500": { "description": "write failed" } }
      }
    },
    "/api/export": {
      "post": {
        "summary": "Copy the document to a path or s3:// object",
        "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/AppPath" } } } },
        "responses": { "200": { "description": "{\"success\": true, \"message\": ...}" }, "500": { "description": "{\"success\": false, \"error\": ...}" } }
      }
    },
    "/health": { "get": { "summary": "Liveness check (admin address)", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check (admin address)", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics (admin address)", "responses": { "200": { "description": "metrics" } } } }
  },
  "components": {
    "schemas": {
      "AppPath": { "type": "object", "properties": { "appPath": { "type": "string" } } },
      "Employee": {
        "type": "object",
        "properties": {
          "id": { "type": "integer" },
          "name": { "type": "string" },
          "hiredYear": { "type": "integer" },
          "dateOfBirth": { "type": "integer" },
          "sex": { "type": "string", "enum": ["M", "F"] },
          "spouseDateOfBirth": { "type": "integer" },
          "spouseSex": { "type": "string", "enum": ["M", "F"] }
        }
      }
    }
  }
}`
