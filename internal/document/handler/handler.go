package handler

import (
	"net/http"
	"strings"

	"github.com/firepolicepension/jsoneditor/internal/document/service"
	"github.com/firepolicepension/jsoneditor/internal/web"
	"github.com/firepolicepension/jsoneditor/pkg/logger"
	"github.com/firepolicepension/jsoneditor/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// appPathRequest is the body of POST /api/export and POST /api/apppath.
type appPathRequest struct {
	AppPath string `json:"appPath"`
}

// NewRouter returns the editor engine: recovery, CORS, request logging, any
// extra middleware (rate limiting), the editor routes and an empty-bodied 404
// for everything else.
func NewRouter(svc service.Service, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	// unknown paths are 404s, never redirects
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.HandleMethodNotAllowed = false

	r.Use(middleware.Recovery(), middleware.CORS(), middleware.RequestLog())
	r.Use(extra...)

	RegisterEditorRoutes(r, svc)
	r.NoRoute(notFound)
	return r
}

// RegisterEditorRoutes registers the page and the JSON API on r.
func RegisterEditorRoutes(r *gin.Engine, svc service.Service) {
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", web.RenderEditor(svc.DocumentPath()))
	})

	r.GET("/api/employees", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", svc.Load())
	})

	r.POST("/api/employees", func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			logger.Errorf("read request body: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save"})
			return
		}
		if err := svc.Save(body); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	r.GET("/api/apppath", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"appPath": svc.AppPath()})
	})

	r.POST("/api/apppath", func(c *gin.Context) {
		var req appPathRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
			return
		}
		if err := svc.SetAppPath(strings.TrimSpace(req.AppPath)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	r.POST("/api/export", func(c *gin.Context) {
		var req appPathRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
			return
		}
		res, err := svc.Export(c.Request.Context(), req.AppPath)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": res.Message()})
	})
}

// notFound answers with a bare 404. Writing the header here stops gin from
// appending its default "404 page not found" body.
func notFound(c *gin.Context) {
	c.Status(http.StatusNotFound)
	c.Writer.WriteHeaderNow()
}
