// Package server wires the generation pipeline, the diagram adapter, and the
// result store behind the HTTP API, and serves the embedded web UI.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"course_content_generator/apierr"
	"course_content_generator/diagram"
	"course_content_generator/export"
	"course_content_generator/generator"
	"course_content_generator/logger"
	"course_content_generator/store"
)

//go:embed web/dist web/dist/assets/*
var embeddedStatic embed.FS

type Server struct {
	pipeline *generator.Pipeline
	diagrams *diagram.Client
	contents store.ResultStore
	log      *logger.Logger

	genTimeout     time.Duration
	diagramTimeout time.Duration

	staticFS fs.FS
}

type Options struct {
	GenTimeout     time.Duration
	DiagramTimeout time.Duration
}

func New(pipeline *generator.Pipeline, diagrams *diagram.Client, contents store.ResultStore, log *logger.Logger, opts Options) (*Server, error) {
	if pipeline == nil {
		return nil, errors.New("generation pipeline required")
	}
	if diagrams == nil {
		return nil, errors.New("diagram client required")
	}
	if contents == nil {
		return nil, errors.New("result store required")
	}
	if log == nil {
		log = logger.NewNop()
	}
	if opts.GenTimeout <= 0 {
		opts.GenTimeout = 300 * time.Second
	}
	if opts.DiagramTimeout <= 0 {
		opts.DiagramTimeout = 60 * time.Second
	}

	sub, err := fs.Sub(embeddedStatic, "web/dist")
	if err != nil {
		return nil, err
	}

	return &Server{
		pipeline:       pipeline,
		diagrams:       diagrams,
		contents:       contents,
		log:            log,
		genTimeout:     opts.GenTimeout,
		diagramTimeout: opts.DiagramTimeout,
		staticFS:       sub,
	}, nil
}

// Routes builds the gin engine with all endpoints and the embedded frontend.
func (s *Server) Routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLog())
	r.Use(cors.Default())

	api := r.Group("/api")
	{
		api.POST("/content-generation", s.handleGenerate)
		api.POST("/generate-diagram", s.handleDiagram)
		api.GET("/contents", s.handleContentList)
		api.POST("/contents", s.handleContentSave)
		api.GET("/contents/:id", s.handleContentGet)
		api.DELETE("/contents/:id", s.handleContentDelete)
		api.GET("/contents/:id/export", s.handleContentExport)
	}

	r.NoRoute(s.serveStatic)
	return r
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

// --- Handlers ---

type generateReq struct {
	Input string `json:"input"`
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Input) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Input is required and must be a string"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.genTimeout)
	defer cancel()

	result, err := s.pipeline.Generate(ctx, req.Input)
	if err != nil {
		ae := apierr.From(err)
		s.log.Error("content generation failed", "code", ae.Code, "err", err)
		if ae.Code == apierr.CodeInvalidInput {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Input is required and must be a string"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate content"})
		return
	}
	c.JSON(http.StatusOK, result)
}

type diagramReq struct {
	Text        string `json:"text"`
	DiagramType string `json:"diagramType"`
	Theme       string `json:"theme"`
	Mode        string `json:"mode"`
}

func (s *Server) handleDiagram(c *gin.Context) {
	var req diagramReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text content is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.diagramTimeout)
	defer cancel()

	resp, err := s.diagrams.Render(ctx, diagram.Request{
		Text:        req.Text,
		DiagramType: req.DiagramType,
		Theme:       req.Theme,
		Mode:        req.Mode,
	})
	if err != nil {
		ae := apierr.From(err)
		s.log.Error("diagram generation failed", "code", ae.Code, "err", err)
		switch ae.Code {
		case apierr.CodeConfigError:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Eraser API token is not configured"})
		case apierr.CodeInvalidInput:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Text content is required"})
		default:
			// Upstream status is forwarded when available.
			c.JSON(ae.Status, gin.H{"error": "Failed to generate diagram"})
		}
		return
	}
	c.Data(http.StatusOK, "application/json", resp.RawBody)
}

type contentHeader struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Timestamp int64  `json:"timestamp"`
}

func (s *Server) handleContentList(c *gin.Context) {
	items, err := s.contents.List()
	if err != nil {
		s.log.Error("list contents failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list saved content"})
		return
	}
	headers := make([]contentHeader, 0, len(items))
	for _, it := range items {
		headers = append(headers, contentHeader{ID: it.ID, Title: it.Title, Timestamp: it.Timestamp})
	}
	c.JSON(http.StatusOK, headers)
}

type contentSaveReq struct {
	Title    string                     `json:"title"`
	Data     generator.GenerationResult `json:"data"`
	Diagrams map[string]json.RawMessage `json:"diagrams"`
}

func (s *Server) handleContentSave(c *gin.Context) {
	var req contentSaveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid saved content payload"})
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = req.Data.Outline.Title
	}
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}
	item, err := s.contents.Save(title, req.Data, req.Diagrams)
	if err != nil {
		s.log.Error("save content failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save content"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (s *Server) handleContentGet(c *gin.Context) {
	item, err := s.contents.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Saved content not found"})
			return
		}
		s.log.Error("get content failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load saved content"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) handleContentDelete(c *gin.Context) {
	if err := s.contents.Delete(c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Saved content not found"})
			return
		}
		s.log.Error("delete content failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete saved content"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleContentExport(c *gin.Context) {
	item, err := s.contents.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Saved content not found"})
			return
		}
		s.log.Error("export content failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export saved content"})
		return
	}
	doc, err := export.HTML(item.Data)
	if err != nil {
		s.log.Error("export content failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export saved content"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(doc))
}

// serveStatic serves the embedded frontend, falling back to index.html for
// unknown non-API paths.
func (s *Server) serveStatic(c *gin.Context) {
	upath := c.Request.URL.Path
	if strings.HasPrefix(upath, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	name := strings.TrimPrefix(path.Clean(upath), "/")
	if name == "" || name == "." {
		name = "index.html"
	}
	data, err := fs.ReadFile(s.staticFS, name)
	if err != nil {
		name = "index.html"
		if data, err = fs.ReadFile(s.staticFS, name); err != nil {
			c.String(http.StatusNotFound, "not found")
			return
		}
	}
	ctype := mime.TypeByExtension(path.Ext(name))
	if ctype == "" {
		ctype = http.DetectContentType(data)
	}
	c.Data(http.StatusOK, ctype, data)
}
