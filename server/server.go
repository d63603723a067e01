// Package server exposes document parsing and question answering over
// HTTP with gin.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gaurav-prasanna/docmind/core"
	"github.com/gaurav-prasanna/docmind/core/assistant"
	"github.com/gaurav-prasanna/docmind/core/session"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	sessionHeader   = "X-Session-ID"
	shutdownTimeout = 10 * time.Second
)

// Parser builds a Document from a URL.
type Parser interface {
	Process(ctx context.Context, rawURL string) (*core.Document, error)
}

// Answerer answers questions about a Document.
type Answerer interface {
	Answer(ctx context.Context, doc *core.Document, history []assistant.Turn, modelChoice string) (*assistant.Reply, error)
}

// Server holds the HTTP routes and their collaborators.
type Server struct {
	parser   Parser
	answerer Answerer
	sessions *session.Store
	log      zerolog.Logger
	router   *gin.Engine
}

// New wires the routes. sessions may be nil, which disables document
// recall between requests.
func New(parser Parser, answerer Answerer, sessions *session.Store, log zerolog.Logger) *Server {
	s := &Server{
		parser:   parser,
		answerer: answerer,
		sessions: sessions,
		log:      log,
	}

	r := gin.New()
	r.Use(requestID(), accessLog(log), recovery(log), cors())
	r.GET("/healthz", s.health)
	api := r.Group("/api")
	api.POST("/parse-document", s.parseDocument)
	api.POST("/chat", s.chat)
	s.router = r
	return s
}

// Handler returns the routed http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type parseRequest struct {
	URL string `json:"url"`
}

func (s *Server) parseDocument(c *gin.Context) {
	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}

	doc, err := s.parser.Process(c.Request.Context(), req.URL)
	if err != nil {
		_ = c.Error(err)
		if core.StatusFor(err) == http.StatusBadRequest {
			c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse document"})
		return
	}

	if s.sessions != nil {
		c.Header(sessionHeader, s.sessions.Put(c.GetHeader(sessionHeader), doc))
	}
	c.JSON(http.StatusOK, doc)
}

type chatRequest struct {
	Messages    []assistant.Turn `json:"messages"`
	Document    *core.Document   `json:"document"`
	ModelChoice string           `json:"modelChoice"`
}

type chatResponse struct {
	Content    string           `json:"content"`
	Structured *assistant.Reply `json:"structured"`
}

func (s *Server) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Messages and document are required"})
		return
	}

	doc := req.Document
	if doc == nil && s.sessions != nil {
		doc, _ = s.sessions.Get(c.GetHeader(sessionHeader))
	}
	if doc == nil || len(req.Messages) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Messages and document are required"})
		return
	}

	reply, err := s.answerer.Answer(c.Request.Context(), doc, req.Messages, req.ModelChoice)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to process your question. Please try again.",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, chatResponse{Content: reply.Description, Structured: reply})
}
