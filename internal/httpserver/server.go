package httpserver

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tinytelemetry/memberdesk/internal/model"
)

// RecordStore is the narrow store contract required by the HTTP API.
type RecordStore interface {
	model.RecordStore
	ToggleSelectAllOnPage(pageIDs []int)
}

// Server exposes the table controls over a JSON API.
type Server struct {
	addr      string
	store     RecordStore
	server    *http.Server
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

// NewServer creates a new HTTP API server.
func NewServer(addr string, store RecordStore) *Server {
	if addr == "" {
		addr = model.DefaultAPIAddr
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:   addr,
		store:  store,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.addr }

// Handler builds the gin router for the API.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/api/health", s.handleHealth)
	r.GET("/api/records", s.handleSnapshot)
	r.PUT("/api/search", s.handleSearch)
	r.PUT("/api/page", s.handlePage)
	r.POST("/api/records/bulk-delete", s.handleBulkDelete)
	r.POST("/api/records/:id/select", s.handleToggleRow)
	r.PATCH("/api/records/:id", s.handleEdit)
	r.DELETE("/api/records/:id", s.handleDelete)
	r.POST("/api/selection/page", s.handleToggleSelectAll)

	return r
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)

	s.server = &http.Server{
		Handler:           s.Handler(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.startTime = time.Now()

	go s.server.Serve(listener)
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"uptime":       time.Since(s.startTime).String(),
		"record_count": s.store.Len(),
	})
}

func (s *Server) handleSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleSearch(c *gin.Context) {
	var req struct {
		Term *string `json:"term" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body or missing term field"})
		return
	}

	s.store.SetSearchTerm(*req.Term)
	c.JSON(http.StatusOK, s.store.Snapshot())
}

func (s *Server) handlePage(c *gin.Context) {
	var req struct {
		Page int `json:"page" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body or missing page field"})
		return
	}

	s.store.ChangePage(req.Page)
	c.JSON(http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleToggleRow(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	s.store.ToggleRowSelection(id)
	c.JSON(http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleToggleSelectAll(c *gin.Context) {
	var req struct {
		IDs []int `json:"ids"`
	}
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		// An empty body means "the current page".
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
			return
		}
	}

	if req.IDs != nil {
		s.store.ToggleSelectAllOnPage(req.IDs)
	} else {
		s.store.ToggleSelectAll()
	}
	c.JSON(http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleBulkDelete(c *gin.Context) {
	removed := s.store.BulkDelete()
	c.JSON(http.StatusOK, gin.H{
		"removed":  removed,
		"snapshot": s.store.Snapshot(),
	})
}

func (s *Server) handleEdit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var fields map[string]string
	if err := c.ShouldBindJSON(&fields); err != nil || len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be a non-empty object of string fields"})
		return
	}

	patch := make(model.Patch, len(fields))
	for k, v := range fields {
		patch[model.Field(k)] = v
	}
	if !s.store.EditRecord(id, patch) {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	c.JSON(http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleDelete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if !s.store.DeleteRecord(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record id"})
		return 0, false
	}
	return id, true
}
