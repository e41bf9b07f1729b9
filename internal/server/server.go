package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fadna/oms/internal/api"
	"github.com/fadna/oms/internal/dashboard"
)

// Server re-exposes the read-only dashboard payloads over HTTP for a wall
// display. It proxies through the stored session; nothing is cached and
// nothing mutates.
type Server struct {
	router *gin.Engine
	client *api.Client
}

// NewServer creates a new server instance
func NewServer(client *api.Client) *Server {
	router := gin.Default()

	server := &Server{
		router: router,
		client: client,
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	apiGroup := s.router.Group("/api")
	{
		apiGroup.GET("/health", s.healthCheck)
		apiGroup.GET("/stats", s.stats)
		apiGroup.GET("/matrix", s.matrix)
		apiGroup.GET("/pending-edits", s.pendingEdits)
	}
}

// healthCheck endpoint for monitoring
func (s *Server) healthCheck(c *gin.Context) {
	// The display is only healthy if the backend answers
	if _, err := s.client.Stats(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"error":  "backend unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "oms",
	})
}

func (s *Server) stats(c *gin.Context) {
	stats, err := s.client.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// matrix returns the agent x product pivot with the grand totals the
// dashboard view computes client-side.
func (s *Server) matrix(c *gin.Context) {
	matrix, err := s.client.Matrix(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	totals := dashboard.TotalsFor(matrix)
	c.JSON(http.StatusOK, gin.H{
		"matrix":        matrix,
		"agentTotals":   totals.ByAgent,
		"productTotals": totals.ByProduct,
		"grandTotal":    totals.Grand,
	})
}

func (s *Server) pendingEdits(c *gin.Context) {
	count, err := s.client.PendingEditsCount(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}
