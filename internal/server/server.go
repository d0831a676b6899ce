// Package server exposes the dashboard pipeline as a JSON API.
package server

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"salescope/internal/ai"
	"salescope/internal/config"
	"salescope/internal/dataset"
)

// Server owns the current dataset session and serves filtered views of it.
// The pipeline itself is synchronous; the lock only covers gin's concurrent
// request goroutines. Uploads replace the session wholesale under the write
// lock, queries take the read lock.
type Server struct {
	router *gin.Engine
	cfg    *config.Global

	mu      sync.RWMutex
	session *dataset.Session

	// Narrative generation bookkeeping: each request takes a ticket from
	// gen; only the holder of the newest ticket may store its result, so a
	// slow superseded request cannot overwrite a newer narrative.
	gen           atomic.Int64
	narrativeMu   sync.RWMutex
	lastNarrative string
}

// New builds a server around an empty session.
func New(cfg *config.Global, session *dataset.Session) *Server {
	s := &Server{
		router:  gin.Default(),
		cfg:     cfg,
		session: session,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.router.Group("/api")
	api.POST("/dataset", s.handleUpload)
	api.GET("/options", s.handleOptions)
	api.GET("/summary", s.handleSummary)
	api.GET("/charts", s.handleCharts)
	api.POST("/narrative", s.handleNarrative)
	api.GET("/narrative", s.handleLastNarrative)
}

// Handler returns the underlying HTTP handler (used by tests).
func (s *Server) Handler() http.Handler { return s.router }

// Run serves on addr until the listener fails.
func (s *Server) Run(addr string) error { return s.router.Run(addr) }

// runtimeFor resolves the narrative backend for a provider name, defaulting
// to the configured one. A nil runtime with ok=true means local composition.
func (s *Server) runtimeFor(provider, model string) (ai.Runtime, bool) {
	if provider == "" {
		provider = s.cfg.Provider
	}
	if provider == "" || provider == ai.ProviderLocal {
		return nil, true
	}
	if model == "" {
		model = s.cfg.Model
	}
	rt, ok := ai.GetRuntime(provider, ai.RuntimeConfig{
		APIKey:      s.cfg.APIKey,
		Endpoint:    s.cfg.SpaceURL,
		Model:       model,
		HTTPTimeout: time.Duration(s.cfg.HTTPTimeoutSec) * time.Second,
	})
	return rt, ok
}
