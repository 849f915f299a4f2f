package devtools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akorn123w/FishingInTheVoid/game"
)

const queueSize = 32

// Server is the debug HTTP endpoint. Handlers never touch the game: they
// read the last published snapshot and queue commands for the loop.
type Server struct {
	engine   *gin.Engine
	http     *http.Server
	state    atomic.Pointer[game.Snapshot]
	commands chan Command
}

// NewServer builds the router for addr. Call Start to listen.
func NewServer(addr string) *Server {
	s := &Server{commands: make(chan Command, queueSize)}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/state", s.getState)
	r.GET("/commands", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"commands": Commands})
	})
	r.POST("/commands/:name", s.postCommand)

	s.engine = r
	s.http = &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}
	return s
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("devtools request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_us", time.Since(start).Microseconds(),
		)
	}
}

func (s *Server) getState(c *gin.Context) {
	snap := s.state.Load()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no state published yet"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) postCommand(c *gin.Context) {
	cmd, err := ParseCommand(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	select {
	case s.commands <- cmd:
		c.JSON(http.StatusAccepted, gin.H{"queued": cmd})
	default:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "command queue full"})
	}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler { return s.engine }

// Publish replaces the snapshot served by /state. Safe from any goroutine.
func (s *Server) Publish(snap game.Snapshot) {
	s.state.Store(&snap)
}

// Drain applies every queued command to g without blocking. Call from the
// game loop only. Returns the number applied.
func (s *Server) Drain(g *game.Game, now time.Time) int {
	n := 0
	for {
		select {
		case cmd := <-s.commands:
			msg, err := Apply(g, cmd, now)
			if err != nil {
				slog.Warn("devtools command failed", "command", string(cmd), "error", err)
				continue
			}
			slog.Info("devtools command", "command", string(cmd), "result", msg)
			n++
		default:
			return n
		}
	}
}

// Start listens in the background. Listen errors other than a clean
// shutdown are logged.
func (s *Server) Start() {
	go func() {
		slog.Info("devtools listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("devtools server failed", "error", err)
		}
	}()
}

// Shutdown stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("devtools shutdown: %w", err)
	}
	return nil
}
