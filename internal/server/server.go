package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/coder/websocket"
	_ "github.com/joho/godotenv/autoload"

	"tabu-server/internal/tabu"
)

const (
	// rateLimitPerSecond bounds how many commands one connection may send.
	rateLimitPerSecond = 20

	defaultTickInterval = 300 * time.Millisecond
)

// Config carries the runtime settings resolved by the CLI. Zero values
// fall back to env vars and defaults, matching the original deployment's
// PORT convention.
type Config struct {
	Bind         string
	Port         int
	TickInterval time.Duration
	PublicURL    string // base URL advertised in QR join links
}

type Server struct {
	cfg               Config
	registry          *RoomRegistry
	connectionManager *ConnectionManager
	limiter           *RateLimiter
	done              chan struct{}
}

// NewServer wires the room registry, connection tracking and the turn
// clock, and returns both the coordinator and the configured HTTP server.
func NewServer(cfg Config) (*Server, *http.Server) {
	if cfg.Port == 0 {
		cfg.Port, _ = strconv.Atoi(os.Getenv("PORT"))
	}
	if cfg.Port == 0 {
		cfg.Port = 3000
	}
	if cfg.TickInterval == 0 {
		cfg.TickInterval = defaultTickInterval
	}

	s := &Server{
		cfg:               cfg,
		registry:          NewRoomRegistry(tabu.DefaultCards()),
		connectionManager: NewConnectionManager(),
		limiter:           NewRateLimiter(rateLimitPerSecond, time.Second),
		done:              make(chan struct{}),
	}

	go s.turnClockTask()

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Bind, cfg.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s, httpServer
}

// Shutdown stops the turn clock and tells connected clients the server is
// going away.
func (s *Server) Shutdown(ctx context.Context) error {
	select {
	case <-s.done:
	default:
		close(s.done)
	}

	s.connectionManager.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.connectionManager.connections))
	for _, conn := range s.connectionManager.connections {
		conns = append(conns, conn)
	}
	s.connectionManager.mu.Unlock()

	for _, conn := range conns {
		conn.Close(websocket.StatusGoingAway, "Server shutting down")
	}

	log.Printf("Server shutdown: closed %d connections, %d rooms discarded", len(conns), s.registry.Count())
	return ctx.Err()
}
