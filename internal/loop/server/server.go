// Package server tracks connected game sessions. Sessions share no game
// state; the server only hands out identities and relays lifecycle events.
package server

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/colorguess/internal/logger"
)

// GameServer is the interface clients use to communicate with the server.
// Decouples the Client from the concrete Server implementation.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	ReportRound(clientID int, score int)
}

// Server keeps the registry of connected clients.
type Server struct {
	mu           sync.RWMutex
	clients      map[int]*ClientHandle
	nextClientID int
	shuttingDown bool
	logger       *log.Logger
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID        int
	Username  string           // Display name for this client
	EventsCh  chan ClientEvent // Events sent to client
	Joined    time.Time
	Rounds    int // Rounds revealed by this client
	BestScore int
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
)

// NewServer creates a new server. A nil logger discards output.
func NewServer(lg *log.Logger) *Server {
	if lg == nil {
		lg = logger.Discard()
	}
	return &Server{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		logger:       lg,
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
// Clients registering after Shutdown receive the shutdown event immediately.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle := &ClientHandle{
		ID:        s.nextClientID,
		Username:  username,
		EventsCh:  make(chan ClientEvent, 16),
		Joined:    time.Now(),
		BestScore: math.MinInt,
	}
	s.nextClientID++
	s.clients[handle.ID] = handle

	if s.shuttingDown {
		handle.EventsCh <- ClientEvent{Type: EventServerShutdown}
	}

	s.logger.Debug("client registered", "id", handle.ID, "user", username, "clients", len(s.clients))
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return
	}
	delete(s.clients, clientID)

	kv := []interface{}{
		"id", clientID,
		"user", handle.Username,
		"rounds", handle.Rounds,
		"played", time.Since(handle.Joined).Round(time.Second),
	}
	if handle.Rounds > 0 {
		kv = append(kv, "best", handle.BestScore)
	}
	s.logger.Info("client left", kv...)
}

// ReportRound records a revealed round for the client's session summary.
func (s *Server) ReportRound(clientID int, score int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return
	}
	handle.Rounds++
	if score > handle.BestScore {
		handle.BestScore = score
	}
	s.logger.Debug("round revealed", "id", clientID, "score", score)
}

// ClientCount returns the number of connected clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Shutdown notifies all connected clients and waits for them to disconnect
// (up to the given timeout). Returns the number of clients still connected.
func (s *Server) Shutdown(timeout time.Duration) int {
	s.mu.Lock()
	s.shuttingDown = true
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.Unlock()

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if remaining := s.ClientCount(); remaining == 0 {
			return 0
		}
		select {
		case <-deadline:
			return s.ClientCount()
		case <-ticker.C:
		}
	}
}
