// Package telemetry exposes live driving stats over a websocket so that an
// external dashboard can watch the world stream in.
package telemetry

import (
	"net"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Stats is one per-frame snapshot pushed to every connected client.
type Stats struct {
	Frame          uint64     `json:"frame"`
	Position       [3]float32 `json:"position"`
	Speed          float32    `json:"speed"`
	ResidentChunks int        `json:"residentChunks"`
	ControlPoints  int        `json:"controlPoints"`
	DensePoints    int        `json:"densePoints"`
}

// Server accepts websocket clients on /stats and broadcasts snapshots to
// them. Clients that fail a write are dropped.
type Server struct {
	log      *zap.Logger
	upgrader websocket.Upgrader

	mu       sync.Mutex
	clients  map[*websocket.Conn]struct{}
	listener net.Listener
	httpSrv  *http.Server
}

// NewServer returns a telemetry server that is not yet listening.
func NewServer(log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		log: log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Start begins serving on addr in the background. The game loop never blocks
// on telemetry; failures here only cost the dashboard.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/stats", s.handleStats)

	s.mu.Lock()
	s.listener = ln
	s.httpSrv = &http.Server{Handler: mux}
	s.mu.Unlock()

	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Warn("telemetry server stopped", zap.Error(err))
		}
	}()
	s.log.Info("telemetry listening", zap.String("addr", ln.Addr().String()))
	return nil
}

// Addr returns the bound address, useful when addr was ":0".
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()
	s.log.Debug("telemetry client connected", zap.String("remote", conn.RemoteAddr().String()))

	// Drain incoming messages so the connection notices client close.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.dropClient(conn)
				return
			}
		}
	}()
}

// Broadcast pushes one snapshot to every client. Write errors drop the
// offending client and never propagate to the caller.
func (s *Server) Broadcast(stats Stats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		if err := conn.WriteJSON(stats); err != nil {
			s.log.Debug("telemetry client dropped", zap.Error(err))
			conn.Close()
			delete(s.clients, conn)
		}
	}
}

// ClientCount reports how many clients are currently connected.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Close disconnects all clients and stops listening.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		conn.Close()
		delete(s.clients, conn)
	}
	if s.httpSrv != nil {
		return s.httpSrv.Close()
	}
	return nil
}

func (s *Server) dropClient(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[conn]; ok {
		conn.Close()
		delete(s.clients, conn)
	}
}
