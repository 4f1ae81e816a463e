package telemetry

import (
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func startTestServer(t *testing.T) *Server {
	t.Helper()
	s := NewServer(nil)
	if err := s.Start("127.0.0.1:0"); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func dial(t *testing.T, s *Server) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+s.Addr()+"/stats", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, s *Server, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for s.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("client count = %d, want %d", s.ClientCount(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBroadcastReachesClient(t *testing.T) {
	s := startTestServer(t)
	conn := dial(t, s)
	waitForClients(t, s, 1)

	sent := Stats{
		Frame:          42,
		Position:       [3]float32{10, 2, 30},
		Speed:          55.5,
		ResidentChunks: 25,
		ControlPoints:  97,
		DensePoints:    385,
	}
	s.Broadcast(sent)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Stats
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != sent {
		t.Errorf("got %+v, want %+v", got, sent)
	}
}

func TestBroadcastToMultipleClients(t *testing.T) {
	s := startTestServer(t)
	a := dial(t, s)
	b := dial(t, s)
	waitForClients(t, s, 2)

	s.Broadcast(Stats{Frame: 7})

	for _, conn := range []*websocket.Conn{a, b} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var got Stats
		if err := conn.ReadJSON(&got); err != nil {
			t.Fatalf("read: %v", err)
		}
		if got.Frame != 7 {
			t.Errorf("frame = %d, want 7", got.Frame)
		}
	}
}

func TestClosedClientDropped(t *testing.T) {
	s := startTestServer(t)
	conn := dial(t, s)
	waitForClients(t, s, 1)

	conn.Close()

	// The read pump or the next broadcasts notice the closed socket.
	deadline := time.Now().Add(2 * time.Second)
	for s.ClientCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("closed client never dropped, count = %d", s.ClientCount())
		}
		s.Broadcast(Stats{})
		time.Sleep(10 * time.Millisecond)
	}
}

func TestBroadcastWithoutClients(t *testing.T) {
	s := startTestServer(t)
	// Must not panic or block.
	s.Broadcast(Stats{Frame: 1})
}
