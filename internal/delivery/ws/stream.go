package ws

import (
	"log"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"

	"github.com/8endit/city-ops/internal/domain"
	"github.com/8endit/city-ops/internal/observability"
	"github.com/8endit/city-ops/internal/service"
)

// StateSource provides read-only access to the shared state record
type StateSource interface {
	Snapshot() domain.StateSnapshot
}

// Conn is the subset of the websocket connection the push loop needs
type Conn interface {
	WriteJSON(v interface{}) error
}

// Streamer pushes KPI snapshots to connected WebSocket clients on a fixed
// interval. The clock is injected so the loop is testable with a fake clock.
type Streamer struct {
	source   StateSource
	clock    clockwork.Clock
	interval time.Duration
	metrics  *observability.Metrics
}

// NewStreamer creates a new KPI streamer
func NewStreamer(source StateSource, clock clockwork.Clock, interval time.Duration, metrics *observability.Metrics) *Streamer {
	return &Streamer{
		source:   source,
		clock:    clock,
		interval: interval,
		metrics:  metrics,
	}
}

// Handler returns the Fiber handler serving /ws/stream
func (s *Streamer) Handler() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		s.metrics.StreamClients.Inc()
		defer s.metrics.StreamClients.Dec()
		s.Run(c)
	})
}

// Run pushes one frame immediately and one per tick until a write fails.
// A failed write means the client went away; that is normal termination.
func (s *Streamer) Run(conn Conn) {
	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if err := conn.WriteJSON(s.frame()); err != nil {
			log.Printf("Stream client disconnected: %v", err)
			return
		}
		<-ticker.Chan()
	}
}

func (s *Streamer) frame() domain.StreamFrame {
	return domain.StreamFrame{
		KPI: service.ComputeKPI(s.source.Snapshot()),
		TS:  s.clock.Now().Unix(),
	}
}
