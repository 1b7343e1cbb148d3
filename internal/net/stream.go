package net

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"MindCanvas/internal/state"
)

// MetricsFrame is one live reading pushed to the insight service.
type MetricsFrame struct {
	Phase          int     `json:"phase"`
	ElapsedMs      int64   `json:"elapsedMs"`
	StrokeCount    int     `json:"strokeCount"`
	DistinctColors int     `json:"distinctColors"`
	Coverage       float64 `json:"coverage"`
}

// MetricsStreamer pushes the session's live metrics to the insight service's
// /ws/live endpoint on a fixed interval, so observers can follow a session as
// it happens. It stops on the first write error; reconnection is up to the
// next app start.
type MetricsStreamer struct {
	addr     string
	session  *state.Session
	interval time.Duration

	mu   sync.Mutex
	conn *websocket.Conn
	done chan struct{}
}

func NewMetricsStreamer(addr string, s *state.Session, interval time.Duration) *MetricsStreamer {
	return &MetricsStreamer{addr: addr, session: s, interval: interval}
}

// Start dials the service and begins streaming in the background.
func (m *MetricsStreamer) Start() error {
	url := fmt.Sprintf("ws://%s/ws/live", m.addr)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", url, err)
	}

	m.mu.Lock()
	m.conn = conn
	m.done = make(chan struct{})
	m.mu.Unlock()

	log.Printf("[STREAM] live metrics connected to %s", m.addr)
	go m.loop(conn, m.done)
	return nil
}

func (m *MetricsStreamer) loop(conn *websocket.Conn, done chan struct{}) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			lm := m.session.LiveMetrics()
			frame := MetricsFrame{
				Phase:          lm.Phase,
				ElapsedMs:      lm.Elapsed.Milliseconds(),
				StrokeCount:    lm.StrokeCount,
				DistinctColors: lm.DistinctColorCount,
				Coverage:       lm.Coverage,
			}
			if err := conn.WriteJSON(frame); err != nil {
				log.Printf("[STREAM] send failed, stopping: %v", err)
				return
			}
		}
	}
}

// Stop ends the stream and closes the connection. Safe to call if Start
// never succeeded.
func (m *MetricsStreamer) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done != nil {
		close(m.done)
		m.done = nil
	}
	if m.conn != nil {
		m.conn.Close()
		m.conn = nil
	}
}
