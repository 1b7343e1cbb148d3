// Package server exposes the insight service: metric recomputation over HTTP
// and the live-metrics relay over websocket.
package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"MindCanvas/internal/analysis"
)

type Server struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

func New() *Server {
	return &Server{
		hub: NewHub(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// LAN tool; every peer on the local network is trusted.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Router builds the chi router. The websocket route sits outside the timeout
// group because live connections are long-lived.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(15 * time.Second))
		r.Get("/healthz", s.handleHealth)
		r.Post("/api/analyze", s.handleAnalyze)
	})
	r.Get("/ws/live", s.handleLive)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAnalyze recomputes the report from a submitted phases payload.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var payload analysis.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON payload")
		return
	}
	report, err := analysis.BuildReport(payload)
	if err != nil {
		if errors.Is(err, analysis.ErrInvalidPayload) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}
	log.Printf("[ANALYZE] report built for %d phases", len(payload.Phases))
	writeJSON(w, http.StatusOK, report)
}

// handleLive upgrades to websocket and relays every received frame to the
// other connections until the peer goes away.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[LIVE] upgrade failed: %v", err)
		return
	}
	s.hub.Add(conn)
	defer func() {
		s.hub.Remove(conn)
		conn.Close()
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			log.Printf("[LIVE] %s disconnected: %v", conn.RemoteAddr(), err)
			return
		}
		s.hub.Broadcast(msg, conn)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[HTTP] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
