package state

import (
	"sync"

	"github.com/google/uuid"
)

// Sketch holds the stroke history for the current phase plus the single
// in-progress stroke. It is the only mutable shared state while a phase is
// active; all access is guarded because Fyne's event goroutine, the metrics
// ticker and the live streamer can touch it concurrently.
type Sketch struct {
	mu      sync.RWMutex
	current *Stroke
	strokes []Stroke
}

func NewSketch() *Sketch {
	return &Sketch{strokes: make([]Stroke, 0)}
}

// BeginStroke starts a new in-progress stroke seeded with one point.
// At most one stroke can be in progress; a second down is ignored.
func (s *Sketch) BeginStroke(p Point) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		return false
	}
	s.current = &Stroke{ID: uuid.NewString(), Points: []Point{p}}
	return true
}

// ExtendStroke appends a point to the in-progress stroke. A move without a
// preceding down (out-of-order event) is ignored.
func (s *Sketch) ExtendStroke(p Point) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return false
	}
	s.current.Points = append(s.current.Points, p)
	return true
}

// EndStroke finishes the in-progress stroke. Strokes with fewer than two
// points never reach the history: a single tap draws no visible line.
// Returns true if the stroke was persisted.
func (s *Sketch) EndStroke() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return false
	}
	stroke := *s.current
	s.current = nil
	if len(stroke.Points) < 2 {
		return false
	}
	s.strokes = append(s.strokes, stroke)
	return true
}

// Undo removes the most recently completed stroke, if any.
func (s *Sketch) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.strokes) == 0 {
		return false
	}
	s.strokes = s.strokes[:len(s.strokes)-1]
	return true
}

// Clear empties the history and drops any in-progress stroke.
func (s *Sketch) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.strokes = make([]Stroke, 0)
}

// InProgress reports whether a stroke is currently being drawn.
func (s *Sketch) InProgress() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// StrokeCount returns the number of completed strokes.
func (s *Sketch) StrokeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.strokes)
}

// Snapshot returns a deep copy of the completed stroke history.
func (s *Sketch) Snapshot() []Stroke {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Stroke, 0, len(s.strokes))
	for _, st := range s.strokes {
		out = append(out, st.clone())
	}
	return out
}
