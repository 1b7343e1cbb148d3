package state

import (
	"errors"
	"log"
	"sort"
	"sync"
	"time"
)

// ErrSessionComplete is returned by Advance once all three phases are done.
var ErrSessionComplete = errors.New("session already complete")

// Brush size limits exposed to the UI slider.
const (
	MinBrushSize     = 1.0
	MaxBrushSize     = 20.0
	DefaultBrushSize = 3.0
	DefaultColor     = "#000000"
)

// Session drives the three-phase sequence. It owns one Sketch per phase, the
// phase timer, and the distinct-color set, and freezes a PhaseSnapshot at
// every phase boundary. There are no package-level globals: the session is
// constructed once and handed to the canvas widget and the streamer.
type Session struct {
	mu         sync.Mutex
	sketch     *Sketch
	phase      Phase
	complete   bool
	started    time.Time
	colors     map[string]struct{}
	brushColor string
	brushSize  float32
	snapshots  []PhaseSnapshot

	now func() time.Time // swapped out in tests
}

func NewSession() *Session {
	s := &Session{
		sketch:     NewSketch(),
		phase:      PhaseHouse,
		colors:     make(map[string]struct{}),
		brushColor: DefaultColor,
		brushSize:  DefaultBrushSize,
		now:        time.Now,
	}
	s.started = s.now()
	return s
}

// SetBrush updates the active brush. The size is clamped to the slider range.
func (s *Session) SetBrush(color string, size float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if size < MinBrushSize {
		size = MinBrushSize
	}
	if size > MaxBrushSize {
		size = MaxBrushSize
	}
	s.brushColor = color
	s.brushSize = size
}

// Brush returns the active brush color and size.
func (s *Session) Brush() (string, float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.brushColor, s.brushSize
}

// BeginStroke starts a stroke at the given surface coordinates with the
// active brush. The color counts as used immediately, even if the stroke
// later turns out to be a discarded tap.
func (s *Session) BeginStroke(x, y float32) bool {
	s.mu.Lock()
	color, size := s.brushColor, s.brushSize
	if !s.complete {
		s.colors[color] = struct{}{}
	}
	complete := s.complete
	s.mu.Unlock()
	if complete {
		return false
	}
	return s.sketch.BeginStroke(Point{X: x, Y: y, Color: color, Size: size})
}

// ExtendStroke appends a sample to the in-progress stroke with the attributes
// the brush has right now, so mid-stroke tool changes are recorded.
func (s *Session) ExtendStroke(x, y float32) bool {
	s.mu.Lock()
	color, size := s.brushColor, s.brushSize
	s.mu.Unlock()
	ok := s.sketch.ExtendStroke(Point{X: x, Y: y, Color: color, Size: size})
	if ok {
		s.mu.Lock()
		s.colors[color] = struct{}{}
		s.mu.Unlock()
	}
	return ok
}

// EndStroke finishes the in-progress stroke. Safe to call with none active.
func (s *Session) EndStroke() bool {
	return s.sketch.EndStroke()
}

// Undo removes the last completed stroke of the current phase.
func (s *Session) Undo() bool {
	return s.sketch.Undo()
}

// Clear wipes the current phase. The color set is reseeded with the active
// brush color rather than emptied: the selected color is always "in use".
func (s *Session) Clear() {
	s.sketch.Clear()
	s.mu.Lock()
	s.colors = map[string]struct{}{s.brushColor: {}}
	s.mu.Unlock()
}

// History returns a deep copy of the current phase's completed strokes.
func (s *Session) History() []Stroke {
	return s.sketch.Snapshot()
}

// Phase returns the current phase. After the last Advance it keeps returning
// PhasePerson; check Complete.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Complete reports whether all three phases have been advanced through.
func (s *Session) Complete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.complete
}

// LiveMetrics reads the current phase state. It has no side effects and is
// safe at any time, including mid-stroke and before anything was drawn.
func (s *Session) LiveMetrics() LiveMetrics {
	count := s.sketch.StrokeCount()
	s.mu.Lock()
	defer s.mu.Unlock()
	return LiveMetrics{
		Phase:              int(s.phase),
		Elapsed:            s.now().Sub(s.started),
		StrokeCount:        count,
		DistinctColorCount: len(s.colors),
		Coverage:           coverageEstimate(count),
	}
}

// Advance freezes the current phase into a snapshot and moves on. After the
// third phase the session is complete and further calls are rejected with
// ErrSessionComplete.
func (s *Session) Advance() (PhaseSnapshot, error) {
	strokes := s.sketch.Snapshot()

	s.mu.Lock()
	if s.complete {
		s.mu.Unlock()
		return PhaseSnapshot{}, ErrSessionComplete
	}
	snap := PhaseSnapshot{
		Phase:          int(s.phase),
		Name:           s.phase.String(),
		Strokes:        strokes,
		Elapsed:        s.now().Sub(s.started),
		StrokeCount:    len(strokes),
		DistinctColors: sortedColors(s.colors),
		Coverage:       coverageEstimate(len(strokes)),
	}
	// The session keeps its own copy so the returned snapshot can't be used
	// to mutate the record.
	s.snapshots = append(s.snapshots, snap.clone())

	if s.phase < PhasePerson {
		s.phase++
		s.started = s.now()
		s.colors = map[string]struct{}{s.brushColor: {}}
		s.mu.Unlock()
		s.sketch.Clear()
		log.Printf("[SESSION] advanced to phase %d (%s)", snap.Phase+1, Phase(snap.Phase+1))
		return snap, nil
	}

	s.complete = true
	s.mu.Unlock()
	s.sketch.Clear()
	log.Printf("[SESSION] all phases complete, %d snapshots recorded", snap.Phase)
	return snap, nil
}

// Snapshots returns a deep copy of the accumulated phase snapshots.
func (s *Session) Snapshots() []PhaseSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PhaseSnapshot, 0, len(s.snapshots))
	for _, snap := range s.snapshots {
		out = append(out, snap.clone())
	}
	return out
}

func (ps PhaseSnapshot) clone() PhaseSnapshot {
	c := ps
	c.Strokes = make([]Stroke, 0, len(ps.Strokes))
	for _, st := range ps.Strokes {
		c.Strokes = append(c.Strokes, st.clone())
	}
	c.DistinctColors = append([]string(nil), ps.DistinctColors...)
	return c
}

// coverageEstimate is a crude saturating proxy for canvas fill: two percent
// per completed stroke, clamped at 100. Not a pixel measurement.
func coverageEstimate(strokeCount int) float64 {
	c := float64(strokeCount) * 2
	if c > 100 {
		return 100
	}
	return c
}

func sortedColors(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
