package state

import "time"

// Point is one sampled location plus the brush attributes that were active
// when it was recorded. Immutable once recorded.
type Point struct {
	X     float32 `json:"x"`
	Y     float32 `json:"y"`
	Color string  `json:"color"`
	Size  float32 `json:"size"`
}

// Stroke is one continuous drawn line, from pointer-down to pointer-up.
// Display attributes for the whole stroke come from its first point.
type Stroke struct {
	ID     string  `json:"id"`
	Points []Point `json:"points"`
}

// Color returns the stroke's display color (the first point's color).
func (s Stroke) Color() string {
	if len(s.Points) == 0 {
		return ""
	}
	return s.Points[0].Color
}

// Width returns the stroke's display width (the first point's size).
func (s Stroke) Width() float32 {
	if len(s.Points) == 0 {
		return 0
	}
	return s.Points[0].Size
}

func (s Stroke) clone() Stroke {
	pts := make([]Point, len(s.Points))
	copy(pts, s.Points)
	return Stroke{ID: s.ID, Points: pts}
}

// Phase identifies one of the three guided drawing steps.
type Phase int

const (
	PhaseHouse Phase = iota + 1
	PhaseTree
	PhasePerson
)

func (p Phase) String() string {
	switch p {
	case PhaseHouse:
		return "House"
	case PhaseTree:
		return "Tree"
	case PhasePerson:
		return "Person"
	}
	return "Unknown"
}

// Domain returns the psychological domain the phase probes.
func (p Phase) Domain() string {
	switch p {
	case PhaseHouse:
		return "Security & Family"
	case PhaseTree:
		return "Growth & Stability"
	case PhasePerson:
		return "Self-Image & Relations"
	}
	return ""
}

// PhaseSnapshot is the frozen summary of one completed phase. Snapshots are
// deep copies: mutating the session afterwards must never change them.
type PhaseSnapshot struct {
	Phase          int
	Name           string
	Strokes        []Stroke
	Elapsed        time.Duration
	StrokeCount    int
	DistinctColors []string
	Coverage       float64
}

// LiveMetrics is a point-in-time read of the current phase, polled by the UI
// once per second for the live display.
type LiveMetrics struct {
	Phase              int
	Elapsed            time.Duration
	StrokeCount        int
	DistinctColorCount int
	Coverage           float64
}
