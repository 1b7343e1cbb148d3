// Package analysis recomputes the per-phase drawing metrics and turns them
// into the psychological report: feature extraction, composite scores,
// rule-based personality clustering and per-phase insight text. Everything is
// a pure function of the submitted metrics; nothing here touches the session.
package analysis

import (
	"errors"
	"fmt"

	"MindCanvas/internal/state"
)

// ErrInvalidPayload marks a payload that fails structural validation.
var ErrInvalidPayload = errors.New("invalid analysis payload")

// PhaseMetrics is one completed phase on the wire.
type PhaseMetrics struct {
	Phase       int      `json:"phase"`
	TimeSpent   int64    `json:"timeSpent"` // milliseconds
	StrokeCount int      `json:"strokeCount"`
	ColorsUsed  []string `json:"colorsUsed"`
	Coverage    float64  `json:"coverage"`
}

// Payload is the document the drawing client submits for analysis, one entry
// per completed phase, in phase order.
type Payload struct {
	Phases []PhaseMetrics `json:"phases"`
}

// FromSnapshots converts the session's finalized snapshots into the wire
// payload.
func FromSnapshots(snaps []state.PhaseSnapshot) Payload {
	p := Payload{Phases: make([]PhaseMetrics, 0, len(snaps))}
	for _, snap := range snaps {
		colors := append([]string{}, snap.DistinctColors...)
		p.Phases = append(p.Phases, PhaseMetrics{
			Phase:       snap.Phase,
			TimeSpent:   snap.Elapsed.Milliseconds(),
			StrokeCount: snap.StrokeCount,
			ColorsUsed:  colors,
			Coverage:    snap.Coverage,
		})
	}
	return p
}

// Validate checks the payload structure before any math runs on it.
func (p Payload) Validate() error {
	if len(p.Phases) == 0 {
		return fmt.Errorf("%w: no phases", ErrInvalidPayload)
	}
	if len(p.Phases) > 3 {
		return fmt.Errorf("%w: %d phases, at most 3 expected", ErrInvalidPayload, len(p.Phases))
	}
	for i, ph := range p.Phases {
		if ph.Phase < 1 || ph.Phase > 3 {
			return fmt.Errorf("%w: entry %d has phase %d", ErrInvalidPayload, i, ph.Phase)
		}
		if ph.TimeSpent < 0 {
			return fmt.Errorf("%w: entry %d has negative timeSpent", ErrInvalidPayload, i)
		}
		if ph.StrokeCount < 0 {
			return fmt.Errorf("%w: entry %d has negative strokeCount", ErrInvalidPayload, i)
		}
		if ph.ColorsUsed == nil {
			return fmt.Errorf("%w: entry %d is missing colorsUsed", ErrInvalidPayload, i)
		}
	}
	return nil
}
