package state

import "testing"

func pt(x, y float32) Point {
	return Point{X: x, Y: y, Color: "#000000", Size: 3}
}

func TestSketch_DownMovesUp(t *testing.T) {
	s := NewSketch()
	if !s.BeginStroke(pt(0, 0)) {
		t.Fatal("BeginStroke should succeed on idle sketch")
	}
	for i := 1; i <= 4; i++ {
		if !s.ExtendStroke(pt(float32(i), float32(i))) {
			t.Fatalf("ExtendStroke %d failed", i)
		}
	}
	if !s.EndStroke() {
		t.Error("EndStroke should persist a 5-point stroke")
	}
	if got := s.StrokeCount(); got != 1 {
		t.Errorf("StrokeCount %d, want 1", got)
	}
	snap := s.Snapshot()
	if len(snap) != 1 || len(snap[0].Points) != 5 {
		t.Fatalf("snapshot should hold one 5-point stroke, got %+v", snap)
	}
	if snap[0].ID == "" {
		t.Error("stroke ID should be assigned")
	}
}

func TestSketch_TapDiscarded(t *testing.T) {
	s := NewSketch()
	s.BeginStroke(pt(10, 10))
	if s.EndStroke() {
		t.Error("a single-point stroke should not be persisted")
	}
	if got := s.StrokeCount(); got != 0 {
		t.Errorf("StrokeCount %d, want 0", got)
	}
	if s.InProgress() {
		t.Error("in-progress slot should be cleared after the tap")
	}
}

func TestSketch_OutOfOrderEvents(t *testing.T) {
	s := NewSketch()
	if s.ExtendStroke(pt(1, 1)) {
		t.Error("move without a preceding down should be a no-op")
	}
	if s.EndStroke() {
		t.Error("up without a preceding down should be a no-op")
	}

	s.BeginStroke(pt(0, 0))
	if s.BeginStroke(pt(5, 5)) {
		t.Error("a second down while drawing should be a no-op")
	}
	s.ExtendStroke(pt(1, 1))
	s.EndStroke()
	snap := s.Snapshot()
	if len(snap) != 1 || len(snap[0].Points) != 2 {
		t.Fatalf("the ignored second down must not fork the stroke, got %+v", snap)
	}
	if snap[0].Points[0].X != 0 {
		t.Error("stroke should still start at the original down point")
	}
}

func TestSketch_UndoRemovesLastOnly(t *testing.T) {
	s := NewSketch()
	if s.Undo() {
		t.Error("undo on empty history should report false")
	}

	for i := 0; i < 3; i++ {
		s.BeginStroke(pt(float32(i), 0))
		s.ExtendStroke(pt(float32(i), 1))
		s.EndStroke()
	}
	first := s.Snapshot()[0].ID

	if !s.Undo() {
		t.Fatal("undo should succeed with 3 strokes")
	}
	if got := s.StrokeCount(); got != 2 {
		t.Errorf("StrokeCount %d, want 2", got)
	}
	if s.Snapshot()[0].ID != first {
		t.Error("undo must only remove the most recent stroke")
	}
}

func TestSketch_Clear(t *testing.T) {
	s := NewSketch()
	s.BeginStroke(pt(0, 0))
	s.ExtendStroke(pt(1, 1))
	s.EndStroke()
	s.BeginStroke(pt(2, 2)) // leave one in progress

	s.Clear()
	if got := s.StrokeCount(); got != 0 {
		t.Errorf("StrokeCount %d, want 0", got)
	}
	if s.InProgress() {
		t.Error("clear should drop the in-progress stroke")
	}
	if len(s.Snapshot()) != 0 {
		t.Error("snapshot after clear should be empty")
	}
}

func TestSketch_SnapshotIsDeepCopy(t *testing.T) {
	s := NewSketch()
	s.BeginStroke(pt(0, 0))
	s.ExtendStroke(pt(1, 1))
	s.EndStroke()

	snap := s.Snapshot()
	snap[0].Points[0].X = 999

	if s.Snapshot()[0].Points[0].X != 0 {
		t.Error("mutating a snapshot must not leak into the sketch")
	}
}
