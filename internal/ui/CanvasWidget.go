package ui

import (
	"image/color"
	"log"
	"math"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"MindCanvas/internal/state"
)

// CanvasWidget is the drawing surface. It normalizes mouse events into
// session mutations and paints incrementally while a stroke is in progress.
//
// Painting is deliberately asymmetric: preview segments use whatever brush
// color/width is selected at the moment of each move, so mid-stroke tool
// changes show up live, while completed strokes replay from their stored
// first-point attributes.
type CanvasWidget struct {
	widget.BaseWidget
	session *state.Session

	mu      sync.RWMutex
	drawing bool
	lastPos fyne.Position
	preview []fyne.CanvasObject
}

var _ fyne.Widget = (*CanvasWidget)(nil)
var _ fyne.Draggable = (*CanvasWidget)(nil)
var _ desktop.Mouseable = (*CanvasWidget)(nil)
var _ desktop.Hoverable = (*CanvasWidget)(nil)

func NewCanvasWidget(session *state.Session) *CanvasWidget {
	c := &CanvasWidget{session: session}
	c.ExtendBaseWidget(c)
	return c
}

func validCoords(p fyne.Position) bool {
	x, y := float64(p.X), float64(p.Y)
	return !math.IsNaN(x) && !math.IsNaN(y) && !math.IsInf(x, 0) && !math.IsInf(y, 0)
}

func (c *CanvasWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	if !validCoords(e.Position) {
		log.Printf("[CANVAS] ignoring pointer-down with invalid coordinates")
		return
	}
	if !c.session.BeginStroke(e.Position.X, e.Position.Y) {
		return
	}
	c.mu.Lock()
	c.drawing = true
	c.lastPos = e.Position
	c.preview = nil
	c.mu.Unlock()
}

func (c *CanvasWidget) Dragged(e *fyne.DragEvent) {
	c.mu.RLock()
	drawing := c.drawing
	last := c.lastPos
	c.mu.RUnlock()
	if !drawing {
		// Hover or a move after the stroke ended: nothing to extend.
		return
	}
	if !validCoords(e.Position) {
		log.Printf("[CANVAS] ignoring pointer-move with invalid coordinates")
		return
	}
	if !c.session.ExtendStroke(e.Position.X, e.Position.Y) {
		return
	}

	// Incremental paint at the live brush attributes.
	hex, size := c.session.Brush()
	segment := canvas.NewLine(hexToColor(hex))
	segment.StrokeWidth = size
	segment.Position1 = last
	segment.Position2 = e.Position

	c.mu.Lock()
	c.preview = append(c.preview, segment)
	c.lastPos = e.Position
	c.mu.Unlock()
	c.Refresh()
}

func (c *CanvasWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		c.finishStroke()
	}
}

// DragEnd fires when the button is released mid-drag; same as a pointer-up.
func (c *CanvasWidget) DragEnd() {
	c.finishStroke()
}

// MouseOut ends the stroke rather than discarding it, so leaving the surface
// mid-stroke doesn't lose what was drawn.
func (c *CanvasWidget) MouseOut() {
	c.finishStroke()
}

func (c *CanvasWidget) MouseIn(*desktop.MouseEvent)    {}
func (c *CanvasWidget) MouseMoved(*desktop.MouseEvent) {}

// finishStroke is idempotent: an up with no active stroke is a no-op.
func (c *CanvasWidget) finishStroke() {
	c.mu.Lock()
	wasDrawing := c.drawing
	c.drawing = false
	c.preview = nil
	c.mu.Unlock()
	if !wasDrawing {
		return
	}
	c.session.EndStroke()
	c.Refresh()
}

func (c *CanvasWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &canvasRenderer{board: c}
	r.background = canvas.NewRectangle(color.White)
	return r
}

type canvasRenderer struct {
	board      *CanvasWidget
	background *canvas.Rectangle
}

// Objects rebuilds the full scene: background, every completed stroke
// replayed from its stored attributes, then the live preview segments. A
// full rebuild is what makes undo and clear work; incremental painting
// cannot erase a single stroke.
func (r *canvasRenderer) Objects() []fyne.CanvasObject {
	objects := []fyne.CanvasObject{r.background}

	for _, stroke := range r.board.session.History() {
		strokeColor := hexToColor(stroke.Color())
		width := stroke.Width()
		for i := 0; i < len(stroke.Points)-1; i++ {
			segment := canvas.NewLine(strokeColor)
			segment.StrokeWidth = width
			segment.Position1 = fyne.NewPos(stroke.Points[i].X, stroke.Points[i].Y)
			segment.Position2 = fyne.NewPos(stroke.Points[i+1].X, stroke.Points[i+1].Y)
			objects = append(objects, segment)
		}
	}

	r.board.mu.RLock()
	objects = append(objects, r.board.preview...)
	r.board.mu.RUnlock()
	return objects
}

func (r *canvasRenderer) Refresh() { canvas.Refresh(r.board) }

func (r *canvasRenderer) Destroy() {}

func (r *canvasRenderer) Layout(size fyne.Size) { r.background.Resize(size) }

func (r *canvasRenderer) MinSize() fyne.Size { return fyne.NewSize(640, 480) }
