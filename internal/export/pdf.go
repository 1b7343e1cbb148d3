// Package export writes the finished session to a PDF report: one page per
// phase with the sketch replayed as line segments, then the profile page.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"MindCanvas/internal/analysis"
	"MindCanvas/internal/state"
)

// Canvas coordinates are pixels; the sketch is shrunk into the page under
// the heading.
const (
	sketchScale   = 4.0
	sketchOffsetX = 15.0
	sketchOffsetY = 35.0
)

// WriteReport renders the snapshots and the analysis report to path.
func WriteReport(path string, snaps []state.PhaseSnapshot, rep *analysis.Report) error {
	if rep == nil {
		return fmt.Errorf("no report to export")
	}

	p := gofpdf.New("P", "mm", "A4", "")
	p.SetTitle("MindCanvas Report", false)

	for _, snap := range snaps {
		p.AddPage()
		p.SetFont("Helvetica", "B", 16)
		p.Cell(0, 10, fmt.Sprintf("Phase %d: %s", snap.Phase, snap.Name))

		drawSketch(p, snap)

		p.SetY(190)
		p.SetFont("Helvetica", "", 11)
		p.MultiCell(0, 6, phaseSummary(snap, rep), "", "L", false)
	}

	p.AddPage()
	p.SetFont("Helvetica", "B", 16)
	p.Cell(0, 10, "Profile")
	p.Ln(14)
	p.SetFont("Helvetica", "", 11)
	p.MultiCell(0, 6, profileText(rep), "", "L", false)

	return p.OutputFileAndClose(path)
}

func drawSketch(p *gofpdf.Fpdf, snap state.PhaseSnapshot) {
	for _, stroke := range snap.Strokes {
		r, g, b := hexRGB(stroke.Color())
		p.SetDrawColor(r, g, b)
		p.SetLineWidth(float64(stroke.Width()) * 0.25)
		for i := 1; i < len(stroke.Points); i++ {
			p.Line(
				sketchOffsetX+float64(stroke.Points[i-1].X)/sketchScale,
				sketchOffsetY+float64(stroke.Points[i-1].Y)/sketchScale,
				sketchOffsetX+float64(stroke.Points[i].X)/sketchScale,
				sketchOffsetY+float64(stroke.Points[i].Y)/sketchScale,
			)
		}
	}
}

func phaseSummary(snap state.PhaseSnapshot, rep *analysis.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Time spent: %s\n", snap.Elapsed.Truncate(time.Second))
	fmt.Fprintf(&b, "Strokes: %d\n", snap.StrokeCount)
	fmt.Fprintf(&b, "Colors used: %s\n", strings.Join(snap.DistinctColors, ", "))
	fmt.Fprintf(&b, "Coverage estimate: %.0f%%\n", snap.Coverage)
	for _, in := range rep.Insights {
		if in.Phase == snap.Phase {
			fmt.Fprintf(&b, "\n%s\n", in.Text)
		}
	}
	return b.String()
}

func profileText(rep *analysis.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Personality type: %s (confidence %.2f)\n", rep.Cluster.Type, rep.Cluster.Confidence)
	fmt.Fprintf(&b, "%s\n\n", rep.Cluster.Description)
	fmt.Fprintf(&b, "Cognitive style: %s — %s\n\n", rep.Cognitive.Style, rep.Cognitive.Description)
	fmt.Fprintf(&b, "%s\n\n", rep.Assessment)
	c := rep.Features.Composite
	fmt.Fprintf(&b, "Psychological investment: %.2f\n", c.PsychologicalInvestment)
	fmt.Fprintf(&b, "Creative expression: %.2f\n", c.CreativeExpression)
	fmt.Fprintf(&b, "Behavioral consistency: %.2f\n", c.BehavioralConsistency)
	fmt.Fprintf(&b, "Attention to detail: %.2f\n", c.AttentionToDetail)
	return b.String()
}

func hexRGB(s string) (int, int, int) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, 0, 0
	}
	return int(r), int(g), int(b)
}
