package ui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"MindCanvas/internal/state"
)

// RunApp builds the window and runs the three-phase drawing flow. onComplete
// is invoked once, after the last phase is finished, with the accumulated
// snapshots; the text it returns is shown to the user.
func RunApp(session *state.Session, onComplete func([]state.PhaseSnapshot) (string, error)) {
	myApp := app.New()
	win := myApp.NewWindow("MindCanvas")
	win.Resize(fyne.NewSize(1024, 768))

	board := NewCanvasWidget(session)
	instruction := widget.NewLabel(phaseInstruction(session.Phase()))
	metricsBar := widget.NewLabel("Ready")

	var advanceBtn *widget.Button
	advanceBtn = widget.NewButton("Finish phase", func() {
		if _, err := session.Advance(); err != nil {
			return
		}
		board.Refresh()

		if !session.Complete() {
			instruction.SetText(phaseInstruction(session.Phase()))
			return
		}
		instruction.SetText("All phases complete")
		advanceBtn.Disable()

		if onComplete == nil {
			return
		}
		text, err := onComplete(session.Snapshots())
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		dialog.ShowInformation("Your insights", text, win)
	})

	top := container.NewVBox(
		NewToolbar(session, board),
		container.NewHBox(instruction, layout.NewSpacer(), advanceBtn),
	)
	win.SetContent(container.NewBorder(top, metricsBar, nil, nil, board))

	// Live metrics refresh, once per second.
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				m := session.LiveMetrics()
				fyne.Do(func() {
					metricsBar.SetText(metricsLine(m))
				})
			}
		}
	}()
	win.SetOnClosed(func() { close(done) })

	win.ShowAndRun()
}

func phaseInstruction(p state.Phase) string {
	return fmt.Sprintf("Phase %d of 3 — draw a %s (%s)", int(p), p, p.Domain())
}

func metricsLine(m state.LiveMetrics) string {
	return fmt.Sprintf("Elapsed: %s  |  Strokes: %d  |  Colors: %d  |  Coverage: %.0f%%",
		m.Elapsed.Truncate(time.Second), m.StrokeCount, m.DistinctColorCount, m.Coverage)
}
