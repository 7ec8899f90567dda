package manual

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/nomutin/Push2D/collector"
	"github.com/nomutin/Push2D/env"
)

func newTestOperator(t *testing.T) *Operator {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	t.Cleanup(func() {
		// Run finalizes the screen itself; tcell's simulation screen
		// panics on a second Fini
		defer func() { _ = recover() }()
		screen.Fini()
	})

	e, err := env.NewEnv(env.RedAndGreen())
	if err != nil {
		t.Fatalf("env: %v", err)
	}
	return &Operator{
		screen: screen,
		env:    e,
		saver:  collector.NewSaver(t.TempDir(), 10),
	}
}

func TestArrowKeysAccumulate(t *testing.T) {
	o := newTestOperator(t)

	o.handleKey(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	o.handleKey(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))

	if o.pending != env.Up|env.Right {
		t.Fatalf("unexpected pending action %v", o.pending)
	}
}

func TestQuitKeys(t *testing.T) {
	o := newTestOperator(t)

	if o.handleKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Fatalf("q should quit")
	}
	if o.handleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatalf("escape should quit")
	}
	if !o.handleKey(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)) {
		t.Fatalf("unbound keys should not quit")
	}
}

func TestRunExitsOnQuit(t *testing.T) {
	o := newTestOperator(t)
	sim := o.screen.(tcell.SimulationScreen)

	done := make(chan error, 1)
	go func() {
		done <- o.Run()
	}()

	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("run did not stop on quit")
	}

	// the screen is finalized, the event reader must stop instead of
	// spinning on nil events
	if ev := sim.PollEvent(); ev != nil {
		t.Fatalf("expected nil event after shutdown, got %T", ev)
	}
}

func TestSaveKeyTogglesRecording(t *testing.T) {
	o := newTestOperator(t)

	o.handleKey(tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone))
	if !o.saver.Recording() {
		t.Fatalf("expected recording on")
	}
	o.handleKey(tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone))
	if o.saver.Recording() {
		t.Fatalf("expected recording off")
	}
}

func TestDrawFillsCells(t *testing.T) {
	o := newTestOperator(t)
	frame, _ := o.env.Reset()
	o.draw(frame)

	// background is white in the builtin scenario
	sim := o.screen.(tcell.SimulationScreen)
	cells, width, _ := sim.GetContents()
	if width == 0 || len(cells) == 0 {
		t.Fatalf("expected drawn cells")
	}
	_, bg, _ := cells[0].Style.Decompose()
	if bg != tcell.NewRGBColor(255, 255, 255) {
		t.Fatalf("expected white background, got %v", bg)
	}
}
