package manual

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/nomutin/Push2D/collector"
	"github.com/nomutin/Push2D/env"
)

// TransitionSink receives every executed transition, e.g. a replay buffer
type TransitionSink interface {
	Push(context.Context, *collector.Transition) error
}

// Operator drives the environment from the keyboard. Arrow keys steer the
// agent for the next simulation tick, r resets, s toggles recording and q
// quits. The field is downsampled to terminal cells.
type Operator struct {
	screen tcell.Screen
	env    *env.Env
	saver  *collector.Saver
	sink   TransitionSink

	pending env.Action
}

func NewOperator(e *env.Env, saver *collector.Saver) (*Operator, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return &Operator{
		screen: screen,
		env:    e,
		saver:  saver,
	}, nil
}

// SetSink attaches a transition sink, called before Run
func (o *Operator) SetSink(sink TransitionSink) {
	o.sink = sink
}

// Run blocks until the operator quits
func (o *Operator) Run() error {
	defer o.screen.Fini()

	o.env.Reset()

	fps := o.env.Scenario().FPS
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := o.screen.PollEvent()
			if ev == nil {
				// screen finalized
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !o.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			action := o.pending
			o.pending = env.NoOp

			frame, reward, _, _, _ := o.env.Step(action)
			if err := o.saver.Append(action, frame); err != nil {
				return err
			}
			if o.sink != nil {
				tr := &collector.Transition{Action: action.Slots(), Reward: reward}
				if err := o.sink.Push(context.Background(), tr); err != nil {
					return err
				}
			}
			o.draw(frame)
		}
	}
}

func (o *Operator) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return o.handleKey(ev)
	case *tcell.EventResize:
		o.screen.Sync()
	}
	return true
}

func (o *Operator) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		o.pending |= env.Up
		return true
	case tcell.KeyDown:
		o.pending |= env.Down
		return true
	case tcell.KeyLeft:
		o.pending |= env.Left
		return true
	case tcell.KeyRight:
		o.pending |= env.Right
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'r':
			o.env.Reset()
		case 's':
			o.saver.Toggle()
		}
	}
	return true
}

func (o *Operator) draw(frame *env.Frame) {
	o.screen.Clear()

	width, height := o.screen.Size()
	statusRows := 1
	rows := height - statusRows
	if rows < 1 || width < 1 {
		return
	}

	// sample the frame pixel at each cell center
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < width; cx++ {
			px := (cx*frame.Width + frame.Width/2) / width
			py := (cy*frame.Height + frame.Height/2) / rows
			c := frame.At(px, py)
			style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
			o.screen.SetContent(cx, cy, ' ', nil, style)
		}
	}

	o.drawStatus(rows, width)
	o.screen.Show()
}

func (o *Operator) drawStatus(row, width int) {
	caption := "[r]:Reset [s]:Save [q]:Quit"
	if o.saver.Recording() {
		caption += "  " + o.saver.Progress()
	}
	style := tcell.StyleDefault
	for i, r := range caption {
		if i >= width {
			break
		}
		o.screen.SetContent(i, row, r, nil, style)
	}
}
