package collector

import (
	"fmt"

	"github.com/nomutin/Push2D/env"
)

// Saver buffers (action, observation) pairs while recording and writes a
// numbered episode once the configured length is reached.
type Saver struct {
	dir       string
	length    int
	recording bool

	actions []int64
	frames  []uint8
	steps   int
	height  int
	width   int
}

// NewSaver writes episodes of the given length into dir
func NewSaver(dir string, length int) *Saver {
	return &Saver{
		dir:     dir,
		length:  length,
		actions: make([]int64, 0, length*4),
		frames:  make([]uint8, 0),
	}
}

func (s *Saver) Recording() bool {
	return s.recording
}

// Toggle switches recording on or off, clearing partial buffers when
// switched off.
func (s *Saver) Toggle() {
	s.recording = !s.recording
	if !s.recording {
		s.clear()
	}
}

// Progress is the "n/len" caption shown while recording
func (s *Saver) Progress() string {
	return fmt.Sprintf("%d/%d", s.steps, s.length)
}

// Append records one transition. When the episode length is reached the
// pair is flushed to disk and the buffers clear.
func (s *Saver) Append(action env.Action, frame *env.Frame) error {
	if !s.recording {
		return nil
	}
	slots := action.Slots()
	s.actions = append(s.actions, slots[:]...)
	s.frames = append(s.frames, frame.Pix...)
	s.height = frame.Height
	s.width = frame.Width
	s.steps++

	if s.steps < s.length {
		return nil
	}
	return s.flush()
}

func (s *Saver) flush() error {
	index := EpisodeCount(s.dir)
	if err := WriteInt64(ActionPath(s.dir, index), s.actions, []int{s.steps, 4}); err != nil {
		return err
	}
	err := WriteUint8(ObservationPath(s.dir, index), s.frames, []int{s.steps, s.height, s.width, 3})
	s.clear()
	return err
}

func (s *Saver) clear() {
	s.actions = s.actions[:0]
	s.frames = s.frames[:0]
	s.steps = 0
}
