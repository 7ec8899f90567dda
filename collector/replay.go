package collector

import (
	"fmt"
	"path"

	"github.com/nomutin/Push2D/env"
)

// LoadActions reads a recorded action file back into actions
func LoadActions(savePath string) ([]env.Action, error) {
	data, shape, err := ReadInt64(savePath)
	if err != nil {
		return nil, err
	}
	if len(shape) != 2 || shape[1] != 4 {
		return nil, fmt.Errorf("expected an Lx4 action array, got shape %v", shape)
	}
	actions := make([]env.Action, shape[0])
	for i := range actions {
		var slots [4]int64
		copy(slots[:], data[i*4:(i+1)*4])
		actions[i] = env.FromSlots(slots)
	}
	return actions, nil
}

// Replay resets the environment, applies the recorded actions in order and
// writes the resulting observation stack as replay.npy next to the input.
func Replay(e *env.Env, actionPath string) (string, error) {
	actions, err := LoadActions(actionPath)
	if err != nil {
		return "", err
	}

	frames := make([]uint8, 0)
	height, width := 0, 0
	frame, _ := e.Reset()
	for _, a := range actions {
		frame, _, _, _, _ = e.Step(a)
		frames = append(frames, frame.Pix...)
		height = frame.Height
		width = frame.Width
	}

	outPath := path.Join(path.Dir(actionPath), "replay.npy")
	if err := WriteUint8(outPath, frames, []int{len(actions), height, width, 3}); err != nil {
		return "", err
	}
	return outPath, nil
}
