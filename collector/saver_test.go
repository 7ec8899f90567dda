package collector

import (
	"testing"
	"time"

	"github.com/nomutin/Push2D/env"
)

func testFrame() *env.Frame {
	f := env.NewFrame(4, 3)
	f.Fill(env.White)
	return f
}

func TestSaverFlushesAtLength(t *testing.T) {
	dir := t.TempDir()
	saver := NewSaver(dir, 3)
	saver.Toggle()

	for i := 0; i < 3; i++ {
		if err := saver.Append(env.Right, testFrame()); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	if got := EpisodeCount(dir); got != 1 {
		t.Fatalf("expected 1 episode, got %d", got)
	}
	actions, shape, err := ReadInt64(ActionPath(dir, 0))
	if err != nil {
		t.Fatalf("read actions: %v", err)
	}
	if shape[0] != 3 || shape[1] != 4 {
		t.Fatalf("unexpected action shape %v", shape)
	}
	// Right is slot 3
	if actions[0] != 0 || actions[3] != 1 {
		t.Fatalf("unexpected first action row %v", actions[:4])
	}

	_, obsShape, err := ReadUint8(ObservationPath(dir, 0))
	if err != nil {
		t.Fatalf("read observations: %v", err)
	}
	if len(obsShape) != 4 || obsShape[0] != 3 || obsShape[1] != 3 || obsShape[2] != 4 || obsShape[3] != 3 {
		t.Fatalf("unexpected observation shape %v", obsShape)
	}

	// buffers cleared, the next flush gets the next index
	if saver.Progress() != "0/3" {
		t.Fatalf("unexpected progress %s", saver.Progress())
	}
	for i := 0; i < 3; i++ {
		saver.Append(env.Up, testFrame())
	}
	if got := EpisodeCount(dir); got != 2 {
		t.Fatalf("expected 2 episodes, got %d", got)
	}
}

func TestSaverIgnoresWhenNotRecording(t *testing.T) {
	dir := t.TempDir()
	saver := NewSaver(dir, 1)
	if err := saver.Append(env.Up, testFrame()); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if got := EpisodeCount(dir); got != 0 {
		t.Fatalf("expected no episodes, got %d", got)
	}
}

func TestToggleOffDiscardsPartial(t *testing.T) {
	dir := t.TempDir()
	saver := NewSaver(dir, 5)
	saver.Toggle()
	saver.Append(env.Up, testFrame())
	if saver.Progress() != "1/5" {
		t.Fatalf("unexpected progress %s", saver.Progress())
	}
	saver.Toggle()
	if saver.Recording() {
		t.Fatalf("expected recording off")
	}
	if saver.Progress() != "0/5" {
		t.Fatalf("partial buffer should be discarded, got %s", saver.Progress())
	}
}

func TestDatasetDirNaming(t *testing.T) {
	base := t.TempDir()
	now := time.Date(2024, time.March, 7, 14, 0, 0, 0, time.UTC)
	dir, err := DatasetDir(base, now)
	if err != nil {
		t.Fatalf("dataset dir failed: %v", err)
	}
	names, err := ListDatasets(base)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(names) != 1 || names[0] != "3_7_14" {
		t.Fatalf("unexpected dataset names %v from %s", names, dir)
	}
}

func TestReplayWritesObservations(t *testing.T) {
	dir := t.TempDir()
	saver := NewSaver(dir, 2)
	saver.Toggle()
	e, err := env.NewEnv(env.RedAndGreen())
	if err != nil {
		t.Fatalf("env: %v", err)
	}
	e.Reset()
	for i := 0; i < 2; i++ {
		frame, _, _, _, _ := e.Step(env.Right)
		if err := saver.Append(env.Right, frame); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	outPath, err := Replay(e, ActionPath(dir, 0))
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	_, shape, err := ReadUint8(outPath)
	if err != nil {
		t.Fatalf("read replay: %v", err)
	}
	scenario := env.RedAndGreen()
	if shape[0] != 2 || shape[1] != int(scenario.Height) || shape[2] != int(scenario.Width) || shape[3] != 3 {
		t.Fatalf("unexpected replay shape %v", shape)
	}
}
