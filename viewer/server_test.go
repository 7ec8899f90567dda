package viewer

import (
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"testing"

	"github.com/nomutin/Push2D/collector"
	"github.com/nomutin/Push2D/env"
)

func recordEpisode(t *testing.T, dir string, length int) {
	t.Helper()
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		t.Fatal(err)
	}
	saver := collector.NewSaver(dir, length)
	saver.Toggle()
	frame := env.NewFrame(4, 3)
	frame.Fill(env.Red)
	for i := 0; i < length; i++ {
		if err := saver.Append(env.Up, frame); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	base := t.TempDir()
	recordEpisode(t, path.Join(base, "3_7_14"), 2)
	return NewServer(context.Background(), 0, base)
}

func get(t *testing.T, s *Server, url string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestDatasetsEndpoint(t *testing.T) {
	s := newTestServer(t)
	w := get(t, s, "/datasets")
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", w.Code)
	}
	var resp struct {
		Datasets []struct {
			Name     string `json:"name"`
			Episodes int    `json:"episodes"`
		} `json:"datasets"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if len(resp.Datasets) != 1 || resp.Datasets[0].Name != "3_7_14" || resp.Datasets[0].Episodes != 1 {
		t.Fatalf("unexpected datasets %+v", resp.Datasets)
	}
}

func TestEpisodeEndpoint(t *testing.T) {
	s := newTestServer(t)
	w := get(t, s, "/datasets/3_7_14/episodes/0")
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", w.Code)
	}
	var resp struct {
		Length           int   `json:"length"`
		ActionShape      []int `json:"action_shape"`
		ObservationShape []int `json:"observation_shape"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if resp.Length != 2 {
		t.Fatalf("unexpected length %d", resp.Length)
	}
	if len(resp.ObservationShape) != 4 || resp.ObservationShape[3] != 3 {
		t.Fatalf("unexpected observation shape %v", resp.ObservationShape)
	}
}

func TestEpisodeNotFound(t *testing.T) {
	s := newTestServer(t)
	if w := get(t, s, "/datasets/3_7_14/episodes/5"); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if w := get(t, s, "/datasets/3_7_14/episodes/x"); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestEpisodeRejectsUnexpectedShape(t *testing.T) {
	base := t.TempDir()
	dir := path.Join(base, "3_7_15")
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		t.Fatal(err)
	}
	// an action file with a flat layout instead of steps by slots
	if err := collector.WriteInt64(collector.ActionPath(dir, 0), make([]int64, 8), []int{8}); err != nil {
		t.Fatal(err)
	}
	if err := collector.WriteUint8(collector.ObservationPath(dir, 0), make([]uint8, 2*3*4*3), []int{2, 3, 4, 3}); err != nil {
		t.Fatal(err)
	}

	s := NewServer(context.Background(), 0, base)
	if w := get(t, s, "/datasets/3_7_15/episodes/0"); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for malformed episode, got %d", w.Code)
	}
}

func TestFrameEndpointServesPNG(t *testing.T) {
	s := newTestServer(t)
	w := get(t, s, "/datasets/3_7_14/episodes/0/frames/1")
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", w.Code)
	}
	img, err := png.Decode(w.Body)
	if err != nil {
		t.Fatalf("expected a png: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 4 || bounds.Dy() != 3 {
		t.Fatalf("unexpected image size %v", bounds)
	}
	if w := get(t, s, "/datasets/3_7_14/episodes/0/frames/9"); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for out of range frame, got %d", w.Code)
	}
}

func TestLiveEndpoint(t *testing.T) {
	s := newTestServer(t)
	if w := get(t, s, "/live"); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without an environment, got %d", w.Code)
	}

	e, err := env.NewEnv(env.RedAndGreen())
	if err != nil {
		t.Fatalf("env: %v", err)
	}
	s.Attach(e)
	w := get(t, s, "/live")
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", w.Code)
	}
	if _, err := png.Decode(w.Body); err != nil {
		t.Fatalf("expected a png: %v", err)
	}
}
