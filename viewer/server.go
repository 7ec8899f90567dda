package viewer

import (
	"context"
	"fmt"
	"image/png"
	"net/http"
	"path"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nomutin/Push2D/collector"
	"github.com/nomutin/Push2D/env"
)

// Server exposes recorded datasets and the live frame of an attached
// environment over HTTP.
type Server struct {
	Port     int
	DataPath string

	ctx    context.Context
	server *http.Server

	lock *sync.Mutex
	env  *env.Env
}

func NewServer(ctx context.Context, port int, dataPath string) *Server {
	s := &Server{
		Port:     port,
		DataPath: dataPath,
		ctx:      ctx,
		lock:     new(sync.Mutex),
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.GET("/datasets", s.handleDatasets)
	r.GET("/datasets/:name/episodes/:idx", s.handleEpisode)
	r.GET("/datasets/:name/episodes/:idx/frames/:frame", s.handleFrame)
	r.GET("/live", s.handleLive)
	s.server = &http.Server{
		Addr:    fmt.Sprintf("localhost:%d", port),
		Handler: r,
	}

	return s
}

// Attach sets the environment served by the live endpoint
func (s *Server) Attach(e *env.Env) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.env = e
}

// Handler exposes the router, used by tests
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() {
	go func() {
		s.server.ListenAndServe()
	}()

	go func() {
		<-s.ctx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		s.server.Shutdown(ctx)
	}()
}

func (s *Server) handleDatasets(c *gin.Context) {
	names, err := collector.ListDatasets(s.DataPath)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"datasets": []gin.H{}})
		return
	}
	datasets := make([]gin.H, 0, len(names))
	for _, name := range names {
		datasets = append(datasets, gin.H{
			"name":     name,
			"episodes": collector.EpisodeCount(s.datasetDir(name)),
		})
	}
	c.JSON(http.StatusOK, gin.H{"datasets": datasets})
}

func (s *Server) handleEpisode(c *gin.Context) {
	dir, index, ok := s.episodeParams(c)
	if !ok {
		return
	}

	_, actionShape, err := collector.ReadInt64(collector.ActionPath(dir, index))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "episode not found"})
		return
	}
	_, obsShape, err := collector.ReadUint8(collector.ObservationPath(dir, index))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "episode not found"})
		return
	}
	if len(actionShape) != 2 || len(obsShape) != 4 {
		c.JSON(http.StatusNotFound, gin.H{"error": "episode not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"length":            actionShape[0],
		"action_shape":      actionShape,
		"observation_shape": obsShape,
	})
}

func (s *Server) handleFrame(c *gin.Context) {
	dir, index, ok := s.episodeParams(c)
	if !ok {
		return
	}
	frameIdx, err := strconv.Atoi(c.Param("frame"))
	if err != nil || frameIdx < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad frame index"})
		return
	}

	data, shape, err := collector.ReadUint8(collector.ObservationPath(dir, index))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "episode not found"})
		return
	}
	if len(shape) != 4 || frameIdx >= shape[0] {
		c.JSON(http.StatusNotFound, gin.H{"error": "frame out of range"})
		return
	}

	height, width := shape[1], shape[2]
	size := height * width * 3
	frame := &env.Frame{
		Width:  width,
		Height: height,
		Pix:    data[frameIdx*size : (frameIdx+1)*size],
	}
	s.writePNG(c, frame)
}

func (s *Server) handleLive(c *gin.Context) {
	s.lock.Lock()
	e := s.env
	s.lock.Unlock()

	if e == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no environment attached"})
		return
	}
	s.writePNG(c, e.Frame())
}

func (s *Server) writePNG(c *gin.Context, frame *env.Frame) {
	c.Header("Content-Type", "image/png")
	c.Status(http.StatusOK)
	png.Encode(c.Writer, frame.RGBA())
}

func (s *Server) episodeParams(c *gin.Context) (string, int, bool) {
	index, err := strconv.Atoi(c.Param("idx"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad episode index"})
		return "", 0, false
	}
	return s.datasetDir(c.Param("name")), index, true
}

func (s *Server) datasetDir(name string) string {
	return path.Join(s.DataPath, path.Base(name))
}
