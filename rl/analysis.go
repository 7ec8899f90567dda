package rl

import (
	"fmt"
	"os"
	"path"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Generic Dataset that contains information after processing the traces
type DataSet interface{}

// Analyzer compresses the information in the traces to a DataSet
type Analyzer interface {
	// Run, episode, experiment, trace
	Analyze(int, int, string, *Trace)
	// Resulting dataset
	DataSet() DataSet
	// Reset the analyzer
	Reset()
}

// Comparator differentiates between datasets with associated names
// run, episodes, experiment names, datasets
type Comparator func(int, int, []string, []DataSet)

func NoopComparator() Comparator {
	return func(int, int, []string, []DataSet) {}
}

// CoverageAnalyzer counts unique states visited, episode by episode
type CoverageAnalyzer struct {
	uniqueStates map[string]bool
	perEpisode   []int
}

var _ Analyzer = &CoverageAnalyzer{}

func NewCoverageAnalyzer() *CoverageAnalyzer {
	return &CoverageAnalyzer{
		uniqueStates: make(map[string]bool),
		perEpisode:   make([]int, 0),
	}
}

func (c *CoverageAnalyzer) Analyze(_ int, _ int, _ string, trace *Trace) {
	for i := 0; i < trace.Len(); i++ {
		s, _, _, _, _ := trace.Get(i)
		c.uniqueStates[s.Hash()] = true
	}
	c.perEpisode = append(c.perEpisode, len(c.uniqueStates))
}

func (c *CoverageAnalyzer) DataSet() DataSet {
	out := make([]int, len(c.perEpisode))
	copy(out, c.perEpisode)
	return out
}

func (c *CoverageAnalyzer) Reset() {
	c.uniqueStates = make(map[string]bool)
	c.perEpisode = c.perEpisode[:0]
}

// ReturnAnalyzer records the undiscounted return of every episode
type ReturnAnalyzer struct {
	returns []float64
}

var _ Analyzer = &ReturnAnalyzer{}

func NewReturnAnalyzer() *ReturnAnalyzer {
	return &ReturnAnalyzer{returns: make([]float64, 0)}
}

func (r *ReturnAnalyzer) Analyze(_ int, _ int, _ string, trace *Trace) {
	r.returns = append(r.returns, trace.Return())
}

func (r *ReturnAnalyzer) DataSet() DataSet {
	out := make([]float64, len(r.returns))
	copy(out, r.returns)
	return out
}

func (r *ReturnAnalyzer) Reset() {
	r.returns = r.returns[:0]
}

// VisitGrid accumulates agent visits per cell, plotted as a heat map
type VisitGrid struct {
	Visits map[int]map[int]int
	Height int
	Width  int

	// Resolution scales cell indices back to field coordinates
	Resolution float64
}

var _ plotter.GridXYZ = &VisitGrid{}

func (g *VisitGrid) Dims() (int, int) {
	return g.Width, g.Height
}

func (g *VisitGrid) Z(j, i int) float64 {
	return float64(g.Visits[i][j])
}

func (g *VisitGrid) X(j int) float64 {
	return float64(j) * g.Resolution
}

func (g *VisitGrid) Y(i int) float64 {
	return float64(i) * g.Resolution
}

func (g *VisitGrid) Min() float64 {
	return 0.0
}

func (g *VisitGrid) Max() float64 {
	max := 0
	for _, vals := range g.Visits {
		for _, count := range vals {
			if count > max {
				max = count
			}
		}
	}
	return float64(max)
}

// VisitAnalyzer builds a VisitGrid from the agent cell of every state
type VisitAnalyzer struct {
	grid *VisitGrid
}

var _ Analyzer = &VisitAnalyzer{}

func NewVisitAnalyzer(resolution float64) *VisitAnalyzer {
	return &VisitAnalyzer{grid: newVisitGrid(resolution)}
}

func newVisitGrid(resolution float64) *VisitGrid {
	return &VisitGrid{
		Visits:     make(map[int]map[int]int),
		Resolution: resolution,
	}
}

func (v *VisitAnalyzer) Analyze(_ int, _ int, _ string, trace *Trace) {
	for i := 0; i < trace.Len(); i++ {
		s, _, _, _, _ := trace.Get(i)
		cellState, ok := s.(*CellState)
		if !ok {
			continue
		}
		cell := cellState.Agent
		if _, ok := v.grid.Visits[cell.I]; !ok {
			v.grid.Visits[cell.I] = make(map[int]int)
		}
		v.grid.Visits[cell.I][cell.J] += 1
		if cell.I+1 > v.grid.Height {
			v.grid.Height = cell.I + 1
		}
		if cell.J+1 > v.grid.Width {
			v.grid.Width = cell.J + 1
		}
	}
}

func (v *VisitAnalyzer) DataSet() DataSet {
	return v.grid
}

func (v *VisitAnalyzer) Reset() {
	v.grid = newVisitGrid(v.grid.Resolution)
}

// CoverageComparator plots the unique-state curves of every experiment
func CoverageComparator(plotPath string) Comparator {
	if _, err := os.Stat(plotPath); err != nil {
		os.MkdirAll(plotPath, os.ModePerm)
	}
	return func(run int, _ int, names []string, ds []DataSet) {
		p := plot.New()
		p.Title.Text = "Comparison"
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = "States covered"
		for i := 0; i < len(names); i++ {
			uniqueStates := ds[i].([]int)
			points := make(plotter.XYs, len(uniqueStates))
			for j, v := range uniqueStates {
				points[j] = plotter.XY{X: float64(j), Y: float64(v)}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(names[i], line)
			fmt.Printf("Number of unique states: %d for experiment: %s\n", uniqueStates[len(uniqueStates)-1], names[i])
		}
		p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, strconv.Itoa(run)+"_coverage.png"))
	}
}

// ReturnComparator plots the episode returns of every experiment
func ReturnComparator(plotPath string) Comparator {
	if _, err := os.Stat(plotPath); err != nil {
		os.MkdirAll(plotPath, os.ModePerm)
	}
	return func(run int, _ int, names []string, ds []DataSet) {
		p := plot.New()
		p.Title.Text = "Comparison"
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = "Return"
		for i := 0; i < len(names); i++ {
			returns := ds[i].([]float64)
			points := make(plotter.XYs, len(returns))
			for j, v := range returns {
				points[j] = plotter.XY{X: float64(j), Y: v}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(names[i], line)
		}
		p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, strconv.Itoa(run)+"_returns.png"))
	}
}

// VisitComparator saves a visit heat map per experiment
func VisitComparator(plotPath string) Comparator {
	if _, err := os.Stat(plotPath); err != nil {
		os.MkdirAll(plotPath, os.ModePerm)
	}
	return func(run int, _ int, names []string, ds []DataSet) {
		for i := 0; i < len(names); i++ {
			grid, ok := ds[i].(*VisitGrid)
			if !ok || grid.Width == 0 || grid.Height == 0 {
				continue
			}
			p := plot.New()
			p.Title.Text = names[i]
			p.Add(plotter.NewHeatMap(grid, palette.Heat(20, 1)))
			p.Save(4*vg.Inch, 4*vg.Inch, path.Join(plotPath, strconv.Itoa(run)+"_"+names[i]+"_visits.png"))
		}
	}
}
