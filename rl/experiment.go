package rl

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strconv"

	"github.com/nomutin/Push2D/util"
)

type experimentRunConfig struct {
	// execution configuration
	CurrentRun int
	Episodes   int
	Horizon    int
	Analyzers  []Analyzer
	Context    context.Context

	// record flags
	RecordTraces bool
	RecordPolicy bool

	RecordPath string

	// misc
	LongestExpNameLen int
}

// Experiment encapsulates the different parameters to configure an agent and analyze the traces
type Experiment struct {
	Name        string
	policy      Policy
	environment Environment
}

// NewExperiment creates a new experiment instance
func NewExperiment(name string, policy Policy, environment Environment) *Experiment {
	return &Experiment{
		Name:        name,
		policy:      policy,
		environment: environment,
	}
}

func (e *Experiment) recordTrace(rConfig *experimentRunConfig, trace *Trace) {
	tracesFile := path.Join(rConfig.RecordPath, "traces", e.Name+"_"+strconv.Itoa(rConfig.CurrentRun)+".jsonl")
	bs, err := json.Marshal(trace)
	if err != nil {
		panic(err)
	}

	util.AppendToFile(tracesFile, string(bs))
}

// Run the experiment for the specified number of episodes
func (e *Experiment) Run(rConfig *experimentRunConfig) {
	select {
	case <-rConfig.Context.Done():
		return
	default:
	}

	if rConfig.RecordTraces {
		tracesFolder := path.Join(rConfig.RecordPath, "traces")
		if _, err := os.Stat(tracesFolder); err != nil {
			os.MkdirAll(tracesFolder, os.ModePerm)
		}
	}

	agent := NewAgent(&AgentConfig{
		Episodes:    rConfig.Episodes,
		Horizon:     rConfig.Horizon,
		Policy:      e.policy,
		Environment: e.environment,
	})

	// paddings
	EPPadding := len(strconv.Itoa(rConfig.Episodes))
	NamePadding := rConfig.LongestExpNameLen

	totalReturn := 0.0
	for episode := 0; episode < rConfig.Episodes; episode++ {
		select {
		case <-rConfig.Context.Done():
			return
		default:
		}

		trace := agent.RunEpisode(episode)
		totalReturn += trace.Return()

		if rConfig.RecordTraces {
			e.recordTrace(rConfig, trace)
		}

		for _, a := range rConfig.Analyzers {
			a.Analyze(rConfig.CurrentRun, episode, e.Name, trace)
		}

		// terminal execution display
		fmt.Printf("\rExp:%*s, Eps:%*d/%d, AvgReturn:%8.3f",
			NamePadding, e.Name, EPPadding, episode+1, rConfig.Episodes,
			totalReturn/float64(episode+1))
	}

	select {
	case <-rConfig.Context.Done():
		return
	default:
	}

	if rConfig.RecordPolicy {
		if r, ok := e.policy.(recordable); ok {
			r.Record(path.Join(rConfig.RecordPath, "policies", e.Name+"_"+strconv.Itoa(rConfig.CurrentRun)))
		}
	}

	if rConfig.RecordTraces {
		e.recordSummary(rConfig, totalReturn)
	}

	fmt.Println("")
}

// recordSummary writes a readable per-run report next to the traces
func (e *Experiment) recordSummary(rConfig *experimentRunConfig, totalReturn float64) {
	summariesFolder := path.Join(rConfig.RecordPath, "summaries")
	if _, err := os.Stat(summariesFolder); err != nil {
		os.MkdirAll(summariesFolder, os.ModePerm)
	}

	summaryFile := path.Join(summariesFolder, e.Name+"_"+strconv.Itoa(rConfig.CurrentRun)+".txt")
	util.WriteToFile(summaryFile,
		fmt.Sprintf("experiment: %s", e.Name),
		fmt.Sprintf("run: %d", rConfig.CurrentRun),
		fmt.Sprintf("episodes: %d", rConfig.Episodes),
		fmt.Sprintf("horizon: %d", rConfig.Horizon),
		fmt.Sprintf("average return: %.3f", totalReturn/float64(rConfig.Episodes)),
	)
}

// Reset cleans the information accumulated by the policy
func (e *Experiment) Reset() {
	e.policy.Reset()
}

type recordable interface {
	Record(string) error
}

// ComparisonConfig contains the configuration for the comparison
type ComparisonConfig struct {
	Runs     int // number of runs
	Episodes int // number of episodes
	Horizon  int // number of steps

	RecordPath string // path to store the results

	// record flags
	RecordTraces bool
	RecordPolicy bool
}

// record the configuration of the comparison
func (c *Comparison) recordConfig() {
	cfg := c.cConfig
	if _, ok := os.Stat(cfg.RecordPath); ok != nil {
		os.MkdirAll(cfg.RecordPath, 0777)
	}

	f, err := os.Create(path.Join(cfg.RecordPath, "comparison_config.json"))
	if err != nil {
		panic(err)
	}
	defer f.Close()

	out := make(map[string]interface{})
	out["runs"] = cfg.Runs
	out["episodes"] = cfg.Episodes
	out["horizon"] = cfg.Horizon
	out["record_traces"] = cfg.RecordTraces
	out["record_policy"] = cfg.RecordPolicy

	experiments := make([]string, 0)
	for _, e := range c.Experiments {
		experiments = append(experiments, e.Name)
	}
	out["experiments"] = experiments

	out["analyzers"] = make([]string, 0)
	for name := range c.analyzers {
		out["analyzers"] = append(out["analyzers"].([]string), name)
	}

	bs, err := json.Marshal(out)
	if err != nil {
		panic(err)
	}
	f.Write(bs)
}

// Comparison contains the different experiments to compare
// The traces obtained from the experiments are analyzed
// The analyzed datasets are then compared
type Comparison struct {
	Experiments []*Experiment
	analyzers   map[string]Analyzer
	comparators map[string]Comparator
	cConfig     *ComparisonConfig
}

// NewComparison creates a comparison instance
func NewComparison(config *ComparisonConfig) *Comparison {
	if _, ok := os.Stat(config.RecordPath); ok == nil {
		RemoveContents(config.RecordPath)
	}
	os.MkdirAll(config.RecordPath, 0777)

	foldersToCreate := make([]string, 0)

	if config.RecordTraces {
		foldersToCreate = append(foldersToCreate, "traces")
	}

	if config.RecordPolicy {
		foldersToCreate = append(foldersToCreate, "policies")
	}

	for _, s := range foldersToCreate {
		fldPath := path.Join(config.RecordPath, s)
		if _, ok := os.Stat(fldPath); ok != nil {
			os.MkdirAll(fldPath, 0777)
		}
	}

	return &Comparison{
		Experiments: make([]*Experiment, 0),
		analyzers:   make(map[string]Analyzer),
		comparators: make(map[string]Comparator),
		cConfig:     config,
	}
}

// AddAnalysis adds an analyzer and comparator to the comparison
func (c *Comparison) AddAnalysis(name string, analyzer Analyzer, comparator Comparator) {
	c.analyzers[name] = analyzer
	c.comparators[name] = comparator
}

// Add experiments to compare
func (c *Comparison) AddExperiment(e *Experiment) {
	c.Experiments = append(c.Experiments, e)
}

// Run the comparison
func (c *Comparison) Run(ctx context.Context) {
	c.recordConfig() // store configuration details to a file

	longestNameLen := 0
	for _, e := range c.Experiments {
		if len(e.Name) > longestNameLen {
			longestNameLen = len(e.Name)
		}
	}

	for run := 0; run < c.cConfig.Runs; run++ {
		fmt.Printf("Run %d\n", run+1)
		datasets := make(map[string][]DataSet)

		for name := range c.analyzers {
			datasets[name] = make([]DataSet, len(c.Experiments))
		}

		names := make([]string, len(c.Experiments))
		for i, e := range c.Experiments {
			select {
			case <-ctx.Done():
				return
			default:
			}
			e.Run(c.prepareRunConfig(ctx, run, longestNameLen))
			for name, a := range c.analyzers {
				datasets[name][i] = a.DataSet()
				a.Reset()
			}
			names[i] = e.Name
			e.Reset()
		}
		for name, comp := range c.comparators {
			comp(run, c.cConfig.Episodes, names, datasets[name])
		}
	}
}

// prepare the run configuration for the experiment
func (c *Comparison) prepareRunConfig(ctx context.Context, run int, longestExpNameLen int) *experimentRunConfig {
	rCfg := &experimentRunConfig{
		CurrentRun:   run,
		Episodes:     c.cConfig.Episodes,
		Horizon:      c.cConfig.Horizon,
		Analyzers:    make([]Analyzer, 0),
		RecordTraces: c.cConfig.RecordTraces,
		RecordPolicy: c.cConfig.RecordPolicy,
		RecordPath:   c.cConfig.RecordPath,
		Context:      ctx,

		LongestExpNameLen: longestExpNameLen,
	}

	for _, a := range c.analyzers {
		rCfg.Analyzers = append(rCfg.Analyzers, a)
	}
	return rCfg
}

// RemoveContents deletes everything in the directory
func RemoveContents(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	names, err := d.Readdirnames(-1)
	if err != nil {
		return err
	}
	for _, name := range names {
		err = os.RemoveAll(path.Join(dir, name))
		if err != nil {
			return err
		}
	}
	return nil
}
