package rl

import (
	"context"
	"encoding/json"
	"os"
	"path"
	"strings"
	"testing"
)

// scriptedPolicy replays a fixed action sequence
type scriptedPolicy struct {
	script  []Action
	updates int
}

func (s *scriptedPolicy) NextAction(step int, _ State, _ []Action) (Action, bool) {
	if step >= len(s.script) {
		return nil, false
	}
	return s.script[step], true
}

func (s *scriptedPolicy) Update(_ int, _ State, _ Action, _ float64, _ State) {
	s.updates++
}

func (s *scriptedPolicy) UpdateIteration(_ int, _ *Trace) {}

func (s *scriptedPolicy) Reset() {}

func TestAgentRunsHorizon(t *testing.T) {
	environment := &chainEnvironment{length: 5}
	policy := &scriptedPolicy{script: []Action{
		chainAction("right"), chainAction("right"), chainAction("right"),
	}}
	agent := NewAgent(&AgentConfig{
		Episodes:    1,
		Horizon:     10,
		Policy:      policy,
		Environment: environment,
	})

	trace := agent.RunEpisode(0)
	// the script runs dry after three steps
	if trace.Len() != 3 {
		t.Fatalf("expected 3 transitions, got %d", trace.Len())
	}
	if policy.updates != 3 {
		t.Fatalf("expected 3 policy updates, got %d", policy.updates)
	}
	last, _, _, next, ok := trace.Last()
	if !ok {
		t.Fatalf("expected a last transition")
	}
	if last.Hash() != "2" || next.Hash() != "3" {
		t.Fatalf("unexpected last transition %s -> %s", last.Hash(), next.Hash())
	}
}

func TestTraceReturn(t *testing.T) {
	trace := NewTrace()
	trace.Append(chainState(0), chainAction("right"), 0.5, chainState(1))
	trace.Append(chainState(1), chainAction("right"), 1.0, chainState(2))
	if got := trace.Return(); got != 1.5 {
		t.Fatalf("expected return 1.5, got %f", got)
	}
}

func TestTraceMarshalRecordsHashes(t *testing.T) {
	trace := NewTrace()
	trace.Append(chainState(0), chainAction("right"), 1, chainState(1))

	bs, err := json.Marshal(trace)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var rec struct {
		States  []string  `json:"states"`
		Actions []string  `json:"actions"`
		Rewards []float64 `json:"rewards"`
	}
	if err := json.Unmarshal(bs, &rec); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(rec.States) != 1 || rec.States[0] != "0" {
		t.Fatalf("unexpected states %v", rec.States)
	}
	if rec.Actions[0] != "right" || rec.Rewards[0] != 1 {
		t.Fatalf("unexpected record %v %v", rec.Actions, rec.Rewards)
	}
}

func TestComparisonRecordsTraces(t *testing.T) {
	recordPath := path.Join(t.TempDir(), "results")
	comparison := NewComparison(&ComparisonConfig{
		Runs:         1,
		Episodes:     3,
		Horizon:      5,
		RecordPath:   recordPath,
		RecordTraces: true,
	})
	comparison.AddExperiment(NewExperiment("random", NewRandomPolicy(), &chainEnvironment{length: 5}))
	comparison.AddAnalysis("coverage", NewCoverageAnalyzer(), NoopComparator())

	comparison.Run(context.Background())

	if _, err := os.Stat(path.Join(recordPath, "comparison_config.json")); err != nil {
		t.Fatalf("expected comparison config: %v", err)
	}
	bs, err := os.ReadFile(path.Join(recordPath, "traces", "random_0.jsonl"))
	if err != nil {
		t.Fatalf("expected traces file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(bs)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 trace lines, got %d", len(lines))
	}

	summary, err := os.ReadFile(path.Join(recordPath, "summaries", "random_0.txt"))
	if err != nil {
		t.Fatalf("expected summary file: %v", err)
	}
	if !strings.Contains(string(summary), "experiment: random") ||
		!strings.Contains(string(summary), "episodes: 3") {
		t.Fatalf("unexpected summary contents %q", string(summary))
	}
}

func TestRemoveContentsClearsDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(path.Join(dir, "traces"), os.ModePerm); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"outtext.txt", "comparison_config.json", path.Join("traces", "random_0.jsonl")} {
		if err := os.WriteFile(path.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	if err := RemoveContents(dir); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty directory, got %d entries", len(entries))
	}
}

func TestCoverageAnalyzer(t *testing.T) {
	analyzer := NewCoverageAnalyzer()
	trace := NewTrace()
	trace.Append(chainState(0), chainAction("right"), 0, chainState(1))
	trace.Append(chainState(1), chainAction("left"), 0, chainState(0))

	analyzer.Analyze(0, 0, "test", trace)
	analyzer.Analyze(0, 1, "test", trace)

	counts := analyzer.DataSet().([]int)
	if len(counts) != 2 {
		t.Fatalf("expected 2 episodes, got %d", len(counts))
	}
	// the same two states repeat in the second episode
	if counts[0] != 2 || counts[1] != 2 {
		t.Fatalf("unexpected coverage %v", counts)
	}
	analyzer.Reset()
	if len(analyzer.DataSet().([]int)) != 0 {
		t.Fatalf("expected empty dataset after reset")
	}
}
