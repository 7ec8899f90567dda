package collector

import (
	"fmt"
	"os"
	"path"
	"sort"
	"time"
)

// DatasetDir returns the directory for recordings started now,
// data/<month>_<day>_<hour>, creating it if needed.
func DatasetDir(base string, now time.Time) (string, error) {
	name := fmt.Sprintf("%d_%d_%d", int(now.Month()), now.Day(), now.Hour())
	dir := path.Join(base, name)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}
	return dir, nil
}

// EpisodeCount counts the recorded episodes in a dataset directory
func EpisodeCount(dir string) int {
	count := 0
	for {
		if _, err := os.Stat(path.Join(dir, actionFileName(count))); err != nil {
			break
		}
		count++
	}
	return count
}

func actionFileName(index int) string {
	return fmt.Sprintf("raw_action_%d.npy", index)
}

func observationFileName(index int) string {
	return fmt.Sprintf("raw_observation_%d.npy", index)
}

// ActionPath returns the action file of an episode
func ActionPath(dir string, index int) string {
	return path.Join(dir, actionFileName(index))
}

// ObservationPath returns the observation file of an episode
func ObservationPath(dir string, index int) string {
	return path.Join(dir, observationFileName(index))
}

// ListDatasets returns the dataset directory names under base, sorted
func ListDatasets(base string) ([]string, error) {
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0)
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
