// internal/report/report.go

// Package report computes library-wide analytics over decoded rack
// analyses: device popularity, common device pairings, macro naming
// patterns, similarity and a complexity-ordered learning path.
package report

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"rackdec/internal/db"
	"rackdec/pkg/api"
)

// Library is an in-memory collection of analyses keyed by use case.
type Library struct {
	items []api.RackAnalysisV1
}

// NewLibrary builds a library from already-decoded analyses.
func NewLibrary(list []api.RackAnalysisV1) *Library {
	return &Library{items: list}
}

// Add appends one analysis.
func (l *Library) Add(v api.RackAnalysisV1) { l.items = append(l.items, v) }

// Len reports how many analyses are loaded.
func (l *Library) Len() int { return len(l.items) }

// Items returns the loaded analyses in insertion order.
func (l *Library) Items() []api.RackAnalysisV1 { return l.items }

// LoadDir reads every *_analysis.json under dir (recursively) into a
// library. Files that fail to parse are reported, not skipped.
func LoadDir(dir string) (*Library, error) {
	lib := &Library{}
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, "_analysis.json") {
			return nil
		}
		raw, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		var v api.RackAnalysisV1
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		lib.Add(v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lib, nil
}

// Count is a named tally used by the ranking reports.
type Count struct {
	Name  string
	Count int
}

func sortCounts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for k, n := range m {
		out = append(out, Count{Name: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// DevicePopularity ranks device types by how many racks use them.
func (l *Library) DevicePopularity() []Count {
	tally := map[string]int{}
	for _, v := range l.items {
		for t := range deviceSet(v) {
			tally[t]++
		}
	}
	return sortCounts(tally)
}

// DeviceCombinations counts adjacent device pairs within chains,
// keeping pairs seen at least min times. Order within a pair follows
// chain order, so "Compressor2 + Eq8" and "Eq8 + Compressor2" are
// distinct signal chains.
func (l *Library) DeviceCombinations(min int) []Count {
	tally := map[string]int{}
	for _, v := range l.items {
		for _, c := range v.Chains {
			for i := 0; i+1 < len(c.Devices); i++ {
				key := c.Devices[i].Type + " + " + c.Devices[i+1].Type
				tally[key]++
			}
		}
	}
	if min > 1 {
		for k, n := range tally {
			if n < min {
				delete(tally, k)
			}
		}
	}
	return sortCounts(tally)
}

// MacroPatterns ranks macro control names across the library. Names
// are folded to lower case so "Cutoff" and "cutoff" tally together.
func (l *Library) MacroPatterns() []Count {
	tally := map[string]int{}
	for _, v := range l.items {
		for _, m := range v.MacroControls {
			tally[strings.ToLower(m.Name)]++
		}
	}
	return sortCounts(tally)
}

// Similarity is one neighbor returned by Similar.
type Similarity struct {
	UseCase string
	Score   float64
	Shared  []string
}

// Similar ranks other racks by Jaccard similarity of device-type
// sets against the rack named by useCase. Returns at most limit
// neighbors with a non-zero score.
func (l *Library) Similar(useCase string, limit int) ([]Similarity, error) {
	var target *api.RackAnalysisV1
	for i := range l.items {
		if l.items[i].UseCase == useCase {
			target = &l.items[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("rack %q not in library", useCase)
	}
	ts := deviceSet(*target)

	var out []Similarity
	for _, v := range l.items {
		if v.UseCase == useCase {
			continue
		}
		vs := deviceSet(v)
		score, shared := jaccard(ts, vs)
		if score == 0 {
			continue
		}
		out = append(out, Similarity{UseCase: v.UseCase, Score: score, Shared: shared})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].UseCase < out[j].UseCase
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// FindByKeywords returns use cases whose name contains every keyword
// (case-insensitive), sorted.
func (l *Library) FindByKeywords(words []string) []string {
	var out []string
	for _, v := range l.items {
		name := strings.ToLower(v.UseCase)
		ok := true
		for _, w := range words {
			if !strings.Contains(name, strings.ToLower(w)) {
				ok = false
				break
			}
		}
		if ok && len(words) > 0 {
			out = append(out, v.UseCase)
		}
	}
	sort.Strings(out)
	return out
}

// PathEntry is one step of the learning path.
type PathEntry struct {
	UseCase    string
	Complexity int
}

// LearningPath orders the library from simplest rack to most complex
// so a user can study presets in increasing difficulty.
func (l *Library) LearningPath() []PathEntry {
	out := make([]PathEntry, 0, len(l.items))
	for _, v := range l.items {
		devices := 0
		for _, c := range v.Chains {
			devices += len(c.Devices)
		}
		out = append(out, PathEntry{
			UseCase:    v.UseCase,
			Complexity: db.Complexity(devices, len(v.MacroControls)),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Complexity != out[j].Complexity {
			return out[i].Complexity < out[j].Complexity
		}
		return out[i].UseCase < out[j].UseCase
	})
	return out
}

// deviceSet collects the top-level device types of a rack.
func deviceSet(v api.RackAnalysisV1) map[string]struct{} {
	set := map[string]struct{}{}
	for _, c := range v.Chains {
		for _, d := range c.Devices {
			set[d.Type] = struct{}{}
		}
	}
	return set
}

// jaccard returns |a∩b| / |a∪b| and the sorted intersection.
func jaccard(a, b map[string]struct{}) (float64, []string) {
	if len(a) == 0 && len(b) == 0 {
		return 0, nil
	}
	var shared []string
	for t := range a {
		if _, ok := b[t]; ok {
			shared = append(shared, t)
		}
	}
	sort.Strings(shared)
	union := len(a) + len(b) - len(shared)
	if union == 0 {
		return 0, nil
	}
	return float64(len(shared)) / float64(union), shared
}
