// internal/report/report_test.go
package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rackdec/pkg/api"
)

func rackWith(useCase string, macroNames []string, deviceTypes ...string) api.RackAnalysisV1 {
	v := api.RackAnalysisV1{RackName: useCase, UseCase: useCase}
	for i, n := range macroNames {
		v.MacroControls = append(v.MacroControls, api.MacroControlV1{Name: n, Index: i})
	}
	c := api.ChainV1{Name: "Main Chain"}
	for _, dt := range deviceTypes {
		c.Devices = append(c.Devices, api.DeviceV1{Type: dt, Name: dt, IsOn: true})
	}
	v.Chains = []api.ChainV1{c}
	return v
}

func testLibrary() *Library {
	return NewLibrary([]api.RackAnalysisV1{
		rackWith("Bass - Sub", []string{"Cutoff", "Drive"}, "Eq8", "Saturator", "Compressor2"),
		rackWith("Bass - Growl", []string{"cutoff"}, "Eq8", "Saturator"),
		rackWith("Drums - Punch", nil, "Compressor2", "Eq8"),
		rackWith("Vocals - Air", []string{"Reverb Mix"}, "Reverb"),
	})
}

func TestDevicePopularity(t *testing.T) {
	top := testLibrary().DevicePopularity()
	require.NotEmpty(t, top)
	assert.Equal(t, Count{Name: "Eq8", Count: 3}, top[0])
}

func TestDeviceCombinationsAdjacentOnly(t *testing.T) {
	combos := testLibrary().DeviceCombinations(2)
	require.Len(t, combos, 1)
	assert.Equal(t, Count{Name: "Eq8 + Saturator", Count: 2}, combos[0])

	// min-count 1 also exposes the one-off pairs.
	all := testLibrary().DeviceCombinations(1)
	assert.Greater(t, len(all), 1)
}

func TestMacroPatternsFoldCase(t *testing.T) {
	patterns := testLibrary().MacroPatterns()
	require.NotEmpty(t, patterns)
	assert.Equal(t, Count{Name: "cutoff", Count: 2}, patterns[0])
}

func TestSimilar(t *testing.T) {
	sims, err := testLibrary().Similar("Bass - Sub", 10)
	require.NoError(t, err)
	require.NotEmpty(t, sims)

	// Growl shares 2 of 3 device types; Punch shares 2 of 3 too.
	assert.Equal(t, "Bass - Growl", sims[0].UseCase)
	assert.InDelta(t, 2.0/3.0, sims[0].Score, 1e-9)
	assert.Equal(t, []string{"Eq8", "Saturator"}, sims[0].Shared)

	for _, s := range sims {
		assert.NotEqual(t, "Bass - Sub", s.UseCase, "target must not match itself")
		assert.Greater(t, s.Score, 0.0)
	}
}

func TestSimilarUnknownTarget(t *testing.T) {
	_, err := testLibrary().Similar("No Such Rack", 5)
	assert.Error(t, err)
}

func TestFindByKeywords(t *testing.T) {
	lib := testLibrary()
	assert.Equal(t, []string{"Bass - Growl", "Bass - Sub"}, lib.FindByKeywords([]string{"bass"}))
	assert.Equal(t, []string{"Bass - Sub"}, lib.FindByKeywords([]string{"bass", "sub"}))
	assert.Empty(t, lib.FindByKeywords(nil))
}

func TestLearningPathAscending(t *testing.T) {
	path := testLibrary().LearningPath()
	require.Len(t, path, 4)
	for i := 1; i < len(path); i++ {
		assert.LessOrEqual(t, path[i-1].Complexity, path[i].Complexity)
	}
	assert.Equal(t, "Drums - Punch", path[0].UseCase)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, v api.RackAnalysisV1) {
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), raw, 0o644))
	}
	write("sub_analysis.json", rackWith("Bass - Sub", nil, "Eq8"))
	write("air_analysis.json", rackWith("Vocals - Air", nil, "Reverb"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.json"), []byte("{}"), 0o644))

	lib, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, lib.Len())
}

func TestLoadDirBadFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad_analysis.json"), []byte("not json"), 0o644))
	_, err := LoadDir(dir)
	assert.Error(t, err)
}
