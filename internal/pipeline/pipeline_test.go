// internal/pipeline/pipeline_test.go
package pipeline

import (
	"compress/gzip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureXML = `<Ableton MajorVersion="5">
  <GroupDevicePreset>
    <Device>
      <AudioEffectGroupDevice>
        <UserName Value="Space"/>
        <MacroDisplayNames.0 Value="Mix"/>
        <MacroControls.0><Manual Value="42"/></MacroControls.0>
        <Branches>
          <AudioEffectBranchPreset>
            <UserName Value="Wet"/>
            <DevicePresets>
              <AbletonDevicePreset><Device><Reverb/></Device></AbletonDevicePreset>
              <AbletonDevicePreset><Device><Eq8/></Device></AbletonDevicePreset>
            </DevicePresets>
          </AudioEffectBranchPreset>
        </Branches>
      </AudioEffectGroupDevice>
    </Device>
  </GroupDevicePreset>
</Ableton>`

func writePreset(t *testing.T, dir, name, xml string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	fh, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(fh)
	_, err = zw.Write([]byte(xml))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, fh.Close())
	return path
}

func TestForEachDecodesAll(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writePreset(t, dir, "a.adg", fixtureXML),
		writePreset(t, dir, "b.adg", fixtureXML),
		writePreset(t, dir, "c.adg", fixtureXML),
	}

	var got []string
	err := ForEach(context.Background(), Config{Workers: 2}, paths, nil,
		func(res Result) error {
			require.NoError(t, res.Err)
			require.NotNil(t, res.Analysis)
			assert.Equal(t, "Space", res.Analysis.RackName)
			got = append(got, res.Path)
			return nil
		})
	require.NoError(t, err)
	sort.Strings(got)
	assert.Equal(t, paths, got)
}

func TestForEachIsolatesCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	good := writePreset(t, dir, "good.adg", fixtureXML)
	bad := filepath.Join(dir, "bad.adg")
	require.NoError(t, os.WriteFile(bad, []byte("\x1f\x8bnot really gzip"), 0o644))

	var okPaths, errPaths []string
	err := ForEach(context.Background(), Config{Workers: 4}, []string{good, bad}, nil,
		func(res Result) error {
			if res.Err != nil {
				errPaths = append(errPaths, res.Path)
				return nil
			}
			okPaths = append(okPaths, res.Path)
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, []string{good}, okPaths)
	assert.Equal(t, []string{bad}, errPaths)
}

func TestForEachVisitErrorStops(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writePreset(t, dir, "a.adg", fixtureXML),
		writePreset(t, dir, "b.adg", fixtureXML),
	}

	boom := errors.New("boom")
	err := ForEach(context.Background(), Config{Workers: 1}, paths, nil,
		func(Result) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestForEachCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	p := writePreset(t, dir, "a.adg", fixtureXML)

	err := ForEach(ctx, Config{Workers: 1}, []string{p}, nil,
		func(Result) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
