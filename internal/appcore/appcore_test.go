// internal/appcore/appcore_test.go
package appcore

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rackdec-core/rack"
	"rackdec/internal/logging"
)

const fixtureXML = `<Ableton MajorVersion="5">
  <GroupDevicePreset>
    <Device>
      <AudioEffectGroupDevice>
        <UserName Value="Space"/>
        <Branches>
          <AudioEffectBranchPreset>
            <UserName Value="Wet"/>
            <DevicePresets>
              <AbletonDevicePreset><Device><Reverb/></Device></AbletonDevicePreset>
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

func TestBuildRegistryOverlay(t *testing.T) {
	reg, err := BuildRegistry("")
	require.NoError(t, err)
	_, ok := reg.Classify("Eq8")
	assert.True(t, ok)

	overlay := filepath.Join(t.TempDir(), "devices.yaml")
	require.NoError(t, os.WriteFile(overlay, []byte("Roar:\n  label: Roar\n  category: audio_effect\n"), 0o644))
	reg, err = BuildRegistry(overlay)
	require.NoError(t, err)
	_, ok = reg.Classify("Roar")
	assert.True(t, ok)

	_, err = BuildRegistry(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDecodeAllSortsAndIsolates(t *testing.T) {
	dir := t.TempDir()
	b := writePreset(t, dir, "b.adg", fixtureXML)
	a := writePreset(t, dir, "a.adg", fixtureXML)
	bad := filepath.Join(dir, "c.adg")
	require.NoError(t, os.WriteFile(bad, []byte("\x1f\x8bgarbage"), 0o644))

	paths, err := ResolveInputs([]string{dir}, true)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	results, failed, err := DecodeAll(context.Background(), rack.New(nil), paths, 2, logging.Nop())
	require.NoError(t, err)
	assert.Equal(t, 1, failed)
	require.Len(t, results, 2)
	// Sorted by path regardless of decode completion order.
	assert.Equal(t, a, results[0].Path)
	assert.Equal(t, b, results[1].Path)
	assert.Equal(t, "Space", results[0].V.RackName)
}
