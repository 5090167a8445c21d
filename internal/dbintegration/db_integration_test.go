// internal/dbintegration/db_integration_test.go
package dbintegration

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rackdec/internal/dbapp"
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
            </DevicePresets>
          </AudioEffectBranchPreset>
        </Branches>
      </AudioEffectGroupDevice>
    </Device>
  </GroupDevicePreset>
</Ableton>`

func writePreset(t *testing.T, dir, name string) {
	t.Helper()
	fh, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	zw := gzip.NewWriter(fh)
	if _, err := zw.Write([]byte(fixtureXML)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	if err := fh.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestLoadThenQuery(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "FX - Space.adg")
	dbPath := filepath.Join(t.TempDir(), "racks.db")

	var out, errBuf bytes.Buffer
	code := dbapp.Run([]string{"--db", dbPath, "-q", dir}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("load exit %d, stderr: %s", code, errBuf.String())
	}

	out.Reset()
	code = dbapp.Run([]string{"--db", dbPath, "-q", "--device", "Reverb"}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("search exit %d, stderr: %s", code, errBuf.String())
	}
	if !strings.Contains(out.String(), "FX - Space") || !strings.Contains(out.String(), "1 rack(s)") {
		t.Errorf("search output missing rack:\n%s", out.String())
	}

	out.Reset()
	code = dbapp.Run([]string{"--db", dbPath, "-q", "--stats"}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("stats exit %d, stderr: %s", code, errBuf.String())
	}
	if !strings.Contains(out.String(), "Racks:    1") {
		t.Errorf("stats output wrong:\n%s", out.String())
	}
}

func TestUsageErrors(t *testing.T) {
	var out, errBuf bytes.Buffer
	if code := dbapp.Run([]string{"--stats"}, &out, &errBuf); code != 2 {
		t.Fatalf("want exit 2 without --db, got %d", code)
	}
}
