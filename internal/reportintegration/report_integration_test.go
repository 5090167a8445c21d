// internal/reportintegration/report_integration_test.go
package reportintegration

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rackdec/internal/reportapp"
)

const rackTemplate = `<Ableton MajorVersion="5">
  <GroupDevicePreset>
    <Device>
      <AudioEffectGroupDevice>
        <UserName Value="%s"/>
        <Branches>
          <AudioEffectBranchPreset>
            <UserName Value="Main"/>
            <DevicePresets>%s</DevicePresets>
          </AudioEffectBranchPreset>
        </Branches>
      </AudioEffectGroupDevice>
    </Device>
  </GroupDevicePreset>
</Ableton>`

func writePreset(t *testing.T, dir, name string, deviceTags ...string) {
	t.Helper()
	var presets strings.Builder
	for _, tag := range deviceTags {
		fmt.Fprintf(&presets, "<AbletonDevicePreset><Device><%s/></Device></AbletonDevicePreset>", tag)
	}
	xml := fmt.Sprintf(rackTemplate, strings.TrimSuffix(name, ".adg"), presets.String())

	fh, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	zw := gzip.NewWriter(fh)
	if _, err := zw.Write([]byte(xml)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	if err := fh.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestDevicePopularityReport(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "Bass - Sub.adg", "Eq8", "Saturator")
	writePreset(t, dir, "Drums - Punch.adg", "Eq8", "Compressor2")

	var out, errBuf bytes.Buffer
	code := reportapp.Run([]string{"-q", dir}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, errBuf.String())
	}
	if !strings.Contains(out.String(), "Eq8") {
		t.Errorf("popularity output missing Eq8:\n%s", out.String())
	}
}

func TestSimilarReport(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "Bass - Sub.adg", "Eq8", "Saturator")
	writePreset(t, dir, "Bass - Growl.adg", "Eq8", "Saturator", "Compressor2")

	var out, errBuf bytes.Buffer
	code := reportapp.Run([]string{
		"-q", "--report", "similar", "--similar", "Bass - Sub", dir,
	}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, errBuf.String())
	}
	if !strings.Contains(out.String(), "Bass - Growl") {
		t.Errorf("similar output missing neighbor:\n%s", out.String())
	}
}

func TestSimilarUnknownTargetExit2(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "Bass - Sub.adg", "Eq8")

	var out, errBuf bytes.Buffer
	code := reportapp.Run([]string{
		"-q", "--report", "similar", "--similar", "No Such Rack", dir,
	}, &out, &errBuf)
	if code != 2 {
		t.Fatalf("want exit 2 for unknown target, got %d", code)
	}
}

func TestLearningPathReport(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "Simple.adg", "Eq8")
	writePreset(t, dir, "Busy.adg", "Eq8", "Saturator", "Compressor2", "Limiter")

	var out, errBuf bytes.Buffer
	code := reportapp.Run([]string{"-q", "--report", "path", dir}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, errBuf.String())
	}
	got := out.String()
	if strings.Index(got, "Simple") > strings.Index(got, "Busy") {
		t.Errorf("path not ordered simplest first:\n%s", got)
	}
}
