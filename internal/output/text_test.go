// internal/output/text_test.go
package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rackdec/pkg/api"
)

func TestWriteTextSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, []api.RackAnalysisV1{ToAPI(sampleAnalysis())}))
	got := buf.String()

	assert.Contains(t, got, "use case: Drums - Parallel Comp")
	assert.Contains(t, got, "named macros: 1")
	assert.Contains(t, got, "[ 0] Crush = 64")
	assert.Contains(t, got, "Squash (Compressor2)")
	// Nested rack device counts toward the chain total.
	assert.Contains(t, got, "Wet (3 devices)")
	assert.Contains(t, got, "total devices: 3")
}

func TestWriteTextOffDeviceAndSolo(t *testing.T) {
	nested := []api.ChainV1{}
	list := []api.RackAnalysisV1{{
		RackName: "R", UseCase: "R",
		MacroControls: []api.MacroControlV1{},
		Chains: []api.ChainV1{{
			Name:     "Dry",
			IsSoloed: true,
			Devices: []api.DeviceV1{
				{Type: "Eq8", Name: "EQ Eight", IsOn: false, Chains: nil},
				{Type: "AudioEffectGroupDevice", Name: "Empty", IsOn: true, Chains: &nested},
			},
		}},
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, list))
	got := buf.String()

	assert.Contains(t, got, "Dry (soloed)")
	assert.Contains(t, got, "off EQ Eight (Eq8)")
	assert.Contains(t, got, "on  Empty (AudioEffectGroupDevice)")
}
