// core/rack/registry_test.go
package rack

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryClassify(t *testing.T) {
	r := NewRegistry()

	d, ok := r.Classify("Eq8")
	require.True(t, ok)
	assert.Equal(t, "EQ Eight", d.Label)
	assert.Equal(t, CategoryAudioEffect, d.Category)

	d, ok = r.Classify(TagAudioEffectRack)
	require.True(t, ok)
	assert.Equal(t, CategoryRack, d.Category)

	_, ok = r.Classify("TotallyMadeUp")
	assert.False(t, ok)
}

func TestRegistryOverlay(t *testing.T) {
	const overlay = `
Roar:
  label: Roar
  category: audio_effect
Eq8:
  label: Custom EQ
`
	base := NewRegistry()
	merged, err := base.LoadOverlay(strings.NewReader(overlay))
	require.NoError(t, err)

	// New tag recognized, existing tag re-labeled, base untouched.
	assert.Equal(t, base.Tags()+1, merged.Tags())
	d, ok := merged.Classify("Roar")
	require.True(t, ok)
	assert.Equal(t, "Roar", d.Label)

	d, _ = merged.Classify("Eq8")
	assert.Equal(t, "Custom EQ", d.Label)
	assert.Equal(t, CategoryAudioEffect, d.Category)

	d, _ = base.Classify("Eq8")
	assert.Equal(t, "EQ Eight", d.Label)
	_, ok = base.Classify("Roar")
	assert.False(t, ok)
}

func TestRegistryOverlayRejectsBadCategory(t *testing.T) {
	_, err := NewRegistry().LoadOverlay(strings.NewReader("X:\n  label: X\n  category: sidechain\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category")
}

func TestRegistryOverlayRejectsMissingLabel(t *testing.T) {
	_, err := NewRegistry().LoadOverlay(strings.NewReader("X: {}\n"))
	require.Error(t, err)
}
