// core/rack/registry.go
package rack

// Rack container tags. These are the only tags the classifier treats
// as owning chains of their own.
const (
	TagAudioEffectRack = "AudioEffectGroupDevice"
	TagInstrumentRack  = "InstrumentGroupDevice"

	TagInstrumentBranch  = "InstrumentBranchPreset"
	TagAudioEffectBranch = "AudioEffectBranchPreset"
)

// builtins is the closed vocabulary of device tags Live is known to
// serialize. Unknown tags are skipped by callers, so a newer Live
// version never fails a decode.
var builtins = map[string]Descriptor{
	TagAudioEffectRack: {Label: "Audio Effect Rack", Category: CategoryRack},
	TagInstrumentRack:  {Label: "Instrument Rack", Category: CategoryRack},

	"Operator":  {Label: "Operator", Category: CategoryInstrument},
	"Bass":      {Label: "Bass", Category: CategoryInstrument},
	"DrumRack":  {Label: "Drum Rack", Category: CategoryInstrument},
	"Collision": {Label: "Collision", Category: CategoryInstrument},
	"Tension":   {Label: "Tension", Category: CategoryInstrument},
	"Impulse":   {Label: "Impulse", Category: CategoryInstrument},
	"Simpler":   {Label: "Simpler", Category: CategoryInstrument},
	"Wavetable": {Label: "Wavetable", Category: CategoryInstrument},

	"Eq8":               {Label: "EQ Eight", Category: CategoryAudioEffect},
	"Eq3":               {Label: "EQ Three", Category: CategoryAudioEffect},
	"Compressor2":       {Label: "Compressor", Category: CategoryAudioEffect},
	"GlueCompressor":    {Label: "Glue Compressor", Category: CategoryAudioEffect},
	"MultibandDynamics": {Label: "Multiband Dynamics", Category: CategoryAudioEffect},
	"Gate":              {Label: "Gate", Category: CategoryAudioEffect},
	"Limiter":           {Label: "Limiter", Category: CategoryAudioEffect},
	"AutoFilter":        {Label: "Auto Filter", Category: CategoryAudioEffect},
	"Reverb":            {Label: "Reverb", Category: CategoryAudioEffect},
	"Delay":             {Label: "Delay", Category: CategoryAudioEffect},
	"BeatRepeat":        {Label: "Beat Repeat", Category: CategoryAudioEffect},
	"Chorus":            {Label: "Chorus", Category: CategoryAudioEffect},
	"Flanger":           {Label: "Flanger", Category: CategoryAudioEffect},
	"Phaser":            {Label: "Phaser", Category: CategoryAudioEffect},
	"PhaserNew":         {Label: "Phaser-Flanger", Category: CategoryAudioEffect},
	"AutoPan":           {Label: "Auto Pan", Category: CategoryAudioEffect},
	"Saturator":         {Label: "Saturator", Category: CategoryAudioEffect},
	"Tube":              {Label: "Dynamic Tube", Category: CategoryAudioEffect},
	"Frequency":         {Label: "Frequency Shifter", Category: CategoryAudioEffect},
	"Shifter":           {Label: "Shifter", Category: CategoryAudioEffect},
	"Vocoder":           {Label: "Vocoder", Category: CategoryAudioEffect},

	"StereoGain":             {Label: "Utility", Category: CategoryUtility},
	"AudioBranchMixerDevice": {Label: "Chain Mixer", Category: CategoryUtility},
	"MxDeviceAudioEffect":    {Label: "Max for Live Audio Effect", Category: CategoryAudioEffect},
}

// Registry maps device tag names to descriptors.
type Registry struct {
	byTag map[string]Descriptor
}

// NewRegistry returns a registry holding the built-in vocabulary.
func NewRegistry() *Registry {
	m := make(map[string]Descriptor, len(builtins))
	for tag, d := range builtins {
		m[tag] = d
	}
	return &Registry{byTag: m}
}

// Classify looks up a device tag. The second return is false for
// unrecognized tags, which callers must skip silently.
func (r *Registry) Classify(tag string) (Descriptor, bool) {
	d, ok := r.byTag[tag]
	return d, ok
}

// Tags returns the number of recognized tags.
func (r *Registry) Tags() int { return len(r.byTag) }
