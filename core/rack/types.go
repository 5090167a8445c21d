// core/rack/types.go
package rack

import "fmt"

// Variant classifies how a rack element serializes its chains.
type Variant int

const (
	NotARack Variant = iota
	InstrumentRack
	AudioEffectRackBranching
	AudioEffectRackFlat
)

func (v Variant) String() string {
	switch v {
	case InstrumentRack:
		return "instrument-rack"
	case AudioEffectRackBranching:
		return "audio-effect-rack"
	case AudioEffectRackFlat:
		return "audio-effect-rack-flat"
	default:
		return "not-a-rack"
	}
}

// Category groups recognized device tags.
type Category string

const (
	CategoryInstrument  Category = "instrument"
	CategoryAudioEffect Category = "audio_effect"
	CategoryUtility     Category = "utility"
	CategoryRack        Category = "rack"
)

// Descriptor describes one recognized device tag.
type Descriptor struct {
	Label    string
	Category Category
}

// MacroControl is a user-named knob exposed at the rack root. Slot is
// the fixed macro slot index (0..15).
type MacroControl struct {
	Name  string
	Value float64
	Slot  int
}

// Device is a single processing unit inside a chain. NestedChains is
// meaningful only when Category is CategoryRack: a rack-type device
// contributes no processing of its own, its meaning is the nested
// chain set.
type Device struct {
	Type         string
	Name         string
	Category     Category
	IsOn         bool
	NestedChains []Chain
}

// Chain is one parallel signal path inside a rack. Devices preserve
// source document order.
type Chain struct {
	Name     string
	IsSoloed bool
	Devices  []Device
}

// DeviceCount counts the chain's devices, descending into nested
// racks.
func (c Chain) DeviceCount() int {
	n := 0
	for _, d := range c.Devices {
		n++
		for _, nc := range d.NestedChains {
			n += nc.DeviceCount()
		}
	}
	return n
}

// Analysis is the decoded structure of one rack preset. Immutable
// once Decode returns; owned by the caller.
type Analysis struct {
	RackName string
	UseCase  string
	Macros   []MacroControl
	Chains   []Chain

	// Warnings collects recoverable data problems (bad macro values
	// and the like). Never part of the serialized output.
	Warnings []Warning
}

// DeviceCount counts every device attributed anywhere in the tree.
func (a *Analysis) DeviceCount() int {
	n := 0
	for _, c := range a.Chains {
		n += c.DeviceCount()
	}
	return n
}

// Warning flags a recoverable data problem found during decode.
type Warning struct {
	Element string
	Reason  string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Element, w.Reason)
}
