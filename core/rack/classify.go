// core/rack/classify.go
package rack

import "github.com/beevik/etree"

// branchContainer returns the element holding a rack's branch
// presets. Group presets serialize it as either <Branches> or
// <BranchPresets> depending on where in the document the rack sits.
func branchContainer(el *etree.Element) *etree.Element {
	if bc := el.SelectElement("Branches"); bc != nil {
		return bc
	}
	return el.SelectElement("BranchPresets")
}

// isBranch reports whether el is one serialized chain.
func isBranch(el *etree.Element) bool {
	return el.Tag == TagInstrumentBranch || el.Tag == TagAudioEffectBranch
}

// ClassifyRack decides whether el represents a rack and which family.
// An audio-effect group whose branch container is missing or empty is
// a flat rack: Live serializes a single-chain rack without branch
// wrapping, and older analyzers that assumed branches always exist
// dropped those devices entirely.
func ClassifyRack(el *etree.Element) Variant {
	switch el.Tag {
	case TagInstrumentRack:
		return InstrumentRack
	case TagAudioEffectRack:
		bc := branchContainer(el)
		if bc == nil {
			return AudioEffectRackFlat
		}
		for _, c := range bc.ChildElements() {
			if isBranch(c) {
				return AudioEffectRackBranching
			}
		}
		return AudioEffectRackFlat
	default:
		return NotARack
	}
}
