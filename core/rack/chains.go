// core/rack/chains.go
package rack

import "github.com/beevik/etree"

// Chain enumeration. The single-attribution invariant is structural:
// every device container is walked over its direct children exactly
// once, and a child that classifies as a rack is consumed whole by
// recursing into it. No broad descendant searches, no ancestor-set
// bookkeeping.

// enumerateChains lists the chains of a rack element in document
// order. A rack with no branches and no direct devices yields nil,
// never a single empty chain.
func (d *Decoder) enumerateChains(el *etree.Element, v Variant) []Chain {
	switch v {
	case InstrumentRack, AudioEffectRackBranching:
		bc := branchContainer(el)
		if bc == nil {
			return nil
		}
		var chains []Chain
		for _, br := range bc.ChildElements() {
			if !isBranch(br) {
				continue
			}
			chains = append(chains, d.decodeBranch(br, v))
		}
		return chains

	case AudioEffectRackFlat:
		devs := d.decodeSlots(deviceContainer(el))
		if len(devs) == 0 {
			return nil
		}
		name := childValue(el, "UserName")
		if name == "" {
			name = "Main Chain"
		}
		return []Chain{{Name: name, Devices: devs}}
	}
	return nil
}

// decodeBranch turns one branch preset into a chain. Instrument
// branches carry their name in <Name>, audio-effect branches in
// <UserName>. A branch with no device container is an empty chain,
// not an error.
func (d *Decoder) decodeBranch(br *etree.Element, v Variant) Chain {
	nameTag := "UserName"
	if v == InstrumentRack || br.Tag == TagInstrumentBranch {
		nameTag = "Name"
	}
	return Chain{
		Name:     childValue(br, nameTag),
		IsSoloed: childValue(br, "IsSoloed") == "true",
		Devices:  d.decodeSlots(br.SelectElement("DevicePresets")),
	}
}

// deviceContainer locates the element whose direct children are a
// flat rack's device slots: its own <DevicePresets>, or the rack
// element itself.
func deviceContainer(el *etree.Element) *etree.Element {
	if dc := el.SelectElement("DevicePresets"); dc != nil {
		return dc
	}
	return el
}

// decodeSlots walks the direct device slots of a container in
// document order. Unrecognized tags are skipped silently so future
// Live vocabularies never fail the decode.
func (d *Decoder) decodeSlots(container *etree.Element) []Device {
	if container == nil {
		return nil
	}
	var out []Device
	for _, slot := range container.ChildElements() {
		node := unwrapSlot(slot)
		if node == nil {
			continue
		}
		dev, ok := d.decodeDevice(node)
		if !ok {
			continue
		}
		out = append(out, dev)
	}
	return out
}

// unwrapSlot peels one preset-wrapper level: a slot serialized as
// <AbletonDevicePreset><Device><Eq8>…</Eq8></Device></…> resolves to
// the Eq8 element. A bare device element resolves to itself.
func unwrapSlot(slot *etree.Element) *etree.Element {
	if dev := slot.SelectElement("Device"); dev != nil {
		children := dev.ChildElements()
		if len(children) == 0 {
			return nil
		}
		return children[0]
	}
	return slot
}

// decodeDevice extracts one device. When the element classifies as a
// rack, its whole subtree is consumed here: the nested chains are
// computed by recursion and the subtree is never rescanned at the
// ancestor scope.
func (d *Decoder) decodeDevice(el *etree.Element) (Device, bool) {
	desc, ok := d.reg.Classify(el.Tag)
	if !ok {
		return Device{}, false
	}
	dev := extractDevice(el, desc)
	if v := ClassifyRack(el); v != NotARack {
		dev.NestedChains = d.enumerateChains(el, v)
	}
	return dev, true
}
