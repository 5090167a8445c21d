// core/rack/extract.go
package rack

import "github.com/beevik/etree"

// extractDevice builds the normalized record for a recognized device
// element. The display name falls back to the descriptor label when
// the user name is absent or just repeats the raw tag. A missing
// On/Manual element means enabled; that is the format convention, not
// a guess.
func extractDevice(el *etree.Element, desc Descriptor) Device {
	name := childValue(el, "UserName")
	if name == "" || name == el.Tag {
		name = desc.Label
	}
	return Device{
		Type:     el.Tag,
		Name:     name,
		Category: desc.Category,
		IsOn:     manualValue(el, "On", "true") == "true",
	}
}
