// core/rack/tree.go
package rack

import "github.com/beevik/etree"

// Live stores scalar settings as empty elements with a Value
// attribute: <UserName Value="My Rack"/>.

// attrValue returns the Value attribute of el, or fallback when
// absent.
func attrValue(el *etree.Element, fallback string) string {
	if el == nil {
		return fallback
	}
	if a := el.SelectAttr("Value"); a != nil {
		return a.Value
	}
	return fallback
}

// childValue returns the Value attribute of the named direct child,
// or "" when the child is missing.
func childValue(el *etree.Element, tag string) string {
	return attrValue(el.SelectElement(tag), "")
}

// findDescendant returns the first element with the given tag in
// depth-first document order, excluding el itself.
func findDescendant(el *etree.Element, tag string) *etree.Element {
	for _, c := range el.ChildElements() {
		if c.Tag == tag {
			return c
		}
		if m := findDescendant(c, tag); m != nil {
			return m
		}
	}
	return nil
}

// manualValue resolves the <X><Manual Value="…"/></X> idiom used for
// on/off switches and macro values. Returns fallback when either
// element is missing.
func manualValue(el *etree.Element, tag, fallback string) string {
	holder := el.SelectElement(tag)
	if holder == nil {
		return fallback
	}
	return attrValue(holder.SelectElement("Manual"), fallback)
}
