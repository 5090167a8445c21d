// core/rack/macro.go
package rack

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
)

// MacroSlots is the fixed macro slot space of a rack.
const MacroSlots = 16

// extractMacros scans the 16 macro slots in index order. A slot is
// emitted only when its display name differs from the synthetic
// default "Macro {i+1}"; an unnamed slot is absent from the result,
// never zero-filled. A macro value that fails to parse keeps the slot
// (its name is custom) with value 0 and a warning.
func extractMacros(root *etree.Element) ([]MacroControl, []Warning) {
	var (
		macros []MacroControl
		warns  []Warning
	)
	for i := 0; i < MacroSlots; i++ {
		nameEl := findDescendant(root, fmt.Sprintf("MacroDisplayNames.%d", i))
		if nameEl == nil {
			continue
		}
		name := attrValue(nameEl, "")
		if name == "" || name == fmt.Sprintf("Macro %d", i+1) {
			continue
		}

		raw := "0"
		if ctl := findDescendant(root, fmt.Sprintf("MacroControls.%d", i)); ctl != nil {
			raw = attrValue(ctl.SelectElement("Manual"), "0")
		}
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			warns = append(warns, Warning{
				Element: fmt.Sprintf("MacroControls.%d", i),
				Reason:  fmt.Sprintf("bad macro value %q, using 0", raw),
			})
			val = 0
		}
		macros = append(macros, MacroControl{Name: name, Value: val, Slot: i})
	}
	return macros, warns
}
