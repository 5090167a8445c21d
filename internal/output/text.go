// internal/output/text.go
package output

import (
	"fmt"
	"io"
	"strings"

	"rackdec/pkg/api"
)

// WriteText prints a human-readable summary per analysis: use case,
// named macros, then the chain/device tree with on/off state.
func WriteText(w io.Writer, list []api.RackAnalysisV1) error {
	for i, a := range list {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeOne(w, a); err != nil {
			return err
		}
	}
	return nil
}

func writeOne(w io.Writer, a api.RackAnalysisV1) error {
	fmt.Fprintf(w, "use case: %s\n", a.UseCase)
	fmt.Fprintf(w, "named macros: %d\n", len(a.MacroControls))
	for _, m := range a.MacroControls {
		fmt.Fprintf(w, "  [%2d] %s = %g\n", m.Index, m.Name, m.Value)
	}

	total := 0
	fmt.Fprintf(w, "chains: %d\n", len(a.Chains))
	for _, c := range a.Chains {
		n := countDevices(c)
		total += n
		fmt.Fprintf(w, "  %s%s (%d devices)\n", chainLabel(c.Name), soloSuffix(c.IsSoloed), n)
		writeDevices(w, c.Devices, 2)
	}
	_, err := fmt.Fprintf(w, "total devices: %d\n", total)
	return err
}

func writeDevices(w io.Writer, devices []api.DeviceV1, depth int) {
	pad := strings.Repeat("  ", depth)
	for _, d := range devices {
		state := "on "
		if !d.IsOn {
			state = "off"
		}
		fmt.Fprintf(w, "%s%s %s (%s)\n", pad, state, d.Name, d.Type)
		if d.Chains == nil {
			continue
		}
		for _, nc := range *d.Chains {
			fmt.Fprintf(w, "%s  %s%s\n", pad, chainLabel(nc.Name), soloSuffix(nc.IsSoloed))
			writeDevices(w, nc.Devices, depth+2)
		}
	}
}

// countDevices counts a chain's devices, nested racks included.
func countDevices(c api.ChainV1) int {
	n := 0
	for _, d := range c.Devices {
		n++
		if d.Chains == nil {
			continue
		}
		for _, nc := range *d.Chains {
			n += countDevices(nc)
		}
	}
	return n
}

func chainLabel(name string) string {
	if name == "" {
		return "[unnamed chain]"
	}
	return name
}

func soloSuffix(soloed bool) string {
	if soloed {
		return " (soloed)"
	}
	return ""
}
