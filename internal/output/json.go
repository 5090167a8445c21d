// internal/output/json.go
package output

import (
	"io"

	"rackdec-core/rack"
	"rackdec/internal/jsonutil"
	"rackdec/pkg/api"
)

// ToAPI converts a decoded analysis to the stable wire schema (v1).
// All top-level collections are non-nil so the JSON always carries
// [] rather than null.
func ToAPI(a *rack.Analysis) api.RackAnalysisV1 {
	macros := make([]api.MacroControlV1, 0, len(a.Macros))
	for _, m := range a.Macros {
		macros = append(macros, api.MacroControlV1{Name: m.Name, Value: m.Value, Index: m.Slot})
	}
	return api.RackAnalysisV1{
		RackName:      a.RackName,
		UseCase:       a.UseCase,
		MacroControls: macros,
		Chains:        toAPIChains(a.Chains),
	}
}

func toAPIChains(chains []rack.Chain) []api.ChainV1 {
	out := make([]api.ChainV1, 0, len(chains))
	for _, c := range chains {
		devices := make([]api.DeviceV1, 0, len(c.Devices))
		for _, d := range c.Devices {
			devices = append(devices, toAPIDevice(d))
		}
		out = append(out, api.ChainV1{Name: c.Name, IsSoloed: c.IsSoloed, Devices: devices})
	}
	return out
}

func toAPIDevice(d rack.Device) api.DeviceV1 {
	v := api.DeviceV1{Type: d.Type, Name: d.Name, IsOn: d.IsOn}
	if d.Category == rack.CategoryRack {
		nested := toAPIChains(d.NestedChains)
		v.Chains = &nested
	}
	return v
}

// WriteJSON writes a single pretty-indented JSON array of analyses.
func WriteJSON(w io.Writer, list []api.RackAnalysisV1) error {
	return jsonutil.EncodePretty(w, list)
}
