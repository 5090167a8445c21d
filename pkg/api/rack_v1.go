// pkg/api/rack_v1.go
package api

// RackAnalysisV1 is the stable JSON schema for one decoded rack
// preset. Downstream consumers (catalog, reports) index by type,
// chains[].devices, and macro_controls[].name, so keep fields, names,
// and types stable; add new fields only with ",omitempty".
type RackAnalysisV1 struct {
	RackName      string           `json:"rack_name"`
	UseCase       string           `json:"use_case"`
	MacroControls []MacroControlV1 `json:"macro_controls"`
	Chains        []ChainV1        `json:"chains"`
}

type MacroControlV1 struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Index int     `json:"index"`
}

type ChainV1 struct {
	Name     string     `json:"name"`
	IsSoloed bool       `json:"is_soloed"`
	Devices  []DeviceV1 `json:"devices"`
}

// DeviceV1 is one device slot. Chains is a pointer so that rack-type
// devices always serialize the "chains" key, even when the nested
// rack is empty, while leaf devices never carry it.
type DeviceV1 struct {
	Type   string     `json:"type"`
	Name   string     `json:"name"`
	IsOn   bool       `json:"is_on"`
	Chains *[]ChainV1 `json:"chains,omitempty"`
}
