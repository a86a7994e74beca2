package backend

import "gopkg.in/yaml.v3"

// ResultSet is the whole-run output: one CalculationResultItem per node
// and query evaluated, serialized as YAML.
type ResultSet struct {
	Items []CalculationResultItem
}

type yamlItem struct {
	Node       string  `yaml:"node"`
	Lo         float64 `yaml:"lo"`
	Hi         float64 `yaml:"hi"`
	Exact      string  `yaml:"exact,omitempty"`
	TimeUser   float64 `yaml:"time_user_s"`
	TimeSystem float64 `yaml:"time_system_s"`
	MemVirtual uint64  `yaml:"mem_virtual_bytes"`
	MemResident uint64 `yaml:"mem_resident_bytes"`
}

// MarshalYAML renders the ResultSet in the flat per-item form above,
// rather than reflecting CalculationResultItem's internal Query/Stats
// field names directly, so the on-disk shape stays stable even if those
// internal structs gain fields.
func (r ResultSet) MarshalYAML() (interface{}, error) {
	items := make([]yamlItem, len(r.Items))
	for i, it := range r.Items {
		y := yamlItem{
			Node:        it.NodeName,
			Lo:          it.Bound.Lo,
			Hi:          it.Bound.Hi,
			TimeUser:    it.Stats.TimeUser.Seconds(),
			TimeSystem:  it.Stats.TimeSystem.Seconds(),
			MemVirtual:  it.Stats.MemVirtual,
			MemResident: it.Stats.MemResident,
		}
		if it.Bound.Exact != nil {
			y.Exact = it.Bound.Exact.String()
		}
		items[i] = y
	}
	return items, nil
}

// Marshal renders the ResultSet as a YAML document.
func (r ResultSet) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}
