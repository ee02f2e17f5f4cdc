package value

import "gopkg.in/yaml.v3"

// UnmarshalYAML decodes any YAML node into a Value. Scalars map to
// the matching kind, timestamps decode as dates, sequences as lists,
// and mappings as records.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*v = FromAny(raw)
	return nil
}

// MarshalYAML encodes the Value as its plain Go form.
func (v Value) MarshalYAML() (any, error) {
	if v.kind == KindDate {
		return v.t, nil
	}
	return v.Interface(), nil
}
