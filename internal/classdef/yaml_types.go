package classdef

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// paramFields mirrors ParamDef without its custom unmarshaler.
type paramFields struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// UnmarshalYAML implements custom YAML unmarshaling for ParamDef.
// Accepts:
//   - "n: Int" (quoted scalar)
//   - "n" (untyped)
//   - {name: n, type: Int}
func (p *ParamDef) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string

		if err := node.Decode(&s); err != nil {
			return err
		}

		name, typ, _ := strings.Cut(s, ":")

		p.Name = strings.TrimSpace(name)
		p.Type = strings.TrimSpace(typ)

		if p.Name == "" {
			return fmt.Errorf("line %d: parameter without a name: %q", node.Line, s)
		}

		return nil

	case yaml.MappingNode:
		var f paramFields

		if err := node.Decode(&f); err != nil {
			return err
		}

		p.Name, p.Type = f.Name, f.Type

		return nil

	default:
		return fmt.Errorf("line %d: expected parameter string or mapping, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML writes a ParamDef in its compact "name: Type" form.
func (p ParamDef) MarshalYAML() (any, error) {
	if p.Type == "" {
		return p.Name, nil
	}

	return p.Name + ": " + p.Type, nil
}
