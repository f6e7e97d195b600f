package classdef

import (
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	"gopkg.in/yaml.v3"
)

var log = commonlog.GetLogger("delegen.classdef")

// DefaultValueParam is the setter parameter name used when none is given.
const DefaultValueParam = "value"

// LoadFile loads and parses a YAML class-definition file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read class definitions %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Debugf("loaded %s: %d types, %d classes", path, len(f.Types), len(f.Classes))

	return f, nil
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse class definitions YAML: %w", err)
	}

	ApplyDefaults(&f)

	return &f, nil
}

// ApplyDefaults fills in default values for optional fields. Parse applies it;
// files built in code should call it before Build.
func ApplyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}

	for i := range f.Types {
		t := &f.Types[i]
		if t.Kind == "" {
			t.Kind = "interface"
		}

		for j := range t.Members {
			applyMemberDefaults(&t.Members[j])
		}
	}

	for i := range f.Classes {
		for j := range f.Classes[i].Members {
			applyMemberDefaults(&f.Classes[i].Members[j])
		}
	}
}

func applyMemberDefaults(m *MemberDef) {
	if m.Visibility == "" {
		m.Visibility = "public"
	}

	if len(m.SetterParams) > 0 {
		m.Mutable = true
	}

	if m.Mutable && len(m.SetterParams) == 0 {
		m.SetterParams = []ParamDef{{Name: DefaultValueParam, Type: m.Type}}
	}
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// WriteFile writes a File to the given path.
func WriteFile(f *File, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal class definitions: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write class definitions %s: %w", path, err)
	}

	return nil
}
