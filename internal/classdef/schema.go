package classdef

// File is the root of a class-definition file.
type File struct {
	// Version of the schema (currently "1").
	Version string `yaml:"version"`
	// Types are the interfaces and classes that classes may extend or delegate to.
	Types []TypeDef `yaml:"types,omitempty"`
	// Classes are the classes to plan delegations for.
	Classes []ClassDef `yaml:"classes,omitempty"`
}

// TypeDef describes a supertype with its member table.
type TypeDef struct {
	Name       string      `yaml:"name"`
	Kind       string      `yaml:"kind,omitempty"`
	TypeParams []string    `yaml:"type_params,omitempty"`
	Extends    []string    `yaml:"extends,omitempty"`
	Members    []MemberDef `yaml:"members,omitempty"`
}

// MemberDef describes a property or function signature.
type MemberDef struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
	// Receiver marks an extension member.
	Receiver string `yaml:"receiver,omitempty"`
	// Params are function parameters.
	Params []ParamDef `yaml:"params,omitempty"`
	// Type is the property type.
	Type string `yaml:"type,omitempty"`
	// Returns is the function return type.
	Returns string `yaml:"returns,omitempty"`
	// Mutable properties get a setter.
	Mutable bool `yaml:"mutable,omitempty"`
	// SetterParams override the default single "value" setter parameter.
	SetterParams []ParamDef `yaml:"setter_params,omitempty"`
	Visibility   string     `yaml:"visibility,omitempty"`
}

// ParamDef is a named parameter. In YAML it is written either as a mapping
// ({name: n, type: Int}) or as a "name: Type" string.
type ParamDef struct {
	Name string `yaml:"name"`
	Type string `yaml:"type,omitempty"`
}

// ClassDef describes a class declaring delegations.
type ClassDef struct {
	Name        string          `yaml:"name"`
	Supertypes  []string        `yaml:"supertypes,omitempty"`
	Properties  []PropertyDef   `yaml:"properties,omitempty"`
	Members     []MemberDef     `yaml:"members,omitempty"`
	Delegations []DelegationDef `yaml:"delegations,omitempty"`
}

// PropertyDef is a property declared by the class itself.
type PropertyDef struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type,omitempty"`
	Mutable bool   `yaml:"mutable,omitempty"`
	// Computed properties have no backing field.
	Computed bool `yaml:"computed,omitempty"`
}

// DelegationDef is one "target by expression" clause.
type DelegationDef struct {
	Target string `yaml:"target"`
	// By is the delegate expression; nil when the clause has none.
	By *string `yaml:"by,omitempty"`
}

// TypeNames returns the names of all type definitions in file order.
func (f *File) TypeNames() []string {
	names := make([]string, len(f.Types))
	for i := range f.Types {
		names[i] = f.Types[i].Name
	}

	return names
}
