package model

import (
	"strings"

	"delegen/internal/common"
)

// TypeKind distinguishes interfaces from classes among supertypes.
type TypeKind int

const (
	TypeInterface TypeKind = iota
	TypeClass
)

// String returns the lower-case kind keyword.
func (k TypeKind) String() string {
	switch k {
	case TypeInterface:
		return "interface"
	case TypeClass:
		return "class"
	default:
		return common.UnknownStr
	}
}

// Supertype is a resolved supertype of a class with its member table.
type Supertype struct {
	// Name is the fully-qualified name without type arguments.
	Name       string
	Kind       TypeKind
	TypeParams []string
	// TypeArgs are the arguments the class supplies, positionally matching TypeParams.
	TypeArgs []string
	// Members is the full member table, inherited members included.
	Members []Member
}

// Bindings maps type parameters to the class's type arguments.
// Parameters without an argument stay unbound.
func (s *Supertype) Bindings() map[string]string {
	if len(s.TypeParams) == 0 || len(s.TypeArgs) == 0 {
		return nil
	}

	out := make(map[string]string, len(s.TypeParams))
	for i, p := range s.TypeParams {
		if i < len(s.TypeArgs) {
			out[p] = s.TypeArgs[i]
		}
	}

	return out
}

// Specialize returns m with the supertype's type parameters replaced by the
// class's type arguments.
func (s *Supertype) Specialize(m Member) Member {
	out := m.Clone()

	bindings := s.Bindings()
	if bindings == nil {
		return out
	}

	out.Receiver = Substitute(out.Receiver, bindings)
	out.Type = Substitute(out.Type, bindings)

	for i := range out.Params {
		out.Params[i].Type = Substitute(out.Params[i].Type, bindings)
	}

	for _, acc := range []*Accessor{out.Getter, out.Setter} {
		if acc == nil {
			continue
		}

		for i := range acc.Params {
			acc.Params[i].Type = Substitute(acc.Params[i].Type, bindings)
		}
	}

	return out
}

// Ref renders the supertype as referenced by the class, type arguments included.
func (s *Supertype) Ref() string {
	return TypeRef{Name: s.Name, Args: s.TypeArgs}.String()
}

// PropertyDecl is a property declared by the class itself.
type PropertyDecl struct {
	Name         string
	Type         string
	Mutable      bool
	BackingField bool
}

// IsFinalWithBackingField reports whether the property is read-only and stored.
func (p PropertyDecl) IsFinalWithBackingField() bool {
	return !p.Mutable && p.BackingField
}

// DelegationSpecifier is one "Target by expression" clause of a class.
type DelegationSpecifier struct {
	// Target is the supertype as written, optionally with type arguments.
	Target string
	// Expression supplies the delegate instance; nil when the clause has none.
	Expression *Expression
}

// ClassModel is the resolved description of one class.
type ClassModel struct {
	// Name is the fully-qualified class name.
	Name        string
	Supertypes  []Supertype
	Delegations []DelegationSpecifier
	Properties  []PropertyDecl
	// Members are the class's explicitly declared members.
	Members []Member
}

// Property returns the own property called name, or nil.
func (c *ClassModel) Property(name string) *PropertyDecl {
	for i := range c.Properties {
		if c.Properties[i].Name == name {
			return &c.Properties[i]
		}
	}

	return nil
}

// Declares reports whether the class explicitly declares a member with sig.
// An own property declaration counts for a property without a receiver.
func (c *ClassModel) Declares(sig Signature) bool {
	if sig.Kind == MemberProperty && sig.Receiver == "" && c.Property(sig.Name) != nil {
		return true
	}

	for i := range c.Members {
		if c.Members[i].Signature() == sig {
			return true
		}
	}

	return false
}

// SupertypeNames returns the names of all supertypes in declaration order.
func (c *ClassModel) SupertypeNames() []string {
	names := make([]string, len(c.Supertypes))
	for i := range c.Supertypes {
		names[i] = c.Supertypes[i].Name
	}

	return names
}

// ResolveSupertype finds the supertype a delegation target refers to.
// Target may be fully qualified, package-qualified by suffix, or a simple name,
// with or without type arguments. Ambiguous or unknown targets return nil.
func (c *ClassModel) ResolveSupertype(target string) *Supertype {
	base := BaseName(target)
	if base == "" {
		return nil
	}

	for i := range c.Supertypes {
		if c.Supertypes[i].Name == base {
			return &c.Supertypes[i]
		}
	}

	var found *Supertype

	for i := range c.Supertypes {
		name := c.Supertypes[i].Name
		if !strings.HasSuffix(name, "."+base) && !strings.HasSuffix(name, "/"+base) {
			continue
		}

		if found != nil {
			return nil
		}

		found = &c.Supertypes[i]
	}

	return found
}
