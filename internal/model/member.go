package model

import (
	"strings"

	"delegen/internal/common"
)

//go:generate go tool stringer -type=MemberKind -trimprefix=Member -output=memberkind_string.go

// MemberKind distinguishes properties from functions.
type MemberKind int

const (
	_ MemberKind = iota // zero value is invalid

	MemberProperty
	MemberFunction
)

// ParseMemberKind parses the lower-case spelling used in class-definition files.
func ParseMemberKind(s string) (MemberKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "property", "prop", "val", "var":
		return MemberProperty, true
	case "function", "func", "fun":
		return MemberFunction, true
	default:
		return 0, false
	}
}

// Visibility of a member.
type Visibility int

const (
	VisibilityPublic Visibility = iota
	VisibilityProtected
	VisibilityInternal
	VisibilityPrivate
)

// String returns the lower-case visibility keyword.
func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityProtected:
		return "protected"
	case VisibilityInternal:
		return "internal"
	case VisibilityPrivate:
		return "private"
	default:
		return common.UnknownStr
	}
}

// ParseVisibility parses a visibility keyword. The empty string is public.
func ParseVisibility(s string) (Visibility, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "public":
		return VisibilityPublic, true
	case "protected":
		return VisibilityProtected, true
	case "internal":
		return VisibilityInternal, true
	case "private":
		return VisibilityPrivate, true
	default:
		return VisibilityPublic, false
	}
}

// Param is a named, typed parameter.
type Param struct {
	Name string
	Type string
}

// Accessor is a property getter or setter.
type Accessor struct {
	Params []Param
}

// Member is a property or function signature.
type Member struct {
	Name string
	Kind MemberKind
	// Receiver is the extension receiver type; empty for plain members.
	Receiver string
	// Params are the function parameters. Unused for properties.
	Params []Param
	// Type is the property type or the function return type.
	Type string
	// Getter and Setter are set for properties only. A nil Setter means read-only.
	Getter     *Accessor
	Setter     *Accessor
	Visibility Visibility
}

// IsExtension reports whether the member is declared with an extension receiver.
func (m Member) IsExtension() bool {
	return m.Receiver != ""
}

// IsMutable reports whether a property member has a setter.
func (m Member) IsMutable() bool {
	return m.Kind == MemberProperty && m.Setter != nil
}

// Signature identifies a member for override matching.
// Properties match on name and receiver; functions also on parameter types.
type Signature struct {
	Kind     MemberKind
	Name     string
	Receiver string
	Params   string
}

// String renders the signature, e.g. "fun String.read(Int,T)".
func (s Signature) String() string {
	var sb strings.Builder

	if s.Kind == MemberProperty {
		sb.WriteString("val ")
	} else {
		sb.WriteString("fun ")
	}

	if s.Receiver != "" {
		sb.WriteString(s.Receiver)
		sb.WriteByte('.')
	}

	sb.WriteString(s.Name)

	if s.Kind == MemberFunction {
		sb.WriteString("(" + s.Params + ")")
	}

	return sb.String()
}

// Signature returns the override-matching key of m.
func (m Member) Signature() Signature {
	sig := Signature{
		Kind:     m.Kind,
		Name:     m.Name,
		Receiver: normalizeType(m.Receiver),
	}

	if m.Kind == MemberFunction {
		types := make([]string, len(m.Params))
		for i, p := range m.Params {
			types[i] = normalizeType(p.Type)
		}

		sig.Params = strings.Join(types, ",")
	}

	return sig
}

// Clone returns a deep copy of m.
func (m Member) Clone() Member {
	out := m
	out.Params = append([]Param(nil), m.Params...)

	if m.Getter != nil {
		out.Getter = &Accessor{Params: append([]Param(nil), m.Getter.Params...)}
	}

	if m.Setter != nil {
		out.Setter = &Accessor{Params: append([]Param(nil), m.Setter.Params...)}
	}

	return out
}

// Declaration renders m as a declaration line, e.g. "var x: Int" or
// "fun String.read(n: Int): T".
func (m Member) Declaration() string {
	var sb strings.Builder

	switch {
	case m.Kind == MemberFunction:
		sb.WriteString("fun ")
	case m.IsMutable():
		sb.WriteString("var ")
	default:
		sb.WriteString("val ")
	}

	if m.Receiver != "" {
		sb.WriteString(m.Receiver + ".")
	}

	sb.WriteString(m.Name)

	if m.Kind == MemberFunction {
		params := make([]string, len(m.Params))
		for i, p := range m.Params {
			params[i] = p.Name + ": " + p.Type
		}

		sb.WriteString("(" + strings.Join(params, ", ") + ")")
	}

	if m.Type != "" {
		sb.WriteString(": " + m.Type)
	}

	return sb.String()
}
