package classdef

import (
	"fmt"
	"slices"

	"delegen/internal/diagnostic"
	"delegen/internal/model"
	"delegen/internal/suggest"
)

// Diagnostic codes reported by Validate.
const (
	CodeDuplicateType              = "duplicate_type"
	CodeDuplicateClass             = "duplicate_class"
	CodeInvalidTypeKind            = "invalid_type_kind"
	CodeUnknownSupertype           = "unknown_supertype"
	CodeExtendsCycle               = "extends_cycle"
	CodeInvalidMemberKind          = "invalid_member_kind"
	CodeInvalidVisibility          = "invalid_visibility"
	CodeMalformedSetterSignature   = "malformed_setter_signature"
	CodeTypeArgumentCount          = "type_argument_count"
	CodeUnresolvedDelegationTarget = "unresolved_delegation_target"
	CodeInvalidDelegationSpecifier = "invalid_delegation_specifier"
	CodeUnknownDelegateProperty    = "unknown_delegate_property"
)

// Validate checks a class-definition file structurally. It never stops at the
// first problem: every finding is reported.
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("file_is_nil", "class definitions are nil", "", "")
		return res
	}

	typeNames := f.TypeNames()
	seenTypes := make(map[string]bool, len(f.Types))

	for i := range f.Types {
		td := &f.Types[i]
		if seenTypes[td.Name] {
			res.AddError(CodeDuplicateType, fmt.Sprintf("duplicate type %q", td.Name), "", td.Name)
			continue
		}

		seenTypes[td.Name] = true

		if td.Kind != "interface" && td.Kind != "class" {
			res.AddError(CodeInvalidTypeKind, fmt.Sprintf("invalid type kind %q", td.Kind), "", td.Name)
		}

		for _, ext := range td.Extends {
			validateTypeRef(res, f, typeNames, "", td.Name, ext)
		}

		for _, md := range td.Members {
			validateMember(res, "", td.Name+"."+md.Name, md)
		}
	}

	for _, name := range findCycles(f) {
		res.AddError(CodeExtendsCycle, fmt.Sprintf("type %q extends itself", name), "", name)
	}

	seenClasses := make(map[string]bool, len(f.Classes))

	for i := range f.Classes {
		cd := &f.Classes[i]
		if seenClasses[cd.Name] {
			res.AddError(CodeDuplicateClass, fmt.Sprintf("duplicate class %q", cd.Name), cd.Name, "")
			continue
		}

		seenClasses[cd.Name] = true

		validateClass(res, f, typeNames, cd)
	}

	return res
}

func validateClass(res *diagnostic.Diagnostics, f *File, typeNames []string, cd *ClassDef) {
	for _, ref := range cd.Supertypes {
		validateTypeRef(res, f, typeNames, cd.Name, ref, ref)
	}

	for _, md := range cd.Members {
		validateMember(res, cd.Name, md.Name, md)
	}

	propNames := make([]string, len(cd.Properties))
	for i, p := range cd.Properties {
		propNames[i] = p.Name
	}

	for i, d := range cd.Delegations {
		subject := fmt.Sprintf("delegations[%d]", i)

		if ResolveType(d.Target, f) == nil {
			res.AddError(CodeUnresolvedDelegationTarget,
				fmt.Sprintf("delegation target %q cannot be resolved", d.Target),
				cd.Name, subject, suggest.Closest(model.BaseName(d.Target), typeNames, suggest.DefaultLimit)...)
		}

		if d.By == nil {
			res.AddError(CodeInvalidDelegationSpecifier,
				fmt.Sprintf("delegation to %q has no delegate expression", d.Target), cd.Name, subject)

			continue
		}

		expr := ParseExpression(*d.By)

		switch {
		case expr == nil:
			res.AddError(CodeInvalidDelegationSpecifier,
				fmt.Sprintf("delegation to %q has an empty delegate expression", d.Target), cd.Name, subject)
		case expr.Kind == model.ExprInvalid:
			res.AddError(CodeInvalidDelegationSpecifier,
				fmt.Sprintf("delegate expression %q is malformed", expr.Text), cd.Name, subject)
		case expr.Kind == model.ExprName && !slices.Contains(propNames, expr.Name):
			// Constructor parameters are legal delegates, so this is only informational.
			res.Add(diagnostic.Diagnostic{
				Severity:    diagnostic.SeverityInfo,
				Code:        CodeUnknownDelegateProperty,
				Message:     fmt.Sprintf("%q is not a property of the class; a delegate field will be generated", expr.Name),
				Class:       cd.Name,
				Subject:     subject,
				Suggestions: suggest.Closest(expr.Name, propNames, suggest.DefaultLimit),
			})
		}
	}
}

func validateTypeRef(res *diagnostic.Diagnostics, f *File, typeNames []string, class, subject, ref string) {
	tr, err := model.ParseTypeRef(ref)
	if err != nil {
		res.AddError(CodeUnknownSupertype, err.Error(), class, subject)
		return
	}

	td := ResolveType(ref, f)
	if td == nil {
		res.AddError(CodeUnknownSupertype, fmt.Sprintf("supertype %q not found", ref), class, subject,
			suggest.Closest(tr.Name, typeNames, suggest.DefaultLimit)...)

		return
	}

	if len(tr.Args) > 0 && len(tr.Args) != len(td.TypeParams) {
		res.AddWarning(CodeTypeArgumentCount,
			fmt.Sprintf("%s takes %d type arguments, got %d", td.Name, len(td.TypeParams), len(tr.Args)),
			class, subject)
	}
}

func validateMember(res *diagnostic.Diagnostics, class, subject string, md MemberDef) {
	kind, ok := model.ParseMemberKind(md.Kind)
	if !ok {
		res.AddError(CodeInvalidMemberKind, fmt.Sprintf("invalid member kind %q", md.Kind), class, subject)
		return
	}

	if _, ok := model.ParseVisibility(md.Visibility); !ok {
		res.AddError(CodeInvalidVisibility, fmt.Sprintf("invalid visibility %q", md.Visibility), class, subject)
	}

	if kind == model.MemberProperty && md.Mutable && len(md.SetterParams) != 1 {
		res.AddError(CodeMalformedSetterSignature,
			fmt.Sprintf("setter must take exactly 1 parameter, got %d", len(md.SetterParams)), class, subject)
	}
}

// findCycles returns the names of types on an extends cycle, in file order.
func findCycles(f *File) []string {
	const (
		unvisited = iota
		active
		done
	)

	state := make(map[string]int, len(f.Types))
	onCycle := make(map[string]bool)

	var visit func(td *TypeDef, path []string)

	visit = func(td *TypeDef, path []string) {
		switch state[td.Name] {
		case done:
			return
		case active:
			for i := len(path) - 1; i >= 0; i-- {
				onCycle[path[i]] = true
				if path[i] == td.Name {
					break
				}
			}

			return
		}

		state[td.Name] = active
		path = append(path, td.Name)

		for _, ext := range td.Extends {
			if parent := ResolveType(ext, f); parent != nil {
				visit(parent, path)
			}
		}

		state[td.Name] = done
	}

	for i := range f.Types {
		visit(&f.Types[i], nil)
	}

	var out []string

	for i := range f.Types {
		if onCycle[f.Types[i].Name] {
			out = append(out, f.Types[i].Name)
			onCycle[f.Types[i].Name] = false
		}
	}

	return out
}
