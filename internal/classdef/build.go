package classdef

import (
	"errors"
	"fmt"

	"delegen/internal/model"
)

// errExtendsCycle marks a type that (transitively) extends itself.
var errExtendsCycle = errors.New("cyclic extends")

// Build resolves every class of f into a model.ClassModel, in file order.
// Run Validate first for user-facing diagnostics; Build stops at the first problem.
func Build(f *File) ([]*model.ClassModel, error) {
	if f == nil {
		return nil, errors.New("class definitions are nil")
	}

	b := newBuilder(f)

	out := make([]*model.ClassModel, 0, len(f.Classes))

	for i := range f.Classes {
		cm, err := b.class(&f.Classes[i])
		if err != nil {
			return nil, err
		}

		out = append(out, cm)
	}

	log.Debugf("built %d class models", len(out))

	return out, nil
}

// BuildClass resolves the class called name.
func BuildClass(f *File, name string) (*model.ClassModel, error) {
	if f == nil {
		return nil, errors.New("class definitions are nil")
	}

	for i := range f.Classes {
		if f.Classes[i].Name == name {
			return newBuilder(f).class(&f.Classes[i])
		}
	}

	return nil, fmt.Errorf("class %q not found", name)
}

type builder struct {
	file *File
	// tables caches flattened member tables by type name.
	tables   map[string][]model.Member
	visiting map[string]bool
}

func newBuilder(f *File) *builder {
	return &builder{
		file:     f,
		tables:   make(map[string][]model.Member),
		visiting: make(map[string]bool),
	}
}

func (b *builder) class(cd *ClassDef) (*model.ClassModel, error) {
	cm := &model.ClassModel{Name: cd.Name}

	listed := make(map[string]bool)

	for _, ref := range cd.Supertypes {
		st, err := b.supertype(ref)
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", cd.Name, err)
		}

		listed[st.Name] = true
		cm.Supertypes = append(cm.Supertypes, *st)
	}

	// A delegation clause is itself a supertype entry. Unknown targets are left
	// for the planner to report.
	for _, d := range cd.Delegations {
		td := ResolveType(d.Target, b.file)
		if td == nil || listed[td.Name] {
			continue
		}

		st, err := b.supertype(d.Target)
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", cd.Name, err)
		}

		listed[st.Name] = true
		cm.Supertypes = append(cm.Supertypes, *st)
	}

	for _, p := range cd.Properties {
		cm.Properties = append(cm.Properties, model.PropertyDecl{
			Name:         p.Name,
			Type:         p.Type,
			Mutable:      p.Mutable,
			BackingField: !p.Computed,
		})
	}

	for _, md := range cd.Members {
		m, err := memberFromDef(md)
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", cd.Name, err)
		}

		cm.Members = append(cm.Members, m)
	}

	for _, d := range cd.Delegations {
		ds := model.DelegationSpecifier{Target: d.Target}
		if d.By != nil {
			ds.Expression = ParseExpression(*d.By)
		}

		cm.Delegations = append(cm.Delegations, ds)
	}

	return cm, nil
}

func (b *builder) supertype(ref string) (*model.Supertype, error) {
	tr, err := model.ParseTypeRef(ref)
	if err != nil {
		return nil, err
	}

	td := ResolveType(ref, b.file)
	if td == nil {
		return nil, fmt.Errorf("unknown supertype %q", ref)
	}

	members, err := b.table(td)
	if err != nil {
		return nil, err
	}

	kind := model.TypeInterface
	if td.Kind == "class" {
		kind = model.TypeClass
	}

	return &model.Supertype{
		Name:       td.Name,
		Kind:       kind,
		TypeParams: append([]string(nil), td.TypeParams...),
		TypeArgs:   tr.Args,
		Members:    append([]model.Member(nil), members...),
	}, nil
}

// table returns the flattened member table of td: its own members in
// declaration order, then inherited members not redeclared, specialized
// to the arguments td passes to each parent.
func (b *builder) table(td *TypeDef) ([]model.Member, error) {
	if members, ok := b.tables[td.Name]; ok {
		return members, nil
	}

	if b.visiting[td.Name] {
		return nil, fmt.Errorf("%w through %s", errExtendsCycle, td.Name)
	}

	b.visiting[td.Name] = true
	defer delete(b.visiting, td.Name)

	seen := make(map[model.Signature]bool)

	var members []model.Member

	for _, md := range td.Members {
		m, err := memberFromDef(md)
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", td.Name, err)
		}

		seen[m.Signature()] = true
		members = append(members, m)
	}

	for _, ext := range td.Extends {
		tr, err := model.ParseTypeRef(ext)
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", td.Name, err)
		}

		parent := ResolveType(ext, b.file)
		if parent == nil {
			return nil, fmt.Errorf("type %s: unknown supertype %q", td.Name, ext)
		}

		inherited, err := b.table(parent)
		if err != nil {
			return nil, err
		}

		binder := model.Supertype{TypeParams: parent.TypeParams, TypeArgs: tr.Args}

		for _, m := range inherited {
			sm := binder.Specialize(m)
			if seen[sm.Signature()] {
				continue
			}

			seen[sm.Signature()] = true
			members = append(members, sm)
		}
	}

	b.tables[td.Name] = members

	return members, nil
}

func memberFromDef(md MemberDef) (model.Member, error) {
	kind, ok := model.ParseMemberKind(md.Kind)
	if !ok {
		return model.Member{}, fmt.Errorf("member %s: invalid kind %q", md.Name, md.Kind)
	}

	vis, ok := model.ParseVisibility(md.Visibility)
	if !ok {
		return model.Member{}, fmt.Errorf("member %s: invalid visibility %q", md.Name, md.Visibility)
	}

	m := model.Member{
		Name:       md.Name,
		Kind:       kind,
		Receiver:   md.Receiver,
		Visibility: vis,
	}

	switch kind {
	case model.MemberProperty:
		m.Type = md.Type
		m.Getter = &model.Accessor{}

		if md.Mutable || len(md.SetterParams) > 0 {
			m.Setter = &model.Accessor{Params: paramsFromDefs(md.SetterParams)}
		}

	case model.MemberFunction:
		m.Type = md.Returns
		if m.Type == "" {
			m.Type = md.Type
		}

		m.Params = paramsFromDefs(md.Params)
	}

	return m, nil
}

func paramsFromDefs(defs []ParamDef) []model.Param {
	if len(defs) == 0 {
		return nil
	}

	out := make([]model.Param, len(defs))
	for i, d := range defs {
		out[i] = model.Param{Name: d.Name, Type: d.Type}
	}

	return out
}
