package plan

import (
	"delegen/internal/model"
)

func prop(name, typ string, mutable bool) model.Member {
	m := model.Member{Name: name, Kind: model.MemberProperty, Type: typ, Getter: &model.Accessor{}}
	if mutable {
		m.Setter = &model.Accessor{Params: []model.Param{{Name: "value", Type: typ}}}
	}

	return m
}

func extProp(receiver, name, typ string, mutable bool) model.Member {
	m := prop(name, typ, mutable)
	m.Receiver = receiver

	return m
}

func fun(name, returns string, params ...model.Param) model.Member {
	return model.Member{Name: name, Kind: model.MemberFunction, Type: returns, Params: params}
}

func param(name, typ string) model.Param {
	return model.Param{Name: name, Type: typ}
}

func iface(name string, members ...model.Member) model.Supertype {
	return model.Supertype{Name: name, Kind: model.TypeInterface, Members: members}
}

func delegate(target string, expr *model.Expression) model.DelegationSpecifier {
	return model.DelegationSpecifier{Target: target, Expression: expr}
}

// scenarioClass is class C delegating interface I (var x: Int, fun f(a: Int): Int)
// to the constructor parameter impl.
func scenarioClass() *model.ClassModel {
	return &model.ClassModel{
		Name: "demo.C",
		Supertypes: []model.Supertype{
			iface("demo.I", prop("x", "Int", true), fun("f", "Int", param("a", "Int"))),
		},
		Delegations: []model.DelegationSpecifier{delegate("demo.I", model.NameExpr("impl"))},
	}
}

func indexedPlanner() *Planner {
	cfg := DefaultConfig()
	cfg.Naming = NamingIndexed

	return NewPlanner(cfg)
}

func callStrings(p *Plan) []string {
	out := make([]string, len(p.Forwards))
	for i, d := range p.Forwards {
		out[i] = d.Call.String()
	}

	return out
}
