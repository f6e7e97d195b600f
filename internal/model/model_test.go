package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypeRef(t *testing.T) {
	tests := []struct {
		in      string
		name    string
		args    []string
		wantErr bool
	}{
		{in: "demo.Source", name: "demo.Source"},
		{in: " demo.Source<Int> ", name: "demo.Source", args: []string{"Int"}},
		{in: "Map<K, List<V>>", name: "Map", args: []string{"K", "List<V>"}},
		{in: "pkg.Source[int]", name: "pkg.Source", args: []string{"int"}},
		{in: "", wantErr: true},
		{in: "Map<K, V", wantErr: true},
		{in: "<T>", wantErr: true},
		{in: "Map<K,>", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ref, err := ParseTypeRef(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.name, ref.Name)
			assert.Equal(t, tt.args, ref.Args)
		})
	}
}

func TestTypeRefString(t *testing.T) {
	assert.Equal(t, "Map<K, V>", TypeRef{Name: "Map", Args: []string{"K", "V"}}.String())
	assert.Equal(t, "Int", TypeRef{Name: "Int"}.String())
}

func TestSubstitute(t *testing.T) {
	bindings := map[string]string{"T": "Int", "K": "String"}

	assert.Equal(t, "Int", Substitute("T", bindings))
	assert.Equal(t, "Map<String, List<Int>>", Substitute("Map<K, List<T>>", bindings))
	assert.Equal(t, "Tee", Substitute("Tee", bindings))
	assert.Equal(t, "demo.T", Substitute("demo.T", bindings))
	assert.Equal(t, "example.com/T.Key", Substitute("example.com/T.Key", bindings))
	assert.Equal(t, "map[example.com/store.Key]Int", Substitute("map[example.com/store.Key]T", bindings))
	assert.Equal(t, "(Int) -> Int", Substitute("(T) -> T", bindings))
	assert.Equal(t, "T", Substitute("T", nil))
}

func TestMemberSignature(t *testing.T) {
	f := Member{
		Name:   "read",
		Kind:   MemberFunction,
		Params: []Param{{Name: "n", Type: "Int"}, {Name: "m", Type: "Map<K, V>"}},
	}
	g := Member{
		Name:   "read",
		Kind:   MemberFunction,
		Params: []Param{{Name: "other", Type: "Int"}, {Name: "x", Type: "Map<K,V>"}},
	}
	h := Member{Name: "read", Kind: MemberFunction, Params: []Param{{Name: "n", Type: "Long"}}}
	p := Member{Name: "read", Kind: MemberProperty, Type: "Int", Getter: &Accessor{}}

	assert.Equal(t, f.Signature(), g.Signature(), "parameter names and spacing do not matter")
	assert.NotEqual(t, f.Signature(), h.Signature(), "overloads differ by parameter types")
	assert.NotEqual(t, f.Signature(), p.Signature(), "property and function never match")
	assert.Equal(t, "fun read(Int,Map<K,V>)", f.Signature().String())
	assert.Equal(t, "val read", p.Signature().String())

	ext := p
	ext.Receiver = "String"
	assert.NotEqual(t, p.Signature(), ext.Signature())
	assert.Equal(t, "val String.read", ext.Signature().String())
}

func TestMemberKindString(t *testing.T) {
	assert.Equal(t, "Property", MemberProperty.String())
	assert.Equal(t, "Function", MemberFunction.String())
	assert.Equal(t, "MemberKind(0)", MemberKind(0).String())
	assert.Equal(t, "MemberKind(7)", MemberKind(7).String())
}

func TestParseMemberKindAndVisibility(t *testing.T) {
	k, ok := ParseMemberKind("Property")
	assert.True(t, ok)
	assert.Equal(t, MemberProperty, k)

	k, ok = ParseMemberKind("fun")
	assert.True(t, ok)
	assert.Equal(t, MemberFunction, k)

	_, ok = ParseMemberKind("constructor")
	assert.False(t, ok)

	v, ok := ParseVisibility("")
	assert.True(t, ok)
	assert.Equal(t, VisibilityPublic, v)

	v, ok = ParseVisibility("private")
	assert.True(t, ok)
	assert.Equal(t, VisibilityPrivate, v)
	assert.Equal(t, "private", v.String())

	_, ok = ParseVisibility("secret")
	assert.False(t, ok)
}

func TestSupertypeSpecialize(t *testing.T) {
	st := Supertype{
		Name:       "demo.Source",
		TypeParams: []string{"T"},
		TypeArgs:   []string{"Int"},
	}

	prop := Member{
		Name:     "value",
		Kind:     MemberProperty,
		Receiver: "List<T>",
		Type:     "T",
		Getter:   &Accessor{},
		Setter:   &Accessor{Params: []Param{{Name: "value", Type: "T"}}},
	}

	got := st.Specialize(prop)
	assert.Equal(t, "List<Int>", got.Receiver)
	assert.Equal(t, "Int", got.Type)
	assert.Equal(t, "Int", got.Setter.Params[0].Type)

	// The source member is left untouched.
	assert.Equal(t, "T", prop.Type)
	assert.Equal(t, "T", prop.Setter.Params[0].Type)
	assert.Equal(t, "demo.Source<Int>", st.Ref())
}

func TestSupertypeBindingsPartial(t *testing.T) {
	st := Supertype{TypeParams: []string{"K", "V"}, TypeArgs: []string{"String"}}
	assert.Equal(t, map[string]string{"K": "String"}, st.Bindings())

	raw := Supertype{TypeParams: []string{"T"}}
	assert.Nil(t, raw.Bindings())
}

func TestResolveSupertype(t *testing.T) {
	cm := &ClassModel{
		Name: "demo.Holder",
		Supertypes: []Supertype{
			{Name: "demo.Source"},
			{Name: "example.com/io.Sink"},
			{Name: "a.Named"},
			{Name: "b.Named"},
		},
	}

	require.NotNil(t, cm.ResolveSupertype("demo.Source"))
	require.NotNil(t, cm.ResolveSupertype("Source<Int>"))
	assert.Equal(t, "example.com/io.Sink", cm.ResolveSupertype("io.Sink").Name)
	assert.Equal(t, "example.com/io.Sink", cm.ResolveSupertype("Sink").Name)
	assert.Nil(t, cm.ResolveSupertype("Named"), "ambiguous simple name")
	assert.NotNil(t, cm.ResolveSupertype("a.Named"))
	assert.Nil(t, cm.ResolveSupertype("Missing"))
	assert.Nil(t, cm.ResolveSupertype(""))
	assert.Equal(t, []string{"demo.Source", "example.com/io.Sink", "a.Named", "b.Named"}, cm.SupertypeNames())
}

func TestClassModelLookups(t *testing.T) {
	cm := &ClassModel{
		Properties: []PropertyDecl{
			{Name: "src", BackingField: true},
			{Name: "cache", Mutable: true, BackingField: true},
			{Name: "computed"},
		},
		Members: []Member{{Name: "read", Kind: MemberFunction, Params: []Param{{Name: "n", Type: "Int"}}}},
	}

	require.NotNil(t, cm.Property("src"))
	assert.True(t, cm.Property("src").IsFinalWithBackingField())
	assert.False(t, cm.Property("cache").IsFinalWithBackingField())
	assert.False(t, cm.Property("computed").IsFinalWithBackingField())
	assert.Nil(t, cm.Property("impl"))

	assert.True(t, cm.Declares(Member{Name: "read", Kind: MemberFunction, Params: []Param{{Type: "Int"}}}.Signature()))
	assert.False(t, cm.Declares(Member{Name: "read", Kind: MemberFunction}.Signature()))

	// Own property declarations count as explicit members.
	assert.True(t, cm.Declares(Member{Name: "cache", Kind: MemberProperty}.Signature()))
	assert.True(t, cm.Declares(Member{Name: "computed", Kind: MemberProperty}.Signature()))
	assert.False(t, cm.Declares(Member{Name: "cache", Kind: MemberProperty, Receiver: "String"}.Signature()))
	assert.False(t, cm.Declares(Member{Name: "cache", Kind: MemberFunction}.Signature()))
}

func TestMemberClone(t *testing.T) {
	m := Member{
		Name:   "f",
		Kind:   MemberFunction,
		Params: []Param{{Name: "a", Type: "Int"}},
	}
	c := m.Clone()
	c.Params[0].Type = "Long"
	assert.Equal(t, "Int", m.Params[0].Type)
	assert.False(t, m.IsMutable())
	assert.False(t, m.IsExtension())
}

func TestMemberDeclaration(t *testing.T) {
	tests := []struct {
		member Member
		want   string
	}{
		{Member{Name: "x", Kind: MemberProperty, Type: "Int", Getter: &Accessor{}}, "val x: Int"},
		{Member{Name: "x", Kind: MemberProperty, Type: "Int", Getter: &Accessor{}, Setter: &Accessor{}}, "var x: Int"},
		{Member{Name: "label", Kind: MemberProperty, Receiver: "String", Type: "String", Getter: &Accessor{}}, "val String.label: String"},
		{Member{Name: "f", Kind: MemberFunction, Params: []Param{{"a", "Int"}, {"b", "T"}}, Type: "Int"}, "fun f(a: Int, b: T): Int"},
		{Member{Name: "run", Kind: MemberFunction, Receiver: "Job"}, "fun Job.run()"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.member.Declaration())
		})
	}
}
