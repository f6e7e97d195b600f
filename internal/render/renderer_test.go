package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delegen/internal/model"
	"delegen/internal/plan"
)

func sampleModel() *model.ClassModel {
	getter := &model.Accessor{}

	return &model.ClassModel{
		Name: "demo.C",
		Supertypes: []model.Supertype{
			{
				Name: "demo.I",
				Members: []model.Member{
					{
						Name: "x", Kind: model.MemberProperty, Type: "Int", Getter: getter,
						Setter: &model.Accessor{Params: []model.Param{{Name: "value", Type: "Int"}}},
					},
					{Name: "f", Kind: model.MemberFunction, Type: "Int", Params: []model.Param{{Name: "a", Type: "Int"}}},
				},
			},
			{
				Name: "demo.Ext",
				Members: []model.Member{
					{Name: "label", Kind: model.MemberProperty, Receiver: "String", Type: "String", Getter: getter},
				},
			},
		},
		Properties: []model.PropertyDecl{{Name: "ext", Type: "demo.Ext", BackingField: true}},
		Delegations: []model.DelegationSpecifier{
			{Target: "demo.I", Expression: model.NameExpr("impl")},
			{Target: "demo.Ext", Expression: model.NameExpr("ext")},
		},
	}
}

func samplePlan(t *testing.T) *plan.Plan {
	t.Helper()

	cfg := plan.DefaultConfig()
	cfg.Naming = plan.NamingIndexed

	p, err := plan.NewPlanner(cfg).Plan(sampleModel())
	require.NoError(t, err)

	return p
}

func TestRender(t *testing.T) {
	f, err := NewRenderer(DefaultConfig()).Render(samplePlan(t))
	require.NoError(t, err)

	assert.Equal(t, "demo_c.delegation.txt", f.Filename)

	out := string(f.Content)
	assert.Contains(t, out, "class demo.C {")
	assert.Contains(t, out, "// delegate demo.I\n\tprivate val $$delegate_0 = impl")
	assert.Contains(t, out, "// delegate demo.Ext by property ext")
	assert.Contains(t, out, "override val x: Int get() = $$delegate_0.x")
	assert.Contains(t, out, "override var x: Int set(value: Int) { $$delegate_0.x = value }")
	assert.Contains(t, out, "override fun f(a: Int): Int = $$delegate_0.f(a)")
	assert.Contains(t, out, "override val String.label: String get() = ext.getLabel($receiver)")
	assert.NotContains(t, out, "private val ext")
}

func TestRenderWithoutComments(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GenerateComments = false

	f, err := NewRenderer(cfg).Render(samplePlan(t))
	require.NoError(t, err)

	assert.NotContains(t, string(f.Content), "// via")
	assert.NotContains(t, string(f.Content), "// delegate")
}

func TestRenderNotes(t *testing.T) {
	cm := sampleModel()
	cm.Members = []model.Member{{Name: "f", Kind: model.MemberFunction, Type: "Int", Params: []model.Param{{Name: "b", Type: "Int"}}}}

	p, err := plan.NewPlanner(plan.DefaultConfig()).Plan(cm)
	require.NoError(t, err)

	f, err := NewRenderer(DefaultConfig()).Render(p)
	require.NoError(t, err)

	assert.Contains(t, string(f.Content), "// info: fun f(Int) from demo.I is declared by the class and not forwarded")
	assert.NotContains(t, string(f.Content), ".f(")
}

func TestRenderAllResetsState(t *testing.T) {
	p := samplePlan(t)

	other := *p
	other.Class = "demo.D"

	files, err := NewRenderer(DefaultConfig()).RenderAll([]*plan.Plan{p, &other})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "demo_d.delegation.txt", files[1].Filename)
	assert.Equal(t,
		strings.Replace(string(files[0].Content), "demo.C", "demo.D", 1),
		string(files[1].Content))
}

func TestRenderAllRejectsDuplicateFileNames(t *testing.T) {
	p := samplePlan(t)

	upper := *p
	upper.Class = "Demo.C"

	files, err := NewRenderer(DefaultConfig()).RenderAll([]*plan.Plan{p, &upper})
	require.ErrorIs(t, err, ErrDuplicateFile)
	assert.Nil(t, files)
	assert.Contains(t, err.Error(), "demo.C and Demo.C both render to demo_c.delegation.txt")
}

func TestEmitForwardRejectsMismatchedOwner(t *testing.T) {
	p := samplePlan(t)

	err := NewRenderer(DefaultConfig()).EmitForward(p.Forwards[0], plan.FieldAllocation{Name: "other"})
	require.Error(t, err)
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	err := WriteFiles([]GeneratedFile{{Filename: "a.txt", Content: []byte("hello")}}, dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err = WriteFiles(nil, filepath.Join(blocker, "sub"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating output directory")
}
