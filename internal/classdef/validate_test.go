package classdef

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *File {
	t.Helper()

	f, err := Parse([]byte(src))
	require.NoError(t, err)

	return f
}

func TestValidateSample(t *testing.T) {
	res := Validate(mustParse(t, sampleYAML))
	assert.False(t, res.HasErrors(), "unexpected errors: %v", res.Error())
	assert.False(t, res.HasWarnings())
}

func TestValidateNil(t *testing.T) {
	res := Validate(nil)
	require.True(t, res.HasErrors())
	assert.Equal(t, "file_is_nil", res.Errors[0].Code)
}

func TestValidateDuplicates(t *testing.T) {
	res := Validate(mustParse(t, `
types:
  - name: demo.Source
  - name: demo.Source
classes:
  - name: demo.Holder
  - name: demo.Holder
`))
	assert.Len(t, res.ByCode(CodeDuplicateType), 1)
	assert.Len(t, res.ByCode(CodeDuplicateClass), 1)
}

func TestValidateUnknownSupertypeSuggests(t *testing.T) {
	res := Validate(mustParse(t, `
types:
  - name: demo.Source
  - name: demo.Sink
    extends: [demo.Sorce]
classes:
  - name: demo.Holder
    supertypes: [Sourse]
`))

	diags := res.ByCode(CodeUnknownSupertype)
	require.Len(t, diags, 2)
	assert.Equal(t, "demo.Sink", diags[0].Subject)
	assert.Equal(t, []string{"demo.Source"}, diags[0].Suggestions)
	assert.Equal(t, "demo.Holder", diags[1].Class)
	assert.Equal(t, []string{"demo.Source"}, diags[1].Suggestions)
}

func TestValidateExtendsCycle(t *testing.T) {
	res := Validate(mustParse(t, `
types:
  - name: demo.A
    extends: [demo.B]
  - name: demo.B
    extends: [demo.C]
  - name: demo.C
    extends: [demo.A]
  - name: demo.D
    extends: [demo.A]
`))

	diags := res.ByCode(CodeExtendsCycle)
	require.Len(t, diags, 3)
	assert.Equal(t, "demo.A", diags[0].Subject)
	assert.Equal(t, "demo.B", diags[1].Subject)
	assert.Equal(t, "demo.C", diags[2].Subject)
}

func TestValidateMembers(t *testing.T) {
	res := Validate(mustParse(t, `
types:
  - name: demo.Source
    kind: trait
    members:
      - name: ctor
        kind: constructor
      - name: secret
        kind: function
        visibility: hidden
      - name: value
        kind: property
        setter_params: ["a: Int", "b: Int"]
`))

	assert.Len(t, res.ByCode(CodeInvalidTypeKind), 1)
	assert.Len(t, res.ByCode(CodeInvalidMemberKind), 1)
	assert.Len(t, res.ByCode(CodeInvalidVisibility), 1)

	setter := res.ByCode(CodeMalformedSetterSignature)
	require.Len(t, setter, 1)
	assert.Equal(t, "demo.Source.value", setter[0].Subject)
}

func TestValidateTypeArgumentCount(t *testing.T) {
	res := Validate(mustParse(t, `
types:
  - name: demo.Source
    type_params: [T]
classes:
  - name: demo.Holder
    supertypes: ["demo.Source<Int, String>"]
`))

	assert.False(t, res.HasErrors())
	assert.Len(t, res.ByCode(CodeTypeArgumentCount), 1)
}

func TestValidateDelegations(t *testing.T) {
	res := Validate(mustParse(t, `
types:
  - name: demo.Source
classes:
  - name: demo.Holder
    properties:
      - name: source
    delegations:
      - target: demo.Sourse
        by: makeSource()
      - target: demo.Source
      - target: demo.Source
        by: "  "
      - target: demo.Source
        by: make(
      - target: demo.Source
        by: sourse
`))

	unresolved := res.ByCode(CodeUnresolvedDelegationTarget)
	require.Len(t, unresolved, 1)
	assert.Equal(t, "delegations[0]", unresolved[0].Subject)
	assert.Equal(t, []string{"demo.Source"}, unresolved[0].Suggestions)

	invalid := res.ByCode(CodeInvalidDelegationSpecifier)
	require.Len(t, invalid, 3)
	assert.Equal(t, "delegations[1]", invalid[0].Subject)
	assert.Equal(t, "delegations[2]", invalid[1].Subject)
	assert.Equal(t, "delegations[3]", invalid[2].Subject)

	unknown := res.ByCode(CodeUnknownDelegateProperty)
	require.Len(t, unknown, 1)
	assert.Equal(t, "demo.Holder", unknown[0].Class)
	assert.Equal(t, []string{"source"}, unknown[0].Suggestions)
}
