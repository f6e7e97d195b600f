package plan

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"delegen/internal/diagnostic"
)

func TestErrorFormatting(t *testing.T) {
	err := &Error{
		Kind:        ErrUnresolvedDelegationTarget,
		Class:       "demo.C",
		Specifier:   1,
		Target:      "demo.Sourse",
		Detail:      "not a supertype of the class",
		Suggestions: []string{"demo.Source"},
	}

	assert.Equal(t,
		"demo.C: delegation #1 to demo.Sourse: unresolved delegation target: not a supertype of the class (did you mean demo.Source?)",
		err.Error())
	assert.True(t, errors.Is(err, ErrUnresolvedDelegationTarget))
	assert.False(t, errors.Is(err, ErrMalformedSetterSignature))

	member := &Error{Kind: ErrMissingPropertyGetter, Class: "demo.C", Target: "demo.I", Member: "x"}
	assert.Equal(t, "demo.C: delegation #0 to demo.I, member x: missing property getter", member.Error())
}

func TestErrorDiagnostic(t *testing.T) {
	tests := []struct {
		kind error
		code string
	}{
		{ErrInvalidDelegationSpecifier, "invalid_delegation_specifier"},
		{ErrUnresolvedDelegationTarget, "unresolved_delegation_target"},
		{ErrMalformedSetterSignature, "malformed_setter_signature"},
		{ErrMissingPropertyGetter, "missing_property_getter"},
		{errors.New("other"), "planning_error"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			e := &Error{Kind: tt.kind, Class: "demo.C", Target: "demo.I", Member: "x", Detail: "d"}

			d := e.Diagnostic()
			assert.Equal(t, diagnostic.SeverityError, d.Severity)
			assert.Equal(t, tt.code, d.Code)
			assert.Equal(t, "demo.C", d.Class)
			assert.Equal(t, "x", d.Subject)
			assert.Equal(t, tt.kind.Error()+": d", d.Message)
		})
	}
}

func TestCallShapeString(t *testing.T) {
	tests := []struct {
		call CallShape
		want string
	}{
		{CallShape{Form: CallRead, Receiver: "f", Name: "x"}, "f.x"},
		{CallShape{Form: CallAssign, Receiver: "f", Name: "x", Args: []Argument{{Kind: ArgValue, Name: "v"}}}, "f.x = v"},
		{CallShape{Form: CallAssign, Receiver: "f", Name: "x"}, "f.x = ?"},
		{CallShape{Form: CallInvoke, Receiver: "f", Name: "g"}, "f.g()"},
		{CallShape{Form: CallForm(7), Receiver: "f", Name: "g"}, "f.g <unknown>"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.call.String())
	}

	assert.Equal(t, "invoke", CallInvoke.String())
	assert.Equal(t, "receiver", ArgReceiver.String())
	assert.Equal(t, "setter", AccessorSetter.String())
}
