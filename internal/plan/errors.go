package plan

import (
	"errors"
	"fmt"
	"strings"

	"delegen/internal/diagnostic"
)

// Planning error kinds. Match with errors.Is.
var (
	ErrInvalidDelegationSpecifier = errors.New("invalid delegation specifier")
	ErrUnresolvedDelegationTarget = errors.New("unresolved delegation target")
	ErrMalformedSetterSignature   = errors.New("malformed setter signature")
	ErrMissingPropertyGetter      = errors.New("missing property getter")
)

// Error is a fatal planning error. No plan is produced alongside it.
type Error struct {
	Kind  error
	Class string
	// Specifier is the index of the offending delegation specifier.
	Specifier int
	Target    string
	// Member is set for member-level errors.
	Member      string
	Detail      string
	Suggestions []string
}

func (e *Error) Error() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s: delegation #%d", e.Class, e.Specifier)

	if e.Target != "" {
		fmt.Fprintf(&sb, " to %s", e.Target)
	}

	if e.Member != "" {
		fmt.Fprintf(&sb, ", member %s", e.Member)
	}

	fmt.Fprintf(&sb, ": %v", e.Kind)

	if e.Detail != "" {
		sb.WriteString(": " + e.Detail)
	}

	if len(e.Suggestions) > 0 {
		sb.WriteString(" (did you mean " + strings.Join(e.Suggestions, ", ") + "?)")
	}

	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Code returns the diagnostic code of the error kind.
func (e *Error) Code() string {
	switch {
	case errors.Is(e.Kind, ErrInvalidDelegationSpecifier):
		return "invalid_delegation_specifier"
	case errors.Is(e.Kind, ErrUnresolvedDelegationTarget):
		return "unresolved_delegation_target"
	case errors.Is(e.Kind, ErrMalformedSetterSignature):
		return "malformed_setter_signature"
	case errors.Is(e.Kind, ErrMissingPropertyGetter):
		return "missing_property_getter"
	default:
		return "planning_error"
	}
}

// Diagnostic converts the error for reporting next to validation results.
func (e *Error) Diagnostic() diagnostic.Diagnostic {
	subject := e.Target
	if e.Member != "" {
		subject = e.Member
	}

	msg := e.Kind.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}

	return diagnostic.Diagnostic{
		Severity:    diagnostic.SeverityError,
		Code:        e.Code(),
		Message:     msg,
		Class:       e.Class,
		Subject:     subject,
		Suggestions: e.Suggestions,
	}
}
