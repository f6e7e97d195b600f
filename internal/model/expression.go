package model

import "delegen/internal/common"

// ExprKind classifies a delegate expression.
type ExprKind int

const (
	// ExprInvalid is text that reads as neither a name nor a well-formed expression.
	ExprInvalid ExprKind = iota
	// ExprName is a direct, side-effect-free read of a name ("p" or "this.p").
	ExprName
	// ExprGeneral is any other well-formed expression.
	ExprGeneral
)

// String returns a human-readable kind name.
func (k ExprKind) String() string {
	switch k {
	case ExprInvalid:
		return "invalid"
	case ExprName:
		return "name"
	case ExprGeneral:
		return "general"
	default:
		return common.UnknownStr
	}
}

// Expression is the delegate expression of a delegation clause.
type Expression struct {
	Kind ExprKind
	// Text is the expression as written.
	Text string
	// Name is the referenced name for ExprName expressions.
	Name string
}

// NameExpr builds an ExprName expression reading name.
func NameExpr(name string) *Expression {
	return &Expression{Kind: ExprName, Text: name, Name: name}
}

// GeneralExpr builds an ExprGeneral expression.
func GeneralExpr(text string) *Expression {
	return &Expression{Kind: ExprGeneral, Text: text}
}
