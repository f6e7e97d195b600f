package plan

import (
	"fmt"
	"strings"

	"delegen/internal/common"
	"delegen/internal/diagnostic"
	"delegen/internal/model"
)

// Plan is the delegation plan of one class.
type Plan struct {
	// Class is the fully-qualified name of the planned class.
	Class string
	// Fields holds one binding per delegation specifier, in declaration order.
	Fields []FieldBinding
	// Forwards lists generated members: specifier order, then member order.
	Forwards []ForwardDescriptor
	// Diagnostics holds non-fatal findings (explicit overrides, conflicts).
	Diagnostics diagnostic.Diagnostics
}

// FieldAllocation is the storage slot holding a delegate instance.
type FieldAllocation struct {
	Name string
	// MustInitialize is true for fresh fields the constructor has to assign.
	// Reused properties are their own storage.
	MustInitialize bool
}

// FieldBinding pairs a delegation specifier with its allocation.
type FieldBinding struct {
	// Index is the specifier position in the class declaration.
	Index     int
	Specifier model.DelegationSpecifier
	// Target is the resolved supertype name.
	Target     string
	TargetRef  string
	Allocation FieldAllocation
}

// AccessorKind tells which part of a property a descriptor forwards.
type AccessorKind int

const (
	AccessorNone AccessorKind = iota
	AccessorGetter
	AccessorSetter
)

func (a AccessorKind) String() string {
	switch a {
	case AccessorNone:
		return "none"
	case AccessorGetter:
		return "getter"
	case AccessorSetter:
		return "setter"
	default:
		return common.UnknownStr
	}
}

// CallForm is the shape of the forwarding expression.
type CallForm int

const (
	CallRead CallForm = iota
	CallAssign
	CallInvoke
)

func (f CallForm) String() string {
	switch f {
	case CallRead:
		return "read"
	case CallAssign:
		return "assign"
	case CallInvoke:
		return "invoke"
	default:
		return common.UnknownStr
	}
}

// ArgKind classifies a forwarded argument.
type ArgKind int

const (
	// ArgReceiver is the extension receiver of the synthesized member.
	ArgReceiver ArgKind = iota
	// ArgParam is a function parameter passed through.
	ArgParam
	// ArgValue is the new value of a setter.
	ArgValue
)

func (k ArgKind) String() string {
	switch k {
	case ArgReceiver:
		return "receiver"
	case ArgParam:
		return "param"
	case ArgValue:
		return "value"
	default:
		return common.UnknownStr
	}
}

// Argument is one argument of a forwarding call.
type Argument struct {
	Kind ArgKind
	Name string
}

// CallShape is the backend-independent form of a forwarding call.
type CallShape struct {
	Form CallForm
	// Receiver is the owner field name.
	Receiver string
	// Name is the member read or assigned, or the function invoked.
	Name string
	Args []Argument
}

// String renders the call, e.g. "f.x", "f.x = value" or "f.getX($receiver)".
func (c CallShape) String() string {
	target := c.Receiver + "." + c.Name

	switch c.Form {
	case CallRead:
		return target
	case CallAssign:
		if len(c.Args) == 0 {
			return target + " = ?"
		}

		return target + " = " + c.Args[0].Name
	case CallInvoke:
		names := make([]string, len(c.Args))
		for i, a := range c.Args {
			names[i] = a.Name
		}

		return target + "(" + strings.Join(names, ", ") + ")"
	default:
		return fmt.Sprintf("%s <%s>", target, c.Form)
	}
}

// ForwardDescriptor describes one generated forwarding member.
type ForwardDescriptor struct {
	Kind     model.MemberKind
	Accessor AccessorKind
	// Source is the member as declared on the delegation target.
	Source model.Member
	// Overridden is Source specialized to the class's type arguments.
	Overridden model.Member
	// Field indexes Plan.Fields.
	Field int
	// IsExtension follows the declared receiver of Source.
	IsExtension bool
	// Params are the explicit parameters of the synthesized member,
	// not counting the extension receiver.
	Params []model.Param
	Call   CallShape
}

// OwnerField returns the allocation supplying d's receiver.
func (p *Plan) OwnerField(d ForwardDescriptor) FieldAllocation {
	if d.Field < 0 || d.Field >= len(p.Fields) {
		return FieldAllocation{}
	}

	return p.Fields[d.Field].Allocation
}

// FieldsToInitialize returns the bindings whose field the constructor must assign.
func (p *Plan) FieldsToInitialize() []FieldBinding {
	var out []FieldBinding

	for _, f := range p.Fields {
		if f.Allocation.MustInitialize {
			out = append(out, f)
		}
	}

	return out
}

// ForwardsOf returns the descriptors owned by the specifier at index.
func (p *Plan) ForwardsOf(index int) []ForwardDescriptor {
	var out []ForwardDescriptor

	for _, d := range p.Forwards {
		if d.Field == index {
			out = append(out, d)
		}
	}

	return out
}
