package plan

import "fmt"

// InitEmitter emits the declaration and constructor initialization of a
// fresh delegate field.
type InitEmitter interface {
	EmitField(b FieldBinding) error
}

// MemberEmitter emits one forwarding member.
type MemberEmitter interface {
	EmitForward(d ForwardDescriptor, owner FieldAllocation) error
}

// EmitInit calls e for every binding that must be initialized, in order.
func (p *Plan) EmitInit(e InitEmitter) error {
	for _, b := range p.FieldsToInitialize() {
		if err := e.EmitField(b); err != nil {
			return fmt.Errorf("%s: field %s: %w", p.Class, b.Allocation.Name, err)
		}
	}

	return nil
}

// EmitMembers calls e for every forward descriptor, in order.
func (p *Plan) EmitMembers(e MemberEmitter) error {
	for _, d := range p.Forwards {
		if err := e.EmitForward(d, p.OwnerField(d)); err != nil {
			return fmt.Errorf("%s: %s: %w", p.Class, d.Source.Name, err)
		}
	}

	return nil
}
