package plan

import (
	"slices"

	"gopkg.in/yaml.v3"
)

// DocumentVersion is written into every exported document.
const DocumentVersion = "1"

// Document is the serialized form of one or more plans.
type Document struct {
	Version string    `yaml:"version" cbor:"version"`
	Plans   []PlanDoc `yaml:"plans" cbor:"plans"`
}

// PlanDoc is the serialized form of a Plan.
type PlanDoc struct {
	Class       string          `yaml:"class" cbor:"class"`
	Fields      []FieldDoc      `yaml:"fields,omitempty" cbor:"fields,omitempty"`
	Forwards    []ForwardDoc    `yaml:"forwards,omitempty" cbor:"forwards,omitempty"`
	Diagnostics []DiagnosticDoc `yaml:"diagnostics,omitempty" cbor:"diagnostics,omitempty"`
}

// FieldDoc is the serialized form of a FieldBinding.
type FieldDoc struct {
	Index          int    `yaml:"index" cbor:"index"`
	Target         string `yaml:"target" cbor:"target"`
	Expression     string `yaml:"expression" cbor:"expression"`
	Name           string `yaml:"name" cbor:"name"`
	MustInitialize bool   `yaml:"must_initialize" cbor:"must_initialize"`
}

// ForwardDoc is the serialized form of a ForwardDescriptor.
type ForwardDoc struct {
	Kind       string `yaml:"kind" cbor:"kind"`
	Accessor   string `yaml:"accessor,omitempty" cbor:"accessor,omitempty"`
	Source     string `yaml:"source" cbor:"source"`
	Overridden string `yaml:"overridden" cbor:"overridden"`
	Field      string `yaml:"field" cbor:"field"`
	Extension  bool   `yaml:"extension,omitempty" cbor:"extension,omitempty"`
	// Params are the parameters of the generated member, setter value included.
	Params []ParamDoc `yaml:"params,omitempty" cbor:"params,omitempty"`
	Call   CallDoc    `yaml:"call" cbor:"call"`
}

// ParamDoc is one generated parameter.
type ParamDoc struct {
	Name string `yaml:"name" cbor:"name"`
	Type string `yaml:"type" cbor:"type"`
}

// CallDoc is the serialized form of a CallShape. Text is the rendered call.
type CallDoc struct {
	Form     string        `yaml:"form" cbor:"form"`
	Receiver string        `yaml:"receiver" cbor:"receiver"`
	Name     string        `yaml:"name" cbor:"name"`
	Args     []ArgumentDoc `yaml:"args,omitempty" cbor:"args,omitempty"`
	Text     string        `yaml:"text" cbor:"text"`
}

// ArgumentDoc is one call argument.
type ArgumentDoc struct {
	Kind string `yaml:"kind" cbor:"kind"`
	Name string `yaml:"name" cbor:"name"`
}

// DiagnosticDoc is the serialized form of a diagnostic.
type DiagnosticDoc struct {
	Severity string `yaml:"severity" cbor:"severity"`
	Code     string `yaml:"code" cbor:"code"`
	Subject  string `yaml:"subject,omitempty" cbor:"subject,omitempty"`
	Message  string `yaml:"message" cbor:"message"`
}

// NewDocument converts plans into a Document, keeping their order.
func NewDocument(plans ...*Plan) *Document {
	doc := &Document{Version: DocumentVersion, Plans: make([]PlanDoc, 0, len(plans))}

	for _, p := range plans {
		doc.Plans = append(doc.Plans, exportPlan(p))
	}

	return doc
}

// ExportYAML renders plans as a YAML document.
func ExportYAML(plans ...*Plan) ([]byte, error) {
	return yaml.Marshal(NewDocument(plans...))
}

func exportPlan(p *Plan) PlanDoc {
	pd := PlanDoc{Class: p.Class}

	for _, f := range p.Fields {
		expr := ""
		if f.Specifier.Expression != nil {
			expr = f.Specifier.Expression.Text
		}

		pd.Fields = append(pd.Fields, FieldDoc{
			Index:          f.Index,
			Target:         f.TargetRef,
			Expression:     expr,
			Name:           f.Allocation.Name,
			MustInitialize: f.Allocation.MustInitialize,
		})
	}

	for _, d := range p.Forwards {
		fd := ForwardDoc{
			Kind:       d.Kind.String(),
			Source:     d.Source.Declaration(),
			Overridden: d.Overridden.Declaration(),
			Field:      p.OwnerField(d).Name,
			Extension:  d.IsExtension,
			Call:       exportCall(d.Call),
		}

		for _, prm := range d.Params {
			fd.Params = append(fd.Params, ParamDoc{Name: prm.Name, Type: prm.Type})
		}

		if d.Accessor != AccessorNone {
			fd.Accessor = d.Accessor.String()
		}

		pd.Forwards = append(pd.Forwards, fd)
	}

	for _, d := range slices.Concat(p.Diagnostics.Errors, p.Diagnostics.Warnings, p.Diagnostics.Infos) {
		pd.Diagnostics = append(pd.Diagnostics, DiagnosticDoc{
			Severity: d.Severity.String(),
			Code:     d.Code,
			Subject:  d.Subject,
			Message:  d.Message,
		})
	}

	return pd
}

func exportCall(c CallShape) CallDoc {
	cd := CallDoc{
		Form:     c.Form.String(),
		Receiver: c.Receiver,
		Name:     c.Name,
		Text:     c.String(),
	}

	for _, a := range c.Args {
		cd.Args = append(cd.Args, ArgumentDoc{Kind: a.Kind.String(), Name: a.Name})
	}

	return cd
}
