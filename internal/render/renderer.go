package render

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"delegen/internal/common"
	"delegen/internal/model"
	"delegen/internal/plan"
)

// Config holds listing options.
type Config struct {
	// GenerateComments adds the delegation target and diagnostics as comments.
	GenerateComments bool
	// Extension is appended to generated file names.
	Extension string
}

// DefaultConfig returns the default listing configuration.
func DefaultConfig() Config {
	return Config{
		GenerateComments: true,
		Extension:        ".delegation.txt",
	}
}

// ErrDuplicateFile is returned when two plans render to the same file name.
var ErrDuplicateFile = errors.New("duplicate output file")

// GeneratedFile is one rendered listing.
type GeneratedFile struct {
	Filename string
	Content  []byte
}

// Renderer collects emitted fields and members. Not safe for concurrent use;
// Render resets it for each plan.
type Renderer struct {
	config  Config
	fields  []fieldData
	members []memberData
}

type fieldData struct {
	Name       string
	Target     string
	Initialize string
}

type memberData struct {
	Comment string
	Header  string
	Body    string
}

type listingData struct {
	Class    string
	Comments bool
	Fields   []fieldData
	Reused   []string
	Members  []memberData
	Notes    []string
}

// NewRenderer creates a Renderer.
func NewRenderer(config Config) *Renderer {
	return &Renderer{config: config}
}

// EmitField records a fresh delegate field.
func (r *Renderer) EmitField(b plan.FieldBinding) error {
	if b.Specifier.Expression == nil {
		return fmt.Errorf("delegation #%d has no initializer", b.Index)
	}

	r.fields = append(r.fields, fieldData{
		Name:       b.Allocation.Name,
		Target:     b.TargetRef,
		Initialize: b.Specifier.Expression.Text,
	})

	return nil
}

// EmitForward records one forwarding member.
func (r *Renderer) EmitForward(d plan.ForwardDescriptor, owner plan.FieldAllocation) error {
	if d.Call.Receiver != owner.Name {
		return fmt.Errorf("call receiver %q does not match owner field %q", d.Call.Receiver, owner.Name)
	}

	md := memberData{Comment: "via " + owner.Name}

	switch d.Accessor {
	case plan.AccessorGetter:
		md.Header = "override " + propertyHead(d.Overridden, "val") + " get()"
		md.Body = "= " + d.Call.String()
	case plan.AccessorSetter:
		md.Header = "override " + propertyHead(d.Overridden, "var") + " set(" + paramList(d.Params) + ")"
		md.Body = "{ " + d.Call.String() + " }"
	case plan.AccessorNone:
		md.Header = "override " + functionHead(d.Overridden, d.Params)
		md.Body = "= " + d.Call.String()
	default:
		return fmt.Errorf("member %s: unknown accessor %v", d.Source.Name, d.Accessor)
	}

	r.members = append(r.members, md)

	return nil
}

// Render formats p as a listing.
func (r *Renderer) Render(p *plan.Plan) (*GeneratedFile, error) {
	r.fields = nil
	r.members = nil

	if err := p.EmitInit(r); err != nil {
		return nil, err
	}

	if err := p.EmitMembers(r); err != nil {
		return nil, err
	}

	data := listingData{
		Class:    p.Class,
		Comments: r.config.GenerateComments,
		Fields:   r.fields,
		Members:  r.members,
	}

	for _, f := range p.Fields {
		if !f.Allocation.MustInitialize {
			data.Reused = append(data.Reused, f.TargetRef+" by property "+f.Allocation.Name)
		}
	}

	for _, d := range p.Diagnostics.Warnings {
		data.Notes = append(data.Notes, "warning: "+d.Message)
	}

	for _, d := range p.Diagnostics.Infos {
		data.Notes = append(data.Notes, "info: "+d.Message)
	}

	var buf bytes.Buffer
	if err := listingTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", p.Class, err)
	}

	return &GeneratedFile{
		Filename: common.FileStem(p.Class) + r.config.Extension,
		Content:  buf.Bytes(),
	}, nil
}

// RenderAll renders each plan into its own file. Two classes that map to the
// same file name are an error.
func (r *Renderer) RenderAll(plans []*plan.Plan) ([]GeneratedFile, error) {
	files := make([]GeneratedFile, 0, len(plans))
	owners := make(map[string]string, len(plans))

	for _, p := range plans {
		f, err := r.Render(p)
		if err != nil {
			return nil, err
		}

		if prev, ok := owners[f.Filename]; ok {
			return nil, fmt.Errorf("%w: %s and %s both render to %s", ErrDuplicateFile, prev, p.Class, f.Filename)
		}

		owners[f.Filename] = p.Class
		files = append(files, *f)
	}

	return files, nil
}

func propertyHead(m model.Member, keyword string) string {
	head := keyword + " "
	if m.Receiver != "" {
		head += m.Receiver + "."
	}

	head += m.Name
	if m.Type != "" {
		head += ": " + m.Type
	}

	return head
}

func functionHead(m model.Member, params []model.Param) string {
	head := "fun "
	if m.Receiver != "" {
		head += m.Receiver + "."
	}

	head += m.Name + "(" + paramList(params) + ")"
	if m.Type != "" {
		head += ": " + m.Type
	}

	return head
}

func paramList(params []model.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name + ": " + p.Type
	}

	return strings.Join(parts, ", ")
}

var listingTemplate = template.Must(template.New("listing").Parse(`// Delegation listing generated by delegen. DO NOT EDIT.

class {{.Class}} {
{{- range .Fields}}
{{if $.Comments}}	// delegate {{.Target}}
{{end}}	private val {{.Name}} = {{.Initialize}}
{{- end}}
{{- if $.Comments}}{{range .Reused}}
	// delegate {{.}}
{{- end}}{{end}}
{{range .Members}}
{{if $.Comments}}	// {{.Comment}}
{{end}}	{{.Header}} {{.Body}}
{{- end}}
}
{{- if $.Comments}}{{range .Notes}}
// {{.}}
{{- end}}{{end}}
`))
