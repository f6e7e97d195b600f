package plan

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tliron/commonlog"

	"delegen/internal/common"
	"delegen/internal/model"
	"delegen/internal/suggest"
)

var log = commonlog.GetLogger("delegen.plan")

// Config configures the planner.
type Config struct {
	// DelegatePrefix starts every fresh field name.
	DelegatePrefix string
	// ReceiverParam names the extension receiver of synthesized members.
	ReceiverParam string
	// ValueParam names the parameter of synthesized setters.
	ValueParam string
	Naming     NamingScheme
}

// DefaultConfig returns the default planner configuration.
func DefaultConfig() Config {
	return Config{
		DelegatePrefix: "$delegate",
		ReceiverParam:  "$receiver",
		ValueParam:     "value",
		Naming:         NamingStable,
	}
}

// Option customizes a Planner.
type Option func(*Planner)

// WithFieldNamer replaces the namer selected by Config.Naming. n must be pure
// for repeated Plan calls to agree; see FieldNamer.
func WithFieldNamer(n FieldNamer) Option {
	return func(p *Planner) {
		p.namer = n
	}
}

// Planner builds delegation plans. It holds no per-call state.
type Planner struct {
	cfg   Config
	namer FieldNamer
}

// NewPlanner creates a planner. Empty config strings fall back to defaults.
func NewPlanner(cfg Config, opts ...Option) *Planner {
	def := DefaultConfig()

	if cfg.DelegatePrefix == "" {
		cfg.DelegatePrefix = def.DelegatePrefix
	}

	if cfg.ReceiverParam == "" {
		cfg.ReceiverParam = def.ReceiverParam
	}

	if cfg.ValueParam == "" {
		cfg.ValueParam = def.ValueParam
	}

	p := &Planner{cfg: cfg}
	for _, opt := range opts {
		opt(p)
	}

	if p.namer == nil {
		p.namer = NewFieldNamer(cfg.Naming, cfg.DelegatePrefix)
	}

	return p
}

// Config returns the effective configuration.
func (p *Planner) Config() Config {
	return p.cfg
}

// Plan computes the delegation plan of cm. Any error aborts the whole class.
func (p *Planner) Plan(cm *model.ClassModel) (*Plan, error) {
	if cm == nil {
		return nil, errors.New("class model is nil")
	}

	c := &planCall{
		cfg:   p.cfg,
		namer: p.namer,
		class: cm,
		out:   &Plan{Class: cm.Name},
		taken: make(map[string]bool),
		owner: make(map[model.Signature]int),
	}

	for _, prop := range cm.Properties {
		c.taken[prop.Name] = true
	}

	for _, m := range cm.Members {
		c.taken[m.Name] = true
	}

	targets := make([]*model.Supertype, len(cm.Delegations))

	for i, ds := range cm.Delegations {
		st, err := c.bind(i, ds)
		if err != nil {
			return nil, err
		}

		targets[i] = st
	}

	for i, st := range targets {
		if err := c.forwardAll(i, st); err != nil {
			return nil, err
		}
	}

	log.Debugf("planned %s: %d fields, %d forwards", cm.Name, len(c.out.Fields), len(c.out.Forwards))

	return c.out, nil
}

// planCall is the state of one Plan call.
type planCall struct {
	cfg   Config
	namer FieldNamer
	class *model.ClassModel
	out   *Plan
	// taken holds names a fresh field must not use.
	taken map[string]bool
	// owner maps a forwarded signature to the first specifier forwarding it.
	owner map[model.Signature]int
}

// bind resolves specifier i and allocates its field.
func (c *planCall) bind(i int, ds model.DelegationSpecifier) (*model.Supertype, error) {
	if ds.Expression == nil {
		return nil, c.fail(ErrInvalidDelegationSpecifier, i, ds.Target, "", "missing delegate expression")
	}

	if ds.Expression.Kind == model.ExprInvalid {
		return nil, c.fail(ErrInvalidDelegationSpecifier, i, ds.Target, "",
			fmt.Sprintf("cannot parse delegate expression %q", ds.Expression.Text))
	}

	st := c.class.ResolveSupertype(ds.Target)
	if st == nil {
		err := c.fail(ErrUnresolvedDelegationTarget, i, ds.Target, "", "not a supertype of the class")
		err.Suggestions = suggest.Closest(ds.Target, c.class.SupertypeNames(), suggest.DefaultLimit)

		return nil, err
	}

	alloc := c.allocate(i, ds, st)
	c.taken[alloc.Name] = true

	c.out.Fields = append(c.out.Fields, FieldBinding{
		Index:      i,
		Specifier:  ds,
		Target:     st.Name,
		TargetRef:  st.Ref(),
		Allocation: alloc,
	})

	return st, nil
}

func (c *planCall) allocate(i int, ds model.DelegationSpecifier, st *model.Supertype) FieldAllocation {
	if ds.Expression.Kind == model.ExprName {
		if prop := c.class.Property(ds.Expression.Name); prop != nil && prop.IsFinalWithBackingField() {
			return FieldAllocation{Name: prop.Name}
		}
	}

	name := uniqueName(c.namer.FieldName(c.class.Name, st.Name, i), i, c.taken)

	return FieldAllocation{Name: name, MustInitialize: true}
}

// forwardAll appends descriptors for every member specifier i delegates.
func (c *planCall) forwardAll(i int, st *model.Supertype) error {
	field := c.out.Fields[i].Allocation.Name

	for _, src := range st.Members {
		if src.Visibility == model.VisibilityPrivate {
			continue
		}

		over := st.Specialize(src)
		sig := over.Signature()

		if c.class.Declares(sig) {
			c.out.Diagnostics.AddInfo("explicit_override",
				fmt.Sprintf("%s from %s is declared by the class and not forwarded", sig, st.Name),
				c.class.Name, sig.String())

			continue
		}

		if first, ok := c.owner[sig]; ok && first != i {
			c.out.Diagnostics.AddWarning("conflicting_delegation",
				fmt.Sprintf("%s is forwarded by delegations #%d and #%d", sig, first, i),
				c.class.Name, sig.String())
		} else if !ok {
			c.owner[sig] = i
		}

		var err error

		switch src.Kind {
		case model.MemberProperty:
			err = c.forwardProperty(i, st, field, src, over)
		case model.MemberFunction:
			c.forwardFunction(i, field, src, over)
		default:
			err = fmt.Errorf("%s: member %s of %s has kind %v", c.class.Name, src.Name, st.Name, src.Kind)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func (c *planCall) forwardProperty(i int, st *model.Supertype, field string, src, over model.Member) error {
	if src.Getter == nil {
		return c.fail(ErrMissingPropertyGetter, i, st.Name, src.Name, "")
	}

	if src.Setter != nil && len(src.Setter.Params) != 1 {
		return c.fail(ErrMalformedSetterSignature, i, st.Name, src.Name,
			fmt.Sprintf("setter takes %d parameters, want 1", len(src.Setter.Params)))
	}

	ext := src.IsExtension()

	getter := ForwardDescriptor{
		Kind:        model.MemberProperty,
		Accessor:    AccessorGetter,
		Source:      src,
		Overridden:  over,
		Field:       i,
		IsExtension: ext,
		Call:        CallShape{Form: CallRead, Receiver: field, Name: src.Name},
	}

	if ext {
		getter.Call = CallShape{
			Form:     CallInvoke,
			Receiver: field,
			Name:     "get" + common.UpperFirst(src.Name),
			Args:     []Argument{c.receiverArg()},
		}
	}

	c.out.Forwards = append(c.out.Forwards, getter)

	if src.Setter == nil {
		return nil
	}

	value := Argument{Kind: ArgValue, Name: c.cfg.ValueParam}

	setter := ForwardDescriptor{
		Kind:        model.MemberProperty,
		Accessor:    AccessorSetter,
		Source:      src,
		Overridden:  over,
		Field:       i,
		IsExtension: ext,
		Params:      []model.Param{{Name: c.cfg.ValueParam, Type: over.Setter.Params[0].Type}},
		Call:        CallShape{Form: CallAssign, Receiver: field, Name: src.Name, Args: []Argument{value}},
	}

	if ext {
		setter.Call = CallShape{
			Form:     CallInvoke,
			Receiver: field,
			Name:     "set" + common.UpperFirst(src.Name),
			Args:     []Argument{c.receiverArg(), value},
		}
	}

	c.out.Forwards = append(c.out.Forwards, setter)

	return nil
}

func (c *planCall) forwardFunction(i int, field string, src, over model.Member) {
	ext := src.IsExtension()

	params := make([]model.Param, len(over.Params))

	var args []Argument
	if ext {
		args = append(args, c.receiverArg())
	}

	used := map[string]bool{c.cfg.ReceiverParam: true}
	for _, prm := range over.Params {
		used[prm.Name] = true
	}

	for j, prm := range over.Params {
		if prm.Name == "" {
			n := j
			for used["p"+strconv.Itoa(n)] {
				n++
			}

			prm.Name = "p" + strconv.Itoa(n)
			used[prm.Name] = true
		}

		params[j] = prm
		args = append(args, Argument{Kind: ArgParam, Name: prm.Name})
	}

	c.out.Forwards = append(c.out.Forwards, ForwardDescriptor{
		Kind:        model.MemberFunction,
		Accessor:    AccessorNone,
		Source:      src,
		Overridden:  over,
		Field:       i,
		IsExtension: ext,
		Params:      params,
		Call:        CallShape{Form: CallInvoke, Receiver: field, Name: src.Name, Args: args},
	})
}

func (c *planCall) receiverArg() Argument {
	return Argument{Kind: ArgReceiver, Name: c.cfg.ReceiverParam}
}

func (c *planCall) fail(kind error, i int, target, member, detail string) *Error {
	return &Error{
		Kind:      kind,
		Class:     c.class.Name,
		Specifier: i,
		Target:    target,
		Member:    member,
		Detail:    detail,
	}
}
