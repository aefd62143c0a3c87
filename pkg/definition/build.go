package definition

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/field"
	"github.com/goliatone/go-formstate/pkg/form"
)

// BuildOption configures Build.
type BuildOption func(*builder)

// WithLogger sets the logger handed to the form and its fields.
func WithLogger(logger *zap.SugaredLogger) BuildOption {
	return func(b *builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithFormOptions forwards extra options to form.New.
func WithFormOptions(opts ...form.Option) BuildOption {
	return func(b *builder) {
		b.formOpts = append(b.formOpts, opts...)
	}
}

type builder struct {
	logger   *zap.SugaredLogger
	formOpts []form.Option
	nodes    map[string]*node
}

type node struct {
	def FieldDef
	typ string
	f   field.Untyped
}

// Build compiles doc into a form. Fields are created in document order, so a
// derivation may only read fields defined before it; validation rules may
// reference any field of the document.
func Build(doc Document, opts ...BuildOption) (*form.Form, error) {
	b := &builder{
		logger: zap.NewNop().Sugar(),
		nodes:  make(map[string]*node),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	if len(doc.Sections) == 0 {
		return nil, ErrEmptyDocument
	}

	var ordered []*node
	sections := make([]*form.Section, 0, len(doc.Sections))
	for _, sd := range doc.Sections {
		id := strings.TrimSpace(sd.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: section id is required", ErrInvalidParam)
		}
		fields := make([]field.Untyped, 0, len(sd.Fields))
		for _, fd := range sd.Fields {
			n, err := b.buildField(fd)
			if err != nil {
				return nil, fmt.Errorf("definition: section %q field %q: %w", id, fd.ID, err)
			}
			ordered = append(ordered, n)
			fields = append(fields, n.f)
		}
		secOpts := []form.SectionOption{
			form.WithTitle(sd.Title),
			form.WithFields(fields...),
			form.WithCollapsed(sd.Collapsed),
		}
		if sd.Collapsible != nil {
			secOpts = append(secOpts, form.WithCollapsible(*sd.Collapsible))
		}
		sections = append(sections, form.NewSection(id, secOpts...))
	}

	for _, n := range ordered {
		for _, rule := range n.def.Rules {
			if err := b.applyRule(n, rule); err != nil {
				return nil, fmt.Errorf("definition: field %q rule %q: %w", n.f.ID(), rule.Kind, err)
			}
		}
	}

	b.logger.Debugw("definition: form built", "sections", len(sections), "fields", len(ordered))
	formOpts := append([]form.Option{form.WithLogger(b.logger)}, b.formOpts...)
	return form.New(sections, formOpts...), nil
}

func (b *builder) buildField(fd FieldDef) (*node, error) {
	id := strings.TrimSpace(fd.ID)
	if id == "" {
		return nil, fmt.Errorf("%w: field id is required", ErrInvalidParam)
	}
	if _, exists := b.nodes[id]; exists {
		return nil, ErrDuplicateField
	}
	name := strings.TrimSpace(fd.Name)
	if name == "" {
		name = id
	}
	typ, err := normaliseType(fd.Type)
	if err != nil {
		return nil, err
	}
	timing, err := field.ParseTiming(fd.ValidatesWhen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParam, err)
	}

	var f field.Untyped
	if fd.Derive != nil {
		f, err = b.derive(id, name, typ, *fd.Derive)
	} else {
		f, err = storedField(id, name, typ, fd.Default)
	}
	if err != nil {
		return nil, err
	}
	f.SetValidatesWhen(timing)

	n := &node{def: fd, typ: typ, f: f}
	b.nodes[id] = n
	return n, nil
}

func normaliseType(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", TypeString:
		return TypeString, nil
	case TypeInteger, "int":
		return TypeInteger, nil
	case TypeNumber, "float":
		return TypeNumber, nil
	case TypeBoolean, "bool":
		return TypeBoolean, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownType, raw)
	}
}

func storedField(id, name, typ string, def any) (field.Untyped, error) {
	switch typ {
	case TypeInteger:
		return stored(id, name, def, toInt)
	case TypeNumber:
		return stored(id, name, def, toFloat)
	case TypeBoolean:
		return stored(id, name, def, toBool)
	default:
		return stored(id, name, def, toString)
	}
}

func stored[V comparable](id, name string, def any, coerce func(any) (V, error)) (field.Untyped, error) {
	if def == nil {
		return field.New[V](id, name, nil), nil
	}
	v, err := coerce(def)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefault, err)
	}
	return field.Of(id, name, v), nil
}

func toString(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case bool, int, int64, float64:
		return fmt.Sprint(t), nil
	default:
		return "", fmt.Errorf("cannot use %T as string", v)
	}
}

func toInt(v any) (int, error) {
	switch t := v.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case float64:
		if t != float64(int(t)) {
			return 0, fmt.Errorf("%v is not an integer", t)
		}
		return int(t), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(t))
	default:
		return 0, fmt.Errorf("cannot use %T as integer", v)
	}
}

func toFloat(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(t), 64)
	default:
		return 0, fmt.Errorf("cannot use %T as number", v)
	}
}

func toBool(v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(t))
	default:
		return false, fmt.Errorf("cannot use %T as boolean", v)
	}
}
