package definition

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formstate/pkg/field"
)

func (b *builder) derive(id, name, typ string, def DeriveDef) (field.Untyped, error) {
	kind := strings.ToLower(strings.TrimSpace(def.Kind))
	if len(def.Sources) == 0 || len(def.Sources) > 2 {
		return nil, fmt.Errorf("%w: %s needs one or two sources, got %d", ErrInvalidDerive, kind, len(def.Sources))
	}
	switch kind {
	case DeriveUppercase, DeriveLowercase:
		if typ != TypeString || len(def.Sources) != 1 {
			return nil, fmt.Errorf("%w: %s derives a string from one string source", ErrInvalidDerive, kind)
		}
		src, err := source[string](b, def.Sources[0], TypeString)
		if err != nil {
			return nil, err
		}
		convert := strings.ToUpper
		if kind == DeriveLowercase {
			convert = strings.ToLower
		}
		return field.NewCalculated(id, name, src, func(p *string) *string {
			if p == nil {
				return nil
			}
			v := convert(*p)
			return &v
		})
	case DeriveConcat:
		if typ != TypeString {
			return nil, fmt.Errorf("%w: concat derives a string", ErrInvalidDerive)
		}
		return derive2(b, id, name, TypeString, def.Sources, func(a, c *string) *string {
			var parts []string
			for _, p := range []*string{a, c} {
				if p != nil && *p != "" {
					parts = append(parts, *p)
				}
			}
			if len(parts) == 0 {
				return nil
			}
			v := strings.Join(parts, def.Separator)
			return &v
		})
	case DeriveSum:
		switch typ {
		case TypeInteger:
			return derive2(b, id, name, TypeInteger, def.Sources, sum[int])
		case TypeNumber:
			return derive2(b, id, name, TypeNumber, def.Sources, sum[float64])
		default:
			return nil, fmt.Errorf("%w: sum derives an integer or a number", ErrInvalidDerive)
		}
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidDerive, def.Kind)
	}
}

// derive2 builds a calculated field over one or two sources of the same type.
// With one source the second argument of fn is always nil.
func derive2[V comparable](b *builder, id, name, typ string, sources []string, fn func(a, c *V) *V) (field.Untyped, error) {
	first, err := source[V](b, sources[0], typ)
	if err != nil {
		return nil, err
	}
	if len(sources) == 1 {
		return field.NewCalculated(id, name, first, func(a *V) *V { return fn(a, nil) })
	}
	second, err := source[V](b, sources[1], typ)
	if err != nil {
		return nil, err
	}
	return field.NewCalculated2(id, name, first, second, fn)
}

func source[V comparable](b *builder, id, typ string) (field.Typed[V], error) {
	n, ok := b.nodes[strings.TrimSpace(id)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (derivations read earlier fields only)", ErrUnknownReference, id)
	}
	typed, ok := n.f.(field.Typed[V])
	if !ok || n.typ != typ {
		return nil, fmt.Errorf("%w: source %q is %s, want %s", ErrInvalidDerive, id, n.typ, typ)
	}
	return typed, nil
}

func sum[V int | float64](a, c *V) *V {
	if a == nil && c == nil {
		return nil
	}
	var total V
	for _, p := range []*V{a, c} {
		if p != nil {
			total += *p
		}
	}
	return &total
}
